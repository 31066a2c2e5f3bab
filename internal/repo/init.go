package repo

import (
	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"gorm.io/gorm"
)

// InitTables 建表, 已存在时只补齐缺失的列和索引
func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.TokenRecord{}, &entity.BlacklistEntry{}, &entity.Anomaly{})
}
