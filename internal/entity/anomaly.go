package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Anomaly 价格异动检测结果, 每条 TokenRecord 最多一条
type Anomaly struct {
	Id          int64           `gorm:"primaryKey;autoIncrement"`
	RecordId    int64           `gorm:"uniqueIndex"`
	Symbol      string          `gorm:"index"`
	Price       decimal.Decimal `gorm:"type:numeric"`
	PriceChange float64
	Score       float64
	DetectedAt  time.Time `gorm:"index"`
}
