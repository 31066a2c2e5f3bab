package repo

import (
	"context"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"gorm.io/gorm"
)

type BlacklistRepo interface {
	Create(ctx context.Context, entry entity.BlacklistEntry) (int64, error)
	FindAll(ctx context.Context) ([]entity.BlacklistEntry, error)
}

type blacklistRepo struct {
	db *gorm.DB
}

func NewBlacklistRepo(db *gorm.DB) BlacklistRepo {
	return &blacklistRepo{
		db: db,
	}
}

func (r *blacklistRepo) Create(ctx context.Context, entry entity.BlacklistEntry) (int64, error) {
	err := r.db.WithContext(ctx).Create(&entry).Error
	if err != nil {
		return 0, err
	}
	return entry.Id, nil
}

func (r *blacklistRepo) FindAll(ctx context.Context) ([]entity.BlacklistEntry, error) {
	var entries []entity.BlacklistEntry
	err := r.db.WithContext(ctx).Order("id ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
