package repo

import (
	"context"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"gorm.io/gorm"
)

// TokenRecordRepo is append-only: records are never updated or deleted.
type TokenRecordRepo interface {
	Create(ctx context.Context, record entity.TokenRecord) (int64, error)
	// FindAll returns every record in insertion order.
	FindAll(ctx context.Context) ([]entity.TokenRecord, error)
	FindRecent(ctx context.Context, limit int) ([]entity.TokenRecord, error)
	FindBySymbol(ctx context.Context, symbol string) ([]entity.TokenRecord, error)
	Count(ctx context.Context) (int64, error)
}

type tokenRecordRepo struct {
	db *gorm.DB
}

func NewTokenRecordRepo(db *gorm.DB) TokenRecordRepo {
	return &tokenRecordRepo{
		db: db,
	}
}

func (r *tokenRecordRepo) Create(ctx context.Context, record entity.TokenRecord) (int64, error) {
	record.Id = 0
	err := r.db.WithContext(ctx).Create(&record).Error
	if err != nil {
		return 0, err
	}
	return record.Id, nil
}

func (r *tokenRecordRepo) FindAll(ctx context.Context) ([]entity.TokenRecord, error) {
	var records []entity.TokenRecord
	err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindRecent 最新的 limit 条, 按 id 倒序
func (r *tokenRecordRepo) FindRecent(ctx context.Context, limit int) ([]entity.TokenRecord, error) {
	var records []entity.TokenRecord
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *tokenRecordRepo) FindBySymbol(ctx context.Context, symbol string) ([]entity.TokenRecord, error) {
	var records []entity.TokenRecord
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).Order("id ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *tokenRecordRepo) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&entity.TokenRecord{}).Count(&cnt).Error
	return cnt, err
}
