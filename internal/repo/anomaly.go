package repo

import (
	"context"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnomalyRepo interface {
	// Upsert 按 record_id 覆盖上一次的检测结果
	Upsert(ctx context.Context, anomalies []entity.Anomaly) error
	FindRecent(ctx context.Context, limit int) ([]entity.Anomaly, error)
}

type anomalyRepo struct {
	db *gorm.DB
}

func NewAnomalyRepo(db *gorm.DB) AnomalyRepo {
	return &anomalyRepo{
		db: db,
	}
}

func (r *anomalyRepo) Upsert(ctx context.Context, anomalies []entity.Anomaly) error {
	if len(anomalies) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_change", "score", "detected_at"}),
	}).Create(&anomalies).Error
}

func (r *anomalyRepo) FindRecent(ctx context.Context, limit int) ([]entity.Anomaly, error) {
	var anomalies []entity.Anomaly
	err := r.db.WithContext(ctx).Order("detected_at DESC, record_id DESC").Limit(limit).Find(&anomalies).Error
	if err != nil {
		return nil, err
	}
	return anomalies, nil
}
