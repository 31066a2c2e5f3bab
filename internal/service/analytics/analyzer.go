package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"github.com/SAFFEMIRZA/dex-bot/internal/repo"
	"github.com/SAFFEMIRZA/dex-bot/pkg/decimalx"
	"github.com/samber/lo"
)

type Analyzer struct {
	recordRepo  repo.TokenRecordRepo
	anomalyRepo repo.AnomalyRepo
	detector    Detector
	now         func() time.Time
}

type Option func(a *Analyzer)

// WithAnomalyRepo 保存检测到的异动, 不设置时只打日志
func WithAnomalyRepo(anomalyRepo repo.AnomalyRepo) Option {
	return func(a *Analyzer) {
		a.anomalyRepo = anomalyRepo
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

func NewAnalyzer(recordRepo repo.TokenRecordRepo, detector Detector, opts ...Option) *Analyzer {
	a := &Analyzer{
		recordRepo: recordRepo,
		detector:   detector,
		now:        time.Now,
	}
	if a.detector == nil {
		a.detector = NewIsolationForest()
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze 读取全部历史记录, 计算相邻两条记录的价格变化率并做离群检测
// 第一条记录没有前值, 不参与检测
func (a *Analyzer) Analyze(ctx context.Context) (Report, error) {
	report := Report{GeneratedAt: a.now().UTC()}

	records, err := a.recordRepo.FindAll(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to load token records: %w", err)
	}
	report.Records = len(records)
	if len(records) < 2 {
		slog.Debug("skip anomaly analysis", "records", len(records), "reason", "too few records")
		return report, nil
	}

	report.Points = make([]Point, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		report.Points = append(report.Points, Point{
			RecordId:    cur.Id,
			Symbol:      cur.Symbol,
			Price:       cur.Price,
			PriceChange: decimalx.PctChange(prev.Price, cur.Price).InexactFloat64(),
		})
	}

	scores, outliers := a.detector.FitPredict(lo.Map(report.Points, func(item Point, _ int) float64 {
		return item.PriceChange
	}))
	for i := range report.Points {
		if i < len(scores) {
			report.Points[i].Score = scores[i]
		}
		if i < len(outliers) && outliers[i] {
			report.Points[i].Outlier = true
		}
	}

	report.Anomalies = lo.FilterMap(report.Points, func(item Point, _ int) (entity.Anomaly, bool) {
		return entity.Anomaly{
			RecordId:    item.RecordId,
			Symbol:      item.Symbol,
			Price:       item.Price,
			PriceChange: item.PriceChange,
			Score:       item.Score,
			DetectedAt:  report.GeneratedAt.Truncate(time.Second),
		}, item.Outlier
	})
	for _, anomaly := range report.Anomalies {
		slog.Warn("price anomaly detected", "record", anomaly.RecordId, "symbol", anomaly.Symbol,
			"price", anomaly.Price, "change", anomaly.PriceChange, "score", anomaly.Score)
	}

	if a.anomalyRepo != nil {
		if err = a.anomalyRepo.Upsert(ctx, report.Anomalies); err != nil {
			return report, fmt.Errorf("failed to save anomalies: %w", err)
		}
	}
	return report, nil
}
