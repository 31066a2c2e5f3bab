package analytics

import (
	"time"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"github.com/shopspring/decimal"
)

// Detector 离群点检测, 返回每个样本的异常分数和是否离群
type Detector interface {
	FitPredict(features []float64) (scores []float64, outliers []bool)
}

// Point 单条记录相对上一条记录的价格变化
type Point struct {
	RecordId    int64
	Symbol      string
	Price       decimal.Decimal
	PriceChange float64
	Score       float64
	Outlier     bool
}

// Report 一次异动分析的结果
type Report struct {
	Records     int
	Points      []Point
	Anomalies   []entity.Anomaly
	GeneratedAt time.Time
}

func (r Report) Empty() bool {
	return len(r.Points) == 0
}
