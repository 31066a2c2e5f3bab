package analytics

import (
	"log/slog"
	"slices"

	"github.com/e-XpertSolutions/go-iforest/v2/iforest"
	"github.com/samber/lo"
)

var _ Detector = (*IsolationForest)(nil)

const (
	DefaultTrees         = 100
	DefaultSampleSize    = 256
	DefaultContamination = 0.1

	// neutralScore 无法区分样本时的分数
	neutralScore = 0.5
)

// IsolationForest 基于 go-iforest 的一维孤立森林
type IsolationForest struct {
	Trees         int
	SampleSize    int
	Contamination float64
}

func NewIsolationForest() *IsolationForest {
	return &IsolationForest{
		Trees:         DefaultTrees,
		SampleSize:    DefaultSampleSize,
		Contamination: DefaultContamination,
	}
}

// FitPredict 每次调用都重新训练, 分数越接近 1 越异常.
// 离群标记由 go-iforest 按 Contamination 对应的分位数给出
func (f *IsolationForest) FitPredict(features []float64) ([]float64, []bool) {
	n := len(features)
	if n == 0 {
		return nil, nil
	}
	outliers := make([]bool, n)
	// 少于两个样本或全部相同时树无法切分
	if n < 2 || slices.Min(features) == slices.Max(features) {
		return neutralScores(n), outliers
	}

	trees, sampleSize := f.Trees, f.SampleSize
	if trees <= 0 {
		trees = DefaultTrees
	}
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	sampleSize = min(sampleSize, n)

	x := lo.Map(features, func(item float64, _ int) []float64 {
		return []float64{item}
	})
	forest := iforest.NewForest(trees, sampleSize, f.contamination())
	forest.Train(x)
	forest.Test(x)
	labels, scores, err := forest.Predict(x)
	if err != nil || len(scores) != n || len(labels) != n {
		slog.Error("isolation forest predict failed", "samples", n, "error", err)
		return neutralScores(n), outliers
	}

	if f.Contamination > 0 {
		for i, label := range labels {
			outliers[i] = label == 1
		}
	}
	return scores, outliers
}

// contamination go-iforest 要求 (0, 0.5]
func (f *IsolationForest) contamination() float64 {
	switch {
	case f.Contamination <= 0:
		return DefaultContamination
	case f.Contamination > 0.5:
		return 0.5
	}
	return f.Contamination
}

func neutralScores(n int) []float64 {
	return lo.Times(n, func(_ int) float64 {
		return neutralScore
	})
}
