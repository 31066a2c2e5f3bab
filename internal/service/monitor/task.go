package monitor

import (
	"context"
	"time"

	"github.com/SAFFEMIRZA/dex-bot/internal/observability"
	"github.com/SAFFEMIRZA/dex-bot/internal/schedule"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var _ schedule.Task = (*CycleTask)(nil)

// CycleTask 一轮完整评估: 扫描全部代币, 然后做一次异动分析
type CycleTask struct {
	tokenSvc Service
	analyzer AnomalyAnalyzer
	tokens   []string
	metrics  *observability.Metrics
}

func NewCycleTask(tokenSvc Service, analyzer AnomalyAnalyzer, tokens []string, metrics *observability.Metrics) *CycleTask {
	return &CycleTask{
		tokenSvc: tokenSvc,
		analyzer: analyzer,
		tokens:   lo.Uniq(lo.Compact(tokens)),
		metrics:  metrics,
	}
}

func (t *CycleTask) Run(ctx context.Context) (err error) {
	ctx = WithCycleId(ctx, uuid.NewString())
	log := cycleLogger(ctx)
	start := time.Now()
	defer func() {
		t.metrics.RecordCycle(start, err)
	}()

	log.Info("cycle started", "tokens", len(t.tokens))
	if err = t.tokenSvc.Scan(ctx, t.tokens); err != nil {
		return err
	}

	if t.analyzer == nil {
		return nil
	}
	report, err := t.analyzer.Analyze(ctx)
	if err != nil {
		// 异动分析只用于观察, 不影响下一轮
		log.Error("failed to analyze anomalies", "error", err)
		return nil
	}
	t.metrics.RecordAnomalies(len(report.Anomalies))
	log.Info("anomaly analysis finished", "records", report.Records, "anomalies", len(report.Anomalies))
	return nil
}

func (t *CycleTask) Name() string {
	return "token evaluation cycle"
}
