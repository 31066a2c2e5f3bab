package monitor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/analytics"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/filter"
)

// ErrPersistence 记录写入失败, 会中止本轮扫描
var ErrPersistence = errors.New("token record persistence failed")

// Stage 单个代币评估走到的阶段
type Stage string

const (
	StageFetchFailed  Stage = "fetch_failed"
	StageFetched      Stage = "fetched"
	StageAdmitted     Stage = "admitted"
	// 安全检查和刷量检测并行, 两者都结束后进入该阶段
	StageFraudChecked Stage = "fraud_checked"
	StageClassified   Stage = "classified"
	StageRecorded     Stage = "recorded"
	StageBlacklisted  Stage = "blacklisted"
	StageTraded       Stage = "traded"
)

// Outcome 单个代币的评估结果
type Outcome struct {
	Address string
	Stage   Stage
	// Rejection is set when the filter dropped the snapshot.
	Rejection filter.Reason
	Record    *entity.TokenRecord

	Blacklisted bool
	OrderPlaced bool
	Notified    bool
}

// Service 代币监控服务接口
type Service interface {
	Evaluate(ctx context.Context, address string) (Outcome, error)
	Scan(ctx context.Context, addresses []string) error
}

type AnomalyAnalyzer interface {
	Analyze(ctx context.Context) (analytics.Report, error)
}

type cycleKey struct{}

// WithCycleId 把轮次 id 放进 ctx, 日志里会带上
func WithCycleId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, cycleKey{}, id)
}

func CycleId(ctx context.Context) string {
	id, _ := ctx.Value(cycleKey{}).(string)
	return id
}

func cycleLogger(ctx context.Context) *slog.Logger {
	if id := CycleId(ctx); id != "" {
		return slog.Default().With("cycle", id)
	}
	return slog.Default()
}
