package oracle

import (
	"context"
	"errors"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
)

// ErrUnavailable 外部校验服务不可达或返回非 200
var ErrUnavailable = errors.New("oracle unavailable")

// FraudService 刷量检测
type FraudService interface {
	IsFakeVolume(ctx context.Context, address string) (bool, error)
}

type SafetyReport struct {
	Status          entity.SafetyStatus
	IsBundledSupply bool
}

// UnknownSafety is the verdict used when the safety oracle cannot answer.
var UnknownSafety = SafetyReport{Status: entity.SafetyUnknown}

// SafetyService 合约安全检查
type SafetyService interface {
	CheckSafety(ctx context.Context, address string) (SafetyReport, error)
}
