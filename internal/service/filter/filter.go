package filter

import (
	"github.com/SAFFEMIRZA/dex-bot/internal/service/market"
	"github.com/shopspring/decimal"
)

type Reason string

const (
	ReasonNone         Reason = ""
	ReasonBlacklisted  Reason = "blacklisted"
	ReasonLowLiquidity Reason = "low_liquidity"
	ReasonVolatile     Reason = "volatile"
	ReasonLowVolume    Reason = "low_volume"
)

type Config struct {
	MinLiquidity   decimal.Decimal // USD
	MaxPriceChange decimal.Decimal // 24h 涨跌幅绝对值上限
	MinVolume      decimal.Decimal // USD
}

// Blacklist is the read side of the blacklist set.
type Blacklist interface {
	Contains(symbol, address string) bool
}

type Verdict struct {
	Admitted bool
	Reason   Reason
}

type Filter struct {
	cfg Config
}

func NewFilter(cfg Config) *Filter {
	return &Filter{cfg: cfg}
}

// Check 依次检查黑名单, 流动性, 涨跌幅, 成交量, 命中第一条即拒绝
func (f *Filter) Check(snapshot market.TokenSnapshot, blacklist Blacklist) Verdict {
	if blacklist != nil && blacklist.Contains(snapshot.Symbol, snapshot.Address) {
		return Verdict{Reason: ReasonBlacklisted}
	}
	if snapshot.Liquidity.LessThan(f.cfg.MinLiquidity) {
		return Verdict{Reason: ReasonLowLiquidity}
	}
	if snapshot.PriceChange24h.Abs().GreaterThan(f.cfg.MaxPriceChange) {
		return Verdict{Reason: ReasonVolatile}
	}
	if snapshot.Volume24h.LessThan(f.cfg.MinVolume) {
		return Verdict{Reason: ReasonLowVolume}
	}
	return Verdict{Admitted: true}
}

func (f *Filter) Admit(snapshot market.TokenSnapshot, blacklist Blacklist) bool {
	return f.Check(snapshot, blacklist).Admitted
}
