package market

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrFetch 行情源不可达或返回非 200
	ErrFetch = errors.New("market data fetch failed")
	// ErrNoPairs 行情源返回了空交易对列表
	ErrNoPairs = errors.New("market data has no pairs")
	// ErrInvalidSnapshot 价格或流动性为负
	ErrInvalidSnapshot = errors.New("invalid token snapshot")
)

// TokenSnapshot 单个代币某一时刻的行情
type TokenSnapshot struct {
	Symbol         string
	Name           string
	Address        string
	Price          decimal.Decimal // USD
	Liquidity      decimal.Decimal // USD
	Volume24h      decimal.Decimal // USD
	PriceChange24h decimal.Decimal
	MarketCap      decimal.NullDecimal // fdv, 可能缺失
	URL            string
}

func (s TokenSnapshot) Validate() error {
	if s.Price.IsNegative() {
		return errors.Join(ErrInvalidSnapshot, errors.New("negative price"))
	}
	if s.Liquidity.IsNegative() {
		return errors.Join(ErrInvalidSnapshot, errors.New("negative liquidity"))
	}
	return nil
}

type Service interface {
	// GetSnapshot fetches the current snapshot of the token at address.
	GetSnapshot(ctx context.Context, address string) (TokenSnapshot, error)
}
