package dexscreener

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/SAFFEMIRZA/dex-bot/internal/service/market"
	"github.com/SAFFEMIRZA/dex-bot/pkg/httpx"
	"github.com/shopspring/decimal"
)

var _ market.Service = (*Service)(nil)

const DefaultBaseURL = "https://api.dexscreener.com/latest/dex/tokens"

type tokenResponse struct {
	Pairs []pair `json:"pairs"`
}

type pair struct {
	URL       string `json:"url"`
	BaseToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	PriceUsd  decimal.Decimal `json:"priceUsd"`
	Liquidity struct {
		USD decimal.Decimal `json:"usd"`
	} `json:"liquidity"`
	Volume struct {
		H24 decimal.Decimal `json:"h24"`
	} `json:"volume"`
	PriceChange struct {
		H24 decimal.Decimal `json:"h24"`
	} `json:"priceChange"`
	Fdv decimal.NullDecimal `json:"fdv"`
}

type Service struct {
	baseURL string
	cli     *http.Client
}

type Option func(s *Service)

func WithHTTPClient(cli *http.Client) Option {
	return func(s *Service) {
		s.cli = cli
	}
}

// NewService 创建 DexScreener 行情服务, baseURL 为空时使用官方地址
func NewService(baseURL string, opts ...Option) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	svc := &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		cli:     httpx.NewClient(0),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) GetSnapshot(ctx context.Context, address string) (market.TokenSnapshot, error) {
	var resp tokenResponse
	err := httpx.DoJSON(ctx, s.cli, httpx.Request{
		Method: http.MethodGet,
		URL:    s.baseURL + "/" + url.PathEscape(address),
	}, &resp)
	if err != nil {
		return market.TokenSnapshot{}, fmt.Errorf("%w: %s: %w", market.ErrFetch, address, err)
	}

	// 只取第一个交易对
	if len(resp.Pairs) == 0 {
		return market.TokenSnapshot{}, fmt.Errorf("%w: %s", market.ErrNoPairs, address)
	}
	p := resp.Pairs[0]

	snapshot := market.TokenSnapshot{
		Symbol:         p.BaseToken.Symbol,
		Name:           p.BaseToken.Name,
		Address:        p.BaseToken.Address,
		Price:          p.PriceUsd,
		Liquidity:      p.Liquidity.USD,
		Volume24h:      p.Volume.H24,
		PriceChange24h: p.PriceChange.H24,
		MarketCap:      p.Fdv,
		URL:            p.URL,
	}
	if snapshot.Address == "" {
		snapshot.Address = address
	}
	if err = snapshot.Validate(); err != nil {
		return market.TokenSnapshot{}, fmt.Errorf("%s: %w", address, err)
	}
	return snapshot, nil
}
