package rugcheck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/oracle"
	"github.com/SAFFEMIRZA/dex-bot/pkg/httpx"
)

var _ oracle.SafetyService = (*Service)(nil)

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

func NewService(baseURL string, opts ...Option) *Service {
	svc := &Service{
		baseURL: baseURL,
		cli:     httpx.NewClient(0),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// CheckSafety 查询合约状态, 失败时返回 oracle.UnknownSafety 和错误
func (s *Service) CheckSafety(ctx context.Context, address string) (oracle.SafetyReport, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return oracle.UnknownSafety, fmt.Errorf("%w: bad base url: %w", oracle.ErrUnavailable, err)
	}
	q := u.Query()
	q.Set("address", address)
	u.RawQuery = q.Encode()

	var resp struct {
		Status          string `json:"status"`
		IsBundledSupply bool   `json:"is_bundled_supply"`
	}
	err = httpx.DoJSON(ctx, s.cli, httpx.Request{
		Method: http.MethodGet,
		URL:    u.String(),
	}, &resp)
	if err != nil {
		return oracle.UnknownSafety, fmt.Errorf("%w: safety check %s: %w", oracle.ErrUnavailable, address, err)
	}

	status := entity.SafetyStatus(resp.Status)
	if status == "" {
		status = entity.SafetyUnknown
	}
	return oracle.SafetyReport{
		Status:          status,
		IsBundledSupply: resp.IsBundledSupply,
	}, nil
}
