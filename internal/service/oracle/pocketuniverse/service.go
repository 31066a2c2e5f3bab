package pocketuniverse

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SAFFEMIRZA/dex-bot/internal/service/oracle"
	"github.com/SAFFEMIRZA/dex-bot/pkg/httpx"
)

var _ oracle.FraudService = (*Service)(nil)

type Service struct {
	baseURL string
	apiKey  string
	cli     *http.Client
}

type Option func(s *Service)

func WithHTTPClient(cli *http.Client) Option {
	return func(s *Service) {
		s.cli = cli
	}
}

func NewService(baseURL, apiKey string, opts ...Option) *Service {
	svc := &Service{
		baseURL: baseURL,
		apiKey:  apiKey,
		cli:     httpx.NewClient(0),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) IsFakeVolume(ctx context.Context, address string) (bool, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return false, fmt.Errorf("%w: bad base url: %w", oracle.ErrUnavailable, err)
	}
	q := u.Query()
	q.Set("token", address)
	u.RawQuery = q.Encode()

	var resp struct {
		IsFakeVolume bool `json:"is_fake_volume"`
	}
	err = httpx.DoJSON(ctx, s.cli, httpx.Request{
		Method: http.MethodGet,
		URL:    u.String(),
		Bearer: s.apiKey,
	}, &resp)
	if err != nil {
		return false, fmt.Errorf("%w: fake volume check %s: %w", oracle.ErrUnavailable, address, err)
	}
	return resp.IsFakeVolume, nil
}
