package trojan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SAFFEMIRZA/dex-bot/internal/service/exchange"
	"github.com/SAFFEMIRZA/dex-bot/pkg/httpx"
)

var _ exchange.OrderService = (*Service)(nil)

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

// NewService 创建 Trojan 下单服务
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

type orderBody struct {
	TokenAddress string        `json:"token_address"`
	Side         exchange.Side `json:"side"`
	Amount       float64       `json:"amount"`
}

func (s *Service) PlaceOrder(ctx context.Context, req exchange.OrderReq) (exchange.OrderConfirmation, error) {
	var raw json.RawMessage
	err := httpx.DoJSON(ctx, s.cli, httpx.Request{
		Method: http.MethodPost,
		URL:    s.baseURL,
		Bearer: s.apiKey,
		Body: orderBody{
			TokenAddress: req.TokenAddress,
			Side:         req.Side,
			Amount:       req.Amount.InexactFloat64(),
		},
	}, &raw)
	if err != nil {
		return exchange.OrderConfirmation{}, fmt.Errorf("%w: %s %s: %w", exchange.ErrOrderRejected, req.Side, req.TokenAddress, err)
	}
	return exchange.OrderConfirmation{
		Id:  extractOrderId(raw),
		Raw: raw,
	}, nil
}

// extractOrderId 回执格式不固定, 尽量取出订单号
func extractOrderId(raw json.RawMessage) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, key := range []string{"order_id", "orderId", "id"} {
		if v, ok := body[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}
