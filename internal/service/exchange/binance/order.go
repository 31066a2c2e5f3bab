package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/SAFFEMIRZA/dex-bot/internal/service/exchange"
	"github.com/adshao/go-binance/v2"
)

var _ exchange.OrderService = (*OrderService)(nil)

// OrderService 币安现货市价单, 用于已上所的代币
type OrderService struct {
	cli   *binance.Client
	quote string
}

// NewOrderService quote 为计价资产, 为空时使用 USDT
func NewOrderService(cli *binance.Client, quote string) *OrderService {
	if quote == "" {
		quote = "USDT"
	}
	return &OrderService{
		cli:   cli,
		quote: strings.ToUpper(quote),
	}
}

func binanceSide(side exchange.Side) binance.SideType {
	switch side {
	case exchange.Buy:
		return binance.SideTypeBuy
	case exchange.Sell:
		return binance.SideTypeSell
	default:
		return ""
	}
}

func (svc *OrderService) tradingSymbol(symbol string) string {
	return strings.ToUpper(symbol) + svc.quote
}

// PlaceOrder 按计价资产数量下市价单 (quoteOrderQty)
func (svc *OrderService) PlaceOrder(ctx context.Context, req exchange.OrderReq) (exchange.OrderConfirmation, error) {
	side := binanceSide(req.Side)
	if side == "" {
		return exchange.OrderConfirmation{}, fmt.Errorf("%w: unsupported side %q", exchange.ErrOrderRejected, req.Side)
	}
	if req.Symbol == "" {
		return exchange.OrderConfirmation{}, fmt.Errorf("%w: symbol required", exchange.ErrOrderRejected)
	}

	resp, err := svc.cli.NewCreateOrderService().
		Symbol(svc.tradingSymbol(req.Symbol)).
		Side(side).
		Type(binance.OrderTypeMarket).
		QuoteOrderQty(req.Amount.String()).
		Do(ctx)
	if err != nil {
		return exchange.OrderConfirmation{}, fmt.Errorf("%w: %s %s: %w", exchange.ErrOrderRejected, req.Side, req.Symbol, err)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return exchange.OrderConfirmation{}, err
	}
	return exchange.OrderConfirmation{
		Id:  strconv.FormatInt(resp.OrderID, 10),
		Raw: raw,
	}, nil
}
