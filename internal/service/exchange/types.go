package exchange

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrOrderRejected 下单服务拒绝或不可达
var ErrOrderRejected = errors.New("order rejected")

type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// OrderReq 市价单请求, Amount 为计价资产数量
type OrderReq struct {
	TokenAddress string
	Symbol       string
	Side         Side
	Amount       decimal.Decimal
}

// OrderConfirmation 下单回执, Raw 为服务端原始响应
type OrderConfirmation struct {
	Id  string
	Raw json.RawMessage
}

type OrderService interface {
	PlaceOrder(ctx context.Context, req OrderReq) (OrderConfirmation, error)
}
