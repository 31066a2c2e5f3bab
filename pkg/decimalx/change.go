package decimalx

import "github.com/shopspring/decimal"

// PctChange 计算相对变化率 (cur - prev) / prev
// prev 为 0 时无法计算, 返回 0
func PctChange(prev, cur decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev)
}
