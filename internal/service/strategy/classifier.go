package strategy

import (
	"strings"

	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/market"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var _ EventClassifier = (*ruleBasedClassifier)(nil)

var (
	DefaultPumpPriceThreshold    = decimal.NewFromInt(1000)
	DefaultRugLiquidityThreshold = decimal.NewFromInt(1000)
	DefaultCexMarkers            = []string{"binance"}
)

type ClassifierConfig struct {
	PumpPriceThreshold    decimal.Decimal
	RugLiquidityThreshold decimal.Decimal
	CexMarkers            []string
}

type ruleBasedClassifier struct {
	pumpPrice    decimal.Decimal
	rugLiquidity decimal.Decimal
	cexMarkers   []string
}

// NewRuleBasedClassifier 规则优先级: pump > rug > cex_listing
func NewRuleBasedClassifier(cfg ClassifierConfig) EventClassifier {
	c := &ruleBasedClassifier{
		pumpPrice:    cfg.PumpPriceThreshold,
		rugLiquidity: cfg.RugLiquidityThreshold,
	}
	if c.pumpPrice.IsZero() {
		c.pumpPrice = DefaultPumpPriceThreshold
	}
	if c.rugLiquidity.IsZero() {
		c.rugLiquidity = DefaultRugLiquidityThreshold
	}
	markers := cfg.CexMarkers
	if len(markers) == 0 {
		markers = DefaultCexMarkers
	}
	c.cexMarkers = lo.Uniq(lo.FilterMap(markers, func(item string, _ int) (string, bool) {
		item = strings.ToLower(strings.TrimSpace(item))
		return item, item != ""
	}))
	return c
}

func (c *ruleBasedClassifier) Classify(snapshot market.TokenSnapshot) *entity.EventTag {
	if snapshot.Price.GreaterThan(c.pumpPrice) {
		return entity.EventPump.Ptr()
	}
	if snapshot.Liquidity.LessThan(c.rugLiquidity) {
		return entity.EventRug.Ptr()
	}
	url := strings.ToLower(snapshot.URL)
	if url != "" && lo.SomeBy(c.cexMarkers, func(marker string) bool {
		return strings.Contains(url, marker)
	}) {
		return entity.EventCexListing.Ptr()
	}
	return nil
}
