package strategy

import (
	"github.com/SAFFEMIRZA/dex-bot/internal/entity"
	"github.com/SAFFEMIRZA/dex-bot/internal/service/market"
)

// EventClassifier 根据行情快照判断是否发生了值得关注的事件
type EventClassifier interface {
	// Classify returns nil when no event matches.
	Classify(snapshot market.TokenSnapshot) *entity.EventTag
}
