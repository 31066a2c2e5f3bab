package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventTag 行情事件类型
type EventTag string

const (
	EventPump       EventTag = "pump"
	EventRug        EventTag = "rug"
	EventCexListing EventTag = "cex_listing"
)

func (e EventTag) Ptr() *EventTag {
	return &e
}

// SafetyStatus 合约安全检查结果, 非下列值时按原样保存
type SafetyStatus string

const (
	SafetyGood    SafetyStatus = "Good"
	SafetyBad     SafetyStatus = "Bad"
	SafetyUnknown SafetyStatus = "Unknown"
)

// TokenRecord 每次评估保存的一条快照, 只追加不修改
type TokenRecord struct {
	Id              int64  `gorm:"primaryKey;autoIncrement"`
	Symbol          string `gorm:"index"`
	Name            string
	Price           decimal.Decimal     `gorm:"type:numeric"`
	Liquidity       decimal.Decimal     `gorm:"type:numeric"`
	Volume          decimal.Decimal     `gorm:"type:numeric"`
	MarketCap       decimal.NullDecimal `gorm:"type:numeric"`
	Timestamp       time.Time           `gorm:"index"`
	Event           *EventTag           `gorm:"index"`
	DevAddress      string              `gorm:"index"`
	IsFakeVolume    bool
	SafetyStatus    SafetyStatus
	IsBundledSupply bool
}

func (TokenRecord) TableName() string {
	return "tokens"
}

func (r TokenRecord) EventString() string {
	if r.Event == nil {
		return ""
	}
	return string(*r.Event)
}
