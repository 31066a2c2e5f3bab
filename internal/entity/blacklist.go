package entity

import "time"

// BlacklistEntry 黑名单变更记录
type BlacklistEntry struct {
	Id         int64  `gorm:"primaryKey;autoIncrement"`
	Symbol     string `gorm:"index"`
	DevAddress string `gorm:"index"`
	Reason     string
	CreatedAt  time.Time
}

const (
	BlacklistReasonBundledSupply = "bundled_supply"
)
