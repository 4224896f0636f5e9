package models

import (
	"time"
)

// Subscription tiers stored on the user record.
const (
	SubscriptionNone     = "none"
	SubscriptionMonthly  = "monthly"
	SubscriptionLifetime = "lifetime"
)

type User struct {
	ID               uint       `gorm:"primaryKey"`
	TelegramID       int64      `gorm:"uniqueIndex;not null"`
	Username         string     `gorm:"size:255"`
	Balance          float64    `gorm:"default:0"`
	Subscribed       bool       `gorm:"default:false"`
	SubscriptionType string     `gorm:"size:50;default:'none'"`
	SubscriptionEnd  *time.Time // nil for lifetime and for unsubscribed users
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
