package models

import (
	"time"
)

type Payment struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"not null;index"`
	User      User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Amount    float64 `gorm:"not null"`
	Currency  string  `gorm:"size:10"`
	Status    string  `gorm:"default:'pending'"`
	Provider  string  `gorm:"size:50"`
	Reference string  `gorm:"size:255"`
	Tier      string  `gorm:"size:50"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
