package model

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	ID           string    `gorm:"type:varchar(100);primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Email        string    `gorm:"type:varchar(255)"`
	MonthlyPrice int64     `gorm:"not null;default:0"` // cents
	Status       string    `gorm:"type:varchar(50);not null;default:'active';index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
