package model

import (
	"time"

	"github.com/google/uuid"
)

// Cancellation GORM model. The unique index on user_id backs the one-record-per-user rule.
type Cancellation struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cancellations_user_id"`
	SubscriptionID   string    `gorm:"type:varchar(100);not null;index"`
	DownsellVariant  string    `gorm:"type:char(1);not null"`
	Reason           *string   `gorm:"type:text"`
	AcceptedDownsell bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Cancellation) TableName() string {
	return "cancellations"
}
