package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CancellationEvent struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CancellationID uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type           string         `gorm:"type:varchar(50);not null;index"`
	Payload        datatypes.JSON `gorm:"type:jsonb"`
	OccurredAt     time.Time      `gorm:"not null;index"`
}

func (CancellationEvent) TableName() string {
	return "cancellation_events"
}
