package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by primary key
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByUserID filters rows owned by a user
type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByCancellationID struct {
	CancellationID uuid.UUID
}

func (s ByCancellationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("cancellation_id = ?", s.CancellationID)
}

// ByStatus filters by one of the given statuses
type ByStatus struct {
	Statuses []string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}
