// FILE: internal/repository/contract/cancellation_repository.go
package contract

import (
	"context"

	"cancelflow-be/internal/entity"

	"github.com/google/uuid"
)

// CancellationRepository is the record store behind the cancellation flow.
// Find methods return (nil, nil) when nothing matches.
type CancellationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Cancellation, error)
	FindByUserID(ctx context.Context, userId uuid.UUID) (*entity.Cancellation, error)
	// CreateIfAbsent inserts c unless the user already has a record, in which case the existing
	// record is returned and created is false.
	CreateIfAbsent(ctx context.Context, c *entity.Cancellation) (stored *entity.Cancellation, created bool, err error)
	// Update writes only the fields present in patch.
	Update(ctx context.Context, id uuid.UUID, patch entity.CancellationPatch) error
}
