package contract

import (
	"context"

	"cancelflow-be/internal/entity"

	"github.com/google/uuid"
)

type CancellationEventRepository interface {
	Create(ctx context.Context, event *entity.CancellationEvent) error
	FindAllByCancellationID(ctx context.Context, cancellationId uuid.UUID) ([]*entity.CancellationEvent, error)
}
