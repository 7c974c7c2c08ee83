package implementation

import (
	"context"
	"encoding/json"

	"cancelflow-be/internal/entity"
	"cancelflow-be/internal/model"
	"cancelflow-be/internal/repository/contract"
	"cancelflow-be/internal/repository/scope"
	"cancelflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type cancellationEventRepositoryImpl struct {
	db *gorm.DB
}

func NewCancellationEventRepository(db *gorm.DB) contract.CancellationEventRepository {
	return &cancellationEventRepositoryImpl{db: db}
}

func (r *cancellationEventRepositoryImpl) Create(ctx context.Context, event *entity.CancellationEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	return r.db.WithContext(ctx).Create(&model.CancellationEvent{
		ID:             event.ID,
		CancellationID: event.CancellationID,
		UserID:         event.UserID,
		Type:           event.Type,
		Payload:        datatypes.JSON(payload),
		OccurredAt:     event.OccurredAt,
	}).Error
}

func (r *cancellationEventRepositoryImpl) FindAllByCancellationID(ctx context.Context, cancellationId uuid.UUID) ([]*entity.CancellationEvent, error) {
	var rows []*model.CancellationEvent
	query := specification.ByCancellationID{CancellationID: cancellationId}.Apply(r.db.WithContext(ctx))

	if err := query.Scopes(scope.OrderByOccurredAsc).Find(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]*entity.CancellationEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]interface{}
		if len(row.Payload) > 0 {
			if err := json.Unmarshal(row.Payload, &payload); err != nil {
				return nil, err
			}
		}
		events = append(events, &entity.CancellationEvent{
			ID:             row.ID,
			CancellationID: row.CancellationID,
			UserID:         row.UserID,
			Type:           row.Type,
			Payload:        payload,
			OccurredAt:     row.OccurredAt,
		})
	}
	return events, nil
}
