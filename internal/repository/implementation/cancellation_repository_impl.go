// FILE: internal/repository/implementation/cancellation_repository_impl.go
package implementation

import (
	"context"
	"errors"
	"fmt"

	"cancelflow-be/internal/entity"
	"cancelflow-be/internal/mapper"
	"cancelflow-be/internal/model"
	"cancelflow-be/internal/repository/contract"
	"cancelflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cancellationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CancellationMapper
}

// NewCancellationRepository creates a new cancellation repository
func NewCancellationRepository(db *gorm.DB) contract.CancellationRepository {
	return &cancellationRepositoryImpl{
		db:     db,
		mapper: mapper.NewCancellationMapper(),
	}
}

func (r *cancellationRepositoryImpl) findOne(ctx context.Context, specs ...specification.Specification) (*entity.Cancellation, error) {
	var modelCancellation model.Cancellation
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelCancellation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelCancellation), nil
}

func (r *cancellationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cancellation, error) {
	return r.findOne(ctx, specification.ByID{ID: id})
}

func (r *cancellationRepositoryImpl) FindByUserID(ctx context.Context, userId uuid.UUID) (*entity.Cancellation, error) {
	return r.findOne(ctx, specification.ByUserID{UserID: userId})
}

// CreateIfAbsent relies on the unique user_id index: a concurrent insert for the same user
// becomes a no-op and the winner's row is read back.
func (r *cancellationRepositoryImpl) CreateIfAbsent(ctx context.Context, c *entity.Cancellation) (*entity.Cancellation, bool, error) {
	modelCancellation := r.mapper.ToModel(c)
	if modelCancellation.ID == uuid.Nil {
		modelCancellation.ID = uuid.New()
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(modelCancellation)
	if result.Error != nil {
		return nil, false, result.Error
	}

	if result.RowsAffected == 0 {
		existing, err := r.FindByUserID(ctx, c.UserID)
		if err != nil {
			return nil, false, err
		}
		if existing == nil {
			return nil, false, fmt.Errorf("cancellation for user %s conflicted but could not be read back", c.UserID)
		}
		return existing, false, nil
	}

	return r.mapper.ToEntity(modelCancellation), true, nil
}

func (r *cancellationRepositoryImpl) Update(ctx context.Context, id uuid.UUID, patch entity.CancellationPatch) error {
	updates := map[string]interface{}{}
	if patch.Reason != nil {
		updates["reason"] = *patch.Reason
	}
	if patch.AcceptedDownsell != nil {
		updates["accepted_downsell"] = *patch.AcceptedDownsell
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&model.Cancellation{}).
		Where("id = ?", id).
		Updates(updates).Error
}
