package implementation

import (
	"context"
	"errors"

	"cancelflow-be/internal/entity"
	"cancelflow-be/internal/mapper"
	"cancelflow-be/internal/model"
	"cancelflow-be/internal/repository/contract"
	"cancelflow-be/internal/repository/scope"
	"cancelflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &subscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *subscriptionRepositoryImpl) FindByUserID(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	var m model.Subscription
	query := specification.ByUserID{UserID: userId}.Apply(r.db.WithContext(ctx))

	if err := query.Scopes(scope.OrderByCreatedDesc).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// Save upserts by primary key
func (r *subscriptionRepositoryImpl) Save(ctx context.Context, subscription *entity.Subscription) error {
	m := r.mapper.ToModel(subscription)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "email", "monthly_price", "status", "updated_at"}),
		}).
		Create(m).Error
}

func (r *subscriptionRepositoryImpl) UpdateStatusByUserID(ctx context.Context, userId uuid.UUID, from []entity.SubscriptionStatus, status entity.SubscriptionStatus) (int64, error) {
	statuses := make([]string, 0, len(from))
	for _, s := range from {
		statuses = append(statuses, string(s))
	}

	query := r.db.WithContext(ctx).Model(&model.Subscription{})
	query = specification.ByUserID{UserID: userId}.Apply(query)
	query = specification.ByStatus{Statuses: statuses}.Apply(query)

	result := query.Update("status", string(status))
	return result.RowsAffected, result.Error
}
