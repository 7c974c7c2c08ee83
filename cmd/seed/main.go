package main

import (
	"context"
	"log"

	"cancelflow-be/internal/config"
	"cancelflow-be/internal/entity"
	"cancelflow-be/internal/repository/unitofwork"
	"cancelflow-be/pkg/database"

	"github.com/google/uuid"
)

// Seeds the demo user's subscription so the cancel flow has something to cancel.
func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	userId, err := uuid.Parse(cfg.Demo.UserID)
	if err != nil {
		log.Fatalf("Error: MOCK_USER_ID is not a UUID: %v", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	err = uow.SubscriptionRepository().Save(ctx, &entity.Subscription{
		ID:           cfg.Demo.SubscriptionID,
		UserID:       userId,
		Email:        cfg.Demo.UserEmail,
		MonthlyPrice: cfg.Demo.SubscriptionPrice,
		Status:       entity.SubscriptionStatusActive,
	})
	if err != nil {
		log.Fatalf("Error: Failed to seed subscription: %v", err)
	}

	log.Printf("Seeded subscription %s for %s (%d cents/month)", cfg.Demo.SubscriptionID, cfg.Demo.UserEmail, cfg.Demo.SubscriptionPrice)
}
