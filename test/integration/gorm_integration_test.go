package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"jobreach-be/internal/entity"
	"jobreach-be/internal/repository/unitofwork"
	"jobreach-be/pkg/database"
	"jobreach-be/pkg/linking"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.GuestSessionRepository())
	assert.NotNil(t, uow.LinkAttemptRepository())
	assert.NotNil(t, uow.SubscriptionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Plans Seeded", func(t *testing.T) {
		plans, err := uow.SubscriptionRepository().FindAllPlans(context.Background())
		assert.NoError(t, err)
		t.Logf("Plan count: %d", len(plans))
	})

	t.Run("Check Transactional Guest Linking", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Role:     entity.UserRoleUser,
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		session := &entity.GuestSession{
			SessionId: uuid.New().String(),
		}
		err = uow.GuestSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		// Transaction Test
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		attempt := &entity.LinkAttempt{
			Id:        uuid.New(),
			SessionId: session.SessionId,
			UserId:    userId,
			Origin:    string(linking.OriginExplicit),
			Linked:    true,
			Success:   true,
		}
		err = uow.LinkAttemptRepository().Upsert(ctx, attempt)
		assert.NoError(t, err)

		err = uow.GuestSessionRepository().MarkLinked(ctx, session.SessionId, userId)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		found, err := uow.LinkAttemptRepository().Find(ctx, session.SessionId, userId)
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.True(t, found.Success)
		}

		t.Log("Successfully recorded link attempt and marked session in Transaction")
	})
}
