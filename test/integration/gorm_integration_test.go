package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/repository/specification"
	"ai-recruiting-be/internal/repository/unitofwork"
	"ai-recruiting-be/pkg/database"

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

	assert.NotNil(t, uow.CandidateRepository())
	assert.NotNil(t, uow.ChatSessionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Candidate Repository", func(t *testing.T) {
		count, err := uow.CandidateRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Candidate count: %d", count)
	})

	t.Run("Check Candidate Embedding Repository", func(t *testing.T) {
		// Count implies the table and vector column exist
		count, err := uow.CandidateEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("CandidateEmbedding count: %d", count)
	})

	t.Run("Check Transactional Message Write", func(t *testing.T) {
		ctx := context.Background()
		orgId := uuid.New()
		userId := uuid.New()

		session := &entity.ChatSession{
			Id:           uuid.New(),
			OrgId:        orgId,
			UserId:       userId,
			StartedAt:    time.Now(),
			LastActiveAt: time.Now(),
		}
		err := uow.ChatSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		msg := &entity.ChatMessage{
			Id:        uuid.New(),
			SessionId: session.Id,
			Role:      "user",
			Message:   "integration test message",
			CreatedAt: time.Now(),
		}
		err = uow.ChatMessageRepository().Create(ctx, msg)
		assert.NoError(t, err)

		err = uow.ChatSessionRepository().BumpActivity(ctx, session.Id, 1, time.Now())
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		stored, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: session.Id})
		assert.NoError(t, err)
		if assert.NotNil(t, stored) {
			assert.Equal(t, 1, stored.MessageCount)
		}
	})
}
