package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-visionboard-be/internal/entity"
	"ai-visionboard-be/internal/repository/specification"
	"ai-visionboard-be/internal/repository/unitofwork"
	"ai-visionboard-be/pkg/database"
	"ai-visionboard-be/pkg/utils"

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

	assert.NotNil(t, uow.BoardRepository())
	assert.NotNil(t, uow.QueryRecordRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Board Repository", func(t *testing.T) {
		count, err := uow.BoardRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Board count: %d", count)
	})

	t.Run("Check Query Record Repository", func(t *testing.T) {
		count, err := uow.QueryRecordRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("QueryRecord count: %d", count)
	})

	t.Run("Board CreateIfAbsent Is Idempotent", func(t *testing.T) {
		token := "integration-" + utils.NewQueryId()
		board := &entity.Board{Token: token, CreatedAt: time.Now()}

		assert.NoError(t, uow.BoardRepository().CreateIfAbsent(context.Background(), board))
		assert.NoError(t, uow.BoardRepository().CreateIfAbsent(context.Background(), board))

		count, err := uow.BoardRepository().Count(context.Background(), specification.ByToken{Token: token})
		assert.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}
