// Package testhelpers starts throwaway PostgreSQL and Redis containers for
// integration tests.
package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/intuitive-care/operadoras-api/internal/config"
	"github.com/intuitive-care/operadoras-api/internal/redisclient"
	"github.com/intuitive-care/operadoras-api/internal/storage"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

// PostgresFixture is a migrated database inside a container
type PostgresFixture struct {
	URL string
	DB  *gorm.DB
}

func skipUnlessIntegration(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
}

// SetupPostgres starts PostgreSQL, applies the embedded migrations and opens
// a GORM pool on it. Everything is torn down when the test ends.
func SetupPostgres(t *testing.T) *PostgresFixture {
	t.Helper()
	skipUnlessIntegration(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ans_test"),
		postgres.WithUsername("ans"),
		postgres.WithPassword("ans"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get PostgreSQL connection string")

	require.NoError(t, storage.RunMigrations(url), "Failed to apply migrations")

	db, err := config.OpenPostgres(ctx, &config.Config{
		DatabaseURL:       url,
		DBMaxOpenConns:    5,
		DBMaxIdleConns:    2,
		DBConnMaxLifetime: time.Minute,
		DBSlowQuery:       time.Second,
		Environment:       "test",
	})
	require.NoError(t, err, "Failed to connect to PostgreSQL")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &PostgresFixture{URL: url, DB: db}
}

// SetupRedis starts Redis and returns a traced client connected to it.
func SetupRedis(t *testing.T) *redisclient.Client {
	t.Helper()
	skipUnlessIntegration(t)

	ctx := context.Background()
	container, err := redis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "Failed to start Redis container")

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get Redis connection string")
	opts, err := goredis.ParseURL(uri)
	require.NoError(t, err)

	client := redisclient.NewClient(goredis.NewClient(opts))
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err(), "Failed to ping Redis")
	return client
}
