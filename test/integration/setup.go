package integration

import (
	"context"
	"testing"
	"time"

	"storefront-analytics/internal/config"
	"storefront-analytics/internal/database"
	"storefront-analytics/internal/sampledata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, opens a pool the way the
// server does and creates the reporting schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(ctx, config.DatabaseConfig{
		URL:        connStr,
		TraceLevel: "none",
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := sampledata.CreateSchema(ctx, pool); err != nil {
		t.Fatalf("%v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// Today returns CURRENT_DATE as seen by the database.
func Today(t *testing.T, pool *pgxpool.Pool) time.Time {
	t.Helper()

	var today time.Time
	if err := pool.QueryRow(context.Background(), "SELECT CURRENT_DATE").Scan(&today); err != nil {
		t.Fatalf("failed to read current date: %v", err)
	}
	return today
}

// SeedDemo replaces the table contents with the demo dataset anchored at the
// database's current date.
func SeedDemo(t *testing.T, pool *pgxpool.Pool) sampledata.Dataset {
	t.Helper()

	ds := sampledata.Demo(Today(t, pool))
	Seed(t, pool, ds)
	return ds
}

// Seed replaces the table contents with ds.
func Seed(t *testing.T, pool *pgxpool.Pool, ds sampledata.Dataset) {
	t.Helper()

	ctx := context.Background()
	if err := sampledata.Truncate(ctx, pool); err != nil {
		t.Fatalf("%v", err)
	}
	if err := sampledata.Load(ctx, pool, ds); err != nil {
		t.Fatalf("%v", err)
	}
}

// CleanupDB removes all rows from the reporting tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if err := sampledata.Truncate(context.Background(), pool); err != nil {
		t.Logf("failed to clean tables: %v", err)
	}
}
