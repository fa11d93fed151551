package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/himtrails/trip-proxy-api/internal/adapters/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS fallback_documents (
	id         integer PRIMARY KEY,
	doc        jsonb NOT NULL,
	updated_at timestamptz NOT NULL
);
`

// OpenMigratedPool connects to the database named by TEST_DATABASE_URL,
// applies the schema, and truncates state so each test starts clean.
// Tests are skipped when the variable is unset.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres contract tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{})
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE fallback_documents`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}
