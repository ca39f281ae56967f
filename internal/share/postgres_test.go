package share

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sharedrop/service/internal/db"
)

// setupPostgres starts PostgreSQL in a container and applies the embedded migrations.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION not set")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("sharedrop_test"),
		postgres.WithUsername("sharedrop"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	latest, err := db.LatestVersion()
	if err != nil {
		t.Fatalf("latest version: %v", err)
	}
	for run := 1; run <= 2; run++ {
		version, err := db.Migrate(dsn)
		if err != nil {
			t.Fatalf("migrate (run %d): %v", run, err)
		}
		if version != latest {
			t.Fatalf("schema version after run %d = %d, want %d", run, version, latest)
		}
	}

	pool, err := db.Connect(ctx, dsn, db.PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresStore(t *testing.T) {
	pool := setupPostgres(t)
	store := NewPostgresStore(pool)
	ctx := context.Background()

	items, err := store.ScanAll(ctx)
	if err != nil {
		t.Fatalf("scan empty: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("scan empty = %v", items)
	}

	if _, err := store.Get(ctx, "a1b2c3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing err = %v, want ErrNotFound", err)
	}

	rec := &Record{Code: "a1b2c3", StorageKey: "a1b2c3_report.pdf", CreatedAt: "2024-01-01T00:00:00Z"}
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.Get(ctx, "a1b2c3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got != *rec {
		t.Fatalf("got %+v, want %+v", got, rec)
	}

	rec2 := &Record{Code: "a1b2c3", StorageKey: "a1b2c3_report.pdf", CreatedAt: "2024-01-01T00:30:00Z"}
	if err := store.Put(ctx, rec2); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := store.Put(ctx, &Record{Code: "d4e5f6", StorageKey: "d4e5f6_b.txt", CreatedAt: "2024-01-01T00:00:00Z"}); err != nil {
		t.Fatalf("put second: %v", err)
	}

	exists, err := store.Exists(ctx, "d4e5f6")
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}

	items, err = store.ScanAll(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	for _, item := range items {
		if item[AttrCode] == "a1b2c3" && item[AttrCreatedAt] != "2024-01-01T00:30:00Z" {
			t.Fatalf("overwrite lost: %v", item)
		}
	}
}

func TestPostgresStoreEndToEnd(t *testing.T) {
	pool := setupPostgres(t)
	f := newFixture(NewPostgresStore(pool), "a1b2c3")
	ctx := context.Background()

	f.clock.Set("2024-01-01T00:00:00Z")
	confirmIntent(t, f, "report.pdf")

	f.clock.Set("2024-01-01T00:59:00Z")
	if _, err := f.registry.Resolve(ctx, "a1b2c3"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	f.clock.Set("2024-01-01T01:00:01Z")
	if _, err := f.registry.Resolve(ctx, "a1b2c3"); !errors.Is(err, ErrExpired) {
		t.Fatalf("err = %v, want ErrExpired", err)
	}

	if _, err := pool.Exec(ctx, `INSERT INTO shares VALUES ('bad', 'bad_x', 'garbage')`); err != nil {
		t.Fatalf("insert malformed: %v", err)
	}
	if _, err := f.registry.Resolve(ctx, "bad"); !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("err = %v, want ErrInvalidTimestamp", err)
	}
}
