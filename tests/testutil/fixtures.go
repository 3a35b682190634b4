package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/gestionbanque/bankcore/internal/domain"
	"github.com/gestionbanque/bankcore/internal/infrastructure/postgres"
)

// TestDB provides isolated test database connections. Integration tests
// are skipped unless TEST_DATABASE_URL is set.
type TestDB struct {
	Pool *pgxpool.Pool
	t    *testing.T
}

// NewTestDB connects to the integration test database, running
// migrations first. Skips the calling test when TEST_DATABASE_URL is
// not set.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	migrationsPath := "../../migrations"
	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		migrationsPath = "migrations"
	}

	if err := postgres.RunMigrations(dbURL, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return &TestDB{Pool: pool, t: t}
}

// Cleanup closes the database connection.
func (db *TestDB) Cleanup() {
	db.Pool.Close()
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE transactions CASCADE;
		TRUNCATE TABLE accounts CASCADE;
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// CreateTestAccount inserts an account with the given opening balance.
func (db *TestDB) CreateTestAccount(ctx context.Context, number, holder string, opening decimal.Decimal) *domain.Account {
	db.t.Helper()

	now := time.Now().UTC()
	id := ulid.Make().String()

	var balance pgtype.Numeric
	_ = balance.Scan(opening.String())

	ts := pgtype.Timestamptz{Time: now, Valid: true}

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO accounts (id, account_number, holder_name, balance, opening_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, number, holder, balance, balance, ts, ts,
	)
	if err != nil {
		db.t.Fatalf("failed to create test account: %v", err)
	}

	return &domain.Account{
		ID:             id,
		AccountNumber:  number,
		HolderName:     holder,
		Balance:        opening,
		OpeningBalance: opening,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// TransactionCount returns the number of recorded transactions for an account.
func (db *TestDB) TransactionCount(ctx context.Context, accountID string) int {
	db.t.Helper()

	var count int
	if err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE account_id = $1`, accountID,
	).Scan(&count); err != nil {
		db.t.Fatalf("failed to count transactions: %v", err)
	}

	return count
}
