// Package testutil provides a throwaway PostgreSQL database for integration
// tests that execute rendered DDL.
//
// A single postgres:18-alpine container is started lazily per test binary
// and every EmptyDB call creates its own database inside it. Set
// DATABASE_URL to use an existing server instead.
package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Singleton container state
var (
	singletonOnce sync.Once
	singletonDSN  string
	singletonErr  error
)

// ensureSingleton lazily initializes the singleton PostgreSQL container.
// Safe for concurrent access via sync.Once.
func ensureSingleton() (string, error) {
	singletonOnce.Do(func() {
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			singletonDSN = dsn
			return
		}

		ctx := context.Background()
		container, err := postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("postgres"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			testcontainers.WithEnv(map[string]string{
				"POSTGRES_INITDB_ARGS": "--auth-host=trust",
			}),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			singletonErr = fmt.Errorf("failed to start PostgreSQL container: %w", err)
			return
		}

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			_ = container.Terminate(ctx)
			singletonErr = fmt.Errorf("failed to get PostgreSQL connection string: %w", err)
			return
		}

		singletonDSN = dsn
		// Container is not stored - ryuk will handle cleanup automatically
	})

	return singletonDSN, singletonErr
}

// EmptyDB returns a connection to a new, empty database.
// The database is dropped when the test completes.
// Works with both *testing.T and *testing.B.
func EmptyDB(tb testing.TB) *sql.DB {
	tb.Helper()

	adminDSN, err := ensureSingleton()
	require.NoError(tb, err, "failed to start PostgreSQL container")

	dbName := uniqueDBName("pgddl")
	require.NoError(tb, createDatabase(adminDSN, dbName), "failed to create empty database")

	db, err := sql.Open("pgx", replaceDBName(adminDSN, dbName))
	require.NoError(tb, err, "failed to connect to empty database")
	require.NoError(tb, db.Ping(), "failed to ping empty database")

	registerCleanup(tb, db, adminDSN, dbName)
	return db
}

// ExecAll runs statements in order, failing the test on the first error.
func ExecAll(tb testing.TB, db *sql.DB, statements ...string) {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for i, stmt := range statements {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(tb, err, "statement %d: %s", i, stmt)
	}
}

// registerCleanup registers cleanup for the database connection and database itself.
// Cleanup runs in a goroutine to not block the test.
func registerCleanup(tb testing.TB, db *sql.DB, adminDSN, dbName string) {
	tb.Cleanup(func() {
		_ = db.Close()

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = dropDatabase(ctx, adminDSN, dbName)
		}()
	})
}

// uniqueDBName generates a unique database name with the given prefix.
func uniqueDBName(prefix string) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b))
}

// createDatabase creates a new empty database.
func createDatabase(adminDSN, name string) error {
	db, err := sql.Open("pgx", adminDSN)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	_, err = db.Exec("CREATE DATABASE " + pgx.Identifier{name}.Sanitize())
	return err
}

// dropDatabase drops a database.
func dropDatabase(ctx context.Context, adminDSN, name string) error {
	db, err := sql.Open("pgx", adminDSN)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	// Force disconnect all users
	_, _ = db.ExecContext(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()
	`, name)

	_, err = db.ExecContext(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{name}.Sanitize())
	return err
}

// replaceDBName replaces the database name in a PostgreSQL URL DSN.
func replaceDBName(dsn, newDB string) string {
	query := ""
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		dsn, query = dsn[:i], dsn[i:]
	}
	// Skip the scheme's "//" so a DSN without a path still gets one.
	if i := strings.LastIndexByte(dsn, '/'); i > strings.Index(dsn, "//")+1 {
		dsn = dsn[:i]
	}
	return dsn + "/" + newDB + query
}
