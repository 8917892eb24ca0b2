// Package testhelper provides PostgreSQL fixtures for repository tests.
package testhelper

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/phonebook/internal/adapter/postgres"
)

const templateDB = "phonebook_template"

var (
	once    sync.Once
	baseDSN string
	initErr error

	// createMu serializes CREATE DATABASE ... TEMPLATE across parallel tests.
	createMu sync.Mutex
)

// SetupTestDB starts a shared PostgreSQL container (once for the entire test run)
// with a migrated template database, then creates a fresh database from that
// template for the calling test. Contact ids are sequential, so tests cannot
// share tables the way uuid-keyed rows could.
// The pool is closed and the database dropped via t.Cleanup.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	once.Do(func() {
		baseDSN, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("testhelper: failed to setup test DB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := "test_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	createMu.Lock()
	err := adminExec(ctx, fmt.Sprintf("CREATE DATABASE %s TEMPLATE %s", name, templateDB))
	createMu.Unlock()
	if err != nil {
		t.Fatalf("testhelper: create database %s: %v", name, err)
	}

	pool, err := pgxpool.New(ctx, dsnFor(name))
	if err != nil {
		t.Fatalf("testhelper: failed to create pgxpool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer dropCancel()
		_ = adminExec(dropCtx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", name))
	})

	return pool
}

func startContainerAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	base := fmt.Sprintf("postgres://testuser:testpass@%s:%s", host, port.Port())
	baseDSN = base

	if err := adminExec(ctx, "CREATE DATABASE "+templateDB); err != nil {
		return "", fmt.Errorf("create template database: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsnFor(templateDB))
	if err != nil {
		return "", fmt.Errorf("connect template database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return "", fmt.Errorf("migrate template database: %w", err)
	}

	return base, nil
}

func dsnFor(database string) string {
	return fmt.Sprintf("%s/%s?sslmode=disable", baseDSN, database)
}

// adminExec runs a statement against the maintenance database. CREATE
// DATABASE ... TEMPLATE needs the template to have no open connections, so
// every call uses a short-lived connection.
func adminExec(ctx context.Context, stmt string) error {
	conn, err := pgx.Connect(ctx, dsnFor("testdb"))
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, stmt)
	return err
}
