package test_utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/venuecal/venuecal/internal/config"
	"github.com/venuecal/venuecal/internal/database"
)

const (
	testDbName     = "venuecal"
	testDbUser     = "test_venuecal"
	testDbPassword = "test_venuecal"
	testDbSchema   = "venuecal"
)

func preparePostgresContainer(ctx context.Context) (*postgres.PostgresContainer, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}

	pgContainer, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithInitScripts(filepath.Join(projectRoot, "dev", "init.sql")),
		postgres.WithDatabase(testDbName),
		postgres.WithUsername(testDbUser),
		postgres.WithPassword(testDbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Errorf("failed to start container: %s", err)
		return nil, err
	}
	return pgContainer, nil
}

// TestWithDB starts a Postgres container, applies all migrations and snapshots the result.
// The returned function opens a new pool; tests restore the snapshot when they are done.
func TestWithDB() (*postgres.PostgresContainer, func() *pgxpool.Pool) {
	ctx := context.Background()

	container, err := preparePostgresContainer(ctx)
	if err != nil {
		log.Errorf("Failed to start postgres container: %v", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to read container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("Failed to read container port: %v", err)
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   testDbUser,
		Pass:   testDbPassword,
		Name:   testDbName,
		Schema: testDbSchema,
	}

	if err := database.Migrate(cfg); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Postgres cannot snapshot the database it is connected to, so the snapshot is taken
	// before any pool is opened.
	if err := container.Snapshot(ctx, postgres.WithSnapshotName("postgres-test-snapshot")); err != nil {
		log.Fatalf("Failed to snapshot postgres container: %v", err)
	}

	return container, func() *pgxpool.Pool {
		db, err := database.Open(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to open database connection: %v", err)
		}
		return db
	}
}

// findProjectRoot walks up from the working directory until it finds go.mod or .git.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if fileExists(filepath.Join(dir, ".git")) || fileExists(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root")
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
