package test_utils

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/clinicadobicho/clinicadobicho/internal/config"
	"github.com/clinicadobicho/clinicadobicho/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestWithDB starts a disposable Postgres container, applies all migrations,
// and returns an open connection. The container is terminated when the test
// finishes.
func TestWithDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := preparePostgresContainer()
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			log.Errorf("failed to terminate container: %v", err)
		}
	})

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432/tcp")

	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   "test_clinica",
		Pass:   "test_clinica",
		Name:   "clinica",
		Schema: "clinica",
	}

	if err := database.Migrate(cfg); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("failed to open database connection: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func preparePostgresContainer() (*postgres.PostgresContainer, error) {
	ctx := context.Background()

	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %v", err)
	}

	return postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithInitScripts(filepath.Join(projectRoot, "dev", "init.sql")),
		postgres.WithDatabase("clinica"),
		postgres.WithUsername("test_clinica"),
		postgres.WithPassword("test_clinica"),
		postgres.BasicWaitStrategies(),
	)
}

// findProjectRoot attempts to locate the project root directory
// It looks for .git directory or go.mod file
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
