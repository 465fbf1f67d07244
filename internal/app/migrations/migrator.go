package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/hallsphere/internal/pkg/logger"
)

// Migrator applies the SQL files under the migrations directory in
// lexical order, tracking applied versions in schema_migrations. Each
// file runs in its own transaction together with its version record.
type Migrator struct {
	db *pgxpool.Pool
}

// NewMigrator creates a new Migrator
func NewMigrator(db *pgxpool.Pool) *Migrator {
	return &Migrator{db: db}
}

// MigrateFromDirectory applies every .sql file in dirPath that has not
// been applied yet.
func (m *Migrator) MigrateFromDirectory(dirPath string) error {
	ctx := context.Background()

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if err := m.ensureVersionTable(ctx); err != nil {
		return err
	}

	for _, name := range names {
		if err := m.applyFile(ctx, filepath.Join(dirPath, name)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}

	return nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// applyFile runs a single migration file inside a transaction. The
// version is the filename prefix before the first underscore.
func (m *Migrator) applyFile(ctx context.Context, path string) error {
	name := filepath.Base(path)
	version := strings.SplitN(name, "_", 2)[0]

	var applied bool
	err := m.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&applied)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if applied {
		logger.Debug().Str("file", name).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("migration execution failed: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info().Str("file", name).Msg("Migration applied")
	return nil
}
