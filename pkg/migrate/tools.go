package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
)

var migrationNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

const sqlTemplate = `-- +goose Up
-- +goose StatementBegin
SELECT 'up SQL query';
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
SELECT 'down SQL query';
-- +goose StatementEnd
`

// CreateSQLMigration writes an empty timestamped migration file into dir.
func CreateSQLMigration(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if !migrationNamePattern.MatchString(name) {
		return "", fmt.Errorf("migration name must match %s", migrationNamePattern)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating migrations dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.sql", time.Now().UTC().Format("20060102150405"), name)
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(sqlTemplate), 0o644); err != nil {
		return "", fmt.Errorf("writing migration file: %w", err)
	}
	return path, nil
}

// ValidateDir checks that every migration in dir parses.
func ValidateDir(dir string) error {
	if _, err := goose.CollectMigrations(dir, 0, math.MaxInt64); err != nil {
		return fmt.Errorf("collecting migrations: %w", err)
	}
	return nil
}

// MigrateToVersion migrates up to the given goose version.
func MigrateToVersion(ctx context.Context, db *sql.DB, dir, version string) error {
	target, err := strconv.ParseInt(version, 10, 64)
	if err != nil {
		return fmt.Errorf("parsing target version: %w", err)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpToContext(ctx, db, dir, target); err != nil {
		return fmt.Errorf("goose up-to %d: %w", target, err)
	}
	return nil
}
