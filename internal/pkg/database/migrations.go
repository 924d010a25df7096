package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
)

// RunMigrations applies the schema migrations in order. Each migration file
// runs in its own transaction.
func RunMigrations(db *sqlx.DB) error {
	migrations := []string{
		"migrations/000001_create_categories_table.up.sql",
		"migrations/000002_create_products_table.up.sql",
		"migrations/000003_create_reviews_table.up.sql",
		"migrations/000004_add_catalog_indexes.up.sql",
	}

	for _, path := range migrations {
		sql, err := os.ReadFile(path)
		if err != nil {
			absPath, _ := filepath.Abs(path)
			return fmt.Errorf("failed to read migration %s (absolute: %s): %w", path, absPath, err)
		}

		if err := executeMigration(db, path, string(sql)); err != nil {
			return fmt.Errorf("migration %s failed: %w", path, err)
		}
	}

	return nil
}

func executeMigration(db *sqlx.DB, name, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return fmt.Errorf("migration %s is empty", name)
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(sql); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
