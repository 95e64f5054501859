package database

import (
	"database/sql"
	"fmt"

	"github.com/username/ibportal/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

const schema = `
	CREATE TABLE IF NOT EXISTS account_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		ib_type TEXT,
		usd_per_lot REAL NOT NULL DEFAULT 0,
		spread_share_percentage REAL NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS instruments (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS commission_levels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		level INTEGER NOT NULL,
		structure_name TEXT NOT NULL,
		usd_per_lot REAL NOT NULL DEFAULT 0,
		spread_share_percentage REAL NOT NULL DEFAULT 0
	);
	`

// InitDB opens the database at databasePath, stores it in DB and makes sure
// the catalog tables exist.
func InitDB(databasePath string) error {
	db, err := Open(databasePath)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open opens a sqlite database and applies the schema and migrations.
func Open(databasePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", databasePath, err)
	}

	logger.L.Info("Checking database migrations", "databasePath", databasePath)
	if err := migrateAccountTypes(db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		logger.L.Error("failed to create tables", "error", err)
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	logger.L.Info("Database tables ensured/created.")
	return db, nil
}

// migrateAccountTypes adds columns introduced after the first release to an
// existing account_types table.
func migrateAccountTypes(db *sql.DB) error {
	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='account_types'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.L.Info("'account_types' table does not exist, no migration needed as table will be created.")
			return nil
		}
		return fmt.Errorf("error checking for 'account_types' table: %w", err)
	}

	rows, err := db.Query("PRAGMA table_info(account_types)")
	if err != nil {
		return fmt.Errorf("error querying table schema for 'account_types': %w", err)
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			return fmt.Errorf("error scanning column info for 'account_types': %w", err)
		}
		columnExists[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating over column info for 'account_types': %w", err)
	}

	migrations := []struct {
		column string
		ddl    string
	}{
		{"ib_type", "ALTER TABLE account_types ADD COLUMN ib_type TEXT"},
		{"position", "ALTER TABLE account_types ADD COLUMN position INTEGER NOT NULL DEFAULT 0"},
		{"updated_at", "ALTER TABLE account_types ADD COLUMN updated_at TIMESTAMP"},
	}
	for _, m := range migrations {
		if columnExists[m.column] {
			continue
		}
		if _, err := db.Exec(m.ddl); err != nil {
			logger.L.Error("Error adding column to 'account_types' table", "column", m.column, "error", err)
			return fmt.Errorf("error adding '%s' column: %w", m.column, err)
		}
		logger.L.Info("Added column to 'account_types' table", "column", m.column)
	}
	return nil
}
