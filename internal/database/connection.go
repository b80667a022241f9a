package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported DB_TYPE values.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// ErrNotFound is returned by explicit update/delete operations when the
// addressed record does not exist.
var ErrNotFound = errors.New("record not found")

// Connect opens a database of the given type and initializes the schema.
// For sqlite the dsn is a file path (its directory is created) or ":memory:".
func Connect(dbType, dsn string) (*sqlx.DB, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}

	if driver == "sqlite3" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers; a single connection also
		// keeps ":memory:" databases shared across queries.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := InitializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func driverName(dbType string) (string, error) {
	switch strings.ToLower(dbType) {
	case "", TypeSQLite, "sqlite3":
		return "sqlite3", nil
	case TypePostgres, "postgresql":
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

// InitializeSchema creates the tables if they don't exist.
func InitializeSchema(db *sqlx.DB) error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	tables := []struct {
		name string
		ddl  string
	}{
		{"user_progress", `
			CREATE TABLE IF NOT EXISTS user_progress (
				id %s,
				session_id TEXT NOT NULL,
				slot_key TEXT NOT NULL,
				learned_payload TEXT,
				stats_payload TEXT,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL,
				UNIQUE(session_id, slot_key)
			)`},
		{"ai_info", `
			CREATE TABLE IF NOT EXISTS ai_info (
				id %s,
				date TEXT NOT NULL,
				item_index INTEGER NOT NULL,
				title TEXT NOT NULL,
				content TEXT NOT NULL,
				terms TEXT NOT NULL DEFAULT '[]',
				created_at TIMESTAMP NOT NULL,
				UNIQUE(date, item_index)
			)`},
		{"quiz", `
			CREATE TABLE IF NOT EXISTS quiz (
				id %s,
				topic TEXT NOT NULL,
				question TEXT NOT NULL,
				option1 TEXT NOT NULL,
				option2 TEXT NOT NULL,
				option3 TEXT NOT NULL,
				option4 TEXT NOT NULL,
				correct INTEGER NOT NULL,
				explanation TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP NOT NULL
			)`},
		{PromptTable, `
			CREATE TABLE IF NOT EXISTS prompt (
				id %s,
				title TEXT NOT NULL,
				content TEXT NOT NULL,
				category TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL
			)`},
		{BaseContentTable, `
			CREATE TABLE IF NOT EXISTS base_content (
				id %s,
				title TEXT NOT NULL,
				content TEXT NOT NULL,
				category TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL
			)`},
		{"term", `
			CREATE TABLE IF NOT EXISTS term (
				id %s,
				term TEXT NOT NULL UNIQUE,
				description TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL
			)`},
	}

	for _, t := range tables {
		if _, err := db.Exec(fmt.Sprintf(t.ddl, idColumn)); err != nil {
			return fmt.Errorf("failed to create %s table: %w", t.name, err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_user_progress_session ON user_progress(session_id)",
		"CREATE INDEX IF NOT EXISTS idx_quiz_topic ON quiz(topic)",
	}
	for _, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// likePrefix escapes LIKE wildcards in prefix and appends '%'. Slot keys
// contain '_', which LIKE would otherwise treat as a wildcard.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
