package storage

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// Foreign keys and the busy timeout are set through the DSN so every pooled
// connection gets them, not only the first one.
func New(path string) (*sql.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
//
// Timestamps are stored as Unix nanoseconds so transcript ordering is exact.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS cases (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			is_active INTEGER NOT NULL DEFAULT 1,
			document_count INTEGER NOT NULL DEFAULT 0 CHECK (document_count >= 0),
			total_size INTEGER NOT NULL DEFAULT 0 CHECK (total_size >= 0),
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_cases_owner ON cases (owner_id, is_active);`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			case_id TEXT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			size_bytes INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			last_modified_at INTEGER NOT NULL,
			FOREIGN KEY (case_id) REFERENCES cases(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents (owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_case ON documents (case_id);`,
		`CREATE TABLE IF NOT EXISTS case_messages (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			case_id TEXT NOT NULL,
			author_id TEXT NOT NULL,
			content TEXT NOT NULL,
			is_ai INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (case_id) REFERENCES cases(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_case_messages_case ON case_messages (case_id, created_at, seq);`,
		`CREATE TABLE IF NOT EXISTS files (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			case_id TEXT,
			storage_key TEXT NOT NULL,
			mime_type TEXT NOT NULL,
			name TEXT NOT NULL,
			size_bytes INTEGER NOT NULL,
			extracted_text TEXT,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (case_id) REFERENCES cases(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_files_owner ON files (owner_id);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nullString maps a nullable column to *string.
func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
