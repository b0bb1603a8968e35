package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection using DB_TYPE: "postgres" connects to
// DATABASE_URL, anything else opens a local sqlite file.
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		return Open("postgres", dsn)
	}

	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}
	return Open("sqlite3", filepath.Join(dataDir, "vocabbot.db"))
}

// Open connects with an explicit driver and DSN and bootstraps the schema.
func Open(driver, dsn string) error {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// isPostgres reports which query dialect the open connection speaks.
func isPostgres() bool {
	return DB.DriverName() == "postgres"
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if isPostgres() {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	_, err := DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS vocabularies (
			id %s,
			word TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'GENERAL',
			total_attempts INTEGER NOT NULL DEFAULT 0,
			correct_attempts INTEGER NOT NULL DEFAULT 0,
			memory_score REAL NOT NULL DEFAULT 0,
			last10_attempts TEXT NOT NULL DEFAULT '',
			last_studied_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(word, category)
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create vocabularies table: %v", err)
	}

	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS examples (
			id %s,
			vocabulary_id INTEGER NOT NULL,
			sentences TEXT NOT NULL,
			vietnamese TEXT NOT NULL DEFAULT '',
			grammar TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (vocabulary_id) REFERENCES vocabularies(id) ON DELETE CASCADE
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create examples table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS queue_state (
			category TEXT PRIMARY KEY,
			item_ids TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create queue_state table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS progress_state (
			id INTEGER PRIMARY KEY,
			session_start TIMESTAMP NOT NULL,
			words_learned INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create progress_state table: %v", err)
	}

	return nil
}
