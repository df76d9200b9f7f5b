package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
	Driver string
}

// New opens the round journal database for driver ("sqlite3" or "postgres")
// and applies the schema.
func New(driver, dsn string) (*DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite3" {
		// in-memory sqlite databases live only as long as their connection
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &DB{DB: db, Driver: driver}, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS rounds (
		round_id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		round_no INTEGER NOT NULL,
		wager INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		payout INTEGER NOT NULL,
		player_cards TEXT NOT NULL,
		dealer_cards TEXT NOT NULL,
		player_score INTEGER NOT NULL,
		dealer_score INTEGER NOT NULL,
		balance INTEGER NOT NULL,
		settled_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id, round_no);
	`

	_, err := db.Exec(schema)
	return err
}
