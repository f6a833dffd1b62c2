package postgres

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
	CREATE TABLE IF NOT EXISTS nlu_utterances (
		id                VARCHAR(26) PRIMARY KEY,
		request_id        VARCHAR(64) NOT NULL,
		turn              VARCHAR(16) NOT NULL,
		message           TEXT NOT NULL,
		intent            VARCHAR(64) NOT NULL,
		confidence        DOUBLE PRECISION NOT NULL DEFAULT 0,
		source            VARCHAR(32) NOT NULL DEFAULT '',
		slots             JSONB NOT NULL,
		missing_slots     JSONB NOT NULL,
		followup_question TEXT,
		created_at        TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_nlu_utterances_created_at ON nlu_utterances (created_at DESC);
`

// Enabled reports whether a database was configured at all; the utterance log is optional.
func Enabled() bool {
	return os.Getenv("DB_HOST") != ""
}

func New() (*sqlx.DB, error) {
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		port,
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		sslMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}
