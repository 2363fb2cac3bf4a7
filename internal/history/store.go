// Package history persists per-run summaries in PostgreSQL for the web
// dashboard's run listing. Only counters and metadata are stored, never
// record contents or replacement mappings.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Config contains database configuration
type Config struct {
	DatabaseURL  string        `yaml:"database_url" mapstructure:"database_url"`
	MaxOpenConns int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnLifetime time.Duration `yaml:"conn_lifetime" mapstructure:"conn_lifetime"`
}

// Run is one persisted sanitization run summary.
type Run struct {
	ID               string        `db:"id" json:"id"`
	Filename         string        `db:"filename" json:"filename"`
	Success          bool          `db:"success" json:"success"`
	RecordsProcessed int           `db:"records_processed" json:"records_processed"`
	FieldsDetected   int           `db:"fields_detected" json:"pii_fields_detected"`
	ReplacementsMade int           `db:"replacements_made" json:"pii_replacements_made"`
	ErrorMessage     string        `db:"error_message" json:"error_message,omitempty"`
	Duration         time.Duration `db:"duration_ns" json:"duration_ns"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS sanitization_runs (
	id                TEXT PRIMARY KEY,
	filename          TEXT NOT NULL,
	success           BOOLEAN NOT NULL,
	records_processed INTEGER NOT NULL,
	fields_detected   INTEGER NOT NULL,
	replacements_made INTEGER NOT NULL,
	error_message     TEXT NOT NULL DEFAULT '',
	duration_ns       BIGINT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store handles run-history persistence.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewStore connects to the database and ensures the schema exists.
func NewStore(config *Config, logger *zap.Logger) (*Store, error) {
	db, err := sqlx.Connect("postgres", config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnLifetime)

	store := &Store{db: db, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := store.initialize(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	logger.Info("Run history store initialized",
		zap.Int("max_open_conns", config.MaxOpenConns),
	)

	return store, nil
}

func (s *Store) initialize(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	return nil
}

// Insert records one run summary.
func (s *Store) Insert(ctx context.Context, run *Run) error {
	query := `
		INSERT INTO sanitization_runs
			(id, filename, success, records_processed, fields_detected,
			 replacements_made, error_message, duration_ns)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := s.db.QueryRowContext(ctx, query,
		run.ID,
		run.Filename,
		run.Success,
		run.RecordsProcessed,
		run.FieldsDetected,
		run.ReplacementsMade,
		run.ErrorMessage,
		int64(run.Duration),
	).Scan(&run.CreatedAt)

	if err != nil {
		s.logger.Error("Failed to insert run",
			zap.Error(err),
			zap.String("run_id", run.ID))
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	var runs []Run
	query := `
		SELECT id, filename, success, records_processed, fields_detected,
		       replacements_made, error_message, duration_ns, created_at
		FROM sanitization_runs
		ORDER BY created_at DESC
		LIMIT $1`

	if err := s.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run by ID.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	query := `
		SELECT id, filename, success, records_processed, fields_detected,
		       replacements_made, error_message, duration_ns, created_at
		FROM sanitization_runs
		WHERE id = $1`

	if err := s.db.GetContext(ctx, &run, query, id); err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return &run, nil
}

// Close releases the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
