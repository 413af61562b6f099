package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"snip/internal/config"
)

// Store manages export-job persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewJob inserts a pending job for the given source and range and returns it.
func (s *Store) NewJob(ctx context.Context, sourceName string, sourceBytes int64, startSeconds, endSeconds float64) (*Job, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	id := uuid.NewString()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO export_jobs (
            id, source_name, source_bytes, start_seconds, end_seconds,
            status, progress_percent, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		sourceName,
		sourceBytes,
		startSeconds,
		endSeconds,
		StatusPending,
		0,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return s.GetByID(ctx, id)
}

// UpdateStatus moves a job to the given lifecycle status.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.update(ctx, id,
		"UPDATE export_jobs SET status = ?, updated_at = ? WHERE id = ?",
		string(status), now(), id)
}

// UpdateProgress persists the latest progress snapshot for a job.
func (s *Store) UpdateProgress(ctx context.Context, id string, percent int, stage, message string) error {
	return s.update(ctx, id,
		"UPDATE export_jobs SET progress_percent = ?, progress_stage = ?, progress_message = ?, updated_at = ? WHERE id = ?",
		percent, nullableString(stage), nullableString(message), now(), id)
}

// Finish records a job's terminal outcome.
func (s *Store) Finish(ctx context.Context, id string, status Status, errorMessage, artifactName string) error {
	if !status.Terminal() {
		return fmt.Errorf("status %q is not terminal", status)
	}
	return s.update(ctx, id,
		"UPDATE export_jobs SET status = ?, error_message = ?, artifact_name = ?, updated_at = ? WHERE id = ?",
		string(status), nullableString(errorMessage), nullableString(artifactName), now(), id)
}

// GetByID fetches a single job.
func (s *Store) GetByID(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, selectJobSQL+" WHERE id = ?", id)
	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return job, nil
}

// List returns jobs ordered newest first, optionally limited.
func (s *Store) List(ctx context.Context, limit int) ([]*Job, error) {
	query := selectJobSQL + " ORDER BY created_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Clear removes terminal jobs; when all is true every row is removed.
func (s *Store) Clear(ctx context.Context, all bool) (int64, error) {
	query := "DELETE FROM export_jobs WHERE status IN (?, ?, ?)"
	args := []any{string(StatusCompleted), string(StatusFailed), string(StatusRejected)}
	if all {
		query = "DELETE FROM export_jobs"
		args = nil
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear jobs: %w", err)
	}
	return res.RowsAffected()
}

const selectJobSQL = `SELECT
    id, source_name, source_bytes, start_seconds, end_seconds,
    status, progress_percent, progress_stage, progress_message,
    error_message, artifact_name, created_at, updated_at
FROM export_jobs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var (
		job             Job
		status          string
		stage, message  sql.NullString
		errMsg, artName sql.NullString
		created, upd    string
	)
	err := row.Scan(
		&job.ID, &job.SourceName, &job.SourceBytes, &job.StartSeconds, &job.EndSeconds,
		&status, &job.ProgressPercent, &stage, &message,
		&errMsg, &artName, &created, &upd,
	)
	if err != nil {
		return nil, err
	}
	job.Status = Status(status)
	job.ProgressStage = stage.String
	job.ProgressMessage = message.String
	job.ErrorMessage = errMsg.String
	job.ArtifactName = artName.String
	if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
		job.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, upd); err == nil {
		job.UpdatedAt = ts
	}
	return &job, nil
}

func (s *Store) update(ctx context.Context, id, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update job %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("job %s not found", id)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
