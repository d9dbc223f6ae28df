package sync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrNoRuns = errors.New("no sync runs recorded")

type Repository interface {
	StoreRun(ctx context.Context, run Run) error
	LastRun(ctx context.Context) (Run, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const runColumns = "id, started_at, finished_at, status, time_groups, organizations, employees, error"

func (r *RepositoryImpl) StoreRun(ctx context.Context, run Run) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sync_run ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		string(run.Status),
		run.TimeGroups,
		run.Organizations,
		run.Employees,
		run.Error,
	)
	if err != nil {
		log.Errorf("Failed to store sync run: %v", err)
		return fmt.Errorf("failed to store sync run: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) LastRun(ctx context.Context) (Run, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+runColumns+" FROM sync_run ORDER BY started_at DESC LIMIT 1")

	var (
		run        Run
		startedAt  string
		finishedAt string
		status     string
	)
	err := row.Scan(&run.ID, &startedAt, &finishedAt, &status,
		&run.TimeGroups, &run.Organizations, &run.Employees, &run.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		log.Errorf("Failed to load last sync run: %v", err)
		return Run{}, fmt.Errorf("failed to load last sync run: %w", err)
	}
	run.Status = RunStatus(status)
	run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("failed to decode sync run: %w", err)
	}
	run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt)
	if err != nil {
		return Run{}, fmt.Errorf("failed to decode sync run: %w", err)
	}
	return run, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
