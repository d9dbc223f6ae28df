package timeentry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("time entry not found")

type Repository interface {
	Store(ctx context.Context, entry TimeEntry) (int64, error)
	Update(ctx context.Context, entry TimeEntry) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (TimeEntry, error)
	GetAll(ctx context.Context) ([]TimeEntry, error)
	// GetFinishedBetween returns finished entries starting within [from, to).
	GetFinishedBetween(ctx context.Context, from, to time.Time) ([]TimeEntry, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const entryColumns = "id, employee_ref, description, start_time, end_time, time_group_ref"

func (r *RepositoryImpl) Store(ctx context.Context, entry TimeEntry) (int64, error) {
	query := `INSERT INTO time_entry (employee_ref, description, start_time, end_time, time_group_ref)
				VALUES (?, ?, ?, ?, ?)`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		entry.Employee,
		entry.Description,
		formatTime(entry.Start),
		formatTimePtr(entry.End),
		entry.TimeGroup,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return lastInsertID, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, entry TimeEntry) (bool, error) {
	query := `UPDATE time_entry SET
				  employee_ref = ?,
				  description = ?,
				  start_time = ?,
				  end_time = ?,
				  time_group_ref = ?
			  WHERE id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		entry.Employee,
		entry.Description,
		formatTime(entry.Start),
		formatTimePtr(entry.End),
		entry.TimeGroup,
		entry.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM time_entry WHERE id = ?", id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) FindByID(ctx context.Context, id int64) (TimeEntry, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM time_entry WHERE id = ?", entryColumns), id)
	entry, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TimeEntry{}, ErrNotFound
		}
		err := fmt.Errorf("could not find time entry: %w", err)
		log.Error(err)
		return TimeEntry{}, err
	}
	return entry, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]TimeEntry, error) {
	return r.query(ctx,
		fmt.Sprintf("SELECT %s FROM time_entry ORDER BY start_time", entryColumns))
}

func (r *RepositoryImpl) GetFinishedBetween(ctx context.Context, from, to time.Time) ([]TimeEntry, error) {
	return r.query(ctx,
		fmt.Sprintf(`SELECT %s FROM time_entry
				WHERE end_time IS NOT NULL AND start_time >= ? AND start_time < ?
				ORDER BY start_time`, entryColumns),
		formatTime(from), formatTime(to))
}

func (r *RepositoryImpl) query(ctx context.Context, query string, args ...any) ([]TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query time entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan time entry: %w", err)
			log.Error(err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return entries, nil
}

func scanEntry(scan func(...any) error) (TimeEntry, error) {
	var entry TimeEntry
	var start string
	var end sql.NullString
	if err := scan(&entry.ID, &entry.Employee, &entry.Description, &start, &end, &entry.TimeGroup); err != nil {
		return TimeEntry{}, err
	}

	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("could not parse start time: %w", err)
	}
	entry.Start = startTime

	if end.Valid {
		endTime, err := time.Parse(time.RFC3339, end.String)
		if err != nil {
			return TimeEntry{}, fmt.Errorf("could not parse end time: %w", err)
		}
		entry.End = &endTime
	}
	return entry, nil
}

// formatTime normalizes to UTC so that lexical comparison of the stored
// strings matches chronological order.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}
