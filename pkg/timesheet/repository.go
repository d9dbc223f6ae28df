package timesheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
)

var ErrNotFound = errors.New("timesheet draft not found")

type Repository interface {
	Store(ctx context.Context, draft Draft) error
	Update(ctx context.Context, draft Draft) error
	GetAll(ctx context.Context) ([]Draft, error)
	FindByID(ctx context.Context, id string) (Draft, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const draftColumns = "id, status, created_at, submitted_at, sheet_ref, sheet_number, sheet"

func (r *RepositoryImpl) Store(ctx context.Context, draft Draft) error {
	sheet, err := json.Marshal(draft.Sheet)
	if err != nil {
		return fmt.Errorf("failed to encode timesheet: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO timesheet_draft ("+draftColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		draft.ID,
		string(draft.Status),
		formatTime(draft.CreatedAt),
		formatTimePtr(draft.SubmittedAt),
		string(draft.Ref),
		draft.Number,
		sheet,
	)
	if err != nil {
		log.Errorf("Failed to store timesheet draft: %v", err)
		return fmt.Errorf("failed to store timesheet draft: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) Update(ctx context.Context, draft Draft) error {
	sheet, err := json.Marshal(draft.Sheet)
	if err != nil {
		return fmt.Errorf("failed to encode timesheet: %w", err)
	}
	result, err := r.db.ExecContext(ctx,
		"UPDATE timesheet_draft SET status = ?, submitted_at = ?, sheet_ref = ?, sheet_number = ?, sheet = ? WHERE id = ?",
		string(draft.Status),
		formatTimePtr(draft.SubmittedAt),
		string(draft.Ref),
		draft.Number,
		sheet,
		draft.ID,
	)
	if err != nil {
		log.Errorf("Failed to update timesheet draft: %v", err)
		return fmt.Errorf("failed to update timesheet draft: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update timesheet draft: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Draft, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+draftColumns+" FROM timesheet_draft ORDER BY created_at DESC")
	if err != nil {
		log.Errorf("Failed to list timesheet drafts: %v", err)
		return nil, fmt.Errorf("failed to list timesheet drafts: %w", err)
	}
	defer rows.Close()

	var drafts []Draft
	for rows.Next() {
		draft, err := scanDraft(rows.Scan)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, rows.Err()
}

func (r *RepositoryImpl) FindByID(ctx context.Context, id string) (Draft, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+draftColumns+" FROM timesheet_draft WHERE id = ?", id)
	draft, err := scanDraft(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, ErrNotFound
	}
	if err != nil {
		log.Errorf("Failed to find timesheet draft: %v", err)
		return Draft{}, fmt.Errorf("failed to find timesheet draft: %w", err)
	}
	return draft, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM timesheet_draft WHERE id = ?", id)
	if err != nil {
		log.Errorf("Failed to delete timesheet draft: %v", err)
		return false, fmt.Errorf("failed to delete timesheet draft: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete timesheet draft: %w", err)
	}
	return affected > 0, nil
}

func scanDraft(scan func(dest ...any) error) (Draft, error) {
	var (
		draft       Draft
		status      string
		createdAt   string
		submittedAt sql.NullString
		ref         string
		sheet       []byte
	)
	err := scan(&draft.ID, &status, &createdAt, &submittedAt, &ref, &draft.Number, &sheet)
	if err != nil {
		return Draft{}, err
	}
	draft.Status = Status(status)
	draft.Ref = odata.Ref(ref)
	draft.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to decode timesheet draft: %w", err)
	}
	if submittedAt.Valid {
		t, err := time.Parse(time.RFC3339, submittedAt.String)
		if err != nil {
			return Draft{}, fmt.Errorf("failed to decode timesheet draft: %w", err)
		}
		draft.SubmittedAt = &t
	}
	if err := json.Unmarshal(sheet, &draft.Sheet); err != nil {
		return Draft{}, fmt.Errorf("failed to decode timesheet: %w", err)
	}
	return draft, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}
