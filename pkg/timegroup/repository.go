package timegroup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("time group not found")

type Repository interface {
	// ReplaceAll swaps the cached catalog for the given one in a single
	// transaction.
	ReplaceAll(ctx context.Context, timeGroups []TimeGroup) error
	GetAll(ctx context.Context) ([]TimeGroup, error)
	FindByRef(ctx context.Context, ref odata.Ref) (TimeGroup, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, timeGroups []TimeGroup) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM time_group"); err != nil {
		err := fmt.Errorf("could not clear time groups: %w", err)
		log.Error(err)
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO time_group (ref, name, letter, digit) VALUES (?, ?, ?, ?)")
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	for _, timeGroup := range timeGroups {
		if _, err := stmt.ExecContext(ctx, timeGroup.Ref, timeGroup.Name, timeGroup.Letter, timeGroup.Digit); err != nil {
			err := fmt.Errorf("could not store time group %s: %w", timeGroup.Ref, err)
			log.Error(err)
			return err
		}
	}

	return tx.Commit()
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]TimeGroup, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT ref, name, letter, digit FROM time_group ORDER BY name")
	if err != nil {
		err := fmt.Errorf("could not query time groups: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var timeGroups []TimeGroup
	for rows.Next() {
		var timeGroup TimeGroup
		if err := rows.Scan(&timeGroup.Ref, &timeGroup.Name, &timeGroup.Letter, &timeGroup.Digit); err != nil {
			err := fmt.Errorf("could not scan time group: %w", err)
			log.Error(err)
			return nil, err
		}
		timeGroups = append(timeGroups, timeGroup)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return timeGroups, nil
}

func (r *RepositoryImpl) FindByRef(ctx context.Context, ref odata.Ref) (TimeGroup, error) {
	row := r.db.QueryRowContext(ctx, "SELECT ref, name, letter, digit FROM time_group WHERE ref = ?", ref)
	var timeGroup TimeGroup
	if err := row.Scan(&timeGroup.Ref, &timeGroup.Name, &timeGroup.Letter, &timeGroup.Digit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TimeGroup{}, ErrNotFound
		}
		err := fmt.Errorf("could not find time group: %w", err)
		log.Error(err)
		return TimeGroup{}, err
	}
	return timeGroup, nil
}
