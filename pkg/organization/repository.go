package organization

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("organization not found")

type Repository interface {
	ReplaceAll(ctx context.Context, organizations []Organization) error
	GetAll(ctx context.Context) ([]Organization, error)
	FindByRef(ctx context.Context, ref odata.Ref) (Organization, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, organizations []Organization) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM organization"); err != nil {
		err := fmt.Errorf("could not clear organizations: %w", err)
		log.Error(err)
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO organization (ref, name) VALUES (?, ?)")
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	for _, org := range organizations {
		if _, err := stmt.ExecContext(ctx, org.Ref, org.Name); err != nil {
			err := fmt.Errorf("could not store organization %s: %w", org.Ref, err)
			log.Error(err)
			return err
		}
	}

	return tx.Commit()
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Organization, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT ref, name FROM organization ORDER BY name")
	if err != nil {
		err := fmt.Errorf("could not query organizations: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var organizations []Organization
	for rows.Next() {
		var org Organization
		if err := rows.Scan(&org.Ref, &org.Name); err != nil {
			err := fmt.Errorf("could not scan organization: %w", err)
			log.Error(err)
			return nil, err
		}
		organizations = append(organizations, org)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return organizations, nil
}

func (r *RepositoryImpl) FindByRef(ctx context.Context, ref odata.Ref) (Organization, error) {
	row := r.db.QueryRowContext(ctx, "SELECT ref, name FROM organization WHERE ref = ?", ref)
	var org Organization
	if err := row.Scan(&org.Ref, &org.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Organization{}, ErrNotFound
		}
		err := fmt.Errorf("could not find organization: %w", err)
		log.Error(err)
		return Organization{}, err
	}
	return org, nil
}
