package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("employee not found")

type Repository interface {
	ReplaceAll(ctx context.Context, employees []Employee) error
	GetAll(ctx context.Context) ([]Employee, error)
	// GetByOrganization returns the employees of one organization.
	GetByOrganization(ctx context.Context, organization odata.Ref) ([]Employee, error)
	FindByRef(ctx context.Context, ref odata.Ref) (Employee, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, employees []Employee) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM employee"); err != nil {
		err := fmt.Errorf("could not clear employees: %w", err)
		log.Error(err)
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO employee (ref, name, person_ref, organization_ref) VALUES (?, ?, ?, ?)")
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	for _, employee := range employees {
		if _, err := stmt.ExecContext(ctx, employee.Ref, employee.Name, employee.Person, employee.Organization); err != nil {
			err := fmt.Errorf("could not store employee %s: %w", employee.Ref, err)
			log.Error(err)
			return err
		}
	}

	return tx.Commit()
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Employee, error) {
	return r.query(ctx, "SELECT ref, name, person_ref, organization_ref FROM employee ORDER BY name")
}

func (r *RepositoryImpl) GetByOrganization(ctx context.Context, organization odata.Ref) ([]Employee, error) {
	return r.query(ctx,
		"SELECT ref, name, person_ref, organization_ref FROM employee WHERE organization_ref = ? ORDER BY name",
		organization)
}

func (r *RepositoryImpl) query(ctx context.Context, query string, args ...any) ([]Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query employees: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var employee Employee
		if err := rows.Scan(&employee.Ref, &employee.Name, &employee.Person, &employee.Organization); err != nil {
			err := fmt.Errorf("could not scan employee: %w", err)
			log.Error(err)
			return nil, err
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return employees, nil
}

func (r *RepositoryImpl) FindByRef(ctx context.Context, ref odata.Ref) (Employee, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT ref, name, person_ref, organization_ref FROM employee WHERE ref = ?", ref)
	var employee Employee
	if err := row.Scan(&employee.Ref, &employee.Name, &employee.Person, &employee.Organization); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		err := fmt.Errorf("could not find employee: %w", err)
		log.Error(err)
		return Employee{}, err
	}
	return employee, nil
}
