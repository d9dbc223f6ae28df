package employee

import (
	"context"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
)

type StubRepository struct {
	data map[odata.Ref]Employee
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[odata.Ref]Employee{}}
}

func (s *StubRepository) ReplaceAll(ctx context.Context, employees []Employee) error {
	s.data = map[odata.Ref]Employee{}
	for _, employee := range employees {
		s.data[employee.Ref] = employee
	}
	return nil
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Employee, error) {
	employees := make([]Employee, 0, len(s.data))
	for _, employee := range s.data {
		employees = append(employees, employee)
	}
	return employees, nil
}

func (s *StubRepository) GetByOrganization(ctx context.Context, organization odata.Ref) ([]Employee, error) {
	var employees []Employee
	for _, employee := range s.data {
		if employee.Organization == organization {
			employees = append(employees, employee)
		}
	}
	return employees, nil
}

func (s *StubRepository) FindByRef(ctx context.Context, ref odata.Ref) (Employee, error) {
	employee, ok := s.data[ref]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return employee, nil
}
