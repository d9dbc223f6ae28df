package organization

import (
	"context"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
)

type StubRepository struct {
	data map[odata.Ref]Organization
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[odata.Ref]Organization{}}
}

func (s *StubRepository) ReplaceAll(ctx context.Context, organizations []Organization) error {
	s.data = map[odata.Ref]Organization{}
	for _, org := range organizations {
		s.data[org.Ref] = org
	}
	return nil
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Organization, error) {
	organizations := make([]Organization, 0, len(s.data))
	for _, org := range s.data {
		organizations = append(organizations, org)
	}
	return organizations, nil
}

func (s *StubRepository) FindByRef(ctx context.Context, ref odata.Ref) (Organization, error) {
	org, ok := s.data[ref]
	if !ok {
		return Organization{}, ErrNotFound
	}
	return org, nil
}
