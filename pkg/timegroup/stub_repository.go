package timegroup

import (
	"context"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
)

type StubRepository struct {
	data map[odata.Ref]TimeGroup
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[odata.Ref]TimeGroup{}}
}

func (s *StubRepository) ReplaceAll(ctx context.Context, timeGroups []TimeGroup) error {
	s.data = map[odata.Ref]TimeGroup{}
	for _, timeGroup := range timeGroups {
		s.data[timeGroup.Ref] = timeGroup
	}
	return nil
}

func (s *StubRepository) GetAll(ctx context.Context) ([]TimeGroup, error) {
	timeGroups := make([]TimeGroup, 0, len(s.data))
	for _, timeGroup := range s.data {
		timeGroups = append(timeGroups, timeGroup)
	}
	return timeGroups, nil
}

func (s *StubRepository) FindByRef(ctx context.Context, ref odata.Ref) (TimeGroup, error) {
	timeGroup, ok := s.data[ref]
	if !ok {
		return TimeGroup{}, ErrNotFound
	}
	return timeGroup, nil
}
