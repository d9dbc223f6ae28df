package timeentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SabNK/client-1c-timesheet/internal/utils"
)

var (
	ErrEmployeeRequired = errors.New("time entry requires an employee")
	ErrInvalidInterval  = errors.New("time entry end must be after its start")
	ErrAlreadyFinished  = errors.New("time entry is already finished")
)

type Service interface {
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	Update(ctx context.Context, entry TimeEntry) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Get(ctx context.Context, id int64) (TimeEntry, error)
	List(ctx context.Context) ([]TimeEntry, error)
	// ListFinishedBetween returns finished entries starting within [from, to).
	ListFinishedBetween(ctx context.Context, from, to time.Time) ([]TimeEntry, error)
	// Stop finishes a running entry at the current time.
	Stop(ctx context.Context, id int64) (TimeEntry, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	if err := validate(entry); err != nil {
		return TimeEntry{}, err
	}
	if entry.Start.IsZero() {
		entry.Start = s.clock.Now()
	}

	id, err := s.repo.Store(ctx, entry)
	if err != nil {
		return TimeEntry{}, err
	}
	entry.ID = id
	return entry, nil
}

func (s *ServiceImpl) Update(ctx context.Context, entry TimeEntry) (bool, error) {
	if err := validate(entry); err != nil {
		return false, err
	}
	return s.repo.Update(ctx, entry)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *ServiceImpl) Get(ctx context.Context, id int64) (TimeEntry, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context) ([]TimeEntry, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) ListFinishedBetween(ctx context.Context, from, to time.Time) ([]TimeEntry, error) {
	return s.repo.GetFinishedBetween(ctx, from, to)
}

func (s *ServiceImpl) Stop(ctx context.Context, id int64) (TimeEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TimeEntry{}, err
	}
	if !entry.IsRunning() {
		return TimeEntry{}, ErrAlreadyFinished
	}

	now := s.clock.Now()
	if !now.After(entry.Start) {
		return TimeEntry{}, ErrInvalidInterval
	}
	entry.End = &now

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return TimeEntry{}, err
	}
	if !updated {
		return TimeEntry{}, fmt.Errorf("time entry %d disappeared during stop", id)
	}
	return entry, nil
}

func validate(entry TimeEntry) error {
	if entry.Employee.IsEmpty() {
		return ErrEmployeeRequired
	}
	if entry.End != nil && !entry.End.After(entry.Start) {
		return ErrInvalidInterval
	}
	return nil
}
