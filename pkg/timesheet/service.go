package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/SabNK/client-1c-timesheet/internal/event_bus"
	"github.com/SabNK/client-1c-timesheet/internal/utils"
	"github.com/SabNK/client-1c-timesheet/pkg/onec"
	"github.com/SabNK/client-1c-timesheet/pkg/timeentry"
)

var (
	ErrNoEntries        = errors.New("no finished time entries in the month")
	ErrAlreadySubmitted = errors.New("timesheet draft is already submitted")
)

type Service interface {
	CreateDraft(ctx context.Context, in BuildInput) (Draft, error)
	List(ctx context.Context) ([]Draft, error)
	Get(ctx context.Context, id string) (Draft, error)
	Submit(ctx context.Context, id string) (Draft, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ServiceImpl struct {
	repo    Repository
	entries timeentry.Service
	client  onec.Client
	bus     *event_bus.EventBus
	clock   utils.Clock
}

func NewService(
	repo Repository,
	entries timeentry.Service,
	client onec.Client,
	bus *event_bus.EventBus,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{repo: repo, entries: entries, client: client, bus: bus, clock: clock}
}

// CreateDraft builds a timesheet for the requested month from finished time
// entries and stores it locally for review.
func (s *ServiceImpl) CreateDraft(ctx context.Context, in BuildInput) (Draft, error) {
	from, to := in.monthBounds()
	entries, err := s.entries.ListFinishedBetween(ctx, from, to)
	if err != nil {
		return Draft{}, err
	}
	sheet, err := BuildSheet(in, entries)
	if err != nil {
		return Draft{}, err
	}
	if len(sheet.Lines) == 0 {
		return Draft{}, ErrNoEntries
	}
	draft := Draft{
		ID:        uuid.NewString(),
		Status:    StatusDraft,
		CreatedAt: s.clock.Now(),
		Sheet:     sheet,
	}
	if err := s.repo.Store(ctx, draft); err != nil {
		return Draft{}, err
	}
	log.Infof("Built timesheet draft %s for %04d-%02d with %d lines",
		draft.ID, in.Year, in.Month, len(sheet.Lines))
	return draft, nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]Draft, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Draft, error) {
	return s.repo.FindByID(ctx, id)
}

// Submit sends the draft to 1C and records the reference and number the
// server assigns to the new document.
func (s *ServiceImpl) Submit(ctx context.Context, id string) (Draft, error) {
	draft, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	if draft.Status == StatusSubmitted {
		return Draft{}, ErrAlreadySubmitted
	}
	created, err := s.client.AddTimeSheet(ctx, draft.Sheet)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to submit timesheet to 1C: %w", err)
	}
	now := s.clock.Now()
	draft.Status = StatusSubmitted
	draft.SubmittedAt = &now
	draft.Ref = created.Ref
	draft.Number = created.Number
	draft.Sheet = created
	if err := s.repo.Update(ctx, draft); err != nil {
		return Draft{}, err
	}
	s.publishSubmitted(ctx, draft)
	return draft, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *ServiceImpl) publishSubmitted(ctx context.Context, draft Draft) {
	event := event_bus.NewEvent(ctx, event_bus.TimeSheetSubmittedEvent, event_bus.TimeSheetSubmitted{
		DraftID: draft.ID,
		Ref:     string(draft.Ref),
		Number:  draft.Number,
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("Failed to publish timesheet submitted event: %v", err)
	}
}

// monthOf is a convenience for handlers parsing "YYYY-MM" period values.
func monthOf(period string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid period %q, expected YYYY-MM", period)
	}
	return t.Year(), t.Month(), nil
}
