package timegroup

import (
	"context"
	"fmt"

	"github.com/SabNK/client-1c-timesheet/pkg/onec"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// List returns the locally cached catalog.
	List(ctx context.Context) ([]TimeGroup, error)
	// Refresh pulls the catalog from 1C and replaces the local cache.
	// It returns the number of cached entries.
	Refresh(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repo   Repository
	client onec.Client
}

func NewService(repo Repository, client onec.Client) *ServiceImpl {
	return &ServiceImpl{repo: repo, client: client}
}

func (s *ServiceImpl) List(ctx context.Context) ([]TimeGroup, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Refresh(ctx context.Context) (int, error) {
	fetched, err := s.client.GetTimeGroups(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch time groups from 1C: %w", err)
	}

	timeGroups := make([]TimeGroup, 0, len(fetched))
	for _, item := range fetched {
		timeGroups = append(timeGroups, TimeGroup{
			Ref:    item.Ref,
			Name:   item.Name,
			Letter: item.Letter,
			Digit:  item.Digit,
		})
	}

	if err := s.repo.ReplaceAll(ctx, timeGroups); err != nil {
		return 0, fmt.Errorf("failed to store time groups: %w", err)
	}
	log.Debugf("refreshed %d time groups from 1C", len(timeGroups))
	return len(timeGroups), nil
}
