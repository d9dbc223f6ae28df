package organization

import (
	"context"
	"fmt"

	"github.com/SabNK/client-1c-timesheet/pkg/onec"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Organization, error)
	Refresh(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repo   Repository
	client onec.Client
}

func NewService(repo Repository, client onec.Client) *ServiceImpl {
	return &ServiceImpl{repo: repo, client: client}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Organization, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Refresh(ctx context.Context) (int, error) {
	fetched, err := s.client.GetOrganizations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch organizations from 1C: %w", err)
	}

	organizations := make([]Organization, 0, len(fetched))
	for _, item := range fetched {
		organizations = append(organizations, Organization{Ref: item.Ref, Name: item.Name})
	}

	if err := s.repo.ReplaceAll(ctx, organizations); err != nil {
		return 0, fmt.Errorf("failed to store organizations: %w", err)
	}
	log.Debugf("refreshed %d organizations from 1C", len(organizations))
	return len(organizations), nil
}
