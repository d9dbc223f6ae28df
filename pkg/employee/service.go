package employee

import (
	"context"
	"fmt"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	"github.com/SabNK/client-1c-timesheet/pkg/onec"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Employee, error)
	ListByOrganization(ctx context.Context, organization odata.Ref) ([]Employee, error)
	Refresh(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repo   Repository
	client onec.Client
}

func NewService(repo Repository, client onec.Client) *ServiceImpl {
	return &ServiceImpl{repo: repo, client: client}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Employee, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) ListByOrganization(ctx context.Context, organization odata.Ref) ([]Employee, error) {
	return s.repo.GetByOrganization(ctx, organization)
}

func (s *ServiceImpl) Refresh(ctx context.Context) (int, error) {
	fetched, err := s.client.GetEmployees(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch employees from 1C: %w", err)
	}

	employees := make([]Employee, 0, len(fetched))
	for _, item := range fetched {
		employees = append(employees, Employee{
			Ref:          item.Ref,
			Name:         item.Name,
			Person:       item.Person,
			Organization: item.Organization,
		})
	}

	if err := s.repo.ReplaceAll(ctx, employees); err != nil {
		return 0, fmt.Errorf("failed to store employees: %w", err)
	}
	log.Debugf("refreshed %d employees from 1C", len(employees))
	return len(employees), nil
}
