package onec

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	log "github.com/sirupsen/logrus"
)

// Client is the typed session with a 1C timesheet publication.
type Client interface {
	GetTimeGroups(ctx context.Context) ([]TimeGroup, error)
	GetOrganizations(ctx context.Context) ([]Organization, error)
	GetEmployees(ctx context.Context) ([]Employee, error)
	GetTimeSheets(ctx context.Context) ([]TimeSheet, error)
	GetTimeSheet(ctx context.Context, ref odata.Ref) (TimeSheet, error)
	AddTimeSheet(ctx context.Context, sheet TimeSheet) (TimeSheet, error)
	UpdateTimeSheet(ctx context.Context, sheet TimeSheet) (TimeSheet, error)
}

type ClientImpl struct {
	api *odata.Client
}

func NewClient(api *odata.Client) *ClientImpl {
	return &ClientImpl{api: api}
}

// GetTimeGroups retrieves all kinds of working time usage.
func (c *ClientImpl) GetTimeGroups(ctx context.Context) ([]TimeGroup, error) {
	return getCollection[TimeGroup](ctx, c.api, timeGroupsEntitySet)
}

// GetOrganizations retrieves all organizations.
func (c *ClientImpl) GetOrganizations(ctx context.Context) ([]Organization, error) {
	return getCollection[Organization](ctx, c.api, organizationsEntitySet)
}

// GetEmployees retrieves all employees.
func (c *ClientImpl) GetEmployees(ctx context.Context) ([]Employee, error) {
	return getCollection[Employee](ctx, c.api, employeesEntitySet)
}

// GetTimeSheets retrieves all timesheet documents with their lines.
func (c *ClientImpl) GetTimeSheets(ctx context.Context) ([]TimeSheet, error) {
	return getCollection[TimeSheet](ctx, c.api, timeSheetsEntitySet)
}

// GetTimeSheet retrieves a single timesheet document by reference.
func (c *ClientImpl) GetTimeSheet(ctx context.Context, ref odata.Ref) (TimeSheet, error) {
	payload, err := c.api.Get(ctx, entityPath(timeSheetsEntitySet, ref), nil)
	if err != nil {
		return TimeSheet{}, err
	}
	var sheet TimeSheet
	if err := json.Unmarshal(payload, &sheet); err != nil {
		return TimeSheet{}, fmt.Errorf("failed to decode timesheet: %w", err)
	}
	return sheet, nil
}

// AddTimeSheet creates a timesheet document in 1C and returns it with the
// server-assigned reference and number.
func (c *ClientImpl) AddTimeSheet(ctx context.Context, sheet TimeSheet) (TimeSheet, error) {
	payload, err := c.api.Post(ctx, timeSheetsEntitySet, sheet)
	if err != nil {
		return TimeSheet{}, err
	}
	var created TimeSheet
	if err := json.Unmarshal(payload, &created); err != nil {
		return TimeSheet{}, fmt.Errorf("failed to decode created timesheet: %w", err)
	}
	log.Infof("created timesheet %s (number %q) in 1C", created.Ref, created.Number)
	return created, nil
}

// UpdateTimeSheet replaces the fields of an existing timesheet document.
func (c *ClientImpl) UpdateTimeSheet(ctx context.Context, sheet TimeSheet) (TimeSheet, error) {
	if sheet.Ref.IsEmpty() {
		return TimeSheet{}, fmt.Errorf("cannot update a timesheet without a reference")
	}
	payload, err := c.api.Patch(ctx, entityPath(timeSheetsEntitySet, sheet.Ref), sheet)
	if err != nil {
		return TimeSheet{}, err
	}
	var updated TimeSheet
	if err := json.Unmarshal(payload, &updated); err != nil {
		return TimeSheet{}, fmt.Errorf("failed to decode updated timesheet: %w", err)
	}
	return updated, nil
}

func getCollection[T any](ctx context.Context, api *odata.Client, entitySet string) ([]T, error) {
	payload, err := api.Get(ctx, entitySet, nil)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", entitySet, err)
	}
	return items, nil
}

func entityPath(entitySet string, ref odata.Ref) string {
	return fmt.Sprintf("%s(guid'%s')", entitySet, ref)
}
