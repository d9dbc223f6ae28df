package onec

import (
	"context"
	"fmt"
	"sync"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	"github.com/google/uuid"
)

// ClientStub is an in-memory Client for tests.
type ClientStub struct {
	mu            sync.RWMutex
	timeGroups    []TimeGroup
	organizations []Organization
	employees     []Employee
	timeSheets    map[odata.Ref]TimeSheet
	nextNumber    int
	err           error
}

func NewClientStub() *ClientStub {
	return &ClientStub{timeSheets: make(map[odata.Ref]TimeSheet)}
}

func (c *ClientStub) GetTimeGroups(ctx context.Context) ([]TimeGroup, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.err != nil {
		return nil, c.err
	}
	result := make([]TimeGroup, len(c.timeGroups))
	copy(result, c.timeGroups)
	return result, nil
}

func (c *ClientStub) GetOrganizations(ctx context.Context) ([]Organization, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.err != nil {
		return nil, c.err
	}
	result := make([]Organization, len(c.organizations))
	copy(result, c.organizations)
	return result, nil
}

func (c *ClientStub) GetEmployees(ctx context.Context) ([]Employee, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.err != nil {
		return nil, c.err
	}
	result := make([]Employee, len(c.employees))
	copy(result, c.employees)
	return result, nil
}

func (c *ClientStub) GetTimeSheets(ctx context.Context) ([]TimeSheet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.err != nil {
		return nil, c.err
	}
	result := make([]TimeSheet, 0, len(c.timeSheets))
	for _, sheet := range c.timeSheets {
		result = append(result, sheet)
	}
	return result, nil
}

func (c *ClientStub) GetTimeSheet(ctx context.Context, ref odata.Ref) (TimeSheet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.err != nil {
		return TimeSheet{}, c.err
	}
	sheet, ok := c.timeSheets[ref]
	if !ok {
		return TimeSheet{}, fmt.Errorf("timesheet %s: %w", ref, odata.ErrNotFound)
	}
	return sheet, nil
}

func (c *ClientStub) AddTimeSheet(ctx context.Context, sheet TimeSheet) (TimeSheet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return TimeSheet{}, c.err
	}
	sheet.Ref = odata.Ref(uuid.NewString())
	if sheet.Number == "" {
		c.nextNumber++
		sheet.Number = fmt.Sprintf("0000-%06d", c.nextNumber)
	}
	c.timeSheets[sheet.Ref] = sheet
	return sheet, nil
}

func (c *ClientStub) UpdateTimeSheet(ctx context.Context, sheet TimeSheet) (TimeSheet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return TimeSheet{}, c.err
	}
	if _, ok := c.timeSheets[sheet.Ref]; !ok {
		return TimeSheet{}, fmt.Errorf("timesheet %s: %w", sheet.Ref, odata.ErrNotFound)
	}
	c.timeSheets[sheet.Ref] = sheet
	return sheet, nil
}

// Test setup helpers

func (c *ClientStub) SetTimeGroups(timeGroups []TimeGroup) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeGroups = make([]TimeGroup, len(timeGroups))
	copy(c.timeGroups, timeGroups)
}

func (c *ClientStub) SetOrganizations(organizations []Organization) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.organizations = make([]Organization, len(organizations))
	copy(c.organizations, organizations)
}

func (c *ClientStub) SetEmployees(employees []Employee) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.employees = make([]Employee, len(employees))
	copy(c.employees, employees)
}

func (c *ClientStub) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *ClientStub) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeGroups = nil
	c.organizations = nil
	c.employees = nil
	c.timeSheets = make(map[odata.Ref]TimeSheet)
	c.nextNumber = 0
	c.err = nil
}
