package timesheet

import (
	"context"
	"sort"
	"sync"
)

// StubRepository is an in-memory Repository for tests.
type StubRepository struct {
	mu     sync.RWMutex
	drafts map[string]Draft
	err    error
}

func NewStubRepository() *StubRepository {
	return &StubRepository{drafts: make(map[string]Draft)}
}

func (s *StubRepository) Store(ctx context.Context, draft Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.drafts[draft.ID] = draft
	return nil
}

func (s *StubRepository) Update(ctx context.Context, draft Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.drafts[draft.ID]; !ok {
		return ErrNotFound
	}
	s.drafts[draft.ID] = draft
	return nil
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	drafts := make([]Draft, 0, len(s.drafts))
	for _, draft := range s.drafts {
		drafts = append(drafts, draft)
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].CreatedAt.After(drafts[j].CreatedAt)
	})
	return drafts, nil
}

func (s *StubRepository) FindByID(ctx context.Context, id string) (Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return Draft{}, s.err
	}
	draft, ok := s.drafts[id]
	if !ok {
		return Draft{}, ErrNotFound
	}
	return draft, nil
}

func (s *StubRepository) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.drafts[id]; !ok {
		return false, nil
	}
	delete(s.drafts, id)
	return true, nil
}

func (s *StubRepository) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *StubRepository) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = make(map[string]Draft)
	s.err = nil
}
