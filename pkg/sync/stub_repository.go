package sync

import (
	"context"
	"sync"
)

// StubRepository is an in-memory Repository for tests.
type StubRepository struct {
	mu   sync.RWMutex
	runs []Run
	err  error
}

func NewStubRepository() *StubRepository {
	return &StubRepository{}
}

func (s *StubRepository) StoreRun(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.runs = append(s.runs, run)
	return nil
}

func (s *StubRepository) LastRun(ctx context.Context) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return Run{}, s.err
	}
	if len(s.runs) == 0 {
		return Run{}, ErrNoRuns
	}
	return s.runs[len(s.runs)-1], nil
}

func (s *StubRepository) Runs() []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Run(nil), s.runs...)
}

func (s *StubRepository) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *StubRepository) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = nil
	s.err = nil
}
