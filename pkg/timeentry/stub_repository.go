package timeentry

import (
	"context"
	"sort"
	"time"
)

type StubRepository struct {
	nextID int64
	data   map[int64]TimeEntry
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int64]TimeEntry{}}
}

func (s *StubRepository) Store(ctx context.Context, entry TimeEntry) (int64, error) {
	s.nextID++
	entry.ID = s.nextID
	s.data[entry.ID] = entry
	return entry.ID, nil
}

func (s *StubRepository) Update(ctx context.Context, entry TimeEntry) (bool, error) {
	if _, ok := s.data[entry.ID]; !ok {
		return false, nil
	}
	s.data[entry.ID] = entry
	return true, nil
}

func (s *StubRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepository) FindByID(ctx context.Context, id int64) (TimeEntry, error) {
	entry, ok := s.data[id]
	if !ok {
		return TimeEntry{}, ErrNotFound
	}
	return entry, nil
}

func (s *StubRepository) GetAll(ctx context.Context) ([]TimeEntry, error) {
	entries := make([]TimeEntry, 0, len(s.data))
	for _, entry := range s.data {
		entries = append(entries, entry)
	}
	sortByStart(entries)
	return entries, nil
}

func (s *StubRepository) GetFinishedBetween(ctx context.Context, from, to time.Time) ([]TimeEntry, error) {
	var entries []TimeEntry
	for _, entry := range s.data {
		if entry.IsRunning() {
			continue
		}
		if entry.Start.Before(from) || !entry.Start.Before(to) {
			continue
		}
		entries = append(entries, entry)
	}
	sortByStart(entries)
	return entries, nil
}

func (s *StubRepository) Reset() {
	s.nextID = 0
	s.data = map[int64]TimeEntry{}
}

func sortByStart(entries []TimeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})
}
