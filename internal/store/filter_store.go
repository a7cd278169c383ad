package store

import (
	"sync"

	"promo-insights-be/internal/dto"
)

// Observer receives every emitted filter value, starting with the current one
// at subscription time (replay-then-live).
type Observer func(dto.FilterSpec)

// FilterStore holds the single process-wide filter specification. There is
// exactly one current value and no history. Emission is synchronous and
// in-order; observers run outside the lock, so a subscriber registered during
// another observer's callback replays the in-progress value, not a stale one.
type FilterStore struct {
	mu        sync.Mutex
	current   dto.FilterSpec
	observers []Observer
}

func NewFilterStore() *FilterStore {
	return &FilterStore{}
}

// Current returns the last emitted value.
func (s *FilterStore) Current() dto.FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers an observer and immediately replays the current value
// to it.
func (s *FilterStore) Subscribe(obs Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, obs)
	cur := s.current
	s.mu.Unlock()
	obs(cur)
}

// Merge shallow-merges partial over the current value and emits the result.
// Fields present in partial overwrite; fields absent are preserved.
func (s *FilterStore) Merge(partial dto.FilterSpec) dto.FilterSpec {
	s.mu.Lock()
	s.current = s.current.Merge(partial)
	next, obs := s.current, s.snapshotLocked()
	s.mu.Unlock()
	emit(obs, next)
	return next
}

// Replace swaps the whole specification. Used for language-derived
// instructions, which express a complete new filter context rather than an
// incremental tweak.
func (s *FilterStore) Replace(spec dto.FilterSpec) dto.FilterSpec {
	s.mu.Lock()
	s.current = spec.Normalize()
	next, obs := s.current, s.snapshotLocked()
	s.mu.Unlock()
	emit(obs, next)
	return next
}

// ResetAll emits an empty specification.
func (s *FilterStore) ResetAll() dto.FilterSpec {
	return s.Replace(dto.FilterSpec{})
}

// ResetField emits the current value with one field removed.
func (s *FilterStore) ResetField(field string) dto.FilterSpec {
	s.mu.Lock()
	s.current = s.current.Without(field)
	next, obs := s.current, s.snapshotLocked()
	s.mu.Unlock()
	emit(obs, next)
	return next
}

func (s *FilterStore) snapshotLocked() []Observer {
	obs := make([]Observer, len(s.observers))
	copy(obs, s.observers)
	return obs
}

func emit(observers []Observer, value dto.FilterSpec) {
	for _, obs := range observers {
		obs(value)
	}
}
