package planner

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sync"

	"wayfarer/internal/domain"
)

// ActivityKey identifies one activity for cost overrides. It is derived from
// content (day index + activity name), not position, so a regenerated
// itinerary with reordered activities keeps user-entered values attached to
// the activity they were entered for. A renamed activity deliberately counts
// as a new one.
type ActivityKey string

func KeyFor(dayIndex int, activityName string) ActivityKey {
	sum := sha1.Sum([]byte(fmt.Sprintf("%d|%s", dayIndex, activityName)))
	return ActivityKey(hex.EncodeToString(sum[:]))
}

// ActualCostStore holds user-entered actual costs keyed by ActivityKey. It
// outlives any single itinerary: regeneration reseeds it, existing entries
// winning over freshly generated defaults. nil means "no value entered yet".
type ActualCostStore struct {
	mu      sync.Mutex
	entries map[ActivityKey]*float64
}

func NewActualCostStore() *ActualCostStore {
	return &ActualCostStore{entries: map[ActivityKey]*float64{}}
}

// Reseed merges the store against a fresh itinerary: every activity gets an
// entry seeded from its embedded default, but a user-entered value at the
// same key takes precedence. Keys for activities no longer present are
// dropped. The map is rebuilt and swapped whole, never mutated in place.
func (s *ActualCostStore) Reseed(it domain.GeneratedItinerary) {
	next := make(map[ActivityKey]*float64)
	s.mu.Lock()
	defer s.mu.Unlock()
	for di, day := range it.Itinerary {
		for _, act := range day.Activities {
			k := KeyFor(di, act.Name)
			if existing, ok := s.entries[k]; ok && existing != nil {
				next[k] = existing
				continue
			}
			if act.ActualCost != nil {
				v := *act.ActualCost
				next[k] = &v
				continue
			}
			next[k] = nil
		}
	}
	s.entries = next
}

// Set records a user-entered value for one key; nil clears it back to
// "not entered". Writes are per-key independent and never block generation.
func (s *ActualCostStore) Set(k ActivityKey, v *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[k]; !ok {
		return domain.ErrUnknownActivity
	}
	if v == nil {
		s.entries[k] = nil
		return nil
	}
	cp := *v
	s.entries[k] = &cp
	return nil
}

// Get returns the value at k and whether the key exists at all.
func (s *ActualCostStore) Get(k ActivityKey) (*float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[k]
	if v == nil {
		return nil, ok
	}
	cp := *v
	return &cp, ok
}

// Snapshot copies the current entries so aggregation reads a stable view.
func (s *ActualCostStore) Snapshot() map[ActivityKey]*float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[ActivityKey]*float64, len(s.entries))
	for k, v := range s.entries {
		if v == nil {
			out[k] = nil
			continue
		}
		cp := *v
		out[k] = &cp
	}
	return out
}
