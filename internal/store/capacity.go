package store

import (
	"sort"
	"strings"

	"office-occupancy-backend/internal/model"
)

// CapacityStore maps composite room keys to maximum occupancy. At most one
// entry exists per (building, office); lookups on absent keys resolve to the
// default capacity. Capacity 0 is the conventional storage sentinel but is
// stored like any other value.
type CapacityStore struct {
	capacities map[string]int
}

// NewCapacityStore copies the given "building:office" keyed table; nil yields
// an empty store.
func NewCapacityStore(capacities map[string]int) *CapacityStore {
	s := &CapacityStore{capacities: make(map[string]int, len(capacities))}
	for key, capacity := range capacities {
		s.capacities[strings.TrimSpace(key)] = capacity
	}
	return s
}

// Get resolves a room's capacity, defaulting when the key is absent.
func (s *CapacityStore) Get(building, office string) int {
	if c, ok := s.capacities[model.RoomKey(building, office)]; ok {
		return c
	}
	return model.DefaultCapacity
}

// Set upserts a room's capacity.
func (s *CapacityStore) Set(building, office string, capacity int) {
	s.capacities[model.RoomKey(building, office)] = capacity
}

// Delete drops a room's capacity entry, if any.
func (s *CapacityStore) Delete(building, office string) {
	delete(s.capacities, model.RoomKey(building, office))
}

// Len reports the number of configured rooms.
func (s *CapacityStore) Len() int {
	return len(s.capacities)
}

// Snapshot returns a copy of the table in its keyed-document form.
func (s *CapacityStore) Snapshot() map[string]int {
	out := make(map[string]int, len(s.capacities))
	for k, v := range s.capacities {
		out[k] = v
	}
	return out
}

// Keys returns the configured room keys in sorted order.
func (s *CapacityStore) Keys() []string {
	keys := make([]string, 0, len(s.capacities))
	for k := range s.capacities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
