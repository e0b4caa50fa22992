package store

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"office-occupancy-backend/internal/model"
)

// OccupantStore holds the three lifecycle partitions of the roster. A record
// always lives in the partition named by its Status field; partition writes
// relocate rows whose status disagrees. Names are display keys and may repeat;
// every record carries a generated ID for unambiguous addressing.
//
// The store is not safe for concurrent use on its own. Workspace wraps it
// behind a lock for the server.
type OccupantStore struct {
	partitions map[model.Status][]model.Occupant
}

// NewOccupantStore builds a store from the three imported partitions. Records
// are stamped with the partition's status and a generated ID where missing.
func NewOccupantStore(current, upcoming, past []model.Occupant) *OccupantStore {
	s := &OccupantStore{partitions: map[model.Status][]model.Occupant{
		model.StatusCurrent:  nil,
		model.StatusUpcoming: nil,
		model.StatusPast:     nil,
	}}
	for _, o := range current {
		s.Add(o, model.StatusCurrent)
	}
	for _, o := range upcoming {
		s.Add(o, model.StatusUpcoming)
	}
	for _, o := range past {
		s.Add(o, model.StatusPast)
	}
	return s
}

// Add appends a record to the named partition and returns it as stored, ID
// included. Duplicate names are permitted.
func (s *OccupantStore) Add(o model.Occupant, status model.Status) (model.Occupant, bool) {
	if !status.Valid() {
		return model.Occupant{}, false
	}
	o.Status = status
	o.Office = strings.TrimSpace(o.Office)
	o.Building = strings.TrimSpace(o.Building)
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	s.partitions[status] = append(s.partitions[status], o)
	return o, true
}

// Partition returns a copy of the named partition sorted alphabetically by
// name. The ordering is a report contract, not incidental.
func (s *OccupantStore) Partition(status model.Status) []model.Occupant {
	rows := append([]model.Occupant(nil), s.partitions[status]...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// ReplacePartition rewrites the named partition wholesale with rows, except
// that any row whose own Status field names a different partition is relocated
// there instead of being written in place. A bulk grid edit that flips one
// row's status therefore moves that row across partitions in a single call.
func (s *OccupantStore) ReplacePartition(status model.Status, rows []model.Occupant) bool {
	if !status.Valid() {
		return false
	}
	kept := make([]model.Occupant, 0, len(rows))
	var moved []model.Occupant
	for _, o := range rows {
		o.Office = strings.TrimSpace(o.Office)
		o.Building = strings.TrimSpace(o.Building)
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		if !o.Status.Valid() || o.Status == status {
			o.Status = status
			kept = append(kept, o)
			continue
		}
		moved = append(moved, o)
	}
	s.partitions[status] = kept
	for _, o := range moved {
		s.partitions[o.Status] = append(s.partitions[o.Status], o)
	}
	return true
}

// Delete removes the first record with an exactly matching name from the
// named partition. With duplicate names the caller cannot pick which record
// goes; DeleteByID disambiguates.
func (s *OccupantStore) Delete(name string, status model.Status) bool {
	rows := s.partitions[status]
	for i, o := range rows {
		if o.Name == name {
			s.partitions[status] = append(rows[:i:i], rows[i+1:]...)
			return true
		}
	}
	return false
}

// DeleteByID removes the record with the given ID from the named partition.
func (s *OccupantStore) DeleteByID(id string, status model.Status) bool {
	rows := s.partitions[status]
	for i, o := range rows {
		if o.ID == id {
			s.partitions[status] = append(rows[:i:i], rows[i+1:]...)
			return true
		}
	}
	return false
}

// AssignRoom sets the room of the first record in the named partition whose
// name matches exactly. Reports false on no match.
func (s *OccupantStore) AssignRoom(name, building, office string, status model.Status) bool {
	rows := s.partitions[status]
	for i := range rows {
		if rows[i].Name == name {
			rows[i].Building = strings.TrimSpace(building)
			rows[i].Office = strings.TrimSpace(office)
			return true
		}
	}
	return false
}

// UniqueBuildings returns the sorted union of building names across all
// partitions, blanks dropped.
func (s *OccupantStore) UniqueBuildings() []string {
	return s.uniqueValues(func(o model.Occupant) string { return o.Building })
}

// UniqueOffices returns the sorted union of office numbers across all
// partitions, blanks dropped.
func (s *OccupantStore) UniqueOffices() []string {
	return s.uniqueValues(func(o model.Occupant) string { return o.Office })
}

func (s *OccupantStore) uniqueValues(field func(model.Occupant) string) []string {
	seen := make(map[string]struct{})
	for _, status := range model.Statuses {
		for _, o := range s.partitions[status] {
			if v := field(o); v != "" {
				seen[v] = struct{}{}
			}
		}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// deleteAt removes every record at the given room from one partition and
// reports how many went. Room cascades use it across all three partitions.
func (s *OccupantStore) deleteAt(building, office string, status model.Status) int {
	rows := s.partitions[status]
	kept := rows[:0]
	removed := 0
	for _, o := range rows {
		if o.Building == building && o.Office == office {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	s.partitions[status] = kept
	return removed
}

// relocate moves every record at the old room to the new one, across all
// partitions, preserving all other fields.
func (s *OccupantStore) relocate(oldBuilding, oldOffice, newBuilding, newOffice string) int {
	moved := 0
	for _, status := range model.Statuses {
		rows := s.partitions[status]
		for i := range rows {
			if rows[i].Building == oldBuilding && rows[i].Office == oldOffice {
				rows[i].Building = newBuilding
				rows[i].Office = newOffice
				moved++
			}
		}
	}
	return moved
}

// deleteStorageSentinels removes current-partition STORAGE rows at a room.
func (s *OccupantStore) deleteStorageSentinels(building, office string) {
	rows := s.partitions[model.StatusCurrent]
	kept := rows[:0]
	for _, o := range rows {
		if o.Building == building && o.Office == office && o.IsStorageSentinel() {
			continue
		}
		kept = append(kept, o)
	}
	s.partitions[model.StatusCurrent] = kept
}

// currentCountAt counts current-partition records at a room, sentinels included.
func (s *OccupantStore) currentCountAt(building, office string) int {
	n := 0
	for _, o := range s.partitions[model.StatusCurrent] {
		if o.Building == building && o.Office == office {
			n++
		}
	}
	return n
}

// currentStorageAt reports whether any current record marks the room storage.
func (s *OccupantStore) currentStorageAt(building, office string) bool {
	for _, o := range s.partitions[model.StatusCurrent] {
		if o.Building == building && o.Office == office && o.IsStorageSentinel() {
			return true
		}
	}
	return false
}
