package store

import (
	"strings"
	"sync"

	"office-occupancy-backend/internal/model"
	"office-occupancy-backend/internal/occupancy"
)

// Workspace couples the occupant roster and the capacity table behind one
// mutation surface, so multi-step room operations (add, delete, rename,
// retype) can never be half-applied by a caller that forgets the cascade.
// Reads recompute the derived occupancy table from scratch; nothing derived
// is ever stored.
type Workspace struct {
	mu         sync.Mutex
	occupants  *OccupantStore
	capacities *CapacityStore
}

// NewWorkspace wraps the two stores. When the capacity table is empty it is
// auto-initialized from current occupancy (storage rooms 0, others the larger
// of headcount and the default).
func NewWorkspace(occupants *OccupantStore, capacities *CapacityStore) *Workspace {
	w := &Workspace{occupants: occupants, capacities: capacities}
	if capacities.Len() == 0 {
		for key, capacity := range occupancy.InitCapacities(occupants.Partition(model.StatusCurrent)) {
			w.capacities.capacities[key] = capacity
		}
	}
	return w
}

// Occupancy recomputes and returns the derived per-room table.
func (w *Workspace) Occupancy() []occupancy.Row {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.computeLocked()
}

// BuildingSummaries recomputes the table and rolls it up per building.
func (w *Workspace) BuildingSummaries() []occupancy.BuildingSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return occupancy.SummarizeByBuilding(w.computeLocked())
}

// FloorSummaries recomputes the table and rolls it up per floor, optionally
// filtered to one building.
func (w *Workspace) FloorSummaries(building string) []occupancy.FloorSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return occupancy.SummarizeByFloor(w.computeLocked(), building)
}

func (w *Workspace) computeLocked() []occupancy.Row {
	return occupancy.Compute(w.occupants.Partition(model.StatusCurrent), w.capacities.Snapshot())
}

// RoomDetail looks up one room's derived row plus the current-partition
// records located there, sentinels included. Reports false for a room the
// derived table does not know.
func (w *Workspace) RoomDetail(building, office string) (occupancy.Row, []model.Occupant, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var occupants []model.Occupant
	for _, o := range w.occupants.Partition(model.StatusCurrent) {
		if o.Building == building && o.Office == office {
			occupants = append(occupants, o)
		}
	}
	for _, r := range w.computeLocked() {
		if r.Building == building && r.Office == office {
			return r, occupants, true
		}
	}
	return occupancy.Row{}, nil, false
}

// --- Occupant operations ---

// AddOccupant appends a record to the named partition and returns it as
// stored.
func (w *Workspace) AddOccupant(o model.Occupant, status model.Status) (model.Occupant, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.occupants.Add(o, status)
}

// Partition returns the named partition sorted by name.
func (w *Workspace) Partition(status model.Status) []model.Occupant {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.occupants.Partition(status)
}

// ReplacePartition rewrites a partition, relocating rows whose status changed.
func (w *Workspace) ReplacePartition(status model.Status, rows []model.Occupant) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.occupants.ReplacePartition(status, rows)
}

// DeleteOccupant removes the first exact name match from the named partition.
func (w *Workspace) DeleteOccupant(name string, status model.Status) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.occupants.Delete(name, status)
}

// DeleteOccupantByID removes the record with the given ID.
func (w *Workspace) DeleteOccupantByID(id string, status model.Status) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.occupants.DeleteByID(id, status)
}

// AssignRoom moves the named occupant to a room within their partition.
func (w *Workspace) AssignRoom(name, building, office string, status model.Status) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.occupants.AssignRoom(name, building, office, status)
}

// UniqueBuildings returns all building names seen in any partition.
func (w *Workspace) UniqueBuildings() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.occupants.UniqueBuildings()
}

// UniqueOffices returns all office numbers seen in any partition.
func (w *Workspace) UniqueOffices() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.occupants.UniqueOffices()
}

// --- Room operations ---

// Capacity resolves a room's configured capacity (default when unset).
func (w *Workspace) Capacity(building, office string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.capacities.Get(building, office)
}

// SetCapacity upserts a room's capacity.
func (w *Workspace) SetCapacity(building, office string, capacity int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.capacities.Set(strings.TrimSpace(building), strings.TrimSpace(office), capacity)
}

// AddRoom inserts a capacity entry and a sentinel roster row. The sentinel is
// what makes an empty room visible: the derived table only ever sees rooms
// with at least one current-partition record.
func (w *Workspace) AddRoom(building, office string, capacity int, isStorage bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	building = strings.TrimSpace(building)
	office = strings.TrimSpace(office)
	w.capacities.Set(building, office, capacity)

	name := model.SentinelPlaceholder
	if isStorage {
		name = model.SentinelStorage
	}
	w.occupants.Add(model.Occupant{
		Name:     name,
		Office:   office,
		Building: building,
	}, model.StatusCurrent)
}

// DeleteRoom removes the capacity entry and every occupant record at the room
// in all three partitions. The cascade is destructive, not a soft unassign.
func (w *Workspace) DeleteRoom(building, office string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.capacities.Delete(building, office)
	for _, status := range model.Statuses {
		w.occupants.deleteAt(building, office, status)
	}
}

// UpdateRoom renames and/or retypes a room: the capacity entry moves to the
// new key, occupant records in all partitions follow, and on a type change
// the sentinel rows are rewritten. Converting a regular room to storage
// evicts its occupants outright; converting storage back to regular swaps the
// STORAGE row for a PLACEHOLDER when nobody is left.
func (w *Workspace) UpdateRoom(oldBuilding, oldOffice, newBuilding, newOffice string, capacity int, isStorage bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	newBuilding = strings.TrimSpace(newBuilding)
	newOffice = strings.TrimSpace(newOffice)

	wasStorage := w.occupants.currentStorageAt(oldBuilding, oldOffice)

	w.capacities.Delete(oldBuilding, oldOffice)
	w.capacities.Set(newBuilding, newOffice, capacity)

	w.occupants.relocate(oldBuilding, oldOffice, newBuilding, newOffice)

	if isStorage == wasStorage {
		return
	}
	if isStorage {
		// Regular -> storage: the room's occupants are evicted, not reassigned.
		w.occupants.deleteAt(newBuilding, newOffice, model.StatusCurrent)
		w.occupants.Add(model.Occupant{
			Name:     model.SentinelStorage,
			Office:   newOffice,
			Building: newBuilding,
		}, model.StatusCurrent)
		return
	}
	// Storage -> regular: drop the STORAGE row, keep the room visible.
	w.occupants.deleteStorageSentinels(newBuilding, newOffice)
	if w.occupants.currentCountAt(newBuilding, newOffice) == 0 {
		w.occupants.Add(model.Occupant{
			Name:     model.SentinelPlaceholder,
			Office:   newOffice,
			Building: newBuilding,
		}, model.StatusCurrent)
	}
}
