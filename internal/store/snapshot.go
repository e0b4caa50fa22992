package store

import (
	"fmt"

	"gorm.io/gorm"

	"office-occupancy-backend/internal/model"
)

// Snapshot is the plain tabular form of a workspace: the three partitions plus
// the capacity table as a keyed document. It is what gets persisted and what
// imports construct a workspace from.
type Snapshot struct {
	Current    []model.Occupant
	Upcoming   []model.Occupant
	Past       []model.Occupant
	Capacities map[string]int
}

// Export captures the workspace as a snapshot, partitions sorted by name.
func (w *Workspace) Export() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Current:    w.occupants.Partition(model.StatusCurrent),
		Upcoming:   w.occupants.Partition(model.StatusUpcoming),
		Past:       w.occupants.Partition(model.StatusPast),
		Capacities: w.capacities.Snapshot(),
	}
}

// FromSnapshot builds a fresh workspace from a snapshot.
func FromSnapshot(snap Snapshot) *Workspace {
	return NewWorkspace(
		NewOccupantStore(snap.Current, snap.Upcoming, snap.Past),
		NewCapacityStore(snap.Capacities),
	)
}

// LoadSnapshot reads the persisted roster and capacity table from the
// database. An empty database yields an empty snapshot, not an error.
func LoadSnapshot(db *gorm.DB) (Snapshot, error) {
	var occupants []model.Occupant
	if err := db.Find(&occupants).Error; err != nil {
		return Snapshot{}, fmt.Errorf("failed to load occupants: %w", err)
	}

	var snap Snapshot
	for _, o := range occupants {
		switch o.Status {
		case model.StatusUpcoming:
			snap.Upcoming = append(snap.Upcoming, o)
		case model.StatusPast:
			snap.Past = append(snap.Past, o)
		default:
			snap.Current = append(snap.Current, o)
		}
	}

	var rooms []model.RoomCapacity
	if err := db.Find(&rooms).Error; err != nil {
		return Snapshot{}, fmt.Errorf("failed to load room capacities: %w", err)
	}
	snap.Capacities = make(map[string]int, len(rooms))
	for _, r := range rooms {
		snap.Capacities[model.RoomKey(r.Building, r.Office)] = r.Capacity
	}
	return snap, nil
}

// SaveSnapshot rewrites the persisted tables from the snapshot in one
// transaction. Whole-table rewrites match the in-memory design; at this data
// scale there is nothing to gain from diffing.
func SaveSnapshot(db *gorm.DB, snap Snapshot) error {
	return db.Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := wipe.Delete(&model.Occupant{}).Error; err != nil {
			return fmt.Errorf("failed to clear occupants: %w", err)
		}
		if err := wipe.Delete(&model.RoomCapacity{}).Error; err != nil {
			return fmt.Errorf("failed to clear room capacities: %w", err)
		}

		var occupants []model.Occupant
		occupants = append(occupants, snap.Current...)
		occupants = append(occupants, snap.Upcoming...)
		occupants = append(occupants, snap.Past...)
		if len(occupants) > 0 {
			if err := tx.Create(&occupants).Error; err != nil {
				return fmt.Errorf("failed to save occupants: %w", err)
			}
		}

		rooms := make([]model.RoomCapacity, 0, len(snap.Capacities))
		for key, capacity := range snap.Capacities {
			building, office, ok := model.ParseRoomKey(key)
			if !ok {
				continue
			}
			rooms = append(rooms, model.RoomCapacity{Building: building, Office: office, Capacity: capacity})
		}
		if len(rooms) > 0 {
			if err := tx.Create(&rooms).Error; err != nil {
				return fmt.Errorf("failed to save room capacities: %w", err)
			}
		}
		return nil
	})
}
