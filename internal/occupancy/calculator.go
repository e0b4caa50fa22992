package occupancy

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"office-occupancy-backend/internal/model"
)

// Room status tiers, from the classification ladder in Classify.
const (
	StatusStorage    = "storage"
	StatusVacant     = "vacant"
	StatusOverfilled = "overfilled"
	StatusLow        = "low"
	StatusMedium     = "medium"
	StatusHigh       = "high"
	StatusFull       = "full"
)

// Row is one derived per-room occupancy record. Occupants counts people only;
// STORAGE and PLACEHOLDER sentinels are excluded from the count.
type Row struct {
	Building    string  `json:"building"`
	Office      string  `json:"office"`
	Floor       string  `json:"floor"`
	Occupants   int     `json:"occupants"`
	IsStorage   bool    `json:"isStorage"`
	MaxCapacity int     `json:"maxCapacity"`
	Remaining   int     `json:"remaining"`
	Percentage  float64 `json:"percentage"`
	Status      string  `json:"status"`
}

// ExtractFloor takes the substring before the first '.' in an office number,
// or "Unknown" when there is no separator.
func ExtractFloor(office string) string {
	if i := strings.Index(office, "."); i >= 0 {
		return office[:i]
	}
	return "Unknown"
}

// Compute derives the per-room occupancy table from the current-partition
// roster and a capacity table keyed by model.RoomKey. Every distinct
// (building, office) pair in the roster produces exactly one row. The result
// is sorted by building, then floor (numerically where possible), then office.
func Compute(current []model.Occupant, capacities map[string]int) []Row {
	type roomKey struct{ building, office string }

	groups := make(map[roomKey][]model.Occupant)
	var order []roomKey
	for _, o := range current {
		k := roomKey{o.Building, o.Office}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], o)
	}

	rows := make([]Row, 0, len(order))
	for _, k := range order {
		occupants := 0
		isStorage := false
		for _, o := range groups[k] {
			if o.IsStorageSentinel() {
				isStorage = true
				continue
			}
			if o.IsPlaceholderSentinel() {
				continue
			}
			occupants++
		}

		capacity := model.DefaultCapacity
		if c, ok := capacities[model.RoomKey(k.building, k.office)]; ok {
			capacity = c
		}

		remaining := capacity - occupants
		percentage := 0.0
		if capacity > 0 {
			percentage = round1(float64(occupants) / float64(capacity) * 100)
		}

		rows = append(rows, Row{
			Building:    k.building,
			Office:      k.office,
			Floor:       ExtractFloor(k.office),
			Occupants:   occupants,
			IsStorage:   isStorage,
			MaxCapacity: capacity,
			Remaining:   remaining,
			Percentage:  percentage,
			Status:      Classify(isStorage, occupants, remaining, percentage),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Building != rows[j].Building {
			return rows[i].Building < rows[j].Building
		}
		fi, fj := floorSortKey(rows[i].Floor), floorSortKey(rows[j].Floor)
		if fi != fj {
			return fi < fj
		}
		return rows[i].Office < rows[j].Office
	})
	return rows
}

// Classify maps occupancy metrics to a status tier. The checks run in priority
// order; a storage or empty room is never reported overfilled.
func Classify(isStorage bool, occupants, remaining int, percentage float64) string {
	switch {
	case isStorage:
		return StatusStorage
	case occupants == 0:
		return StatusVacant
	case remaining < 0:
		return StatusOverfilled
	case percentage <= 25:
		return StatusLow
	case percentage <= 50:
		return StatusMedium
	case percentage <= 75:
		return StatusHigh
	default:
		return StatusFull
	}
}

// InitCapacities derives a capacity table from current occupancy alone:
// storage rooms get 0, other rooms the larger of their headcount and the
// default capacity. Used when no capacity document exists yet.
func InitCapacities(current []model.Occupant) map[string]int {
	rows := Compute(current, nil)
	capacities := make(map[string]int, len(rows))
	for _, r := range rows {
		key := model.RoomKey(r.Building, r.Office)
		if r.IsStorage {
			capacities[key] = 0
			continue
		}
		capacities[key] = max(r.Occupants, model.DefaultCapacity)
	}
	return capacities
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// floorSortKey orders numeric floors before non-numeric ones ("Unknown",
// lettered basements) which sort last.
func floorSortKey(floor string) float64 {
	if f, err := strconv.ParseFloat(floor, 64); err == nil {
		return f
	}
	return math.Inf(1)
}
