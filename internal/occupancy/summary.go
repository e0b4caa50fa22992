package occupancy

import "sort"

// BuildingSummary aggregates the derived table per building.
type BuildingSummary struct {
	Building      string  `json:"building"`
	RoomCount     int     `json:"roomCount"`
	Occupants     int     `json:"occupants"`
	MaxCapacity   int     `json:"maxCapacity"`
	Remaining     int     `json:"remaining"`
	OccupancyRate float64 `json:"occupancyRate"`
}

// FloorSummary aggregates the derived table per (building, floor).
type FloorSummary struct {
	Building      string  `json:"building"`
	Floor         string  `json:"floor"`
	RoomCount     int     `json:"roomCount"`
	Occupants     int     `json:"occupants"`
	MaxCapacity   int     `json:"maxCapacity"`
	Remaining     int     `json:"remaining"`
	OccupancyRate float64 `json:"occupancyRate"`
}

// SummarizeByBuilding rolls the derived table up to one row per building.
func SummarizeByBuilding(rows []Row) []BuildingSummary {
	byBuilding := make(map[string]*BuildingSummary)
	var order []string
	for _, r := range rows {
		s, ok := byBuilding[r.Building]
		if !ok {
			s = &BuildingSummary{Building: r.Building}
			byBuilding[r.Building] = s
			order = append(order, r.Building)
		}
		s.RoomCount++
		s.Occupants += r.Occupants
		s.MaxCapacity += r.MaxCapacity
		s.Remaining += r.Remaining
	}

	sort.Strings(order)
	summaries := make([]BuildingSummary, 0, len(order))
	for _, b := range order {
		s := byBuilding[b]
		s.OccupancyRate = rate(s.Occupants, s.MaxCapacity)
		summaries = append(summaries, *s)
	}
	return summaries
}

// SummarizeByFloor rolls the derived table up to one row per (building,
// floor). An empty building filters nothing; otherwise only that building's
// floors are reported.
func SummarizeByFloor(rows []Row, building string) []FloorSummary {
	type floorKey struct{ building, floor string }

	byFloor := make(map[floorKey]*FloorSummary)
	var order []floorKey
	for _, r := range rows {
		if building != "" && r.Building != building {
			continue
		}
		k := floorKey{r.Building, r.Floor}
		s, ok := byFloor[k]
		if !ok {
			s = &FloorSummary{Building: r.Building, Floor: r.Floor}
			byFloor[k] = s
			order = append(order, k)
		}
		s.RoomCount++
		s.Occupants += r.Occupants
		s.MaxCapacity += r.MaxCapacity
		s.Remaining += r.Remaining
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].building != order[j].building {
			return order[i].building < order[j].building
		}
		fi, fj := floorSortKey(order[i].floor), floorSortKey(order[j].floor)
		if fi != fj {
			return fi < fj
		}
		return order[i].floor < order[j].floor
	})

	summaries := make([]FloorSummary, 0, len(order))
	for _, k := range order {
		s := byFloor[k]
		s.OccupancyRate = rate(s.Occupants, s.MaxCapacity)
		summaries = append(summaries, *s)
	}
	return summaries
}

// rate guards the zero-capacity division the same way Row percentages do.
func rate(occupants, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return round1(float64(occupants) / float64(capacity) * 100)
}
