package model

import "strings"

// DefaultCapacity applies to rooms with no entry in the capacity table.
const DefaultCapacity = 2

// RoomCapacity persists the maximum occupancy for one room.
type RoomCapacity struct {
	Building string `gorm:"primaryKey;size:128"`
	Office   string `gorm:"primaryKey;size:64"`
	Capacity int    `gorm:"not null"`
}

// RoomKey builds the composite "building:office" key used by the capacity
// table and its persisted document form.
func RoomKey(building, office string) string {
	return building + ":" + office
}

// ParseRoomKey splits a composite key back into building and office. The
// building part never contains a colon; offices may (split on the first).
func ParseRoomKey(key string) (building, office string, ok bool) {
	return strings.Cut(key, ":")
}
