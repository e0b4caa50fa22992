package model

import "strings"

// Status identifies the lifecycle partition an occupant record belongs to.
type Status string

const (
	StatusCurrent  Status = "Current"
	StatusUpcoming Status = "Upcoming"
	StatusPast     Status = "Past"
)

// Statuses lists the three partitions in their canonical order.
var Statuses = []Status{StatusCurrent, StatusUpcoming, StatusPast}

// Valid reports whether s names one of the three partitions.
func (s Status) Valid() bool {
	return s == StatusCurrent || s == StatusUpcoming || s == StatusPast
}

// Occupant represents one person-room association.
type Occupant struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Name     string `gorm:"size:256;not null" json:"name"`
	Status   Status `gorm:"size:16;not null;index" json:"status"`
	Email    string `gorm:"size:256" json:"email"`
	Position string `gorm:"size:128" json:"position"`
	Office   string `gorm:"size:64" json:"office"`
	Building string `gorm:"size:128" json:"building"`
}

// Sentinel names embedded in the roster to represent room metadata. A STORAGE
// row marks the room as storage; a PLACEHOLDER row keeps an empty room visible
// in the occupancy table. Neither counts as a person.
const (
	SentinelStorage     = "STORAGE"
	SentinelPlaceholder = "PLACEHOLDER"
)

// IsStorageSentinel reports whether the record's name marks its room as storage.
// The match is a case-insensitive substring match, as in the source workbooks.
func (o Occupant) IsStorageSentinel() bool {
	return containsFold(o.Name, SentinelStorage)
}

// IsPlaceholderSentinel reports whether the record is a visibility placeholder.
func (o Occupant) IsPlaceholderSentinel() bool {
	return containsFold(o.Name, SentinelPlaceholder)
}

// IsSentinel reports whether the record is synthetic rather than a person.
func (o Occupant) IsSentinel() bool {
	return o.IsStorageSentinel() || o.IsPlaceholderSentinel()
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToUpper(s), substr)
}
