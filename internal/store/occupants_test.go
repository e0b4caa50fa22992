package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"office-occupancy-backend/internal/model"
)

func occupant(name string, status model.Status) model.Occupant {
	return model.Occupant{Name: name, Status: status}
}

func TestOccupantStoreAdd(t *testing.T) {
	s := NewOccupantStore(nil, nil, nil)

	added, ok := s.Add(model.Occupant{Name: "Ada Lovelace", Building: " North ", Office: " 3.17 "}, model.StatusCurrent)
	require.True(t, ok)
	assert.NotEmpty(t, added.ID, "records get a generated ID at ingestion")
	assert.Equal(t, model.StatusCurrent, added.Status)
	assert.Equal(t, "North", added.Building, "building is trimmed")
	assert.Equal(t, "3.17", added.Office, "office is trimmed")

	_, ok = s.Add(occupant("Nobody", ""), "Retired")
	assert.False(t, ok, "unknown partition is rejected")

	// Duplicate names are permitted; name is a display key.
	_, ok = s.Add(occupant("Ada Lovelace", ""), model.StatusCurrent)
	require.True(t, ok)
	assert.Len(t, s.Partition(model.StatusCurrent), 2)
}

func TestPartitionSortedByName(t *testing.T) {
	s := NewOccupantStore([]model.Occupant{
		occupant("Charlie", model.StatusCurrent),
		occupant("Alice", model.StatusCurrent),
		occupant("Bob", model.StatusCurrent),
	}, nil, nil)

	names := []string{}
	for _, o := range s.Partition(model.StatusCurrent) {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, names)
}

func TestReplacePartitionRelocatesChangedRows(t *testing.T) {
	s := NewOccupantStore([]model.Occupant{
		occupant("Alice", model.StatusCurrent),
		occupant("Bob", model.StatusCurrent),
		occupant("Charlie", model.StatusCurrent),
	}, nil, nil)

	// A bulk grid edit: one row moved to each of the other two partitions.
	rows := s.Partition(model.StatusCurrent)
	rows[0].Status = model.StatusUpcoming
	rows[2].Status = model.StatusPast

	require.True(t, s.ReplacePartition(model.StatusCurrent, rows))

	current := s.Partition(model.StatusCurrent)
	require.Len(t, current, 1)
	assert.Equal(t, "Bob", current[0].Name)

	upcoming := s.Partition(model.StatusUpcoming)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Alice", upcoming[0].Name)
	assert.Equal(t, model.StatusUpcoming, upcoming[0].Status, "record status matches its partition")

	past := s.Partition(model.StatusPast)
	require.Len(t, past, 1)
	assert.Equal(t, "Charlie", past[0].Name)
}

func TestReplacePartitionDefaultsBlankStatus(t *testing.T) {
	s := NewOccupantStore(nil, nil, nil)
	require.True(t, s.ReplacePartition(model.StatusUpcoming, []model.Occupant{{Name: "Dana"}}))

	upcoming := s.Partition(model.StatusUpcoming)
	require.Len(t, upcoming, 1)
	assert.Equal(t, model.StatusUpcoming, upcoming[0].Status)
}

func TestDelete(t *testing.T) {
	s := NewOccupantStore([]model.Occupant{
		occupant("Alice", model.StatusCurrent),
		occupant("Alice", model.StatusCurrent),
		occupant("Bob", model.StatusCurrent),
	}, nil, nil)

	assert.False(t, s.Delete("Nobody", model.StatusCurrent))

	// Name delete removes the first match only.
	assert.True(t, s.Delete("Alice", model.StatusCurrent))
	remaining := s.Partition(model.StatusCurrent)
	assert.Len(t, remaining, 2)

	// ID delete is unambiguous.
	assert.True(t, s.DeleteByID(remaining[0].ID, model.StatusCurrent))
	assert.False(t, s.DeleteByID(remaining[0].ID, model.StatusCurrent))
	assert.Len(t, s.Partition(model.StatusCurrent), 1)
}

func TestAssignRoom(t *testing.T) {
	s := NewOccupantStore([]model.Occupant{occupant("Alice", model.StatusCurrent)}, nil, nil)

	assert.False(t, s.AssignRoom("Alic", "North", "3.17", model.StatusCurrent), "prefix must not match")
	assert.False(t, s.AssignRoom("Alice", "North", "3.17", model.StatusUpcoming), "wrong partition")

	require.True(t, s.AssignRoom("Alice", " North ", " 3.17 ", model.StatusCurrent))
	got := s.Partition(model.StatusCurrent)[0]
	assert.Equal(t, "North", got.Building)
	assert.Equal(t, "3.17", got.Office)
}

func TestUniqueBuildingsAndOffices(t *testing.T) {
	s := NewOccupantStore(
		[]model.Occupant{
			{Name: "A", Building: "North", Office: "3.17"},
			{Name: "B", Building: "South", Office: "1.01"},
		},
		[]model.Occupant{{Name: "C", Building: "North", Office: "2.02"}},
		[]model.Occupant{{Name: "D", Building: "", Office: ""}},
	)

	assert.Equal(t, []string{"North", "South"}, s.UniqueBuildings())
	assert.Equal(t, []string{"1.01", "2.02", "3.17"}, s.UniqueOffices())
}
