package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"office-occupancy-backend/config"
	"office-occupancy-backend/internal/model"
	"office-occupancy-backend/internal/occupancy"
	"office-occupancy-backend/internal/store"
	"office-occupancy-backend/internal/tabular"
)

func newTestServer(t *testing.T, snap store.Snapshot) (*gin.Engine, *store.Workspace, config.DataConfig) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	data := config.DataConfig{
		WorkbookPath: filepath.Join(dir, "allocation.xlsx"),
		CapacityPath: filepath.Join(dir, "room_capacities.json"),
		BackupDir:    filepath.Join(dir, "backup"),
	}

	ws := store.FromSnapshot(snap)
	handler := NewHandler(ws, nil, data, cache.New(time.Minute, time.Minute))
	router := NewRouter(handler, &config.ServerConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTL:        time.Minute,
	})
	return router, ws, data
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func seedSnapshot() store.Snapshot {
	return store.Snapshot{
		Current: []model.Occupant{
			{Name: "Ada Lovelace", Status: model.StatusCurrent, Building: "North", Office: "3.17"},
			{Name: "Grace Hopper", Status: model.StatusCurrent, Building: "North", Office: "3.17"},
		},
		Capacities: map[string]int{"North:3.17": 2},
	}
}

func TestGetPartition(t *testing.T) {
	router, _, _ := newTestServer(t, seedSnapshot())

	w := doJSON(t, router, http.MethodGet, "/api/occupants/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]model.Occupant](t, w)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ada Lovelace", rows[0].Name, "sorted by name")

	w = doJSON(t, router, http.MethodGet, "/api/occupants/retired", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOccupantAndRecompute(t *testing.T) {
	router, _, _ := newTestServer(t, seedSnapshot())

	// Warm the occupancy cache, then mutate; the next read must be fresh.
	w := doJSON(t, router, http.MethodGet, "/api/occupancy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	before := decode[[]occupancy.Row](t, w)
	require.Len(t, before, 1)
	assert.Equal(t, occupancy.StatusFull, before[0].Status)

	w = doJSON(t, router, http.MethodPost, "/api/occupants", model.Occupant{
		Name: "Alan Turing", Building: "North", Office: "3.17",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[model.Occupant](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.StatusCurrent, created.Status, "blank status defaults to Current")

	w = doJSON(t, router, http.MethodGet, "/api/occupancy", nil)
	after := decode[[]occupancy.Row](t, w)
	require.Len(t, after, 1)
	assert.Equal(t, 3, after[0].Occupants)
	assert.Equal(t, occupancy.StatusOverfilled, after[0].Status)
}

func TestCreateOccupantValidation(t *testing.T) {
	router, _, _ := newTestServer(t, store.Snapshot{})

	w := doJSON(t, router, http.MethodPost, "/api/occupants", model.Occupant{Building: "North"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReplacePartitionMovesRows(t *testing.T) {
	router, ws, _ := newTestServer(t, seedSnapshot())

	rows := ws.Partition(model.StatusCurrent)
	rows[0].Status = model.StatusPast

	w := doJSON(t, router, http.MethodPut, "/api/occupants/current", rows)
	require.Equal(t, http.StatusOK, w.Code)
	remaining := decode[[]model.Occupant](t, w)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Grace Hopper", remaining[0].Name)

	past := ws.Partition(model.StatusPast)
	require.Len(t, past, 1)
	assert.Equal(t, "Ada Lovelace", past[0].Name)
}

func TestDeleteOccupant(t *testing.T) {
	router, ws, _ := newTestServer(t, seedSnapshot())

	w := doJSON(t, router, http.MethodDelete, "/api/occupants/current?name=Nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/occupants/current?name=Ada%20Lovelace", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, ws.Partition(model.StatusCurrent), 1)

	id := ws.Partition(model.StatusCurrent)[0].ID
	w = doJSON(t, router, http.MethodDelete, "/api/occupants/current?id="+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, ws.Partition(model.StatusCurrent))
}

func TestAssignRoom(t *testing.T) {
	router, ws, _ := newTestServer(t, seedSnapshot())

	w := doJSON(t, router, http.MethodPost, "/api/occupants/current/assign", assignRequest{
		Name: "Ada Lovelace", Building: "South", Office: "1.01",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "South", ws.Partition(model.StatusCurrent)[0].Building)

	w = doJSON(t, router, http.MethodPost, "/api/occupants/current/assign", assignRequest{
		Name: "Nobody", Building: "South", Office: "1.01",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoomLifecycle(t *testing.T) {
	router, ws, _ := newTestServer(t, seedSnapshot())

	w := doJSON(t, router, http.MethodPost, "/api/rooms", map[string]any{
		"building": "South", "office": "2.01", "capacity": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/rooms/capacity?building=South&office=2.01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"capacity":3`)

	w = doJSON(t, router, http.MethodPut, "/api/rooms/capacity", map[string]any{
		"building": "South", "office": "2.01", "capacity": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, ws.Capacity("South", "2.01"))

	w = doJSON(t, router, http.MethodPut, "/api/rooms/capacity", map[string]any{
		"building": "South", "office": "2.01", "capacity": -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/rooms", map[string]any{
		"building": "South", "office": "2.01",
		"newBuilding": "South", "newOffice": "2.02",
		"capacity": 5, "isStorage": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/occupancy", nil)
	rows := decode[[]occupancy.Row](t, w)
	var found bool
	for _, r := range rows {
		if r.Building == "South" && r.Office == "2.02" {
			found = true
			assert.Equal(t, occupancy.StatusStorage, r.Status)
		}
	}
	assert.True(t, found)

	w = doJSON(t, router, http.MethodDelete, "/api/rooms?building=South&office=2.02", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, r := range ws.Occupancy() {
		assert.False(t, r.Building == "South" && r.Office == "2.02")
	}
}

func TestSummariesAndUniqueValues(t *testing.T) {
	router, _, _ := newTestServer(t, seedSnapshot())

	w := doJSON(t, router, http.MethodGet, "/api/occupancy/buildings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	buildings := decode[[]occupancy.BuildingSummary](t, w)
	require.Len(t, buildings, 1)
	assert.Equal(t, "North", buildings[0].Building)
	assert.Equal(t, 100.0, buildings[0].OccupancyRate)

	w = doJSON(t, router, http.MethodGet, "/api/occupancy/floors?building=North", nil)
	floors := decode[[]occupancy.FloorSummary](t, w)
	require.Len(t, floors, 1)
	assert.Equal(t, "3", floors[0].Floor)

	w = doJSON(t, router, http.MethodGet, "/api/buildings", nil)
	assert.Equal(t, []string{"North"}, decode[[]string](t, w))

	w = doJSON(t, router, http.MethodGet, "/api/offices", nil)
	assert.Equal(t, []string{"3.17"}, decode[[]string](t, w))
}

func TestSaveAndExport(t *testing.T) {
	router, _, data := newTestServer(t, seedSnapshot())

	w := doJSON(t, router, http.MethodPost, "/api/save", nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := os.Stat(data.WorkbookPath)
	require.NoError(t, err)

	capacities, err := tabular.ReadCapacities(data.CapacityPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"North:3.17": 2}, capacities)

	// A second save backs up the first workbook.
	w = doJSON(t, router, http.MethodPost, "/api/save", nil)
	require.Equal(t, http.StatusOK, w.Code)
	backups, err := os.ReadDir(data.BackupDir)
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	// Saved workbook reimports to the same roster.
	snap, err := tabular.ReadWorkbook(data.WorkbookPath)
	require.NoError(t, err)
	require.Len(t, snap.Current, 2)
	assert.Equal(t, "Ada Lovelace", snap.Current[0].Name)

	w = doJSON(t, router, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotZero(t, w.Body.Len())

	w = doJSON(t, router, http.MethodGet, "/api/export/current.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Name,Status,Email address,Position,Office,Building")
	assert.Contains(t, w.Body.String(), "Ada Lovelace")

	w = doJSON(t, router, http.MethodGet, "/api/export/retired.csv", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
