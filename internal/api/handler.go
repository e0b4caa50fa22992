package api

import (
	"strings"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"office-occupancy-backend/config"
	"office-occupancy-backend/internal/model"
	"office-occupancy-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	ws    *store.Workspace
	db    *gorm.DB // nil in file-backed mode
	data  config.DataConfig
	cache *cache.Cache
}

// NewHandler creates a new API handler. db may be nil; saves then go to the
// workbook and capacity document named by data.
func NewHandler(ws *store.Workspace, db *gorm.DB, data config.DataConfig, c *cache.Cache) *Handler {
	return &Handler{ws: ws, db: db, data: data, cache: c}
}

// flushCache drops cached GET responses after a mutation so every read sees a
// freshly recomputed occupancy table.
func (h *Handler) flushCache() {
	if h.cache != nil {
		h.cache.Flush()
	}
}

// parsePartition maps a URL segment onto a partition status.
func parsePartition(s string) (model.Status, bool) {
	switch strings.ToLower(s) {
	case "current":
		return model.StatusCurrent, true
	case "upcoming":
		return model.StatusUpcoming, true
	case "past":
		return model.StatusPast, true
	}
	return "", false
}
