package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetOccupancy handles GET /api/occupancy: the derived per-room table,
// recomputed from the current roster and capacity table on every call.
func (h *Handler) GetOccupancy(c *gin.Context) {
	c.JSON(http.StatusOK, h.ws.Occupancy())
}

// GetBuildingSummaries handles GET /api/occupancy/buildings.
func (h *Handler) GetBuildingSummaries(c *gin.Context) {
	c.JSON(http.StatusOK, h.ws.BuildingSummaries())
}

// GetFloorSummaries handles GET /api/occupancy/floors?building=. "All" and an
// empty value both mean every building.
func (h *Handler) GetFloorSummaries(c *gin.Context) {
	building := c.Query("building")
	if building == "All" {
		building = ""
	}
	c.JSON(http.StatusOK, h.ws.FloorSummaries(building))
}

// GetRoomDetail handles GET /api/rooms/detail?building=&office=: one room's
// derived row together with everyone currently located there.
func (h *Handler) GetRoomDetail(c *gin.Context) {
	building, office := c.Query("building"), c.Query("office")
	if office == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "office is required"})
		return
	}
	row, occupants, ok := h.ws.RoomDetail(building, office)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": row, "occupants": occupants})
}
