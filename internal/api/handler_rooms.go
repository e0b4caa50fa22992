package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCapacity handles GET /api/rooms/capacity?building=&office=.
func (h *Handler) GetCapacity(c *gin.Context) {
	building, office := c.Query("building"), c.Query("office")
	if office == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "office is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"building": building,
		"office":   office,
		"capacity": h.ws.Capacity(building, office),
	})
}

type capacityRequest struct {
	Building string `json:"building"`
	Office   string `json:"office" binding:"required"`
	Capacity *int   `json:"capacity" binding:"required"`
}

// PutCapacity handles PUT /api/rooms/capacity.
func (h *Handler) PutCapacity(c *gin.Context) {
	var req capacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid capacity payload"})
		return
	}
	if *req.Capacity < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Capacity must be non-negative"})
		return
	}
	h.ws.SetCapacity(req.Building, req.Office, *req.Capacity)
	h.flushCache()
	c.JSON(http.StatusOK, gin.H{
		"building": req.Building,
		"office":   req.Office,
		"capacity": *req.Capacity,
	})
}

type roomRequest struct {
	Building  string `json:"building"`
	Office    string `json:"office" binding:"required"`
	Capacity  int    `json:"capacity"`
	IsStorage bool   `json:"isStorage"`
}

// CreateRoom handles POST /api/rooms. Besides the capacity entry this plants
// the sentinel roster row that keeps an empty room visible.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid room payload"})
		return
	}
	if req.Capacity < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Capacity must be non-negative"})
		return
	}
	h.ws.AddRoom(req.Building, req.Office, req.Capacity, req.IsStorage)
	h.flushCache()
	c.JSON(http.StatusCreated, gin.H{"created": true})
}

// DeleteRoom handles DELETE /api/rooms?building=&office=. The cascade removes
// every occupant record at the room from all three partitions.
func (h *Handler) DeleteRoom(c *gin.Context) {
	building, office := c.Query("building"), c.Query("office")
	if office == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "office is required"})
		return
	}
	h.ws.DeleteRoom(building, office)
	h.flushCache()
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type updateRoomRequest struct {
	Building    string `json:"building"`
	Office      string `json:"office" binding:"required"`
	NewBuilding string `json:"newBuilding"`
	NewOffice   string `json:"newOffice" binding:"required"`
	Capacity    int    `json:"capacity"`
	IsStorage   bool   `json:"isStorage"`
}

// UpdateRoom handles PUT /api/rooms: rename and/or retype a room, cascading
// to its occupant records.
func (h *Handler) UpdateRoom(c *gin.Context) {
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid room payload"})
		return
	}
	if req.Capacity < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Capacity must be non-negative"})
		return
	}
	h.ws.UpdateRoom(req.Building, req.Office, req.NewBuilding, req.NewOffice, req.Capacity, req.IsStorage)
	h.flushCache()
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
