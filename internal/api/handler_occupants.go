package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"office-occupancy-backend/internal/model"
)

// GetPartition handles GET /api/occupants/:partition.
func (h *Handler) GetPartition(c *gin.Context) {
	status, ok := parsePartition(c.Param("partition"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid partition"})
		return
	}
	c.JSON(http.StatusOK, h.ws.Partition(status))
}

// CreateOccupant handles POST /api/occupants. The record's own status field
// selects the partition; a blank status defaults to Current.
func (h *Handler) CreateOccupant(c *gin.Context) {
	var o model.Occupant
	if err := c.ShouldBindJSON(&o); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid occupant payload"})
		return
	}
	if o.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	status := o.Status
	if !status.Valid() {
		status = model.StatusCurrent
	}
	created, ok := h.ws.AddOccupant(o, status)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	h.flushCache()
	c.JSON(http.StatusCreated, created)
}

// ReplacePartition handles PUT /api/occupants/:partition. The body replaces
// the partition wholesale; rows whose status field changed are relocated to
// their new partition instead of being written in place.
func (h *Handler) ReplacePartition(c *gin.Context) {
	status, ok := parsePartition(c.Param("partition"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid partition"})
		return
	}
	var rows []model.Occupant
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid occupant list"})
		return
	}
	h.ws.ReplacePartition(status, rows)
	h.flushCache()
	c.JSON(http.StatusOK, h.ws.Partition(status))
}

// DeleteOccupant handles DELETE /api/occupants/:partition?id= or ?name=.
// The id form is unambiguous; the name form removes the first exact match.
func (h *Handler) DeleteOccupant(c *gin.Context) {
	status, ok := parsePartition(c.Param("partition"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid partition"})
		return
	}

	var deleted bool
	switch {
	case c.Query("id") != "":
		deleted = h.ws.DeleteOccupantByID(c.Query("id"), status)
	case c.Query("name") != "":
		deleted = h.ws.DeleteOccupant(c.Query("name"), status)
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "id or name is required"})
		return
	}
	if !deleted {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Occupant not found"})
		return
	}
	h.flushCache()
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type assignRequest struct {
	Name     string `json:"name" binding:"required"`
	Building string `json:"building"`
	Office   string `json:"office"`
}

// AssignRoom handles POST /api/occupants/:partition/assign.
func (h *Handler) AssignRoom(c *gin.Context) {
	status, ok := parsePartition(c.Param("partition"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid partition"})
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment payload"})
		return
	}
	if !h.ws.AssignRoom(req.Name, req.Building, req.Office, status) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Occupant not found"})
		return
	}
	h.flushCache()
	c.JSON(http.StatusOK, gin.H{"assigned": true})
}

// GetBuildings handles GET /api/buildings.
func (h *Handler) GetBuildings(c *gin.Context) {
	c.JSON(http.StatusOK, h.ws.UniqueBuildings())
}

// GetOffices handles GET /api/offices.
func (h *Handler) GetOffices(c *gin.Context) {
	c.JSON(http.StatusOK, h.ws.UniqueOffices())
}
