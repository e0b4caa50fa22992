package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"office-occupancy-backend/config"
	"office-occupancy-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
	caching := mw.Cache(h.cache, cfg.CacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/occupants/:partition", h.GetPartition)
		api.POST("/occupants", h.CreateOccupant)
		api.PUT("/occupants/:partition", h.ReplacePartition)
		api.DELETE("/occupants/:partition", h.DeleteOccupant)
		api.POST("/occupants/:partition/assign", h.AssignRoom)

		api.GET("/buildings", h.GetBuildings)
		api.GET("/offices", h.GetOffices)

		api.GET("/occupancy", caching, h.GetOccupancy)
		api.GET("/occupancy/buildings", caching, h.GetBuildingSummaries)
		api.GET("/occupancy/floors", caching, h.GetFloorSummaries)

		api.GET("/rooms/detail", caching, h.GetRoomDetail)
		api.GET("/rooms/capacity", h.GetCapacity)
		api.PUT("/rooms/capacity", h.PutCapacity)
		api.POST("/rooms", h.CreateRoom)
		api.DELETE("/rooms", h.DeleteRoom)
		api.PUT("/rooms", h.UpdateRoom)

		api.POST("/save", h.Save)
		api.GET("/export", h.ExportWorkbook)
		api.GET("/export/:partition", h.ExportCSV)
	}

	return r
}
