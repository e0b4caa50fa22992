package api

import (
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"office-occupancy-backend/internal/store"
	"office-occupancy-backend/internal/tabular"
)

// ExportWorkbook handles GET /api/export: the three partitions plus the
// derived occupancy table, bundled into one workbook download.
func (h *Handler) ExportWorkbook(c *gin.Context) {
	snap := h.ws.Export()
	rows := h.ws.Occupancy()

	filename := "office_allocation_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := tabular.WriteWorkbookTo(c.Writer, snap, rows); err != nil {
		log.Printf("workbook export failed: %v", err)
	}
}

// ExportCSV handles GET /api/export/:partition.csv for per-partition flat
// files.
func (h *Handler) ExportCSV(c *gin.Context) {
	name := c.Param("partition")
	status, ok := parsePartition(trimCSVSuffix(name))
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid partition"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+trimCSVSuffix(name)+`.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := tabular.WriteCSV(c.Writer, h.ws.Partition(status)); err != nil {
		log.Printf("csv export failed: %v", err)
	}
}

// Save handles POST /api/save: persist the workspace to the database snapshot
// when one is configured, otherwise to the workbook and capacity document,
// with a timestamped backup of the previous workbook.
func (h *Handler) Save(c *gin.Context) {
	snap := h.ws.Export()

	if h.db != nil {
		if err := store.SaveSnapshot(h.db, snap); err != nil {
			log.Printf("snapshot save failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save snapshot"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": "database"})
		return
	}

	backup, err := tabular.Backup(h.data.WorkbookPath, h.data.BackupDir)
	if err != nil {
		// A failed backup is survivable; the save itself still proceeds.
		log.Printf("workbook backup failed: %v", err)
	}
	if err := tabular.WriteWorkbook(h.data.WorkbookPath, snap, h.ws.Occupancy()); err != nil {
		log.Printf("workbook save failed: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save workbook"})
		return
	}
	if err := tabular.WriteCapacities(h.data.CapacityPath, snap.Capacities); err != nil {
		log.Printf("capacity save failed: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save capacities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"saved":  filepath.Base(h.data.WorkbookPath),
		"backup": backup,
	})
}

func trimCSVSuffix(s string) string {
	const suffix = ".csv"
	if len(s) > len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)]
	}
	return s
}
