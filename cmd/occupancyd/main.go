package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"office-occupancy-backend/config"
	"office-occupancy-backend/internal/api"
	"office-occupancy-backend/internal/db"
	"office-occupancy-backend/internal/store"
	"office-occupancy-backend/internal/tabular"
)

func main() {
	logger := log.New(os.Stdout, "occupancyd ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	var gormDB *gorm.DB
	var snap store.Snapshot

	if cfg.Database.DSN != "" {
		gormDB, err = db.Init(&cfg.Database)
		if err != nil {
			logger.Fatalf("failed to initialize database: %v", err)
		}
		snap, err = store.LoadSnapshot(gormDB)
		if err != nil {
			logger.Fatalf("failed to load snapshot: %v", err)
		}
		logger.Printf("loaded %d/%d/%d occupants and %d rooms from database",
			len(snap.Current), len(snap.Upcoming), len(snap.Past), len(snap.Capacities))
	} else {
		snap, err = tabular.ReadWorkbook(cfg.Data.WorkbookPath)
		if err != nil {
			// Missing or unreadable workbooks degrade to an empty roster
			// rather than blocking the session.
			logger.Printf("could not load workbook %s: %v; starting empty", cfg.Data.WorkbookPath, err)
			snap = store.Snapshot{}
		}
		snap.Capacities, err = tabular.ReadCapacities(cfg.Data.CapacityPath)
		if err != nil {
			logger.Fatalf("failed to load capacity document: %v", err)
		}
	}

	hadCapacities := len(snap.Capacities) > 0
	ws := store.FromSnapshot(snap)
	logger.Println("workspace initialized")

	if gormDB == nil && !hadCapacities {
		// First run: persist the auto-initialized capacity table.
		if err := tabular.WriteCapacities(cfg.Data.CapacityPath, ws.Export().Capacities); err != nil {
			logger.Printf("could not save initialized capacities: %v", err)
		}
	}

	cacheStore := cache.New(cfg.Server.CacheTTL, 2*cfg.Server.CacheTTL)
	handler := api.NewHandler(ws, gormDB, cfg.Data, cacheStore)
	router := api.NewRouter(handler, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
