package main

import (
	"Wardrobe/internal/config"
	"Wardrobe/internal/handlers"
	"Wardrobe/internal/middleware"
	"Wardrobe/internal/repo/fs"
	"Wardrobe/internal/service"
	"Wardrobe/internal/store"
	"Wardrobe/internal/weather"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfg := config.NewConfig()

	if cfg.Version {
		fmt.Printf("Wardrobe server\nVersion: %s\nBuild date: %s\n", version, buildDate)
		return
	}

	// создаём регистратор zap с уровнем из конфига
	logger, err := cfg.NewLogger()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	//context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := store.Open(ctx, store.Options{
		DBPath:      cfg.DBPath,
		SettingsDir: cfg.SettingsDir,
		Logger:      sugar,
	})
	if err != nil {
		sugar.Fatalw("failed to open store", "error", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			sugar.Errorw("failed to close store", "error", err)
		}
	}()

	wardrobeService := service.NewWardrobeService(st, sugar)
	weatherService := weather.NewService(st, weather.NewClient(cfg.WeatherURL, cfg.GeocodeURL, cfg.HTTPTimeout), sugar)
	backups := fs.NewBackupFSStore(cfg.BackupDir)

	h := handlers.NewHandler(st, wardrobeService, weatherService, backups, sugar, cfg)

	addr := cfg.ListenAddr

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"DataDir", cfg.DataDir,
		"DBPath", cfg.DBPath,
		"SettingsDir", cfg.SettingsDir,
		"BackupDir", cfg.BackupDir,
		"ImageMaxMB", cfg.ImageMaxMB,
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Infow("Shutting down")
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Shutdown failed", "error", err)
		}
	}
}
