package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"Wardrobe/internal/config"
	"Wardrobe/internal/repo/fs"
	"Wardrobe/internal/service"
	"Wardrobe/internal/store"
	"Wardrobe/internal/weather"

	"go.uber.org/zap"
)

// App: зависимости, которые нужны командам CLI.
type App struct {
	Store    *store.Store
	Wardrobe *service.WardrobeService
	Weather  *weather.Service
	Backups  *fs.BackupFSStore
	Logger   *zap.SugaredLogger
}

// Open открывает хранилище по путям из cfg и собирает сервисы поверх него.
// Возвращает (app, cleanup, error); cleanup закрывает хранилище и безопасен при повторном вызове.
func Open(ctx context.Context, cfg *config.Config) (*App, func() error, error) {
	if cfg.DBPath == "" {
		return nil, nil, fmt.Errorf("database path is not configured")
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	sugar := logger.Sugar()

	st, err := store.Open(ctx, store.Options{
		DBPath:      cfg.DBPath,
		SettingsDir: cfg.SettingsDir,
		Logger:      sugar,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	backupDir := cfg.BackupDir
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(cfg.DBPath), "backups")
	}

	app := &App{
		Store:    st,
		Wardrobe: service.NewWardrobeService(st, sugar),
		Weather:  weather.NewService(st, weather.NewClient(cfg.WeatherURL, cfg.GeocodeURL, cfg.HTTPTimeout), sugar),
		Backups:  fs.NewBackupFSStore(backupDir),
		Logger:   sugar,
	}

	var once sync.Once
	var closeErr error
	cleanup := func() error {
		once.Do(func() {
			closeErr = st.Close()
			_ = logger.Sync()
		})
		return closeErr
	}
	return app, cleanup, nil
}
