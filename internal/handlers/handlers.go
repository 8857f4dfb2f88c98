package handlers

import (
	"Wardrobe/internal/config"
	"Wardrobe/internal/metrics"
	"Wardrobe/internal/middleware"
	"Wardrobe/internal/repo/fs"
	"Wardrobe/internal/service"
	"Wardrobe/internal/store"
	"Wardrobe/internal/weather"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	st *store.Store,
	wardrobe *service.WardrobeService,
	forecasts *weather.Service,
	backups *fs.BackupFSStore,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	// Handlers
	itemHandler := NewItemHandler(st, wardrobe, logger, config)
	trashHandler := NewTrashHandler(st, wardrobe, logger)
	weeklyHandler := NewWeeklyHandler(st, wardrobe, logger)
	outfitHandler := NewOutfitHandler(st, wardrobe, logger)
	sectionHandler := NewSectionHandler(st, logger)
	shoppingHandler := NewShoppingHandler(st, logger, config)
	settingsHandler := NewSettingsHandler(st, logger)
	dataHandler := NewDataHandler(st, backups, logger)
	weatherHandler := NewWeatherHandler(st, forecasts, logger)

	// Items & images
	r.Get("/api/items", itemHandler.List)
	r.Post("/api/items", itemHandler.Upload)
	r.Get("/api/items/counts", itemHandler.Counts)
	r.Post("/api/items/resolve", itemHandler.Resolve)
	r.Get("/api/items/{id}", itemHandler.Get)
	r.Delete("/api/items/{id}", itemHandler.Delete)
	r.Post("/api/items/{id}/favorite", itemHandler.ToggleFavorite)
	r.Post("/api/items/{id}/laundry", itemHandler.ToggleLaundry)
	r.Post("/api/items/{id}/move", itemHandler.Move)
	r.Get("/api/images/{id}", itemHandler.Image)

	// Trash
	r.Get("/api/trash", trashHandler.List)
	r.Delete("/api/trash", trashHandler.Empty)
	r.Post("/api/trash/{id}/restore", trashHandler.Restore)
	r.Delete("/api/trash/{id}", trashHandler.Purge)

	// Weekly plan
	r.Get("/api/weekly", weeklyHandler.List)
	r.Get("/api/weekly/{day}", weeklyHandler.Get)
	r.Put("/api/weekly/{day}", weeklyHandler.Save)
	r.Delete("/api/weekly/{day}", weeklyHandler.Clear)
	r.Post("/api/weekly/{day}/items", weeklyHandler.AddItem)
	r.Delete("/api/weekly/{day}/items/{itemID}", weeklyHandler.RemoveItem)

	// Outfits
	r.Get("/api/outfits", outfitHandler.List)
	r.Post("/api/outfits", outfitHandler.Save)
	r.Delete("/api/outfits/{id}", outfitHandler.Delete)

	// Custom sections
	r.Get("/api/sections", sectionHandler.List)
	r.Post("/api/sections", sectionHandler.Create)
	r.Delete("/api/sections/{id}", sectionHandler.Delete)

	// Shopping list
	r.Get("/api/shopping", shoppingHandler.List)
	r.Post("/api/shopping", shoppingHandler.Create)
	r.Delete("/api/shopping/{id}", shoppingHandler.Delete)

	// Settings & onboarding
	r.Get("/api/settings", settingsHandler.List)
	r.Get("/api/settings/{key}", settingsHandler.Get)
	r.Put("/api/settings/{key}", settingsHandler.Set)
	r.Delete("/api/settings/{key}", settingsHandler.Delete)
	r.Get("/api/status", settingsHandler.Status)
	r.Post("/api/status/migrated", settingsHandler.MarkMigrated)

	// Export / import / backups / consistency
	r.Get("/api/export", dataHandler.Export)
	r.Post("/api/import", dataHandler.Import)
	r.Get("/api/backups", dataHandler.ListBackups)
	r.Post("/api/backups", dataHandler.CreateBackup)
	r.Get("/api/check", dataHandler.Check)

	// Weather
	r.Get("/api/weather", weatherHandler.Current)
	r.Get("/api/weather/suggest", weatherHandler.Suggest)
	r.Post("/api/weather/location", weatherHandler.Locate)

	r.Handle("/metrics", metrics.Handler())

	return &Handler{Router: r}
}
