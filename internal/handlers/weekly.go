package handlers

import (
	"net/http"

	"Wardrobe/internal/model"
	"Wardrobe/internal/service"
	"Wardrobe/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WeeklyHandler обслуживает план образов на неделю.
type WeeklyHandler struct {
	Store    *store.Store
	Wardrobe *service.WardrobeService
	Logger   *zap.SugaredLogger
}

func NewWeeklyHandler(st *store.Store, wardrobe *service.WardrobeService, logger *zap.SugaredLogger) *WeeklyHandler {
	return &WeeklyHandler{Store: st, Wardrobe: wardrobe, Logger: logger}
}

// List отдаёт сохранённые дни в календарном порядке.
func (h *WeeklyHandler) List(w http.ResponseWriter, r *http.Request) {
	plan, err := h.Store.GetWeeklyPlan(r.Context())
	if err != nil {
		writeError(w, h.Logger, "GetWeeklyPlan", err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(plan))
}

// Get отдаёт план дня; несохранённый день отдаётся пустым.
func (h *WeeklyHandler) Get(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	p, err := h.Store.GetWeeklyDay(r.Context(), day)
	if err != nil {
		writeError(w, h.Logger, "GetWeeklyDay", err)
		return
	}
	if p == nil {
		p = &model.WeeklyDayPlan{Day: day, Items: []string{}}
	}
	writeJSON(w, http.StatusOK, p)
}

type weeklyDayRequest struct {
	Type  string   `json:"type"`
	Items []string `json:"items"`
	Notes string   `json:"notes"`
}

// Save целиком заменяет план дня.
func (h *WeeklyHandler) Save(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	var req weeklyDayRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request")
		return
	}
	p := &model.WeeklyDayPlan{Day: day, Type: req.Type, Items: req.Items, Notes: req.Notes}
	if err := h.Store.SaveWeeklyDay(r.Context(), p); err != nil {
		writeError(w, h.Logger, "SaveWeeklyDay", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Clear убирает вещи дня, оставляя тип и заметки.
func (h *WeeklyHandler) Clear(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	p, err := h.Store.ClearWeeklyDay(r.Context(), day)
	if err != nil {
		writeError(w, h.Logger, "ClearWeeklyDay", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type addItemRequest struct {
	ItemID string `json:"itemId"`
}

// AddItem добавляет активную вещь в день; повторное добавление ничего не меняет.
func (h *WeeklyHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil || req.ItemID == "" {
		badRequest(w, "invalid request")
		return
	}
	p, err := h.Wardrobe.AddToWeeklyOutfit(r.Context(), day, req.ItemID)
	if err != nil {
		writeError(w, h.Logger, "AddToWeeklyOutfit", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *WeeklyHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	p, err := h.Store.RemoveFromWeeklyDay(r.Context(), day, chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, h.Logger, "RemoveFromWeeklyDay", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func dayParam(w http.ResponseWriter, r *http.Request) (model.Weekday, bool) {
	day, err := model.ParseWeekday(chi.URLParam(r, "day"))
	if err != nil {
		badRequest(w, err.Error())
		return "", false
	}
	return day, true
}
