package handlers

import (
	"net/http"

	"Wardrobe/internal/service"
	"Wardrobe/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OutfitHandler обслуживает сохранённые комплекты.
type OutfitHandler struct {
	Store    *store.Store
	Wardrobe *service.WardrobeService
	Logger   *zap.SugaredLogger
}

func NewOutfitHandler(st *store.Store, wardrobe *service.WardrobeService, logger *zap.SugaredLogger) *OutfitHandler {
	return &OutfitHandler{Store: st, Wardrobe: wardrobe, Logger: logger}
}

func (h *OutfitHandler) List(w http.ResponseWriter, r *http.Request) {
	outfits, err := h.Store.GetAllSavedOutfits(r.Context())
	if err != nil {
		writeError(w, h.Logger, "GetAllSavedOutfits", err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(outfits))
}

type saveOutfitRequest struct {
	Items []string `json:"items"`
	Notes string   `json:"notes"`
}

// Save сохраняет текущий комплект с датой на момент сохранения.
func (h *OutfitHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveOutfitRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request")
		return
	}
	o, err := h.Wardrobe.SaveCurrentOutfit(r.Context(), req.Items, req.Notes)
	if err != nil {
		writeError(w, h.Logger, "SaveCurrentOutfit", err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OutfitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteSavedOutfit(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, "DeleteSavedOutfit", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
