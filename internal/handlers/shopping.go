package handlers

import (
	"net/http"

	"Wardrobe/internal/config"
	"Wardrobe/internal/model"
	"Wardrobe/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShoppingHandler обслуживает список покупок.
type ShoppingHandler struct {
	Store  *store.Store
	Logger *zap.SugaredLogger
	Config *config.Config
}

func NewShoppingHandler(st *store.Store, logger *zap.SugaredLogger, cfg *config.Config) *ShoppingHandler {
	return &ShoppingHandler{Store: st, Logger: logger, Config: cfg}
}

func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.GetAllShoppingItems(r.Context())
	if err != nil {
		writeError(w, h.Logger, "GetAllShoppingItems", err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(items))
}

// Create принимает multipart/form-data: name, desc, price и необязательный image.
func (h *ShoppingHandler) Create(w http.ResponseWriter, r *http.Request) {
	data, ok := readImageField(w, r, h.Logger, h.Config.ImageMaxBytes(), "image", false)
	if !ok {
		return
	}
	it := &model.ShoppingItem{
		Name:  r.FormValue("name"),
		Desc:  r.FormValue("desc"),
		Price: r.FormValue("price"),
	}

	if len(data) > 0 {
		imageID, err := h.Store.SaveImage(r.Context(), "", data)
		if err != nil {
			writeError(w, h.Logger, "SaveImage", err)
			return
		}
		it.ImageID = imageID
	}
	if _, err := h.Store.SaveShoppingItem(r.Context(), it); err != nil {
		if it.ImageID != "" {
			if derr := h.Store.DeleteImage(r.Context(), it.ImageID); derr != nil {
				h.Logger.Errorw("Create: failed to remove orphan image", "image", it.ImageID, "error", derr)
			}
		}
		writeError(w, h.Logger, "SaveShoppingItem", err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *ShoppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteShoppingItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, "DeleteShoppingItem", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
