package handlers

import (
	"net/http"

	"Wardrobe/internal/model"
	"Wardrobe/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SectionHandler обслуживает пользовательские разделы.
type SectionHandler struct {
	Store  *store.Store
	Logger *zap.SugaredLogger
}

func NewSectionHandler(st *store.Store, logger *zap.SugaredLogger) *SectionHandler {
	return &SectionHandler{Store: st, Logger: logger}
}

func (h *SectionHandler) List(w http.ResponseWriter, r *http.Request) {
	sections, err := h.Store.GetAllCustomSections(r.Context())
	if err != nil {
		writeError(w, h.Logger, "GetAllCustomSections", err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(sections))
}

type createSectionRequest struct {
	Name string `json:"name"`
}

func (h *SectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSectionRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request")
		return
	}
	sec := &model.CustomSection{Name: req.Name}
	if _, err := h.Store.SaveCustomSection(r.Context(), sec); err != nil {
		writeError(w, h.Logger, "SaveCustomSection", err)
		return
	}
	writeJSON(w, http.StatusCreated, sec)
}

// Delete удаляет раздел, перенося его вещи в корзину.
func (h *SectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	moved, err := h.Store.DeleteCustomSection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "DeleteCustomSection", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"moved": moved})
}
