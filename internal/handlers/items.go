package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"Wardrobe/internal/config"
	"Wardrobe/internal/model"
	"Wardrobe/internal/service"
	"Wardrobe/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler обслуживает вещи гардероба и их фотографии.
type ItemHandler struct {
	Store    *store.Store
	Wardrobe *service.WardrobeService
	Logger   *zap.SugaredLogger
	Config   *config.Config
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(st *store.Store, wardrobe *service.WardrobeService, logger *zap.SugaredLogger, cfg *config.Config) *ItemHandler {
	return &ItemHandler{Store: st, Wardrobe: wardrobe, Logger: logger, Config: cfg}
}

// List отдаёт активные вещи; фильтры category, favorite, laundry берутся из query.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	var f store.ItemFilter
	q := r.URL.Query()
	if v := q.Get("category"); v != "" {
		cat, err := model.ParseCategory(v)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		f.Category = &cat
	}
	for name, dst := range map[string]**bool{"favorite": &f.Favorite, "laundry": &f.Laundry} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(w, "invalid "+name+" filter")
			return
		}
		*dst = &b
	}

	items, err := h.Store.ListItems(r.Context(), f)
	if err != nil {
		writeError(w, h.Logger, "ListItems", err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(items))
}

// Get отдаёт активную вещь по id.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.Store.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "GetItem", err)
		return
	}
	if it == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "item not found"})
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// Upload принимает multipart/form-data с полями category и image.
func (h *ItemHandler) Upload(w http.ResponseWriter, r *http.Request) {
	data, ok := readImageField(w, r, h.Logger, h.Config.ImageMaxBytes(), "image", true)
	if !ok {
		return
	}
	cat, err := model.ParseCategory(r.FormValue("category"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	it, err := h.Wardrobe.Upload(r.Context(), cat, data)
	if err != nil {
		writeError(w, h.Logger, "Upload", err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

// Delete переносит вещь в корзину и возвращает запись корзины.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	e, err := h.Wardrobe.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "Delete", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *ItemHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	it, err := h.Wardrobe.ToggleFavorite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "ToggleFavorite", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) ToggleLaundry(w http.ResponseWriter, r *http.Request) {
	it, err := h.Wardrobe.ToggleLaundry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "ToggleLaundry", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

type moveRequest struct {
	Category model.Category `json:"category"`
}

// Move переносит вещь в другую категорию.
func (h *ItemHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request")
		return
	}
	it, err := h.Wardrobe.Move(r.Context(), chi.URLParam(r, "id"), req.Category)
	if err != nil {
		writeError(w, h.Logger, "Move", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// Counts отдаёт число вещей по категориям для заголовков сетки.
func (h *ItemHandler) Counts(w http.ResponseWriter, r *http.Request) {
	c, err := h.Wardrobe.Counts(r.Context())
	if err != nil {
		writeError(w, h.Logger, "Counts", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type resolveRequest struct {
	IDs []string `json:"ids"`
}

// Resolve превращает список id (из плана недели или комплекта) в вещи, пропуская удалённые.
func (h *ItemHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request")
		return
	}
	items, err := h.Wardrobe.ResolveItems(r.Context(), req.IDs)
	if err != nil {
		writeError(w, h.Logger, "ResolveItems", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Image отдаёт байты картинки как есть.
func (h *ItemHandler) Image(w http.ResponseWriter, r *http.Request) {
	img, err := h.Store.GetImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "GetImage", err)
		return
	}
	if img == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "image not found"})
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(img.Data))
	w.Header().Set("ETag", `"`+img.Checksum+`"`)
	w.Header().Set("Cache-Control", "private, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

// readImageField разбирает multipart-форму и читает файл field.
// Возвращает false, если ответ об ошибке уже записан.
func readImageField(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, maxBytes int64, field string, required bool) ([]byte, bool) {
	// Лимит общего тела запроса: картинка плюс запас на остальные поля
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "payload too large"})
			return nil, false
		}
		logger.Warnw("invalid multipart form", "error", err)
		badRequest(w, "invalid multipart form")
		return nil, false
	}

	file, _, err := r.FormFile(field)
	if err != nil {
		if !required {
			return nil, true
		}
		badRequest(w, "missing "+field+" file")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		logger.Warnw("failed to read uploaded file", "field", field, "error", err)
		badRequest(w, "failed to read "+field)
		return nil, false
	}
	if int64(len(data)) > maxBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "payload too large"})
		return nil, false
	}
	return data, true
}
