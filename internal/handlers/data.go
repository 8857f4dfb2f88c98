package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"Wardrobe/internal/repo/fs"
	"Wardrobe/internal/store"

	"go.uber.org/zap"
)

// maxImportBytes ограничивает размер загружаемого документа импорта
const maxImportBytes = 512 << 20

// DataHandler обслуживает экспорт, импорт, бэкапы и проверку целостности.
type DataHandler struct {
	Store   *store.Store
	Backups *fs.BackupFSStore
	Logger  *zap.SugaredLogger
}

func NewDataHandler(st *store.Store, backups *fs.BackupFSStore, logger *zap.SugaredLogger) *DataHandler {
	return &DataHandler{Store: st, Backups: backups, Logger: logger}
}

// Export отдаёт полный документ экспорта файлом.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Store.ExportAllData(r.Context())
	if err != nil {
		writeError(w, h.Logger, "ExportAllData", err)
		return
	}
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		writeError(w, h.Logger, "Export", err)
		return
	}
	name := fs.BackupName(time.Now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Import заменяет все данные документом из тела запроса
// или, при ?backup=<name>, сохранённым бэкапом.
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	var src io.Reader
	if name := r.URL.Query().Get("backup"); name != "" {
		if h.Backups == nil {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "backups are not configured"})
			return
		}
		data, err := h.Backups.Load(name)
		switch {
		case errors.Is(err, fs.ErrInvalidName):
			badRequest(w, err.Error())
			return
		case errors.Is(err, os.ErrNotExist):
			writeJSON(w, http.StatusNotFound, errorBody{Error: "backup not found"})
			return
		case err != nil:
			writeError(w, h.Logger, "LoadBackup", err)
			return
		}
		src = bytes.NewReader(data)
	} else {
		src = http.MaxBytesReader(w, r.Body, maxImportBytes)
	}

	doc, err := store.DecodeDocument(src)
	if err != nil {
		writeError(w, h.Logger, "DecodeDocument", err)
		return
	}
	sum, err := h.Store.ImportAllData(r.Context(), doc)
	if err != nil {
		writeError(w, h.Logger, "ImportAllData", err)
		return
	}
	h.Logger.Infow("data imported", "items", sum.Items, "trash", sum.Trash, "images", sum.Images)
	writeJSON(w, http.StatusOK, sum)
}

func (h *DataHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	if h.Backups == nil {
		writeJSON(w, http.StatusOK, []fs.BackupInfo{})
		return
	}
	list, err := h.Backups.List()
	if err != nil {
		writeError(w, h.Logger, "ListBackups", err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(list))
}

type backupResponse struct {
	fs.BackupInfo
	Pruned int `json:"pruned"`
}

// CreateBackup пишет текущий экспорт в каталог бэкапов; ?keep=N оставляет N последних.
func (h *DataHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	if h.Backups == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "backups are not configured"})
		return
	}
	keep := -1
	if v := r.URL.Query().Get("keep"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(w, "keep must be a positive number")
			return
		}
		keep = n
	}

	doc, err := h.Store.ExportAllData(r.Context())
	if err != nil {
		writeError(w, h.Logger, "ExportAllData", err)
		return
	}
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		writeError(w, h.Logger, "CreateBackup", err)
		return
	}
	name := fs.BackupName(doc.ExportDate.Time)
	if _, err := h.Backups.Save(name, buf.Bytes()); err != nil {
		writeError(w, h.Logger, "SaveBackup", err)
		return
	}

	resp := backupResponse{BackupInfo: fs.BackupInfo{Name: name, Size: int64(buf.Len()), ModTime: doc.ExportDate.Time}}
	if keep > 0 {
		if resp.Pruned, err = h.Backups.Prune(keep); err != nil {
			writeError(w, h.Logger, "PruneBackups", err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Check запускает проверку ссылочной целостности.
func (h *DataHandler) Check(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Store.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, h.Logger, "CheckConsistency", err)
		return
	}
	rep.Problems = orEmpty(rep.Problems)
	writeJSON(w, http.StatusOK, rep)
}
