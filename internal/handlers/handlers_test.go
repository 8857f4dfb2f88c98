package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"Wardrobe/internal/config"
	"Wardrobe/internal/handlers"
	"Wardrobe/internal/model"
	"Wardrobe/internal/repo/fs"
	"Wardrobe/internal/service"
	"Wardrobe/internal/store"
	"Wardrobe/internal/weather"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubFetcher отдаёт фиксированный прогноз вместо похода в сеть
type stubFetcher struct {
	temp  float64
	place string
	err   error
	calls int
}

func (f *stubFetcher) Forecast(_ context.Context, _, _ float64, unit string) (*weather.Forecast, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &weather.Forecast{
		Unit:    unit,
		Current: weather.Current{Temperature: f.temp, ApparentTemperature: f.temp},
	}, nil
}

func (f *stubFetcher) ReverseGeocode(_ context.Context, _, _ float64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.place, nil
}

type testEnv struct {
	h       *handlers.Handler
	store   *store.Store
	backups *fs.BackupFSStore
	fetcher *stubFetcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st, err := store.Open(context.Background(), store.Options{DBPath: filepath.Join(t.TempDir(), "wardrobe.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger := zap.NewNop().Sugar()
	fetcher := &stubFetcher{temp: 40, place: "Oslo"}
	backups := fs.NewBackupFSStore(t.TempDir())
	cfg := &config.Config{ImageMaxMB: 1}

	h := handlers.NewHandler(
		st,
		service.NewWardrobeService(st, logger),
		weather.NewService(st, fetcher, logger),
		backups,
		logger,
		cfg,
	)
	return &testEnv{h: h, store: st, backups: backups, fetcher: fetcher}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.h.Router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) upload(t *testing.T, target string, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, _ = fw.Write(image)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	e.h.Router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) uploadItem(t *testing.T, category string) model.Item {
	t.Helper()
	rr := e.upload(t, "/api/items", map[string]string{"category": category}, []byte("png-bytes-"+category))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var it model.Item
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &it))
	return it
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestItems_UploadListAndImage(t *testing.T) {
	env := newTestEnv(t)
	it := env.uploadItem(t, "tops")

	assert.NotEmpty(t, it.ID)
	assert.NotEmpty(t, it.ImageID)
	assert.Equal(t, model.FixedCategory(model.Tops), it.Category)

	rr := env.do(t, http.MethodGet, "/api/items?category=tops", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]model.Item](t, rr), 1)

	rr = env.do(t, http.MethodGet, "/api/items?category=bottoms", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/api/images/"+it.ImageID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "png-bytes-tops", rr.Body.String())
	assert.Equal(t, `"`+store.Checksum([]byte("png-bytes-tops"))+`"`, rr.Header().Get("ETag"))

	rr = env.do(t, http.MethodGet, "/api/images/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestItems_UploadValidation(t *testing.T) {
	env := newTestEnv(t)

	rr := env.upload(t, "/api/items", map[string]string{"category": "shoes"}, []byte("x"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.upload(t, "/api/items", map[string]string{"category": "tops"}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.upload(t, "/api/items", map[string]string{"category": "custom-nope"}, []byte("x"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	big := bytes.Repeat([]byte{1}, 3<<19)
	rr = env.upload(t, "/api/items", map[string]string{"category": "tops"}, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/items?favorite=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestItems_ToggleAndMove(t *testing.T) {
	env := newTestEnv(t)
	it := env.uploadItem(t, "tops")

	rr := env.do(t, http.MethodPost, "/api/items/"+it.ID+"/favorite", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[model.Item](t, rr).Favorite)

	rr = env.do(t, http.MethodPost, "/api/items/"+it.ID+"/laundry", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[model.Item](t, rr).Laundry)

	rr = env.do(t, http.MethodGet, "/api/items?favorite=true&laundry=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]model.Item](t, rr), 1)

	rr = env.do(t, http.MethodPost, "/api/items/"+it.ID+"/move", map[string]string{"category": "outerwear"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, model.FixedCategory(model.Outerwear), decode[model.Item](t, rr).Category)

	rr = env.do(t, http.MethodPost, "/api/items/"+it.ID+"/move", map[string]string{"category": "custom-gone"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/items/missing/favorite", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestItems_Counts(t *testing.T) {
	env := newTestEnv(t)
	env.uploadItem(t, "tops")
	env.uploadItem(t, "tops")
	env.uploadItem(t, "bottoms")

	rr := env.do(t, http.MethodGet, "/api/items/counts", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	c := decode[service.Counts](t, rr)
	assert.Equal(t, 3, c.Total)
	require.NotEmpty(t, c.Categories)
	assert.Equal(t, "tops", c.Categories[0].Category)
	assert.Equal(t, 2, c.Categories[0].Count)
}

func TestTrash_DeleteRestorePurge(t *testing.T) {
	env := newTestEnv(t)
	a := env.uploadItem(t, "tops")
	b := env.uploadItem(t, "bottoms")

	rr := env.do(t, http.MethodDelete, "/api/items/"+a.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	e := decode[model.TrashEntry](t, rr)
	assert.True(t, e.Deleted)
	assert.Equal(t, a.Category, e.OriginalCategory)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/items/"+a.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/items/"+a.ID, nil).Code)

	rr = env.do(t, http.MethodGet, "/api/trash", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]model.TrashEntry](t, rr), 1)

	// без тела вещь возвращается в исходную категорию
	rr = env.do(t, http.MethodPost, "/api/trash/"+a.ID+"/restore", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, model.FixedCategory(model.Tops), decode[model.Item](t, rr).Category)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/api/items/"+b.ID, nil).Code)
	rr = env.do(t, http.MethodPost, "/api/trash/"+b.ID+"/restore", map[string]string{"category": "other"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, model.FixedCategory(model.Other), decode[model.Item](t, rr).Category)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/api/items/"+b.ID, nil).Code)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/trash/"+b.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/images/"+b.ImageID, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/api/trash/"+b.ID+"/restore", nil).Code)
}

func TestTrash_Empty(t *testing.T) {
	env := newTestEnv(t)
	for _, cat := range []string{"tops", "bottoms"} {
		it := env.uploadItem(t, cat)
		require.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/api/items/"+it.ID, nil).Code)
	}

	rr := env.do(t, http.MethodDelete, "/api/trash", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"purged":2}`, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/api/trash", nil)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestWeekly_Flow(t *testing.T) {
	env := newTestEnv(t)
	a := env.uploadItem(t, "tops")
	b := env.uploadItem(t, "bottoms")

	rr := env.do(t, http.MethodPut, "/api/weekly/Monday", map[string]any{
		"type": "work", "items": []string{a.ID, a.ID}, "notes": "meeting",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{a.ID}, decode[model.WeeklyDayPlan](t, rr).Items)

	rr = env.do(t, http.MethodPost, "/api/weekly/monday/items", map[string]string{"itemId": b.ID})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{a.ID, b.ID}, decode[model.WeeklyDayPlan](t, rr).Items)

	rr = env.do(t, http.MethodPost, "/api/weekly/monday/items", map[string]string{"itemId": "missing"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodDelete, "/api/weekly/monday/items/"+a.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{b.ID}, decode[model.WeeklyDayPlan](t, rr).Items)

	rr = env.do(t, http.MethodDelete, "/api/weekly/monday", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	p := decode[model.WeeklyDayPlan](t, rr)
	assert.Empty(t, p.Items)
	assert.Equal(t, "work", p.Type)
	assert.Equal(t, "meeting", p.Notes)

	rr = env.do(t, http.MethodGet, "/api/weekly/friday", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"day":"friday","type":"","items":[],"notes":""}`, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/api/weekly/someday", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/weekly", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]model.WeeklyDayPlan](t, rr), 1)
}

func TestOutfits_Flow(t *testing.T) {
	env := newTestEnv(t)
	a := env.uploadItem(t, "tops")

	rr := env.do(t, http.MethodPost, "/api/outfits", map[string]any{"items": []string{}, "notes": "empty"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/outfits", map[string]any{"items": []string{a.ID}, "notes": "date night"})
	require.Equal(t, http.StatusCreated, rr.Code)
	o := decode[model.SavedOutfit](t, rr)
	assert.NotEmpty(t, o.ID)
	assert.NotEmpty(t, o.Date)

	rr = env.do(t, http.MethodPost, "/api/items/resolve", map[string]any{"ids": []string{"gone", a.ID}})
	require.Equal(t, http.StatusOK, rr.Code)
	resolved := decode[[]model.Item](t, rr)
	require.Len(t, resolved, 1)
	assert.Equal(t, a.ID, resolved[0].ID)

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/outfits/"+o.ID, nil).Code)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/outfits/"+o.ID, nil).Code)
	assert.JSONEq(t, `[]`, env.do(t, http.MethodGet, "/api/outfits", nil).Body.String())
}

func TestSections_DeleteMovesItemsToTrash(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/sections", map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/sections", map[string]string{"name": "Gym"})
	require.Equal(t, http.StatusCreated, rr.Code)
	sec := decode[model.CustomSection](t, rr)

	env.uploadItem(t, "custom-"+sec.ID)
	env.uploadItem(t, "custom-"+sec.ID)

	rr = env.do(t, http.MethodDelete, "/api/sections/"+sec.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"moved":2}`, rr.Body.String())

	assert.JSONEq(t, `[]`, env.do(t, http.MethodGet, "/api/items", nil).Body.String())
	assert.Len(t, decode[[]model.TrashEntry](t, env.do(t, http.MethodGet, "/api/trash", nil)), 2)

	rr = env.do(t, http.MethodDelete, "/api/sections/"+sec.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"moved":0}`, rr.Body.String())
}

func TestShopping_Flow(t *testing.T) {
	env := newTestEnv(t)

	rr := env.upload(t, "/api/shopping", map[string]string{"desc": "no name"}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.upload(t, "/api/shopping", map[string]string{"name": "Boots", "price": "$120"}, []byte("boots"))
	require.Equal(t, http.StatusCreated, rr.Code)
	it := decode[model.ShoppingItem](t, rr)
	require.NotEmpty(t, it.ImageID)
	assert.Equal(t, "$120", it.Price)

	rr = env.do(t, http.MethodGet, "/api/shopping", nil)
	assert.Len(t, decode[[]model.ShoppingItem](t, rr), 1)

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/shopping/"+it.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/images/"+it.ImageID, nil).Code)
}

func TestWriteError_StorageErrorIs500(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Close())

	rr := env.do(t, http.MethodGet, "/api/items", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rr.Body.String())
}
