package store

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"Wardrobe/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seed fills the store with one of everything.
func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	secID, err := s.SaveCustomSection(ctx, &model.CustomSection{ID: "sec", Name: "Shoes"})
	require.NoError(t, err)
	top := addItem(t, s, model.FixedCategory(model.Tops))
	top.Favorite = true
	_, err = s.SaveItem(ctx, top)
	require.NoError(t, err)
	shoe := addItem(t, s, model.CustomCategory(secID))
	gone := addItem(t, s, model.FixedCategory(model.Bottoms))
	_, err = s.DeleteItem(ctx, gone.ID)
	require.NoError(t, err)

	_, err = s.AddToWeeklyDay(ctx, model.Tuesday, top.ID)
	require.NoError(t, err)
	_, err = s.AddToWeeklyDay(ctx, model.Tuesday, shoe.ID)
	require.NoError(t, err)
	_, err = s.SaveOutfit(ctx, &model.SavedOutfit{Items: []string{top.ID, shoe.ID}, Notes: "date night", Date: "Fri"})
	require.NoError(t, err)

	img, err := s.SaveImage(ctx, "", []byte("scarf"))
	require.NoError(t, err)
	_, err = s.SaveShoppingItem(ctx, &model.ShoppingItem{Name: "Scarf", Price: "$20", ImageID: img})
	require.NoError(t, err)
	_, err = s.SaveShoppingItem(ctx, &model.ShoppingItem{Name: "Socks"})
	require.NoError(t, err)

	require.NoError(t, s.SetSetting(model.SettingUserName, "Ann"))
	require.NoError(t, s.SetSetting(model.SettingTempUnit, model.Celsius))
	require.NoError(t, s.SetSetting(model.SettingLocation, model.Location{Lat: 1, Lon: 2, Name: "Home"}))
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	seed(t, src)

	doc, err := src.ExportAllData(ctx)
	require.NoError(t, err)
	assert.Equal(t, DocumentVersion, doc.Version)
	assert.Len(t, doc.Items, 3)
	assert.Len(t, doc.Images, 4)
	require.NotNil(t, doc.Settings.UserName)
	assert.Nil(t, doc.Settings.Theme)

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	decoded, err := DecodeDocument(&buf)
	require.NoError(t, err)

	dst := newTestStore(t)
	sum, err := dst.ImportAllData(ctx, decoded)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Items)
	assert.Equal(t, 1, sum.Trash)
	assert.Equal(t, 4, sum.Images)
	assert.Equal(t, 2, sum.Shopping)

	again, err := dst.ExportAllData(ctx)
	require.NoError(t, err)
	// совпадает всё, кроме момента экспорта
	again.ExportDate = doc.ExportDate
	var want, got bytes.Buffer
	require.NoError(t, doc.Encode(&want))
	require.NoError(t, again.Encode(&got))
	assert.JSONEq(t, want.String(), got.String())

	name, err := GetSetting(dst, model.SettingUserName, "")
	require.NoError(t, err)
	assert.Equal(t, "Ann", name)

	rep, err := dst.CheckConsistency(ctx)
	require.NoError(t, err)
	assert.True(t, rep.OK(), "%+v", rep.Problems)
}

func TestImport_ReplacesExistingData(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	doc := &Document{Version: 1, Items: []ItemDoc{}, Images: []ImageDoc{}}
	_, err := s.ImportAllData(ctx, doc)
	require.NoError(t, err)

	all, err := s.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	shop, err := s.GetAllShoppingItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, shop)

	// настройки вне документа не трогаются
	name, err := GetSetting(s, model.SettingUserName, "")
	require.NoError(t, err)
	assert.Equal(t, "Ann", name)
}

func TestImport_VersionMismatch_NoMutation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	for _, doc := range []*Document{nil, {}, {Version: 2}} {
		_, err := s.ImportAllData(ctx, doc)
		var fe *FormatError
		assert.ErrorAs(t, err, &fe)
	}

	all, err := s.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestImport_AggregatesProblems(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	raw := `{
	  "version": 1,
	  "items": [
	    {"id": 1, "imageId": 10, "category": "hats"},
	    {"id": 2, "imageId": 99, "category": "custom-"},
	    {"id": 2, "imageId": 10, "category": "tops"}
	  ],
	  "images": [{"id": 10, "data": "AQID"}],
	  "weeklyPlan": [{"day": "caturday", "items": []}],
	  "shoppingList": [{"id": 5, "name": ""}]
	}`
	doc, err := DecodeDocument(strings.NewReader(raw))
	require.NoError(t, err)

	_, err = s.ImportAllData(ctx, doc)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	msg := err.Error()
	assert.Contains(t, msg, "items[0]")
	assert.Contains(t, msg, "items[1]")
	assert.Contains(t, msg, "items[2]")
	assert.Contains(t, msg, "weeklyPlan[0]")
	assert.Contains(t, msg, "shoppingList[0]")

	// ничего не изменилось
	all, err := s.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestExportImport_ItemWithDeletedImage(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	it := addItem(t, src, model.FixedCategory(model.Tops))
	require.NoError(t, src.DeleteImage(ctx, it.ImageID))

	doc, err := src.ExportAllData(ctx)
	require.NoError(t, err)

	dst := newTestStore(t)
	sum, err := dst.ImportAllData(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Items)
	assert.Equal(t, 1, sum.MissingImages)

	got, err := dst.GetItem(ctx, it.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, it.ImageID, got.ImageID)

	rep, err := dst.CheckConsistency(ctx)
	require.NoError(t, err)
	require.Len(t, rep.Problems, 1)
	assert.Equal(t, ProblemMissingImage, rep.Problems[0].Kind)
}

func TestImport_BadSettings_NoMutation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	doc := &Document{
		Version:  DocumentVersion,
		Settings: ExportSettings{Location: &model.Location{Lat: math.NaN(), Name: "Nowhere"}},
	}
	_, err := s.ImportAllData(ctx, doc)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)

	all, err := s.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	loc, err := GetSetting(s, model.SettingLocation, model.Location{})
	require.NoError(t, err)
	assert.Equal(t, "Home", loc.Name)
}

func TestImport_LegacyDocument(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	raw := `{
	  "version": 1,
	  "exportDate": "2024-05-01T10:00:00.000Z",
	  "items": [
	    {"id": 1714557600123.42, "imageId": 1714557600100, "category": "custom-77", "favorite": true, "deleted": false, "dateAdded": "2024-04-30T08:00:00.000Z"},
	    {"id": 1714557600200, "imageId": 1714557600201, "category": "outerwear", "deleted": true, "deletedDate": 1714557600999, "originalCategory": "outerwear"}
	  ],
	  "images": [
	    {"id": 1714557600100, "data": "data:image/jpeg;base64,AQID"},
	    {"id": 1714557600201, "data": "BAU="}
	  ],
	  "weeklyPlan": [{"day": "Monday", "type": "work", "items": [1714557600123.42, 1714557600123.42], "notes": ""}],
	  "savedOutfits": [],
	  "customSections": [],
	  "shoppingList": [],
	  "settings": {"userName": "Bo", "theme": "dark"}
	}`
	doc, err := DecodeDocument(strings.NewReader(raw))
	require.NoError(t, err)
	_, err = s.ImportAllData(ctx, doc)
	require.NoError(t, err)

	it, err := s.GetItem(ctx, "1714557600123.42")
	require.NoError(t, err)
	require.NotNil(t, it)
	// раздела custom-77 нет в документе
	assert.Equal(t, model.FixedCategory(model.Other), it.Category)
	assert.True(t, it.Favorite)

	img, err := s.GetImage(ctx, "1714557600100")
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, []byte{1, 2, 3}, img.Data)

	trash, err := s.GetAllTrash(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	require.NotNil(t, trash[0].DeletedDate)
	assert.Equal(t, int64(1714557600999), trash[0].DeletedDate.UnixMilli())

	plan, err := s.GetWeeklyDay(ctx, model.Monday)
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, []string{"1714557600123.42"}, plan.Items)

	theme, err := GetSetting(s, model.SettingTheme, model.ThemeLight)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, theme)
}

func TestDecodeDocument_Malformed(t *testing.T) {
	_, err := DecodeDocument(strings.NewReader(`{"version": "one"}`))
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)

	_, err = DecodeDocument(strings.NewReader(`{"version":1,"images":[{"id":"a","data":"%%%"}]}`))
	assert.ErrorAs(t, err, &fe)
}

func TestCheckConsistency_FindsProblems(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ok := addItem(t, s, model.FixedCategory(model.Tops))
	_, err := s.SaveItem(ctx, &model.Item{ID: "no-img", ImageID: "ghost", Category: model.FixedCategory(model.Tops)})
	require.NoError(t, err)
	_, err = s.SaveItem(ctx, &model.Item{ID: "no-sec", ImageID: ok.ImageID, Category: model.CustomCategory("gone")})
	require.NoError(t, err)
	_, err = s.SaveImage(ctx, "orphan", []byte("x"))
	require.NoError(t, err)
	_, err = s.AddToWeeklyDay(ctx, model.Sunday, "deleted-long-ago")
	require.NoError(t, err)
	_, err = s.SaveOutfit(ctx, &model.SavedOutfit{ID: "o", Items: []string{ok.ID, "nope"}})
	require.NoError(t, err)

	rep, err := s.CheckConsistency(ctx)
	require.NoError(t, err)
	assert.False(t, rep.OK())
	assert.Equal(t, 3, rep.Items)

	kinds := map[string]string{}
	for _, p := range rep.Problems {
		kinds[p.Kind] = p.Ref
	}
	assert.Equal(t, "no-img", kinds[ProblemMissingImage])
	assert.Equal(t, "no-sec", kinds[ProblemMissingSection])
	assert.Equal(t, "orphan", kinds[ProblemOrphanImage])
	assert.Equal(t, "sunday", kinds[ProblemDanglingWeekly])
	assert.Equal(t, "o", kinds[ProblemDanglingOutfit])
	assert.NotContains(t, kinds, ProblemChecksumMismatch)
}
