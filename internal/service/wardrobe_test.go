package service

import (
	"context"
	"path/filepath"
	"testing"

	"Wardrobe/internal/model"
	"Wardrobe/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*WardrobeService, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), store.Options{DBPath: filepath.Join(t.TempDir(), "w.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewWardrobeService(st, nil), st
}

// Сценарий: загрузка, избранное, удаление, восстановление
func TestScenario_FavoriteSurvivesTrash(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	a, err := svc.Upload(ctx, model.FixedCategory(model.Tops), []byte("img1"))
	require.NoError(t, err)

	img, err := st.GetImage(ctx, a.ImageID)
	require.NoError(t, err)
	require.NotNil(t, img)

	a, err = svc.ToggleFavorite(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, a.Favorite)

	e, err := svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FixedCategory(model.Tops), e.OriginalCategory)

	back, err := svc.Restore(ctx, a.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.FixedCategory(model.Tops), back.Category)
	assert.True(t, back.Favorite)
	assert.False(t, back.Deleted)
}

func TestMove(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	a, err := svc.Upload(ctx, model.FixedCategory(model.Tops), []byte("x"))
	require.NoError(t, err)

	_, err = svc.Move(ctx, a.ID, model.CustomCategory("nope"))
	assert.ErrorIs(t, err, store.ErrInvalid)

	secID, err := st.SaveCustomSection(ctx, &model.CustomSection{Name: "Gym"})
	require.NoError(t, err)
	moved, err := svc.Move(ctx, a.ID, model.CustomCategory(secID))
	require.NoError(t, err)
	assert.Equal(t, model.CustomCategory(secID), moved.Category)

	_, err = svc.Move(ctx, "ghost", model.FixedCategory(model.Other))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddToWeeklyOutfit_Idempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Upload(ctx, model.FixedCategory(model.Tops), []byte("x"))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = svc.AddToWeeklyOutfit(ctx, model.Wednesday, a.ID)
		require.NoError(t, err)
	}
	p, err := svc.AddToWeeklyOutfit(ctx, model.Wednesday, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, p.Items)

	_, err = svc.AddToWeeklyOutfit(ctx, model.Wednesday, "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResolveItems_SkipsDangling(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Upload(ctx, model.FixedCategory(model.Tops), []byte("a"))
	require.NoError(t, err)
	b, err := svc.Upload(ctx, model.FixedCategory(model.Bottoms), []byte("b"))
	require.NoError(t, err)
	o, err := svc.SaveCurrentOutfit(ctx, []string{b.ID, a.ID}, "")
	require.NoError(t, err)

	_, err = svc.Delete(ctx, a.ID)
	require.NoError(t, err)

	items, err := svc.ResolveItems(ctx, append(o.Items, "never-existed"))
	require.NoError(t, err)
	if assert.Len(t, items, 1) {
		assert.Equal(t, b.ID, items[0].ID)
	}
}

func TestCounts(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	secID, err := st.SaveCustomSection(ctx, &model.CustomSection{Name: "Hats"})
	require.NoError(t, err)
	_, err = svc.Upload(ctx, model.FixedCategory(model.Tops), []byte("1"))
	require.NoError(t, err)
	b, err := svc.Upload(ctx, model.FixedCategory(model.Tops), []byte("2"))
	require.NoError(t, err)
	_, err = svc.ToggleFavorite(ctx, b.ID)
	require.NoError(t, err)
	_, err = svc.Upload(ctx, model.CustomCategory(secID), []byte("3"))
	require.NoError(t, err)

	c, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Total)
	assert.Equal(t, 1, c.Favorites)
	require.Len(t, c.Categories, 5)
	assert.Equal(t, CategoryCount{Category: "tops", Name: "tops", Count: 2}, c.Categories[0])
	assert.Equal(t, CategoryCount{Category: "custom-" + secID, Name: "Hats", Count: 1}, c.Categories[4])
}

func TestPurgeAndEmptyTrash(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		it, err := svc.Upload(ctx, model.FixedCategory(model.Other), []byte{byte(i)})
		require.NoError(t, err)
		_, err = svc.Delete(ctx, it.ID)
		require.NoError(t, err)
	}
	trash, err := st.GetAllTrash(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 3)

	require.NoError(t, svc.Purge(ctx, trash[0].ID))
	n, err := svc.EmptyTrash(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
