package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"Wardrobe/internal/model"
	"Wardrobe/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Мок хранилища
type mockStorage struct{ mock.Mock }

func (m *mockStorage) SaveImage(ctx context.Context, id string, data []byte) (string, error) {
	args := m.Called(ctx, id, data)
	return args.String(0), args.Error(1)
}
func (m *mockStorage) DeleteImage(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStorage) SaveItem(ctx context.Context, it *model.Item) (string, error) {
	args := m.Called(ctx, it)
	return args.String(0), args.Error(1)
}
func (m *mockStorage) GetItem(ctx context.Context, id string) (*model.Item, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStorage) ListItems(ctx context.Context, f store.ItemFilter) ([]model.Item, error) {
	args := m.Called(ctx, f)
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStorage) DeleteItem(ctx context.Context, id string) (*model.TrashEntry, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.TrashEntry); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStorage) RestoreFromTrash(ctx context.Context, id string, target *model.Category) (*model.Item, error) {
	args := m.Called(ctx, id, target)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStorage) EmptyTrash(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *mockStorage) PurgeTrashEntry(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStorage) GetCustomSection(ctx context.Context, id string) (*model.CustomSection, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.CustomSection); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStorage) GetAllCustomSections(ctx context.Context) ([]model.CustomSection, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.CustomSection); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStorage) AddToWeeklyDay(ctx context.Context, day model.Weekday, itemID string) (*model.WeeklyDayPlan, error) {
	args := m.Called(ctx, day, itemID)
	if v, ok := args.Get(0).(*model.WeeklyDayPlan); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStorage) SaveOutfit(ctx context.Context, o *model.SavedOutfit) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

var _ Storage = (*mockStorage)(nil)

func TestUpload_RollsBackImageOnItemFailure(t *testing.T) {
	ms := new(mockStorage)
	svc := NewWardrobeService(ms, zap.NewNop().Sugar())
	ctx := context.Background()

	ms.On("SaveImage", mock.Anything, "", []byte("jpg")).Return("img1", nil).Once()
	ms.On("SaveItem", mock.Anything, mock.AnythingOfType("*model.Item")).Return("", errors.New("disk full")).Once()
	ms.On("DeleteImage", mock.Anything, "img1").Return(nil).Once()

	it, err := svc.Upload(ctx, model.FixedCategory(model.Tops), []byte("jpg"))
	assert.Error(t, err)
	assert.Nil(t, it)
	ms.AssertExpectations(t)
}

func TestUpload_Validation(t *testing.T) {
	ms := new(mockStorage)
	svc := NewWardrobeService(ms, nil)
	ctx := context.Background()

	_, err := svc.Upload(ctx, model.FixedCategory(model.Tops), nil)
	assert.ErrorIs(t, err, store.ErrInvalid)

	_, err = svc.Upload(ctx, model.Category{}, []byte("x"))
	assert.ErrorIs(t, err, store.ErrInvalid)

	// раздела нет: картинка не сохраняется
	ms.On("GetCustomSection", mock.Anything, "s1").Return(nil, nil).Once()
	_, err = svc.Upload(ctx, model.CustomCategory("s1"), []byte("x"))
	assert.ErrorIs(t, err, store.ErrInvalid)
	ms.AssertNotCalled(t, "SaveImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleFavorite_NotFound(t *testing.T) {
	ms := new(mockStorage)
	svc := NewWardrobeService(ms, nil)

	ms.On("GetItem", mock.Anything, "x").Return(nil, nil).Once()
	_, err := svc.ToggleFavorite(context.Background(), "x")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestToggleLaundry_Flips(t *testing.T) {
	ms := new(mockStorage)
	svc := NewWardrobeService(ms, nil)

	ms.On("GetItem", mock.Anything, "a").Return(&model.Item{ID: "a", Category: model.FixedCategory(model.Tops)}, nil).Once()
	ms.On("SaveItem", mock.Anything, mock.MatchedBy(func(it *model.Item) bool { return it.Laundry })).Return("a", nil).Once()

	it, err := svc.ToggleLaundry(context.Background(), "a")
	assert.NoError(t, err)
	assert.True(t, it.Laundry)
	ms.AssertExpectations(t)
}

func TestSaveCurrentOutfit_StampsDate(t *testing.T) {
	ms := new(mockStorage)
	svc := NewWardrobeService(ms, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 7, 12, 0, 0, 0, time.UTC) }

	ms.On("SaveOutfit", mock.Anything, mock.AnythingOfType("*model.SavedOutfit")).Return("o1", nil).Once()
	o, err := svc.SaveCurrentOutfit(context.Background(), []string{"a", "b", "a"}, "picnic")
	assert.NoError(t, err)
	assert.Equal(t, "Fri, Jun 7, 2024", o.Date)
	assert.Equal(t, []string{"a", "b"}, o.Items)

	_, err = svc.SaveCurrentOutfit(context.Background(), nil, "")
	assert.ErrorIs(t, err, store.ErrInvalid)
}

func TestEmptyTrash_PropagatesError(t *testing.T) {
	ms := new(mockStorage)
	svc := NewWardrobeService(ms, nil)

	ms.On("EmptyTrash", mock.Anything).Return(0, &store.StorageError{Op: "empty trash", Err: errors.New("locked")}).Once()
	n, err := svc.EmptyTrash(context.Background())
	var se *store.StorageError
	assert.ErrorAs(t, err, &se)
	assert.Zero(t, n)
}
