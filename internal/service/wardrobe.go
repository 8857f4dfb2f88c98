package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"Wardrobe/internal/metrics"
	"Wardrobe/internal/model"
	"Wardrobe/internal/store"

	"go.uber.org/zap"
)

// OutfitDateLayout: формат отображаемой даты сохранённого комплекта.
const OutfitDateLayout = "Mon, Jan 2, 2006"

// Storage: подмножество операций хранилища, нужное сервису.
type Storage interface {
	SaveImage(ctx context.Context, id string, data []byte) (string, error)
	DeleteImage(ctx context.Context, id string) error
	SaveItem(ctx context.Context, it *model.Item) (string, error)
	GetItem(ctx context.Context, id string) (*model.Item, error)
	ListItems(ctx context.Context, f store.ItemFilter) ([]model.Item, error)
	DeleteItem(ctx context.Context, id string) (*model.TrashEntry, error)
	RestoreFromTrash(ctx context.Context, id string, target *model.Category) (*model.Item, error)
	EmptyTrash(ctx context.Context) (int, error)
	PurgeTrashEntry(ctx context.Context, id string) error
	GetCustomSection(ctx context.Context, id string) (*model.CustomSection, error)
	GetAllCustomSections(ctx context.Context) ([]model.CustomSection, error)
	AddToWeeklyDay(ctx context.Context, day model.Weekday, itemID string) (*model.WeeklyDayPlan, error)
	SaveOutfit(ctx context.Context, o *model.SavedOutfit) (string, error)
}

var _ Storage = (*store.Store)(nil)

// WardrobeService инкапсулирует пользовательские действия над гардеробом.
type WardrobeService struct {
	store  Storage
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewWardrobeService создаёт сервис поверх хранилища.
func NewWardrobeService(s Storage, logger *zap.SugaredLogger) *WardrobeService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &WardrobeService{store: s, logger: logger, now: time.Now}
}

// Upload сохраняет фото и создаёт вещь в категории cat.
// Сначала пишется картинка, затем вещь; при ошибке картинка удаляется.
func (s *WardrobeService) Upload(ctx context.Context, cat model.Category, data []byte) (*model.Item, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", store.ErrInvalid)
	}
	if err := s.checkCategory(ctx, cat); err != nil {
		return nil, err
	}
	imageID, err := s.store.SaveImage(ctx, "", data)
	if err != nil {
		return nil, err
	}
	it := &model.Item{ImageID: imageID, Category: cat}
	if _, err := s.store.SaveItem(ctx, it); err != nil {
		if derr := s.store.DeleteImage(ctx, imageID); derr != nil {
			s.logger.Errorw("failed to remove image after failed upload", "image", imageID, "error", derr)
		}
		return nil, err
	}
	s.logger.Debugw("item uploaded", "id", it.ID, "category", cat.String(), "bytes", len(data))
	return it, nil
}

// ToggleFavorite переключает признак избранного.
func (s *WardrobeService) ToggleFavorite(ctx context.Context, id string) (*model.Item, error) {
	return s.update(ctx, id, func(it *model.Item) { it.Favorite = !it.Favorite })
}

// ToggleLaundry переключает признак «в стирке».
func (s *WardrobeService) ToggleLaundry(ctx context.Context, id string) (*model.Item, error) {
	return s.update(ctx, id, func(it *model.Item) { it.Laundry = !it.Laundry })
}

// Move переносит вещь в другую категорию. Пользовательский раздел должен существовать.
func (s *WardrobeService) Move(ctx context.Context, id string, cat model.Category) (*model.Item, error) {
	if err := s.checkCategory(ctx, cat); err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(it *model.Item) { it.Category = cat })
}

// Delete переносит вещь в корзину.
func (s *WardrobeService) Delete(ctx context.Context, id string) (*model.TrashEntry, error) {
	return s.store.DeleteItem(ctx, id)
}

// Restore возвращает вещь из корзины в target или в исходную категорию.
func (s *WardrobeService) Restore(ctx context.Context, id string, target *model.Category) (*model.Item, error) {
	if target != nil && target.IsZero() {
		target = nil
	}
	return s.store.RestoreFromTrash(ctx, id, target)
}

// Purge окончательно удаляет одну запись корзины.
func (s *WardrobeService) Purge(ctx context.Context, id string) error {
	if err := s.store.PurgeTrashEntry(ctx, id); err != nil {
		return err
	}
	metrics.TrashPurged.Inc()
	return nil
}

// EmptyTrash очищает корзину и возвращает число удалённых записей.
func (s *WardrobeService) EmptyTrash(ctx context.Context) (int, error) {
	n, err := s.store.EmptyTrash(ctx)
	if err != nil {
		return 0, err
	}
	metrics.TrashPurged.Add(float64(n))
	return n, nil
}

// AddToWeeklyOutfit добавляет активную вещь в план дня.
func (s *WardrobeService) AddToWeeklyOutfit(ctx context.Context, day model.Weekday, itemID string) (*model.WeeklyDayPlan, error) {
	it, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("item %q: %w", itemID, store.ErrNotFound)
	}
	return s.store.AddToWeeklyDay(ctx, day, itemID)
}

// SaveCurrentOutfit сохраняет собранный комплект с текущей датой.
func (s *WardrobeService) SaveCurrentOutfit(ctx context.Context, itemIDs []string, notes string) (*model.SavedOutfit, error) {
	plan := model.WeeklyDayPlan{Items: itemIDs}
	plan.Dedup()
	if len(plan.Items) == 0 {
		return nil, fmt.Errorf("%w: outfit has no items", store.ErrInvalid)
	}
	o := &model.SavedOutfit{
		Items: plan.Items,
		Notes: notes,
		Date:  s.now().Format(OutfitDateLayout),
	}
	if _, err := s.store.SaveOutfit(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ResolveItems возвращает активные вещи по списку id, сохраняя порядок.
// Id удалённых вещей пропускаются без ошибки.
func (s *WardrobeService) ResolveItems(ctx context.Context, ids []string) ([]model.Item, error) {
	res := make([]model.Item, 0, len(ids))
	for _, id := range ids {
		it, err := s.store.GetItem(ctx, id)
		if err != nil {
			return nil, err
		}
		if it == nil {
			s.logger.Debugw("skipping dangling item reference", "id", id)
			continue
		}
		res = append(res, *it)
	}
	return res, nil
}

// CategoryCount: число вещей в категории.
type CategoryCount struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

// Counts: сводка для заголовков сетки.
type Counts struct {
	Categories []CategoryCount `json:"categories"`
	Favorites  int             `json:"favorites"`
	Laundry    int             `json:"laundry"`
	Total      int             `json:"total"`
}

// Counts считает вещи по категориям: сначала встроенные, затем разделы в порядке создания.
func (s *WardrobeService) Counts(ctx context.Context) (*Counts, error) {
	items, err := s.store.ListItems(ctx, store.ItemFilter{})
	if err != nil {
		return nil, err
	}
	sections, err := s.store.GetAllCustomSections(ctx)
	if err != nil {
		return nil, err
	}

	byCat := make(map[string]int)
	res := &Counts{Total: len(items)}
	for _, it := range items {
		byCat[it.Category.String()]++
		if it.Favorite {
			res.Favorites++
		}
		if it.Laundry {
			res.Laundry++
		}
	}

	seen := make(map[string]struct{})
	for _, f := range model.FixedCategories {
		key := string(f)
		seen[key] = struct{}{}
		res.Categories = append(res.Categories, CategoryCount{Category: key, Name: key, Count: byCat[key]})
	}
	for _, sec := range sections {
		key := sec.Category().String()
		seen[key] = struct{}{}
		res.Categories = append(res.Categories, CategoryCount{Category: key, Name: sec.Name, Count: byCat[key]})
	}
	// вещи в исчезнувших разделах тоже видны
	var rest []string
	for key := range byCat {
		if _, ok := seen[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		res.Categories = append(res.Categories, CategoryCount{Category: key, Name: key, Count: byCat[key]})
	}
	return res, nil
}

func (s *WardrobeService) update(ctx context.Context, id string, fn func(it *model.Item)) (*model.Item, error) {
	it, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("item %q: %w", id, store.ErrNotFound)
	}
	fn(it)
	if _, err := s.store.SaveItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *WardrobeService) checkCategory(ctx context.Context, cat model.Category) error {
	if cat.IsZero() {
		return fmt.Errorf("%w: category is required", store.ErrInvalid)
	}
	id, ok := cat.SectionID()
	if !ok {
		return nil
	}
	sec, err := s.store.GetCustomSection(ctx, id)
	if err != nil {
		return err
	}
	if sec == nil {
		return fmt.Errorf("%w: section %q does not exist", store.ErrInvalid, id)
	}
	return nil
}
