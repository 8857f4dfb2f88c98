package store

import (
	"context"

	"Wardrobe/internal/model"
	"Wardrobe/internal/repo"

	"github.com/google/uuid"
)

// ItemFilter narrows ListItems. Nil fields match everything.
type ItemFilter = repo.ItemFilter

// SaveItem upserts an active item and returns its id. A missing id gets a UUID and a
// zero dateAdded is stamped. The image reference is not checked: save the image first.
// A trash entry with the same id is dropped so the item lives in one collection only.
func (s *Store) SaveItem(ctx context.Context, it *model.Item) (string, error) {
	if it == nil {
		return "", invalidf("nil item")
	}
	if it.Category.IsZero() {
		return "", invalidf("item category is required")
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.DateAdded.IsZero() {
		it.DateAdded = s.now()
	}
	it.Deleted = false
	it.DeletedDate = nil
	it.OriginalCategory = model.Category{}

	err := s.inTx(ctx, "save item", func(r *repo.Repositories) error {
		if _, err := r.Trash.Delete(ctx, it.ID); err != nil {
			return err
		}
		return r.Items.Upsert(ctx, it)
	})
	if err != nil {
		return "", err
	}
	return it.ID, nil
}

// GetItem returns the active item or nil when absent.
func (s *Store) GetItem(ctx context.Context, id string) (*model.Item, error) {
	it, err := s.repos.Items.GetByID(ctx, id)
	return it, wrap("get item", err)
}

// GetAllItems returns active items followed by trash entries (deleted=true).
func (s *Store) GetAllItems(ctx context.Context) ([]model.Item, error) {
	items, err := s.repos.Items.List(ctx, repo.ItemFilter{})
	if err != nil {
		return nil, wrap("get all items", err)
	}
	trash, err := s.repos.Trash.List(ctx)
	if err != nil {
		return nil, wrap("get all items", err)
	}
	for _, e := range trash {
		items = append(items, model.Item(e))
	}
	return items, nil
}

// ListItems returns active items matching f, newest first.
func (s *Store) ListItems(ctx context.Context, f ItemFilter) ([]model.Item, error) {
	items, err := s.repos.Items.List(ctx, f)
	return items, wrap("list items", err)
}

// DeleteItem moves an active item to the trash in one transaction.
func (s *Store) DeleteItem(ctx context.Context, id string) (*model.TrashEntry, error) {
	var entry model.TrashEntry
	err := s.inTx(ctx, "delete item", func(r *repo.Repositories) error {
		it, err := r.Items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return ErrNotFound
		}
		entry = it.ToTrash(s.now())
		if err := r.Trash.Upsert(ctx, &entry); err != nil {
			return err
		}
		_, err = r.Items.Delete(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Debugw("item moved to trash", "id", id, "category", entry.OriginalCategory.String())
	return &entry, nil
}
