package store

import (
	"context"

	"Wardrobe/internal/model"
	"Wardrobe/internal/repo"
)

// SaveToTrash stores e as a trash entry (deleted=true, deletedDate defaulted to now)
// and drops an active item with the same id.
func (s *Store) SaveToTrash(ctx context.Context, e *model.TrashEntry) error {
	if e == nil || e.ID == "" {
		return invalidf("trash entry id is required")
	}
	if e.DeletedDate == nil {
		now := s.now()
		e.DeletedDate = &now
	}
	if e.OriginalCategory.IsZero() {
		e.OriginalCategory = e.Category
	}
	return s.inTx(ctx, "save to trash", func(r *repo.Repositories) error {
		if _, err := r.Items.Delete(ctx, e.ID); err != nil {
			return err
		}
		return r.Trash.Upsert(ctx, e)
	})
}

// GetAllTrash returns trash entries, most recently deleted first.
func (s *Store) GetAllTrash(ctx context.Context) ([]model.TrashEntry, error) {
	list, err := s.repos.Trash.List(ctx)
	return list, wrap("get trash", err)
}

// RestoreFromTrash moves an entry back to the active items. The item lands in target
// when given, otherwise in its original category. A custom category whose section is
// gone falls back to "other".
func (s *Store) RestoreFromTrash(ctx context.Context, id string, target *model.Category) (*model.Item, error) {
	var restored model.Item
	err := s.inTx(ctx, "restore from trash", func(r *repo.Repositories) error {
		e, err := r.Trash.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if e == nil {
			return ErrNotFound
		}
		cat := e.RestoreCategory()
		if target != nil && !target.IsZero() {
			cat = *target
		}
		if sectionID, ok := cat.SectionID(); ok {
			sec, err := r.Sections.GetByID(ctx, sectionID)
			if err != nil {
				return err
			}
			if sec == nil {
				cat = model.FixedCategory(model.Other)
			}
		}
		restored = e.Restore(cat)
		if _, err := r.Trash.Delete(ctx, id); err != nil {
			return err
		}
		return r.Items.Upsert(ctx, &restored)
	})
	if err != nil {
		return nil, err
	}
	s.log.Debugw("item restored", "id", id, "category", restored.Category.String())
	return &restored, nil
}

// PurgeTrashEntry permanently deletes one trash entry together with its image.
func (s *Store) PurgeTrashEntry(ctx context.Context, id string) error {
	return s.inTx(ctx, "purge trash entry", func(r *repo.Repositories) error {
		e, err := r.Trash.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if e == nil {
			return ErrNotFound
		}
		if _, err := r.Trash.Delete(ctx, id); err != nil {
			return err
		}
		return deleteUnreferencedImages(ctx, r, []string{e.ImageID})
	})
}

// EmptyTrash removes every trash entry and its image in one transaction and returns
// the number of purged entries. Images still used by active or shopping items stay.
func (s *Store) EmptyTrash(ctx context.Context) (int, error) {
	var n int
	err := s.inTx(ctx, "empty trash", func(r *repo.Repositories) error {
		entries, err := r.Trash.List(ctx)
		if err != nil {
			return err
		}
		n = len(entries)
		if n == 0 {
			return nil
		}
		imageIDs := make([]string, 0, n)
		for _, e := range entries {
			imageIDs = append(imageIDs, e.ImageID)
		}
		if err := r.Trash.DeleteAll(ctx); err != nil {
			return err
		}
		return deleteUnreferencedImages(ctx, r, imageIDs)
	})
	if err != nil {
		return 0, err
	}
	s.log.Debugw("trash emptied", "entries", n)
	return n, nil
}

// deleteUnreferencedImages deletes the candidate images that no active item,
// remaining trash entry or shopping item points at.
func deleteUnreferencedImages(ctx context.Context, r *repo.Repositories, candidates []string) error {
	keep, err := referencedImages(ctx, r)
	if err != nil {
		return err
	}
	var drop []string
	for _, id := range candidates {
		if id == "" {
			continue
		}
		if _, ok := keep[id]; !ok {
			drop = append(drop, id)
		}
	}
	_, err = r.Images.Delete(ctx, drop...)
	return err
}

func referencedImages(ctx context.Context, r *repo.Repositories) (map[string]struct{}, error) {
	keep := make(map[string]struct{})
	itemImages, err := r.Items.ImageIDs(ctx)
	if err != nil {
		return nil, err
	}
	shopImages, err := r.Shopping.ImageIDs(ctx)
	if err != nil {
		return nil, err
	}
	trash, err := r.Trash.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range itemImages {
		keep[id] = struct{}{}
	}
	for _, id := range shopImages {
		keep[id] = struct{}{}
	}
	for _, e := range trash {
		keep[e.ImageID] = struct{}{}
	}
	return keep, nil
}
