package store

import (
	"context"
	"encoding/json"
	"fmt"

	"Wardrobe/internal/model"
	"Wardrobe/internal/repo"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// exportedSettings are the keys carried by backups.
var exportedSettings = []string{
	model.SettingUserName,
	model.SettingTheme,
	model.SettingLocation,
	model.SettingTempUnit,
}

// ImportSummary counts what ImportAllData wrote.
type ImportSummary struct {
	Items    int `json:"items"`
	Trash    int `json:"trash"`
	Images   int `json:"images"`
	Days     int `json:"weeklyDays"`
	Outfits  int `json:"outfits"`
	Sections int `json:"sections"`
	Shopping int `json:"shopping"`
	// MissingImages counts items and shopping items whose image was absent from the
	// document. They are imported as is; CheckConsistency reports them.
	MissingImages int `json:"missingImages"`
}

// ExportAllData snapshots every collection and the settings subset. Trash entries are
// exported as items with deleted=true. Every image referenced by an item, trash entry
// or shopping item is inlined.
func (s *Store) ExportAllData(ctx context.Context) (*Document, error) {
	doc := &Document{
		Version:        DocumentVersion,
		ExportDate:     FlexTime{s.now().UTC()},
		Items:          []ItemDoc{},
		Images:         []ImageDoc{},
		WeeklyPlan:     []WeeklyDoc{},
		SavedOutfits:   []OutfitDoc{},
		CustomSections: []SectionDoc{},
		ShoppingList:   []ShoppingDoc{},
	}

	err := s.inTx(ctx, "export", func(r *repo.Repositories) error {
		items, err := r.Items.List(ctx, repo.ItemFilter{})
		if err != nil {
			return err
		}
		trash, err := r.Trash.List(ctx)
		if err != nil {
			return err
		}
		weekly, err := r.Weekly.List(ctx)
		if err != nil {
			return err
		}
		outfits, err := r.Outfits.List(ctx)
		if err != nil {
			return err
		}
		sections, err := r.Sections.List(ctx)
		if err != nil {
			return err
		}
		shopping, err := r.Shopping.List(ctx)
		if err != nil {
			return err
		}

		var imageIDs []string
		seen := make(map[string]struct{})
		addImage := func(id string) {
			if _, ok := seen[id]; ok || id == "" {
				return
			}
			seen[id] = struct{}{}
			imageIDs = append(imageIDs, id)
		}

		for _, it := range items {
			doc.Items = append(doc.Items, itemDoc(it))
			addImage(it.ImageID)
		}
		for _, e := range trash {
			doc.Items = append(doc.Items, itemDoc(model.Item(e)))
			addImage(e.ImageID)
		}
		for _, p := range weekly {
			doc.WeeklyPlan = append(doc.WeeklyPlan, WeeklyDoc{
				Day: string(p.Day), Type: p.Type, Items: toFlexIDs(p.Items), Notes: p.Notes,
			})
		}
		for _, o := range outfits {
			doc.SavedOutfits = append(doc.SavedOutfits, OutfitDoc{
				ID: FlexID(o.ID), Items: toFlexIDs(o.Items), Notes: o.Notes, Date: o.Date,
			})
		}
		for _, sec := range sections {
			doc.CustomSections = append(doc.CustomSections, SectionDoc{ID: FlexID(sec.ID), Name: sec.Name})
		}
		for _, sh := range shopping {
			doc.ShoppingList = append(doc.ShoppingList, ShoppingDoc{
				ID: FlexID(sh.ID), Name: sh.Name, Desc: sh.Desc, Price: sh.Price, ImageID: FlexID(sh.ImageID),
			})
			addImage(sh.ImageID)
		}

		images, err := r.Images.GetMany(ctx, imageIDs)
		if err != nil {
			return err
		}
		for _, img := range images {
			doc.Images = append(doc.Images, ImageDoc{ID: FlexID(img.ID), Data: ImageData(img.Data)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.exportSettings(&doc.Settings); err != nil {
		return nil, err
	}
	return doc, nil
}

func itemDoc(it model.Item) ItemDoc {
	d := ItemDoc{
		ID:        FlexID(it.ID),
		ImageID:   FlexID(it.ImageID),
		Category:  it.Category.String(),
		Favorite:  it.Favorite,
		Laundry:   it.Laundry,
		Deleted:   it.Deleted,
		DateAdded: FlexTime{it.DateAdded},
	}
	if it.Deleted {
		if it.DeletedDate != nil {
			d.DeletedDate = FlexTime{*it.DeletedDate}
		}
		d.OriginalCategory = it.OriginalCategory.String()
	}
	return d
}

func (s *Store) exportSettings(out *ExportSettings) error {
	for _, key := range exportedSettings {
		raw, found, err := s.settings.Get(key)
		if err != nil {
			return wrap("export settings", err)
		}
		if !found {
			continue
		}
		var dst any
		switch key {
		case model.SettingUserName:
			dst = &out.UserName
		case model.SettingTheme:
			dst = &out.Theme
		case model.SettingLocation:
			dst = &out.Location
		case model.SettingTempUnit:
			dst = &out.TempUnit
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			s.log.Debugw("skipping undecodable setting on export", "key", key, "error", err)
		}
	}
	return nil
}

// importPlan is a validated document converted to model values.
type importPlan struct {
	images   []model.Image
	missing  int
	items    []model.Item
	trash    []model.TrashEntry
	weekly   []model.WeeklyDayPlan
	outfits  []model.SavedOutfit
	sections []model.CustomSection
	shopping []model.ShoppingItem
}

// ImportAllData replaces every collection with the document's content. The document is
// validated first; any problem yields a *FormatError and nothing is changed. The
// collections are then cleared and reloaded in one transaction, after which the
// settings subset, encoded up front, is written.
func (s *Store) ImportAllData(ctx context.Context, doc *Document) (*ImportSummary, error) {
	plan, err := s.planImport(doc)
	if err != nil {
		return nil, err
	}
	settings, err := settingsValues(doc.Settings)
	if err != nil {
		return nil, &FormatError{Err: err}
	}

	err = s.inTx(ctx, "import", func(r *repo.Repositories) error {
		if err := r.ClearAll(ctx); err != nil {
			return err
		}
		for i := range plan.images {
			if err := r.Images.Upsert(ctx, &plan.images[i]); err != nil {
				return err
			}
		}
		for i := range plan.items {
			if err := r.Items.Upsert(ctx, &plan.items[i]); err != nil {
				return err
			}
		}
		for i := range plan.trash {
			if err := r.Trash.Upsert(ctx, &plan.trash[i]); err != nil {
				return err
			}
		}
		for i := range plan.weekly {
			if err := r.Weekly.Upsert(ctx, &plan.weekly[i]); err != nil {
				return err
			}
		}
		for i := range plan.outfits {
			if err := r.Outfits.Upsert(ctx, &plan.outfits[i]); err != nil {
				return err
			}
		}
		for i := range plan.sections {
			if err := r.Sections.Upsert(ctx, &plan.sections[i]); err != nil {
				return err
			}
		}
		for i := range plan.shopping {
			if err := r.Shopping.Upsert(ctx, &plan.shopping[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// badger is a separate engine: a failure here leaves the collections already replaced
	if err := s.settings.SetMany(settings); err != nil {
		return nil, wrap("import settings", err)
	}

	sum := &ImportSummary{
		Items:    len(plan.items),
		Trash:    len(plan.trash),
		Images:   len(plan.images),
		Days:     len(plan.weekly),
		Outfits:  len(plan.outfits),
		Sections: len(plan.sections),
		Shopping: len(plan.shopping),

		MissingImages: plan.missing,
	}
	if sum.MissingImages > 0 {
		s.log.Warnw("imported records reference images missing from the document", "count", sum.MissingImages)
	}
	s.log.Debugw("import finished", "summary", sum)
	return sum, nil
}

// settingsValues encodes the settings subset of a document.
func settingsValues(in ExportSettings) (map[string][]byte, error) {
	values := make(map[string][]byte)
	put := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		values[key] = b
		return nil
	}
	var result *multierror.Error
	if in.UserName != nil {
		result = multierror.Append(result, put(model.SettingUserName, *in.UserName))
	}
	if in.Theme != nil {
		result = multierror.Append(result, put(model.SettingTheme, *in.Theme))
	}
	if in.Location != nil {
		result = multierror.Append(result, put(model.SettingLocation, *in.Location))
	}
	if in.TempUnit != nil {
		result = multierror.Append(result, put(model.SettingTempUnit, *in.TempUnit))
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return values, nil
}

// planImport validates doc and converts it. Every problem found is reported at once.
func (s *Store) planImport(doc *Document) (*importPlan, error) {
	if doc == nil {
		return nil, &FormatError{Err: fmt.Errorf("empty document")}
	}
	if doc.Version == 0 {
		return nil, &FormatError{Err: fmt.Errorf("missing version")}
	}
	if doc.Version != DocumentVersion {
		return nil, &FormatError{Err: fmt.Errorf("unsupported version %d, want %d", doc.Version, DocumentVersion)}
	}

	var errs *multierror.Error
	fail := func(format string, args ...any) {
		errs = multierror.Append(errs, fmt.Errorf(format, args...))
	}
	now := s.now()
	plan := &importPlan{}

	images := make(map[string]struct{}, len(doc.Images))
	for i, img := range doc.Images {
		id := string(img.ID)
		if id == "" {
			fail("images[%d]: missing id", i)
			continue
		}
		if _, dup := images[id]; dup {
			fail("images[%d]: duplicate id %q", i, id)
			continue
		}
		images[id] = struct{}{}
		plan.images = append(plan.images, model.Image{
			ID: id, Data: img.Data, Checksum: Checksum(img.Data), Size: int64(len(img.Data)),
		})
	}

	sections := make(map[string]struct{}, len(doc.CustomSections))
	for i, sec := range doc.CustomSections {
		id := string(sec.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := sections[id]; dup {
			fail("customSections[%d]: duplicate id %q", i, id)
			continue
		}
		if sec.Name == "" {
			fail("customSections[%d]: missing name", i)
		}
		sections[id] = struct{}{}
		plan.sections = append(plan.sections, model.CustomSection{ID: id, Name: sec.Name})
	}
	// sections that no longer exist send their items to "other"
	resolve := func(c model.Category) model.Category {
		if id, ok := c.SectionID(); ok {
			if _, exists := sections[id]; !exists {
				return model.FixedCategory(model.Other)
			}
		}
		return c
	}

	itemIDs := make(map[string]struct{}, len(doc.Items))
	for i, d := range doc.Items {
		id := string(d.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := itemIDs[id]; dup {
			fail("items[%d]: duplicate id %q", i, id)
			continue
		}
		itemIDs[id] = struct{}{}

		cat, err := model.ParseCategory(d.Category)
		if err != nil {
			fail("items[%d]: %v", i, err)
			continue
		}
		imageID := string(d.ImageID)
		if _, ok := images[imageID]; !ok && !d.Deleted {
			plan.missing++
		}
		added := d.DateAdded.Time
		if added.IsZero() {
			added = now
		}
		it := model.Item{
			ID:        id,
			ImageID:   imageID,
			Category:  cat,
			Favorite:  d.Favorite,
			Laundry:   d.Laundry,
			DateAdded: added,
		}
		if !d.Deleted {
			it.Category = resolve(cat)
			plan.items = append(plan.items, it)
			continue
		}

		deletedAt := d.DeletedDate.Time
		if deletedAt.IsZero() {
			deletedAt = now
		}
		e := it.ToTrash(deletedAt)
		if d.OriginalCategory != "" {
			orig, err := model.ParseCategory(d.OriginalCategory)
			if err != nil {
				fail("items[%d]: originalCategory: %v", i, err)
				continue
			}
			e.OriginalCategory = orig
		}
		plan.trash = append(plan.trash, e)
	}

	days := make(map[model.Weekday]struct{}, len(doc.WeeklyPlan))
	for i, d := range doc.WeeklyPlan {
		day, err := model.ParseWeekday(d.Day)
		if err != nil {
			fail("weeklyPlan[%d]: %v", i, err)
			continue
		}
		if _, dup := days[day]; dup {
			fail("weeklyPlan[%d]: duplicate day %q", i, day)
			continue
		}
		days[day] = struct{}{}
		p := model.WeeklyDayPlan{Day: day, Type: d.Type, Items: flexIDs(d.Items), Notes: d.Notes}
		p.Dedup()
		plan.weekly = append(plan.weekly, p)
	}

	outfits := make(map[string]struct{}, len(doc.SavedOutfits))
	for i, o := range doc.SavedOutfits {
		id := string(o.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := outfits[id]; dup {
			fail("savedOutfits[%d]: duplicate id %q", i, id)
			continue
		}
		outfits[id] = struct{}{}
		plan.outfits = append(plan.outfits, model.SavedOutfit{
			ID: id, Items: flexIDs(o.Items), Notes: o.Notes, Date: o.Date,
		})
	}
	// the list is read newest first; insert oldest first so creation order survives
	reverse(plan.outfits)

	shopping := make(map[string]struct{}, len(doc.ShoppingList))
	for i, sh := range doc.ShoppingList {
		id := string(sh.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := shopping[id]; dup {
			fail("shoppingList[%d]: duplicate id %q", i, id)
			continue
		}
		shopping[id] = struct{}{}
		if sh.Name == "" {
			fail("shoppingList[%d]: missing name", i)
			continue
		}
		imageID := string(sh.ImageID)
		if _, ok := images[imageID]; imageID != "" && !ok {
			plan.missing++
		}
		plan.shopping = append(plan.shopping, model.ShoppingItem{
			ID: id, Name: sh.Name, Desc: sh.Desc, Price: sh.Price, ImageID: imageID,
		})
	}
	reverse(plan.shopping)

	if err := errs.ErrorOrNil(); err != nil {
		return nil, &FormatError{Err: err}
	}
	return plan, nil
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
