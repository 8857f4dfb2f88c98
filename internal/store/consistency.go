package store

import (
	"context"
	"fmt"
	"sort"

	"Wardrobe/internal/model"
	"Wardrobe/internal/repo"
)

// Problem kinds reported by CheckConsistency.
const (
	ProblemMissingImage     = "missing-image"
	ProblemChecksumMismatch = "checksum-mismatch"
	ProblemOrphanImage      = "orphan-image"
	ProblemMissingSection   = "missing-section"
	ProblemDanglingWeekly   = "dangling-weekly-ref"
	ProblemDanglingOutfit   = "dangling-outfit-ref"
)

// Problem is one finding of the consistency check.
type Problem struct {
	Kind   string `json:"kind"`
	Ref    string `json:"ref"`
	Detail string `json:"detail"`
}

// Report is the outcome of CheckConsistency.
type Report struct {
	Items    int       `json:"items"`
	Trash    int       `json:"trash"`
	Images   int       `json:"images"`
	Problems []Problem `json:"problems"`
}

// OK reports whether no problem was found.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

// CheckConsistency verifies the cross-collection references without changing anything.
// Dangling weekly and outfit references are tolerated by readers but still reported.
func (s *Store) CheckConsistency(ctx context.Context) (*Report, error) {
	rep := &Report{Problems: []Problem{}}
	add := func(kind, ref, format string, args ...any) {
		rep.Problems = append(rep.Problems, Problem{Kind: kind, Ref: ref, Detail: fmt.Sprintf(format, args...)})
	}

	err := s.inTx(ctx, "check consistency", func(r *repo.Repositories) error {
		items, err := r.Items.List(ctx, repo.ItemFilter{})
		if err != nil {
			return err
		}
		trash, err := r.Trash.List(ctx)
		if err != nil {
			return err
		}
		shopping, err := r.Shopping.List(ctx)
		if err != nil {
			return err
		}
		sections, err := r.Sections.List(ctx)
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
		images, err := r.Images.ListMeta(ctx)
		if err != nil {
			return err
		}
		rep.Items, rep.Trash, rep.Images = len(items), len(trash), len(images)

		imageByID := make(map[string]model.Image, len(images))
		for _, img := range images {
			imageByID[img.ID] = img
		}
		sectionIDs := make(map[string]struct{}, len(sections))
		for _, sec := range sections {
			sectionIDs[sec.ID] = struct{}{}
		}
		known := make(map[string]struct{}, len(items)+len(trash))
		used := make(map[string]struct{})

		for _, it := range items {
			known[it.ID] = struct{}{}
			used[it.ImageID] = struct{}{}
			if _, ok := imageByID[it.ImageID]; !ok {
				add(ProblemMissingImage, it.ID, "item references missing image %q", it.ImageID)
			}
			if id, ok := it.Category.SectionID(); ok {
				if _, exists := sectionIDs[id]; !exists {
					add(ProblemMissingSection, it.ID, "item is in missing section %q", id)
				}
			}
		}
		for _, e := range trash {
			known[e.ID] = struct{}{}
			used[e.ImageID] = struct{}{}
			if _, ok := imageByID[e.ImageID]; !ok {
				add(ProblemMissingImage, e.ID, "trash entry references missing image %q", e.ImageID)
			}
		}
		for _, sh := range shopping {
			if sh.ImageID == "" {
				continue
			}
			used[sh.ImageID] = struct{}{}
			if _, ok := imageByID[sh.ImageID]; !ok {
				add(ProblemMissingImage, sh.ID, "shopping item references missing image %q", sh.ImageID)
			}
		}
		for _, p := range weekly {
			for _, id := range p.Items {
				if _, ok := known[id]; !ok {
					add(ProblemDanglingWeekly, string(p.Day), "unknown item %q", id)
				}
			}
		}
		for _, o := range outfits {
			for _, id := range o.Items {
				if _, ok := known[id]; !ok {
					add(ProblemDanglingOutfit, o.ID, "unknown item %q", id)
				}
			}
		}

		orphans := make([]string, 0)
		for id := range imageByID {
			if _, ok := used[id]; !ok {
				orphans = append(orphans, id)
			}
		}
		sort.Strings(orphans)
		for _, id := range orphans {
			add(ProblemOrphanImage, id, "image is not referenced")
		}

		// checksums need the bytes; read them one by one to keep memory flat
		for _, meta := range images {
			if meta.Checksum == "" {
				continue
			}
			img, err := r.Images.GetByID(ctx, meta.ID)
			if err != nil {
				return err
			}
			if img != nil && Checksum(img.Data) != img.Checksum {
				add(ProblemChecksumMismatch, img.ID, "stored checksum does not match data")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}
