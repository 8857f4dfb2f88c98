package model

import "time"

// Item is a photographed piece of clothing in the wardrobe.
type Item struct {
	ID       string   `gorm:"primaryKey" json:"id"`
	ImageID  string   `gorm:"not null;index" json:"imageId"`
	Category Category `gorm:"type:text;not null;index" json:"category"`
	Favorite bool     `gorm:"not null" json:"favorite"`
	Laundry  bool     `gorm:"not null" json:"laundry"`
	Deleted  bool     `gorm:"not null" json:"deleted"`

	DateAdded time.Time `gorm:"not null" json:"dateAdded"`

	// Set only while the item sits in the trash.
	DeletedDate      *time.Time `json:"deletedDate,omitempty"`
	OriginalCategory Category   `gorm:"type:text" json:"originalCategory,omitzero"`
}

func (Item) TableName() string { return "items" }

// TrashEntry is an Item that was moved to the trash. It keeps the item's id.
type TrashEntry Item

func (TrashEntry) TableName() string { return "trash" }

// ToTrash converts an active item into a trash entry deleted at the given time.
func (it Item) ToTrash(at time.Time) TrashEntry {
	orig := it.Category
	e := TrashEntry(it)
	e.Deleted = true
	e.DeletedDate = &at
	e.OriginalCategory = orig
	return e
}

// Restore turns a trash entry back into an active item placed in category.
func (e TrashEntry) Restore(category Category) Item {
	it := Item(e)
	it.Deleted = false
	it.DeletedDate = nil
	it.OriginalCategory = Category{}
	it.Category = category
	return it
}

// RestoreCategory is the category the entry returns to when no target is given.
func (e TrashEntry) RestoreCategory() Category {
	if !e.OriginalCategory.IsZero() {
		return e.OriginalCategory
	}
	return e.Category
}
