package model

import "time"

// SavedOutfit is a snapshot of item ids. Ids are not checked against existing items.
type SavedOutfit struct {
	ID    string   `gorm:"primaryKey" json:"id"`
	Items []string `gorm:"serializer:json;not null" json:"items"`
	Notes string   `json:"notes"`
	Date  string   `json:"date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (SavedOutfit) TableName() string { return "saved_outfits" }

// CustomSection adds a user-defined category.
type CustomSection struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (CustomSection) TableName() string { return "custom_sections" }

// Category returns the category value items in this section carry.
func (s CustomSection) Category() Category { return CustomCategory(s.ID) }
