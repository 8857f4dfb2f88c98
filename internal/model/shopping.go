package model

import "time"

// ShoppingItem is an entry on the wish-list.
type ShoppingItem struct {
	ID      string `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Desc    string `json:"desc"`
	Price   string `json:"price"`
	ImageID string `gorm:"index" json:"imageId,omitempty"` // optional

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (ShoppingItem) TableName() string { return "shopping_list" }
