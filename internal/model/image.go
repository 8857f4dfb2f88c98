package model

import "time"

// Image holds the raw bytes of a photo. It is owned by exactly one Item or ShoppingItem.
type Image struct {
	ID       string `gorm:"primaryKey"`
	Data     []byte `gorm:"not null"`
	Checksum string `gorm:"not null"` // hex BLAKE2b-256 of Data
	Size     int64  `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Image) TableName() string { return "images" }
