package store

import (
	"context"
	"encoding/hex"

	"Wardrobe/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Checksum returns the hex BLAKE2b-256 digest stored alongside image bytes.
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SaveImage stores image bytes under id, generating a UUID when id is empty.
func (s *Store) SaveImage(ctx context.Context, id string, data []byte) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	img := &model.Image{ID: id, Data: data, Checksum: Checksum(data), Size: int64(len(data))}
	if err := s.repos.Images.Upsert(ctx, img); err != nil {
		return "", wrap("save image", err)
	}
	return id, nil
}

// GetImage returns the image or nil when absent.
func (s *Store) GetImage(ctx context.Context, id string) (*model.Image, error) {
	img, err := s.repos.Images.GetByID(ctx, id)
	return img, wrap("get image", err)
}

// DeleteImage removes an image. Deleting a missing image is a no-op.
func (s *Store) DeleteImage(ctx context.Context, id string) error {
	_, err := s.repos.Images.Delete(ctx, id)
	return wrap("delete image", err)
}
