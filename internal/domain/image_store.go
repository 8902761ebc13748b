package domain

import (
	"context"
	"io"
)

const (
	FolderFood = "drovo/food"
	FolderShop = "drovo/shop"
)

type ImageStore interface {
	// Upload returns the public https URL of the stored image.
	Upload(ctx context.Context, image io.Reader, folder string) (string, error)
	Delete(ctx context.Context, url string) error
}
