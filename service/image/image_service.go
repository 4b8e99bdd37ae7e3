// Package image is the enrichment path: attach an uploaded picture to a
// cached item without re-syncing.
package image

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"libas.GO/core/fault"
	itemRepo "libas.GO/model/repository/item"
)

// Uploader pushes image bytes to the hosting collaborator and returns the
// stable URL. Satisfied by *ghub.Client.
type Uploader interface {
	PutFile(ctx context.Context, path string, content []byte, message string) (string, error)
}

const (
	maxWidth    = 1200
	webpQuality = 82
)

// Service processes uploads and upserts the resulting URL into the cache.
type Service struct {
	items    *itemRepo.ItemRepository
	uploader Uploader
}

func NewService(items *itemRepo.ItemRepository, uploader Uploader) *Service {
	return &Service{items: items, uploader: uploader}
}

// AttachImage re-encodes the upload, pushes it keyed by code (one image per
// code, repeat uploads overwrite) and writes the URL into the cache. An
// upload failure aborts before any cache mutation. A cache failure after a
// successful upload returns the live URL together with a storage fault, so
// the caller knows the remote asset exists but the cache is stale.
func (s *Service) AttachImage(ctx context.Context, code string, r io.Reader) (string, error) {
	if code == "" {
		return "", fault.New(fault.Upload, "enrich", "item code is required")
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fault.Wrap(fault.Upload, "enrich", fmt.Errorf("decode image: %w", err))
	}
	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fault.Wrap(fault.Upload, "enrich", fmt.Errorf("encode webp: %w", err))
	}

	path := "images/" + code + ".webp"
	url, err := s.uploader.PutFile(ctx, path, buf.Bytes(), "Update image for "+code)
	if err != nil {
		return "", fault.Wrap(fault.Upload, "enrich", err)
	}

	if err := s.items.UpsertImage(code, url); err != nil {
		return url, fault.Wrap(fault.Storage, "enrich", err)
	}
	return url, nil
}
