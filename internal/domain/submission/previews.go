package submission

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/libraryhall/hallbook-api/internal/pkg/imaging"
	"github.com/libraryhall/hallbook-api/internal/pkg/storage"
)

// PreviewStore acquires and releases attachment previews
type PreviewStore interface {
	Acquire(ctx context.Context, formID string, up FileUpload) (*Preview, error)
	Release(ctx context.Context, p *Preview) error
}

// StoragePreviews keeps previews in a storage backend.
// The original bytes are always stored; a thumbnail is added when the image decodes.
type StoragePreviews struct {
	storage   storage.Storage
	processor *imaging.Processor
}

// NewStoragePreviews creates preview store. processor may be nil.
func NewStoragePreviews(s storage.Storage, processor *imaging.Processor) *StoragePreviews {
	return &StoragePreviews{storage: s, processor: processor}
}

func (p *StoragePreviews) Acquire(ctx context.Context, formID string, up FileUpload) (*Preview, error) {
	name := uuid.New().String()
	key := path.Join("previews", formID, name+storage.GetExtensionForMime(up.ContentType))

	if err := p.storage.Put(ctx, key, bytes.NewReader(up.Data), up.ContentType); err != nil {
		return nil, fmt.Errorf("store preview: %w", err)
	}

	preview := &Preview{Key: key, URL: p.storage.GetURL(key)}

	if p.processor == nil {
		return preview, nil
	}

	thumb, err := p.processor.Thumbnail(up.Data)
	if err != nil {
		// The declared type was accepted; an undecodable body only loses the thumbnail
		log.Warn().Err(err).Str("form_id", formID).Msg("Preview thumbnail skipped")
		return preview, nil
	}

	thumbKey := path.Join("previews", formID, name+"_thumb"+storage.GetExtensionForMime(thumb.ContentType))
	if err := p.storage.Put(ctx, thumbKey, bytes.NewReader(thumb.Data), thumb.ContentType); err != nil {
		_ = p.storage.Delete(ctx, key)
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}
	preview.ThumbKey = thumbKey
	preview.ThumbURL = p.storage.GetURL(thumbKey)

	return preview, nil
}

func (p *StoragePreviews) Release(ctx context.Context, preview *Preview) error {
	if preview == nil {
		return nil
	}

	var errs []error
	if err := p.storage.Delete(ctx, preview.Key); err != nil {
		errs = append(errs, err)
	}
	if preview.ThumbKey != "" {
		if err := p.storage.Delete(ctx, preview.ThumbKey); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("release preview: %w", errors.Join(errs...))
	}
	return nil
}
