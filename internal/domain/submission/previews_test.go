package submission

import (
	"context"
	"strings"
	"testing"

	"github.com/libraryhall/hallbook-api/internal/pkg/imaging"
	"github.com/libraryhall/hallbook-api/internal/pkg/storage"
)

func TestStoragePreviewsAcquireRelease(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir(), "/media/")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	previews := NewStoragePreviews(store, imaging.NewProcessor(imaging.Config{}))
	ctx := context.Background()

	p, err := previews.Acquire(ctx, "form-1", pngUpload("card.png"))
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !strings.HasPrefix(p.Key, "previews/form-1/") || !strings.HasSuffix(p.Key, ".png") {
		t.Fatalf("key = %q", p.Key)
	}
	if p.URL != "/media/"+p.Key {
		t.Fatalf("url = %q", p.URL)
	}
	if p.ThumbKey == "" || p.ThumbURL == "" {
		t.Fatal("a decodable image should get a thumbnail")
	}

	for _, key := range []string{p.Key, p.ThumbKey} {
		if ok, _ := store.Exists(ctx, key); !ok {
			t.Fatalf("%s not stored", key)
		}
	}

	if err := previews.Release(ctx, p); err != nil {
		t.Fatalf("Release: %v", err)
	}
	for _, key := range []string{p.Key, p.ThumbKey} {
		if ok, _ := store.Exists(ctx, key); ok {
			t.Fatalf("%s still stored after release", key)
		}
	}
}

func TestStoragePreviewsUndecodableImage(t *testing.T) {
	store, _ := storage.NewLocalStorage(t.TempDir(), "/media")
	previews := NewStoragePreviews(store, imaging.NewProcessor(imaging.Config{}))

	up := FileUpload{FileName: "card.jpg", ContentType: "image/jpeg", Size: 4, Data: []byte("nope")}
	p, err := previews.Acquire(context.Background(), "form-2", up)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if p.ThumbKey != "" {
		t.Fatal("no thumbnail expected for undecodable data")
	}
	if !strings.HasSuffix(p.Key, ".jpg") {
		t.Fatalf("key = %q", p.Key)
	}
}

func TestReleaseNilPreview(t *testing.T) {
	store, _ := storage.NewLocalStorage(t.TempDir(), "/media")
	if err := NewStoragePreviews(store, nil).Release(context.Background(), nil); err != nil {
		t.Fatalf("Release(nil): %v", err)
	}
}
