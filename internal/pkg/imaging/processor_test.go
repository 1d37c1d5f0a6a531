package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestThumbnailFitsIntoBox(t *testing.T) {
	p := NewProcessor(Config{MaxWidth: 100, MaxHeight: 100})

	thumb, err := p.Thumbnail(encodePNG(t, 400, 200))
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if thumb.Width != 100 || thumb.Height != 50 {
		t.Fatalf("got %dx%d, want 100x50", thumb.Width, thumb.Height)
	}
	if thumb.ContentType != "image/png" {
		t.Fatalf("content type = %q", thumb.ContentType)
	}
	if _, err := png.Decode(bytes.NewReader(thumb.Data)); err != nil {
		t.Fatalf("thumbnail is not a png: %v", err)
	}
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	thumb, err := p.Thumbnail(encodePNG(t, 40, 30))
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if thumb.Width != 40 || thumb.Height != 30 {
		t.Fatalf("got %dx%d, want 40x30", thumb.Width, thumb.Height)
	}
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	p := NewProcessor(DefaultConfig())
	if _, err := p.Thumbnail([]byte("\x89PNG\r\n\x1a\nnot really")); err == nil {
		t.Fatal("expected decode error")
	}
}
