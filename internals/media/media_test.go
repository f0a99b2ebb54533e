package media

import (
	"os"
	"strings"
	"testing"

	"github.com/Oudwins/seedance/internals/testutil"
)

func TestImageDataURISniffsContent(t *testing.T) {
	path := testutil.WritePNG(t, "frame.jpg")

	uri, err := ImageDataURI(path)
	if err != nil {
		t.Fatalf("ImageDataURI: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("expected sniffed png mime, got %q", uri[:min(len(uri), 40)])
	}
}

func TestDetectMIMEFallbacks(t *testing.T) {
	garbage := []byte("definitely not an image")
	if got := DetectMIME("photo.webp", garbage); got != "image/webp" {
		t.Fatalf("expected extension fallback, got %q", got)
	}
	if got := DetectMIME("photo.unknownext", garbage); got != FallbackMIME {
		t.Fatalf("expected jpeg fallback, got %q", got)
	}
}

func TestImageDataURIErrors(t *testing.T) {
	if _, err := ImageDataURI("/does/not/exist.png"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}

	if _, err := ImageDataURI(t.TempDir()); err == nil || !strings.Contains(err.Error(), "not a file") {
		t.Fatalf("expected not a file error, got %v", err)
	}

	path := testutil.WriteFile(t, "big.png", nil)
	if err := os.Truncate(path, MaxImageSize+1); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if _, err := ImageDataURI(path); err == nil || !strings.Contains(err.Error(), "30MB") {
		t.Fatalf("expected size error, got %v", err)
	}
}
