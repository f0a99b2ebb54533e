package media

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

const (
	MaxImageSize  = 30 * 1024 * 1024
	FallbackMIME  = "image/jpeg"
	dataURIFormat = "data:%s;base64,%s"
)

// ImageDataURI reads the image at path and returns it as a base64 data URI.
func ImageDataURI(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("image file not found: %s", path)
		}
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("path is not a file: %s", path)
	}
	if info.Size() > MaxImageSize {
		return "", fmt.Errorf("image file exceeds 30MB limit: %s", humanize.IBytes(uint64(info.Size())))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(dataURIFormat, DetectMIME(path, data), base64.StdEncoding.EncodeToString(data)), nil
}

// DetectMIME sniffs the content first, then falls back to the file extension
// and finally to image/jpeg.
func DetectMIME(path string, data []byte) string {
	if detected := mimetype.Detect(data); strings.HasPrefix(detected.String(), "image/") {
		return detected.String()
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	return FallbackMIME
}
