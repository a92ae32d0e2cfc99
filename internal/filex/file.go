// Package filex reads item images from disk for upload.
package filex

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

// MaxImageSize bounds the images the CLI will upload.
const MaxImageSize = 10 << 20

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ReadImage loads the file at path and sniffs its content type. Only
// JPEG, PNG and WebP are accepted.
func ReadImage(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%s is empty", path)
	}
	if len(data) > MaxImageSize {
		return nil, "", fmt.Errorf("%s is larger than %d MiB", path, MaxImageSize>>20)
	}

	ct := http.DetectContentType(data)
	if !imageTypes[ct] {
		return nil, "", fmt.Errorf("%s: unsupported image type %s", path, ct)
	}
	return data, ct, nil
}
