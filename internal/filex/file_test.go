package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

var pngHeader = []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR")

func TestReadImage(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		wantCT string
	}{
		{"png", pngHeader, "image/png"},
		{"jpeg", []byte("\xFF\xD8\xFF\xE0\x00\x10JFIF\x00"), "image/jpeg"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "image/webp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, ct, err := ReadImage(writeFile(t, "shirt", tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCT, ct)
			assert.Equal(t, tt.data, data)
		})
	}
}

func TestReadImage_Rejects(t *testing.T) {
	_, _, err := ReadImage(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.ErrorContains(t, err, "open")

	_, _, err = ReadImage(writeFile(t, "empty.jpg", nil))
	assert.ErrorContains(t, err, "empty")

	_, _, err = ReadImage(writeFile(t, "notes.txt", []byte("just some text")))
	assert.ErrorContains(t, err, "unsupported image type")

	big := append(append([]byte{}, pngHeader...), make([]byte, MaxImageSize)...)
	_, _, err = ReadImage(writeFile(t, "huge.png", big))
	assert.ErrorContains(t, err, "larger than")
}
