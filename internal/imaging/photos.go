package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Register decoders for the formats the photo set may contain.
	_ "image/gif"
	_ "image/png"

	"github.com/nfnt/resize"

	"github.com/einkhub/renderer/pkg/models"
)

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// PhotoMetadata returns metadata for a single image file.
func PhotoMetadata(path string) (models.PhotoInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.PhotoInfo{}, fmt.Errorf("image not found: %w", err)
	}

	photo := models.PhotoInfo{
		Filename:   filepath.Base(path),
		Path:       path,
		SizeBytes:  info.Size(),
		UploadedAt: info.ModTime(),
	}

	// Dimensions are best-effort: an unreadable header still lists.
	if f, err := os.Open(path); err == nil {
		if cfg, _, err := image.DecodeConfig(f); err == nil {
			photo.Width = cfg.Width
			photo.Height = cfg.Height
		}
		f.Close()
	}

	return photo, nil
}

// ListPhotos lists all images in dir with metadata, newest first. A
// missing directory yields an empty list, not an error.
func ListPhotos(dir string) ([]models.PhotoInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read photos directory: %w", err)
	}

	var photos []models.PhotoInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !photoExtensions[ext] {
			continue
		}
		photo, err := PhotoMetadata(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		photos = append(photos, photo)
	}

	sort.Slice(photos, func(i, j int) bool {
		return photos[i].UploadedAt.After(photos[j].UploadedAt)
	})

	return photos, nil
}

// Thumbnail generates a JPEG thumbnail no larger than maxWidth x
// maxHeight, preserving aspect ratio.
func Thumbnail(path string, maxWidth, maxHeight uint) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	thumb := resize.Thumbnail(maxWidth, maxHeight, src, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
