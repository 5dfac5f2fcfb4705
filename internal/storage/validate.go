package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mkovalenko/avatara/internal/domain"
)

// Upload limits, in bytes.
const (
	MaxImageSize    = 5 << 20
	MaxDocumentSize = 50 << 20
	MaxVideoSize    = 50 << 20
)

var imageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var documentExts = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

var videoExts = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
}

// ValidatePhoto checks a profile image upload against type and size limits.
func ValidatePhoto(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageExts[ext]; !ok {
		return fmt.Errorf("unsupported image type %q (want jpg, jpeg, png, gif, or webp)", ext)
	}
	if size > MaxImageSize {
		return fmt.Errorf("image is %s, limit is %s", formatSize(size), formatSize(MaxImageSize))
	}
	return nil
}

// ClassifyMaterial determines the material type for an uploaded file and
// enforces the per-type size limit.
func ClassifyMaterial(filename string, size int64) (domain.MaterialType, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := documentExts[ext]; ok {
		if size > MaxDocumentSize {
			return "", fmt.Errorf("document is %s, limit is %s", formatSize(size), formatSize(MaxDocumentSize))
		}
		return domain.MaterialDocument, nil
	}
	if _, ok := videoExts[ext]; ok {
		if size > MaxVideoSize {
			return "", fmt.Errorf("video is %s, limit is %s", formatSize(size), formatSize(MaxVideoSize))
		}
		return domain.MaterialVideo, nil
	}
	return "", fmt.Errorf("unsupported file type %q (want pdf, doc, docx, txt, mp4, mov, avi, or webm)", ext)
}

// MimeTypeFor returns the MIME type for a supported upload, or
// application/octet-stream for anything else.
func MimeTypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, table := range []map[string]string{imageExts, documentExts, videoExts} {
		if mt, ok := table[ext]; ok {
			return mt
		}
	}
	return "application/octet-stream"
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
