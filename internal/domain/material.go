package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// TrainingMaterial is one piece of reference content attached to a persona:
// an external link, an uploaded document, or an uploaded video. Uploaded
// files carry the storage path so cleanup can remove them.
type TrainingMaterial struct {
	ID        string
	PersonaID string
	Type      MaterialType
	Title     string
	URL       string
	Path      string
	SizeBytes int64
	MimeType  string
	CreatedAt time.Time
}

// ValidateLinkURL checks that s parses as an absolute http(s) URL. Links are
// validated before any record is written.
func ValidateLinkURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("link URL is required")
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("link URL %q must start with http:// or https://", s)
	}
	if u.Host == "" {
		return fmt.Errorf("link URL %q is missing a host", s)
	}
	return nil
}
