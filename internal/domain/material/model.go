package material

import (
	"errors"
	"strings"
	"time"
)

// Material type constants
const (
	TypeVideo   = "Video"
	TypeArticle = "Article"
)

// ValidTypes contains all valid material types.
var ValidTypes = []string{TypeVideo, TypeArticle}

// Domain errors
var (
	ErrEmptyTitle  = errors.New("title cannot be empty")
	ErrEmptyURL    = errors.New("url cannot be empty")
	ErrInvalidType = errors.New("type must be one of: Video, Article")
)

// Material is a learning resource shown on the dashboard. Description is
// markdown and rendered server-side.
type Material struct {
	ID          string
	Title       string
	Type        string
	URL         string
	Description string
	CreatedAt   time.Time
}

// Validate checks if the Material has valid data.
// PRE: Material struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Material) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(m.URL) == "" {
		return ErrEmptyURL
	}
	if !isValidType(m.Type) {
		return ErrInvalidType
	}
	return nil
}

func isValidType(t string) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}
