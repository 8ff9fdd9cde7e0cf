// Package catalog resolves an ISBN to a canonical book record by asking an
// ordered list of catalog sources.
package catalog

import (
	"context"
	"errors"
	"strconv"
	"time"
)

const (
	UnknownTitle        = "Unknown"
	NoDescription       = "Description not available"
	PlaceholderCoverURL = "https://via.placeholder.com/150x200?text=No+Cover"
)

var (
	ErrInvalidIdentifier = errors.New("invalid isbn")
	ErrNotFound          = errors.New("book not found")
	ErrSourceUnavailable = errors.New("catalog source unavailable")
)

// BookRecord is the canonical shape of a catalog hit, whichever source
// supplied it.
type BookRecord struct {
	Title         string    `json:"title"`
	Authors       []string  `json:"authors"`
	Description   string    `json:"description"`
	Categories    []string  `json:"categories"`
	CoverImageURL string    `json:"cover_image_url"`
	PublishedDate string    `json:"published_date"`
	PageCount     int       `json:"page_count"`
	AverageRating float64   `json:"average_rating"`
	RatingsCount  int       `json:"ratings_count"`
	ISBN          string    `json:"isbn"`
	FetchedAt     time.Time `json:"fetched_at"`
	Source        string    `json:"source,omitempty"`
}

// Source is one catalog service. Lookup returns nil, nil when the service
// has no record for the ISBN.
type Source interface {
	Name() string
	Lookup(ctx context.Context, isbn string) (*BookRecord, error)
}

// ApplyDefaults replaces every absent field with its documented fallback.
// now stamps FetchedAt when it is unset and supplies the default year.
func (b *BookRecord) ApplyDefaults(now time.Time) {
	if b.Title == "" {
		b.Title = UnknownTitle
	}
	if b.Authors == nil {
		b.Authors = []string{}
	}
	if b.Description == "" {
		b.Description = NoDescription
	}
	if b.Categories == nil {
		b.Categories = []string{}
	}
	if b.CoverImageURL == "" {
		b.CoverImageURL = PlaceholderCoverURL
	}
	if b.PublishedDate == "" {
		b.PublishedDate = strconv.Itoa(now.Year())
	}
	if b.PageCount < 0 {
		b.PageCount = 0
	}
	if b.RatingsCount < 0 {
		b.RatingsCount = 0
	}
	switch {
	case b.AverageRating < 0:
		b.AverageRating = 0
	case b.AverageRating > 5:
		b.AverageRating = 5
	}
	if b.FetchedAt.IsZero() {
		b.FetchedAt = now
	}
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
