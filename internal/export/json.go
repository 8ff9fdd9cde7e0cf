package export

import (
	"encoding/json"
	"io"
	"time"

	"bookscan/internal/library"
)

type jsonDocument struct {
	ExportDate time.Time  `json:"export_date"`
	TotalBooks int        `json:"total_books"`
	Books      []jsonBook `json:"books"`
}

type jsonBook struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	ISBN          string   `json:"isbn"`
	Categories    []string `json:"categories,omitempty"`
	PageCount     *int     `json:"page_count,omitempty"`
	PublishedDate *string  `json:"published_date,omitempty"`
	Description   *string  `json:"description,omitempty"`
	ReadingStatus string   `json:"reading_status"`
	UserRating    *int     `json:"user_rating,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

func writeJSON(w io.Writer, entries []library.Entry, opts Options, now time.Time) error {
	doc := jsonDocument{
		ExportDate: now.UTC(),
		TotalBooks: len(entries),
		Books:      make([]jsonBook, 0, len(entries)),
	}
	for _, e := range entries {
		b := jsonBook{
			Title:         e.Title,
			Authors:       e.Authors,
			ISBN:          e.ISBN,
			ReadingStatus: e.Status(),
		}
		if opts.Metadata {
			b.Categories = e.Categories
			b.PageCount = &e.PageCount
			b.PublishedDate = &e.PublishedDate
			b.Description = &e.Description
		}
		if opts.Ratings {
			b.UserRating = &e.UserRating
			b.AverageRating = &e.AverageRating
		}
		if opts.Notes {
			b.Notes = &e.UserReview
		}
		doc.Books = append(doc.Books, b)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
