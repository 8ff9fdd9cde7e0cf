// Package library is the device's personal collection of accepted scans.
package library

import (
	"errors"
	"time"

	"bookscan/internal/catalog"
	"bookscan/internal/isbn"
	"bookscan/internal/recommend"
)

const (
	StatusWantToRead = "want-to-read"
	StatusReading    = "reading"
	StatusRead       = "read"
)

const (
	FilterAll       = "all"
	FilterRated     = "rated"
	FilterUnrated   = "unrated"
	FilterHighRated = "high-rated"
)

const (
	SortDate   = "date"
	SortTitle  = "title"
	SortAuthor = "author"
	SortRating = "rating"
)

var ErrNotFound = errors.New("library entry not found")

type Entry struct {
	ID       string `json:"id"`
	DeviceID string `json:"-"`
	catalog.BookRecord
	Recommendation recommend.Recommendation `json:"recommendation"`
	UserRating     int                      `json:"user_rating"`
	UserReview     string                   `json:"user_review"`
	ReadingStatus  string                   `json:"reading_status"`
	ReviewDate     *time.Time               `json:"review_date,omitempty"`
	ScannedAt      time.Time                `json:"scanned_at"`
}

// Status treats an empty status as want-to-read.
func (e Entry) Status() string {
	if e.ReadingStatus == "" {
		return StatusWantToRead
	}
	return e.ReadingStatus
}

// AddCommand is a book the device accepted after a lookup.
type AddCommand struct {
	Title         string    `json:"title" validate:"required,max=500"`
	Authors       []string  `json:"authors" validate:"max=50,dive,max=200"`
	Description   string    `json:"description" validate:"max=20000"`
	Categories    []string  `json:"categories" validate:"max=50,dive,max=200"`
	CoverImageURL string    `json:"cover_image_url" validate:"omitempty,url"`
	PublishedDate string    `json:"published_date" validate:"max=50"`
	PageCount     int       `json:"page_count" validate:"gte=0"`
	AverageRating float64   `json:"average_rating" validate:"gte=0,lte=5"`
	RatingsCount  int       `json:"ratings_count" validate:"gte=0"`
	ISBN          string    `json:"isbn" validate:"required,isbn"`
	FetchedAt     time.Time `json:"fetched_at"`
	Source        string    `json:"source" validate:"max=50"`
	ReadingStatus string    `json:"reading_status" validate:"omitempty,oneof=want-to-read reading read"`
}

// Book returns the canonical record carried by the command, with the ISBN
// normalized and defaults applied.
func (c AddCommand) Book(now time.Time) catalog.BookRecord {
	b := catalog.BookRecord{
		Title:         c.Title,
		Authors:       c.Authors,
		Description:   c.Description,
		Categories:    c.Categories,
		CoverImageURL: c.CoverImageURL,
		PublishedDate: c.PublishedDate,
		PageCount:     c.PageCount,
		AverageRating: c.AverageRating,
		RatingsCount:  c.RatingsCount,
		ISBN:          isbn.Normalize(c.ISBN),
		FetchedAt:     c.FetchedAt,
		Source:        c.Source,
	}
	b.ApplyDefaults(now)
	return b
}

// UpdateCommand carries the fields a reader edits after adding a book.
type UpdateCommand struct {
	UserRating    *int    `json:"user_rating" validate:"omitempty,gte=0,lte=5"`
	UserReview    *string `json:"user_review" validate:"omitempty,max=5000"`
	ReadingStatus *string `json:"reading_status" validate:"omitempty,oneof=want-to-read reading read"`
}

func (c UpdateCommand) Empty() bool {
	return c.UserRating == nil && c.UserReview == nil && c.ReadingStatus == nil
}

type ListQuery struct {
	Search string `json:"q" validate:"max=200"`
	Filter string `json:"filter" validate:"omitempty,oneof=all rated unrated high-rated"`
	Sort   string `json:"sort" validate:"omitempty,oneof=date title author rating"`
	Status string `json:"status" validate:"omitempty,oneof=want-to-read reading read"`
	Limit  int    `json:"limit" validate:"gte=0,lte=100"`
	Cursor string `json:"cursor" validate:"max=512"`
}

// Page is one slice of a listing. NextCursor is empty on the last page.
type Page struct {
	Entries    []Entry
	NextCursor string
	Total      int
}
