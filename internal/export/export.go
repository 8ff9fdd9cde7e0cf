// Package export renders a device's library as CSV, JSON, HTML or XLSX.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"bookscan/internal/library"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatHTML = "html"
	FormatXLSX = "xlsx"
)

const (
	FilterAll       = "all"
	FilterRead      = "read"
	FilterReading   = "reading"
	FilterToRead    = "to-read"
	FilterFavorites = "favorites"
)

const favoriteRating = 4

// Options selects the rows and columns of an export.
type Options struct {
	Format   string `json:"format" validate:"required,oneof=csv json html xlsx"`
	Filter   string `json:"filter" validate:"omitempty,oneof=all read reading to-read favorites"`
	Metadata bool   `json:"metadata"`
	Ratings  bool   `json:"ratings"`
	Notes    bool   `json:"notes"`
}

// DefaultOptions exports everything except notes as CSV.
func DefaultOptions() Options {
	return Options{Format: FormatCSV, Filter: FilterAll, Metadata: true, Ratings: true}
}

var contentTypes = map[string]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatJSON: "application/json",
	FormatHTML: "text/html; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

func Filename(format string, now time.Time) string {
	return fmt.Sprintf("library_%s.%s", now.UTC().Format(time.DateOnly), format)
}

// Select returns the entries kept by filter.
func Select(entries []library.Entry, filter string) []library.Entry {
	keep := func(e library.Entry) bool {
		switch filter {
		case FilterRead:
			return e.Status() == library.StatusRead
		case FilterReading:
			return e.Status() == library.StatusReading
		case FilterToRead:
			return e.Status() == library.StatusWantToRead
		case FilterFavorites:
			return e.UserRating >= favoriteRating
		default:
			return true
		}
	}

	out := make([]library.Entry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Columns returns the header row for opts.
func Columns(opts Options) []string {
	cols := []string{"Title", "Authors", "ISBN"}
	if opts.Metadata {
		cols = append(cols, "Genres", "Pages", "Published")
	}
	if opts.Ratings {
		cols = append(cols, "Personal Rating", "Average Rating")
	}
	if opts.Notes {
		cols = append(cols, "Notes")
	}
	return cols
}

// Row returns the cells of e in Columns order. Zero numbers are left blank.
func Row(e library.Entry, opts Options) []string {
	row := []string{e.Title, strings.Join(e.Authors, ", "), e.ISBN}
	if opts.Metadata {
		row = append(row, strings.Join(e.Categories, ", "), blankZero(strconv.Itoa(e.PageCount)), e.PublishedDate)
	}
	if opts.Ratings {
		row = append(row,
			blankZero(strconv.Itoa(e.UserRating)),
			blankZero(strconv.FormatFloat(e.AverageRating, 'f', -1, 64)),
		)
	}
	if opts.Notes {
		row = append(row, e.UserReview)
	}
	return row
}

func blankZero(s string) string {
	if s == "0" {
		return ""
	}
	return s
}

// Write renders the already selected entries in opts.Format.
func Write(w io.Writer, entries []library.Entry, opts Options, now time.Time) error {
	switch opts.Format {
	case FormatCSV:
		return writeCSV(w, entries, opts)
	case FormatJSON:
		return writeJSON(w, entries, opts, now)
	case FormatHTML:
		return writeHTML(w, entries, opts, now)
	case FormatXLSX:
		return writeXLSX(w, entries, opts)
	default:
		return fmt.Errorf("unsupported export format %q", opts.Format)
	}
}
