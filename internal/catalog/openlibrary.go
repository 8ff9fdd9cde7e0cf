package catalog

import (
	"context"

	"bookscan/internal/platform/openlibrary"
)

type BookDetailsClient interface {
	GetBookByISBN(ctx context.Context, isbn string) (*openlibrary.BookDetails, error)
}

// OpenLibrary is the fallback source. It carries no community ratings.
type OpenLibrary struct {
	client BookDetailsClient
}

func NewOpenLibrary(client BookDetailsClient) *OpenLibrary {
	return &OpenLibrary{client: client}
}

func (o *OpenLibrary) Name() string { return "open_library" }

func (o *OpenLibrary) Lookup(ctx context.Context, isbn string) (*BookRecord, error) {
	details, err := o.client.GetBookByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, nil
	}
	return fromBookDetails(details), nil
}

func fromBookDetails(d *openlibrary.BookDetails) *BookRecord {
	rec := &BookRecord{
		Title:         d.Title,
		Authors:       names(d.Authors),
		Categories:    names(d.Subjects),
		PublishedDate: d.PublishDate,
		PageCount:     d.NumberOfPages,
		CoverImageURL: d.Cover.Medium,
	}
	if rec.CoverImageURL == "" {
		rec.CoverImageURL = d.Cover.Large
	}
	if len(d.Excerpts) > 0 && d.Excerpts[0].Text != "" {
		rec.Description = d.Excerpts[0].Text
	} else {
		rec.Description = string(d.Notes)
	}
	return rec
}

func names(in []openlibrary.Named) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		if n.Name != "" {
			out = append(out, n.Name)
		}
	}
	return out
}
