package catalog

import (
	"context"
	"strings"

	"bookscan/internal/platform/googlebooks"
)

type VolumeClient interface {
	VolumesByISBN(ctx context.Context, isbn string) (*googlebooks.VolumesResponse, error)
}

// GoogleBooks is the primary source.
type GoogleBooks struct {
	client VolumeClient
}

func NewGoogleBooks(client VolumeClient) *GoogleBooks {
	return &GoogleBooks{client: client}
}

func (g *GoogleBooks) Name() string { return "google_books" }

func (g *GoogleBooks) Lookup(ctx context.Context, isbn string) (*BookRecord, error) {
	res, err := g.client.VolumesByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Items) == 0 {
		return nil, nil
	}
	return fromVolume(res.Items[0].VolumeInfo), nil
}

func fromVolume(info googlebooks.VolumeInfo) *BookRecord {
	rec := &BookRecord{
		Title:         info.Title,
		Authors:       nonEmpty(info.Authors),
		Description:   info.Description,
		Categories:    nonEmpty(info.Categories),
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		AverageRating: info.AverageRating,
		RatingsCount:  info.RatingsCount,
	}
	if info.ImageLinks != nil {
		cover := info.ImageLinks.Thumbnail
		if cover == "" {
			cover = info.ImageLinks.SmallThumbnail
		}
		rec.CoverImageURL = secureURL(cover)
	}
	return rec
}

// secureURL upgrades the http links Google Books returns for covers.
func secureURL(u string) string {
	if strings.HasPrefix(u, "http:") {
		return "https:" + strings.TrimPrefix(u, "http:")
	}
	return u
}
