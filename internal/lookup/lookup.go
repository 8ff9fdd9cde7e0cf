// Package lookup runs the scan pipeline: normalize, validate, resolve, score.
package lookup

import (
	"context"

	"bookscan/internal/catalog"
	"bookscan/internal/isbn"
	"bookscan/internal/recommend"
)

type Resolver interface {
	Resolve(ctx context.Context, id string) (*catalog.BookRecord, error)
}

// Result is a resolved book with its recommendation. Nothing is stored.
type Result struct {
	Book           catalog.BookRecord       `json:"book"`
	Recommendation recommend.Recommendation `json:"recommendation"`
	ChecksumValid  bool                     `json:"checksum_valid"`
}

// Identifier describes a raw input without touching the network.
type Identifier struct {
	Raw           string `json:"raw"`
	Normalized    string `json:"normalized"`
	Valid         bool   `json:"valid"`
	ChecksumValid bool   `json:"checksum_valid"`
}

func Inspect(raw string) Identifier {
	id := isbn.Normalize(raw)
	return Identifier{
		Raw:           raw,
		Normalized:    id,
		Valid:         isbn.IsValid(id),
		ChecksumValid: isbn.HasValidChecksum(id),
	}
}

type Service struct {
	resolver Resolver
}

func NewService(resolver Resolver) *Service {
	return &Service{resolver: resolver}
}

// Lookup fails with catalog.ErrInvalidIdentifier before any network call when
// raw does not normalize to 10 or 13 characters.
func (s *Service) Lookup(ctx context.Context, raw string, prefs *recommend.Preferences) (*Result, error) {
	id := isbn.Normalize(raw)
	if !isbn.IsValid(id) {
		return nil, catalog.ErrInvalidIdentifier
	}

	book, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Result{
		Book:           *book,
		Recommendation: recommend.Score(*book, prefs),
		ChecksumValid:  isbn.HasValidChecksum(id),
	}, nil
}
