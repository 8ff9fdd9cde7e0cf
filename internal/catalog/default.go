package catalog

import (
	"bookscan/internal/config"
	"bookscan/internal/platform/googlebooks"
	"bookscan/internal/platform/logger"
	"bookscan/internal/platform/openlibrary"
)

// NewDefaultResolver wires Google Books first and Open Library second.
func NewDefaultResolver(cfg config.CatalogConfig, log logger.Logger) *Resolver {
	gb := googlebooks.NewClient(googlebooks.Config{
		BaseURL:   cfg.GoogleBooksBaseURL,
		APIKey:    cfg.GoogleBooksAPIKey,
		UserAgent: cfg.UserAgent,
		RPS:       cfg.RPS,
		Timeout:   cfg.Timeout,
	})
	ol := openlibrary.NewClient(openlibrary.Config{
		BaseURL:    cfg.OpenLibraryBaseURL,
		UserAgent:  cfg.UserAgent,
		RPS:        cfg.RPS,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
	})
	return NewResolver(log, NewGoogleBooks(gb), NewOpenLibrary(ol))
}
