// Command seed registers a demo device and fills its library with the demo
// ISBNs, resolved live against the catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"bookscan/internal/catalog"
	"bookscan/internal/config"
	"bookscan/internal/device"
	"bookscan/internal/library"
	"bookscan/internal/lookup"
	"bookscan/internal/platform/logger"
	"bookscan/internal/scan"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	platform := flag.String("platform", device.PlatformCLI, "platform of the demo device")
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		logger.Must(logger.Config{Level: "error"}).Fatal("load config", logger.Error(err))
	}
	log := logger.Must(logger.Config{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal("connect to database", logger.Error(err))
	}
	defer pool.Close()

	devices := device.NewService(device.NewPostgresRepo(pool, cfg.DBTimeout), cfg.JWTSecret, cfg.TokenTTL)
	reg, err := devices.Register(ctx, *platform, "demo")
	if err != nil {
		log.Fatal("register demo device", logger.Error(err))
	}

	resolver := catalog.NewDefaultResolver(cfg.Catalog, log)
	lib := library.NewService(library.NewPostgresRepo(pool, cfg.DBTimeout))

	s := seeder{resolver: resolver, library: lib, log: log, rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	added := s.run(ctx, reg.Device.ID, scan.DemoISBNs)

	log.Info("demo library seeded",
		logger.String("device_id", reg.Device.ID),
		logger.Int("books", added),
		logger.Int("skipped", len(scan.DemoISBNs)-added),
	)
	fmt.Fprintln(os.Stdout, reg.Token)
}

type seeder struct {
	resolver lookup.Resolver
	library  *library.Service
	log      logger.Logger
	rng      *rand.Rand
}

var statuses = []string{library.StatusWantToRead, library.StatusReading, library.StatusRead}

// run adds every ISBN the catalog resolves and returns how many were added.
// Read books get a random rating and review so stats and exports have data.
func (s seeder) run(ctx context.Context, deviceID string, isbns []string) int {
	added := 0
	for _, id := range isbns {
		book, err := s.resolver.Resolve(ctx, id)
		if err != nil {
			s.log.Warn("skip unresolved isbn", logger.String("isbn", id), logger.Error(err))
			continue
		}

		entry, err := s.library.Add(ctx, deviceID, addCommand(book, statuses[s.rng.IntN(len(statuses))]), nil)
		if err != nil {
			s.log.Error("add library entry", logger.String("isbn", id), logger.Error(err))
			continue
		}
		added++

		if entry.ReadingStatus != library.StatusRead {
			continue
		}
		rating := 1 + s.rng.IntN(5)
		review := fmt.Sprintf("Demo review, %d stars.", rating)
		if _, err := s.library.Update(ctx, deviceID, entry.ID, library.UpdateCommand{UserRating: &rating, UserReview: &review}); err != nil {
			s.log.Error("rate library entry", logger.String("isbn", id), logger.Error(err))
		}
	}
	return added
}

func addCommand(b *catalog.BookRecord, status string) library.AddCommand {
	return library.AddCommand{
		Title:         b.Title,
		Authors:       b.Authors,
		Description:   b.Description,
		Categories:    b.Categories,
		CoverImageURL: b.CoverImageURL,
		PublishedDate: b.PublishedDate,
		PageCount:     b.PageCount,
		AverageRating: b.AverageRating,
		RatingsCount:  b.RatingsCount,
		ISBN:          b.ISBN,
		FetchedAt:     b.FetchedAt,
		Source:        b.Source,
		ReadingStatus: status,
	}
}
