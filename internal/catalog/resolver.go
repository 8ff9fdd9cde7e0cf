package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookscan/internal/isbn"
	"bookscan/internal/platform/logger"
)

// Per-source outcomes reported to the Observer.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// Resolution outcomes reported to the Observer.
const (
	ResolutionFound       = "found"
	ResolutionNotFound    = "not_found"
	ResolutionUnavailable = "unavailable"
	ResolutionInvalid     = "invalid"
)

// Observer receives lookup outcomes, typically to feed metrics.
type Observer interface {
	SourceResult(source, outcome string)
	Resolution(outcome string)
}

// Resolver tries its sources in order and returns the first hit. There is no
// retry, no cache and no parallel fan-out.
type Resolver struct {
	sources  []Source
	log      logger.Logger
	observer Observer
	now      func() time.Time
}

func NewResolver(log logger.Logger, sources ...Source) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{
		sources: sources,
		log:     log,
		now:     time.Now,
	}
}

// WithObserver attaches o and returns the resolver.
func (r *Resolver) WithObserver(o Observer) *Resolver {
	r.observer = o
	return r
}

// Sources returns the source names in lookup order.
func (r *Resolver) Sources() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

// Lookup normalizes raw and resolves it.
func (r *Resolver) Lookup(ctx context.Context, raw string) (*BookRecord, error) {
	return r.Resolve(ctx, isbn.Normalize(raw))
}

// Resolve expects an already normalized identifier. The returned error
// satisfies errors.Is(err, ErrNotFound) when every source missed or failed,
// and additionally ErrSourceUnavailable when at least one of them failed.
func (r *Resolver) Resolve(ctx context.Context, id string) (*BookRecord, error) {
	if id != isbn.Normalize(id) || !isbn.IsValid(id) {
		r.resolution(ResolutionInvalid)
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}

	log := r.log.With(logger.String("isbn", id))
	var failures []error
	for _, src := range r.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		rec, err := src.Lookup(ctx, id)
		took := time.Since(start)

		switch {
		case err != nil:
			r.sourceResult(src.Name(), OutcomeError)
			log.Warn("catalog source failed, falling back",
				logger.String("source", src.Name()),
				logger.Duration("took", took),
				logger.Error(err),
			)
			failures = append(failures, fmt.Errorf("%s: %w", src.Name(), err))
		case rec == nil:
			r.sourceResult(src.Name(), OutcomeMiss)
			log.Debug("catalog source has no match",
				logger.String("source", src.Name()),
				logger.Duration("took", took),
			)
		default:
			r.sourceResult(src.Name(), OutcomeHit)
			rec.ISBN = id
			rec.Source = src.Name()
			now := r.now()
			rec.FetchedAt = now
			rec.ApplyDefaults(now)
			r.resolution(ResolutionFound)
			log.Info("book resolved",
				logger.String("source", src.Name()),
				logger.Duration("took", took),
			)
			return rec, nil
		}
	}

	if len(failures) > 0 {
		r.resolution(ResolutionUnavailable)
		return nil, fmt.Errorf("%w for %s (%w): %w", ErrNotFound, id, ErrSourceUnavailable, errors.Join(failures...))
	}
	r.resolution(ResolutionNotFound)
	return nil, fmt.Errorf("%w for %s", ErrNotFound, id)
}

func (r *Resolver) sourceResult(source, outcome string) {
	if r.observer != nil {
		r.observer.SourceResult(source, outcome)
	}
}

func (r *Resolver) resolution(outcome string) {
	if r.observer != nil {
		r.observer.Resolution(outcome)
	}
}
