package library

import (
	"context"
	"fmt"
	"time"

	"bookscan/internal/recommend"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Add stores the book with a recommendation computed from prefs. Adding the
// same ISBN twice creates two entries.
func (s *Service) Add(ctx context.Context, deviceID string, cmd AddCommand, prefs *recommend.Preferences) (*Entry, error) {
	now := s.now().UTC()
	book := cmd.Book(now)

	status := cmd.ReadingStatus
	if status == "" {
		status = StatusWantToRead
	}

	e := &Entry{
		ID:             uuid.NewString(),
		DeviceID:       deviceID,
		BookRecord:     book,
		Recommendation: recommend.Score(book, prefs),
		ReadingStatus:  status,
		ScannedAt:      now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create library entry: %w", err)
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, deviceID, id string) (*Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, deviceID, id)
}

// List returns one page of the filtered, sorted library. Total counts every
// entry matching q.
func (s *Service) List(ctx context.Context, deviceID string, q ListQuery) (*Page, error) {
	all, err := s.repo.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	matched := Apply(all, q)

	entries, next, err := Paginate(matched, q.Cursor, q.Limit)
	if err != nil {
		return nil, err
	}
	return &Page{Entries: entries, NextCursor: next, Total: len(matched)}, nil
}

// All returns every entry, newest first.
func (s *Service) All(ctx context.Context, deviceID string) ([]Entry, error) {
	all, err := s.repo.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return Apply(all, ListQuery{}), nil
}

// Update applies the reader's edits. Any edit stamps the review date.
func (s *Service) Update(ctx context.Context, deviceID, id string, cmd UpdateCommand) (*Entry, error) {
	e, err := s.Get(ctx, deviceID, id)
	if err != nil {
		return nil, err
	}
	if cmd.Empty() {
		return e, nil
	}

	if cmd.UserRating != nil {
		e.UserRating = *cmd.UserRating
	}
	if cmd.UserReview != nil {
		e.UserReview = *cmd.UserReview
	}
	if cmd.ReadingStatus != nil {
		e.ReadingStatus = *cmd.ReadingStatus
	}
	now := s.now().UTC()
	e.ReviewDate = &now

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, deviceID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, deviceID, id)
}
