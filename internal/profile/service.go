package profile

import (
	"context"
	"errors"
	"time"

	"bookscan/internal/recommend"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Get(ctx context.Context, deviceID string) (*Preferences, error) {
	return s.repo.Get(ctx, deviceID)
}

// Find is Get with ErrNotFound mapped to nil, nil.
func (s *Service) Find(ctx context.Context, deviceID string) (*Preferences, error) {
	p, err := s.repo.Get(ctx, deviceID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *Service) Update(ctx context.Context, deviceID string, cmd UpdateCommand) (*Preferences, error) {
	p := cmd.Apply()
	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Upsert(ctx, deviceID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ScorerPreferences returns nil when the device never saved a profile.
func (s *Service) ScorerPreferences(ctx context.Context, deviceID string) (*recommend.Preferences, error) {
	p, err := s.Find(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return p.ScorerInput(), nil
}
