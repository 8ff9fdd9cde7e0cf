package device

import (
	"context"
	"fmt"
	"time"

	"bookscan/internal/platform/crypto"

	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewService(repo Repository, secret string, ttl time.Duration) *Service {
	return &Service{repo: repo, secret: secret, ttl: ttl, now: time.Now}
}

// Register creates a device and signs a token for it.
func (s *Service) Register(ctx context.Context, platform, name string) (*Registration, error) {
	now := s.now().UTC()
	d := &Device{
		ID:         uuid.NewString(),
		Platform:   platform,
		Name:       name,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create device: %w", err)
	}

	token, _, err := crypto.GenerateToken(s.secret, d.ID, d.Platform, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("sign device token: %w", err)
	}
	return &Registration{Device: *d, Token: token, ExpiresAt: now.Add(s.ttl)}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Device, error) {
	return s.repo.GetByID(ctx, id)
}

// IsActive satisfies httpx.DeviceChecker.
func (s *Service) IsActive(ctx context.Context, id string) (bool, error) {
	return s.repo.IsActive(ctx, id)
}

func (s *Service) Revoke(ctx context.Context, id string) error {
	return s.repo.Revoke(ctx, id)
}
