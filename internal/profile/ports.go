package profile

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=profile

type Repository interface {
	Get(ctx context.Context, deviceID string) (*Preferences, error)
	Upsert(ctx context.Context, deviceID string, p *Preferences) error
}
