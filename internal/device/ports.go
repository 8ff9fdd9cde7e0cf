package device

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=device

type Repository interface {
	Create(ctx context.Context, d *Device) error
	GetByID(ctx context.Context, id string) (*Device, error)
	IsActive(ctx context.Context, id string) (bool, error)
	Revoke(ctx context.Context, id string) error
}
