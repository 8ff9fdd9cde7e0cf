package library

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=library

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	Get(ctx context.Context, deviceID, id string) (*Entry, error)
	ListByDevice(ctx context.Context, deviceID string) ([]Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, deviceID, id string) error
}
