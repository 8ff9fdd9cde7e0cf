package feedback

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=feedback

type Repository interface {
	Create(ctx context.Context, f *Feedback) error
}
