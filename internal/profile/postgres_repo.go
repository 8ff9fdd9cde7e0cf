package profile

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Get(ctx context.Context, deviceID string) (*Preferences, error) {
	const q = `
		SELECT name, favorite_genres, reading_goal, preferred_languages, bio, avatar_color, updated_at
		FROM preferences
		WHERE device_id = $1
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var p Preferences
	err := r.db.QueryRow(ctx, q, deviceID).Scan(
		&p.Name, &p.FavoriteGenres, &p.ReadingGoal, &p.PreferredLanguages, &p.Bio, &p.AvatarColor, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.FavoriteGenres == nil {
		p.FavoriteGenres = []string{}
	}
	if p.PreferredLanguages == nil {
		p.PreferredLanguages = []string{}
	}
	return &p, nil
}

func (r *PostgresRepo) Upsert(ctx context.Context, deviceID string, p *Preferences) error {
	const q = `
		INSERT INTO preferences (device_id, name, favorite_genres, reading_goal, preferred_languages, bio, avatar_color, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (device_id) DO UPDATE SET
			name = EXCLUDED.name,
			favorite_genres = EXCLUDED.favorite_genres,
			reading_goal = EXCLUDED.reading_goal,
			preferred_languages = EXCLUDED.preferred_languages,
			bio = EXCLUDED.bio,
			avatar_color = EXCLUDED.avatar_color,
			updated_at = EXCLUDED.updated_at
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(ctx, q, deviceID, p.Name, p.FavoriteGenres, p.ReadingGoal, p.PreferredLanguages, p.Bio, p.AvatarColor, p.UpdatedAt)
	return err
}
