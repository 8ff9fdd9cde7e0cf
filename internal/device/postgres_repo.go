package device

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

func (r *PostgresRepo) Create(ctx context.Context, d *Device) error {
	const q = `
		INSERT INTO devices (id, platform, name, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(ctx, q, d.ID, d.Platform, d.Name, d.CreatedAt, d.LastSeenAt)
	return err
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Device, error) {
	const q = `
		SELECT id, platform, name, created_at, last_seen_at, revoked_at
		FROM devices
		WHERE id = $1
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var d Device
	err := r.db.QueryRow(ctx, q, id).Scan(&d.ID, &d.Platform, &d.Name, &d.CreatedAt, &d.LastSeenAt, &d.RevokedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// IsActive also bumps last_seen_at so the check doubles as a heartbeat.
func (r *PostgresRepo) IsActive(ctx context.Context, id string) (bool, error) {
	const q = `
		UPDATE devices SET last_seen_at = NOW()
		WHERE id = $1 AND revoked_at IS NULL
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepo) Revoke(ctx context.Context, id string) error {
	const q = `UPDATE devices SET revoked_at = NOW() WHERE id = $1 AND revoked_at IS NULL`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
