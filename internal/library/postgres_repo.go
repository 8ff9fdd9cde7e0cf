package library

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

const entryColumns = `
	id, device_id, isbn, title, authors, description, categories, cover_image_url,
	published_date, page_count, average_rating, ratings_count, source, fetched_at,
	rec_star_rating, rec_score, rec_rationale,
	user_rating, user_review, reading_status, review_date, scanned_at
`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(
		&e.ID, &e.DeviceID, &e.ISBN, &e.Title, &e.Authors, &e.Description, &e.Categories, &e.CoverImageURL,
		&e.PublishedDate, &e.PageCount, &e.AverageRating, &e.RatingsCount, &e.Source, &e.FetchedAt,
		&e.Recommendation.StarRating, &e.Recommendation.Score, &e.Recommendation.Rationale,
		&e.UserRating, &e.UserReview, &e.ReadingStatus, &e.ReviewDate, &e.ScannedAt,
	)
	if err != nil {
		return nil, err
	}
	if e.Authors == nil {
		e.Authors = []string{}
	}
	if e.Categories == nil {
		e.Categories = []string{}
	}
	return &e, nil
}

func (r *PostgresRepo) Create(ctx context.Context, e *Entry) error {
	const q = `
		INSERT INTO library_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22)
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(ctx, q,
		e.ID, e.DeviceID, e.ISBN, e.Title, e.Authors, e.Description, e.Categories, e.CoverImageURL,
		e.PublishedDate, e.PageCount, e.AverageRating, e.RatingsCount, e.Source, e.FetchedAt,
		e.Recommendation.StarRating, e.Recommendation.Score, e.Recommendation.Rationale,
		e.UserRating, e.UserReview, e.ReadingStatus, e.ReviewDate, e.ScannedAt,
	)
	return err
}

func (r *PostgresRepo) Get(ctx context.Context, deviceID, id string) (*Entry, error) {
	q := `SELECT ` + entryColumns + ` FROM library_entries WHERE device_id = $1 AND id = $2`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	e, err := scanEntry(r.db.QueryRow(ctx, q, deviceID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

func (r *PostgresRepo) ListByDevice(ctx context.Context, deviceID string) ([]Entry, error) {
	q := `SELECT ` + entryColumns + ` FROM library_entries WHERE device_id = $1 ORDER BY scanned_at DESC`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, q, deviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, e *Entry) error {
	const q = `
		UPDATE library_entries
		SET user_rating = $3, user_review = $4, reading_status = $5, review_date = $6
		WHERE device_id = $1 AND id = $2
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(ctx, q, e.DeviceID, e.ID, e.UserRating, e.UserReview, e.ReadingStatus, e.ReviewDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, deviceID, id string) error {
	const q = `DELETE FROM library_entries WHERE device_id = $1 AND id = $2`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(ctx, q, deviceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
