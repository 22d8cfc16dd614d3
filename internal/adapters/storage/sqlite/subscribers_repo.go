package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-care-notifier/internal/domain/subscribers"
)

type SubscribersRepo struct {
	db *sql.DB
}

func NewSubscribersRepo(db *sql.DB) *SubscribersRepo {
	return &SubscribersRepo{db: db}
}

func (r *SubscribersRepo) Upsert(ctx context.Context, s subscribers.Subscriber) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("subscriber id required")
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO line_users(user_id, display_name, updated_at) VALUES(?,?,?)
		 ON CONFLICT(user_id) DO UPDATE SET
			display_name = CASE WHEN excluded.display_name = '' THEN line_users.display_name ELSE excluded.display_name END,
			updated_at = excluded.updated_at`,
		s.ID, s.DisplayName, s.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (r *SubscribersRepo) GetByID(ctx context.Context, id string) (subscribers.Subscriber, error) {
	var (
		s       subscribers.Subscriber
		updated string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, display_name, updated_at FROM line_users WHERE user_id = ?`,
		strings.TrimSpace(id),
	).Scan(&s.ID, &s.DisplayName, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return subscribers.Subscriber{}, subscribers.ErrNotFound
	}
	if err != nil {
		return subscribers.Subscriber{}, err
	}
	s.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return s, nil
}

func (r *SubscribersRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM line_users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *SubscribersRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM line_users`).Scan(&n)
	return n, err
}
