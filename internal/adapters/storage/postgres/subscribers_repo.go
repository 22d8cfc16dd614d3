package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-care-notifier/internal/domain/subscribers"
)

const subscribersSchema = `
CREATE TABLE IF NOT EXISTS line_users (
	user_id      TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	updated_at   TIMESTAMPTZ NOT NULL
)`

type SubscribersRepo struct {
	db *sql.DB
}

func NewSubscribersRepo(db *sql.DB) *SubscribersRepo {
	return &SubscribersRepo{db: db}
}

// EnsureSchema crea la tabla si no existe. Idempotente.
func (r *SubscribersRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, subscribersSchema)
	return err
}

func (r *SubscribersRepo) Upsert(ctx context.Context, s subscribers.Subscriber) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("subscriber id required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO line_users (user_id, display_name, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = CASE
				WHEN EXCLUDED.display_name = '' THEN line_users.display_name
				ELSE EXCLUDED.display_name
			END,
			updated_at = EXCLUDED.updated_at
	`,
		s.ID,
		s.DisplayName,
		s.UpdatedAt,
	)
	return err
}

func (r *SubscribersRepo) GetByID(ctx context.Context, id string) (subscribers.Subscriber, error) {
	var s subscribers.Subscriber
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, display_name, updated_at
		FROM line_users
		WHERE user_id = $1
	`, strings.TrimSpace(id)).Scan(&s.ID, &s.DisplayName, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return subscribers.Subscriber{}, subscribers.ErrNotFound
	}
	if err != nil {
		return subscribers.Subscriber{}, err
	}
	return s, nil
}

func (r *SubscribersRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM line_users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, 16)
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
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM line_users`).Scan(&n)
	return n, err
}
