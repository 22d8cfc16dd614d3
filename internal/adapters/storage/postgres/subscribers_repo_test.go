package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-care-notifier/internal/domain/subscribers"
)

// Requiere una base real: TEST_DB_DSN=postgres://... go test ./...
func openTestRepo(t *testing.T) *SubscribersRepo {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSubscribersRepo(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestSubscribersRepo_UpsertKeepsNameWhenEmpty(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	id := "U" + uuid.NewString()

	require.NoError(t, repo.Upsert(ctx, subscribers.Subscriber{ID: id, DisplayName: "Mom", UpdatedAt: time.Now()}))
	before, _ := repo.Count(ctx)
	require.NoError(t, repo.Upsert(ctx, subscribers.Subscriber{ID: id, DisplayName: "", UpdatedAt: time.Now()}))
	after, _ := repo.Count(ctx)

	assert.Equal(t, before, after)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Mom", got.DisplayName)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, id)

	_, err = repo.GetByID(ctx, "U"+uuid.NewString())
	assert.ErrorIs(t, err, subscribers.ErrNotFound)
}
