package subscribers

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("subscriber not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Register es idempotente: repetir el mismo id nunca duplica, y el último nombre gana.
func (s *Service) Register(ctx context.Context, id, displayName string) (Subscriber, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Subscriber{}, ErrInvalidInput
	}

	sub := Subscriber{
		ID:          id,
		DisplayName: strings.TrimSpace(displayName),
		UpdatedAt:   s.now(),
	}
	if err := s.repo.Upsert(ctx, sub); err != nil {
		return Subscriber{}, err
	}
	return sub, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Subscriber, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Subscriber{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// ListIDs devuelve todos los ids registrados. Vacío no es error.
func (s *Service) ListIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListIDs(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
