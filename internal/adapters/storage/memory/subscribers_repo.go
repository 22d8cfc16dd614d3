package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-care-notifier/internal/domain/subscribers"
)

type subscriberRepo struct {
	mu   sync.RWMutex
	byID map[string]subscribers.Subscriber
}

func NewSubscriberRepo() subscribers.Repository {
	return &subscriberRepo{
		byID: make(map[string]subscribers.Subscriber),
	}
}

func (r *subscriberRepo) Upsert(ctx context.Context, s subscribers.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("subscriber id required")
	}
	if prev, ok := r.byID[s.ID]; ok && s.DisplayName == "" {
		s.DisplayName = prev.DisplayName
	}
	r.byID[s.ID] = s
	return nil
}

func (r *subscriberRepo) GetByID(ctx context.Context, id string) (subscribers.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return subscribers.Subscriber{}, subscribers.ErrNotFound
	}
	return s, nil
}

func (r *subscriberRepo) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (r *subscriberRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
