package subscribers

import "context"

type Repository interface {
	// Upsert crea o mezcla por ID. Un DisplayName vacío conserva el nombre guardado.
	Upsert(ctx context.Context, s Subscriber) error
	GetByID(ctx context.Context, id string) (Subscriber, error)
	ListIDs(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}
