package event

import "context"

type Repository interface {
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
	Create(ctx context.Context, item Event) error
}
