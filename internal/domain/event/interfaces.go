package event

import "context"

// Repository provides persistence for events.
type Repository interface {
	Create(ctx context.Context, evt *Event) error
	Get(ctx context.Context, id int64) (*Event, error)
	Update(ctx context.Context, evt *Event) error
	Delete(ctx context.Context, id int64) error
	// Query returns the owner's events matching criteria and the match count
	// before Offset/Limit are applied.
	Query(ctx context.Context, ownerEmail string, criteria Criteria) ([]Event, int, error)
	// CreateMany inserts all events atomically and assigns their ids.
	CreateMany(ctx context.Context, events []*Event) error
}
