package report

import (
	"context"

	"github.com/rpggio/agenda/internal/domain/event"
)

// EventQuerier reads an owner's events.
type EventQuerier interface {
	Query(ctx context.Context, ownerEmail string, criteria event.Criteria) ([]event.Event, int, error)
}
