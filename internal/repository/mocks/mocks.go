package mocks

import (
	"context"

	"github.com/rpggio/agenda/internal/domain/event"
	"github.com/stretchr/testify/mock"
)

// EventRepository is a mock for event.Repository.
type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, evt *event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *EventRepository) Get(ctx context.Context, id int64) (*event.Event, error) {
	args := m.Called(ctx, id)
	if evt, ok := args.Get(0).(*event.Event); ok {
		return evt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) Update(ctx context.Context, evt *event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *EventRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EventRepository) Query(ctx context.Context, ownerEmail string, criteria event.Criteria) ([]event.Event, int, error) {
	args := m.Called(ctx, ownerEmail, criteria)
	if list, ok := args.Get(0).([]event.Event); ok {
		return list, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *EventRepository) CreateMany(ctx context.Context, events []*event.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
