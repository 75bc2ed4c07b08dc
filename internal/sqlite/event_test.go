package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rpggio/agenda/internal/domain/event"
	"github.com/rpggio/agenda/internal/repository"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(event.DateLayout, s)
	require.NoError(t, err)
	return d
}

func newEvent(t *testing.T, owner, title, date string, tod event.TimeOfDay) *event.Event {
	t.Helper()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &event.Event{
		Title:      title,
		Date:       mustDate(t, date),
		Time:       tod,
		OwnerEmail: owner,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func seed(t *testing.T, repo *EventRepository, events ...*event.Event) {
	t.Helper()
	for _, evt := range events {
		require.NoError(t, repo.Create(context.Background(), evt))
	}
}

func TestEventRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	evt := newEvent(t, "a@x.com", "Kickoff", "2024-03-04", event.NewTimeOfDay(9, 30, 0))
	evt.Client = strPtr("Acme")
	evt.Type = strPtr("meeting")
	evt.ReminderMinutes = intPtr(0)
	evt.Notes = strPtr("bring slides")

	require.NoError(t, repo.Create(ctx, evt))
	require.NotZero(t, evt.ID)

	got, err := repo.Get(ctx, evt.ID)
	require.NoError(t, err)
	require.Equal(t, "Kickoff", got.Title)
	require.Equal(t, evt.Date, got.Date)
	require.Equal(t, evt.Time, got.Time)
	require.Equal(t, "Acme", *got.Client)
	require.Equal(t, "meeting", *got.Type)
	require.NotNil(t, got.ReminderMinutes)
	require.Equal(t, 0, *got.ReminderMinutes)
	require.Equal(t, "bring slides", *got.Notes)
	require.Equal(t, "a@x.com", got.OwnerEmail)
	require.True(t, evt.CreatedAt.Equal(got.CreatedAt))
}

func TestEventRepository_NullOptionals(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	evt := newEvent(t, "a@x.com", "Plain", "2024-03-04", 0)
	require.NoError(t, repo.Create(ctx, evt))

	got, err := repo.Get(ctx, evt.ID)
	require.NoError(t, err)
	require.Nil(t, got.Client)
	require.Nil(t, got.Type)
	require.Nil(t, got.ReminderMinutes)
	require.Nil(t, got.Notes)
}

func TestEventRepository_GetNotFound(t *testing.T) {
	repo := NewEventRepository(NewTestDB(t))
	_, err := repo.Get(context.Background(), 404)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventRepository_UpdateDelete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	evt := newEvent(t, "a@x.com", "Draft", "2024-03-04", event.NewTimeOfDay(8, 0, 0))
	require.NoError(t, repo.Create(ctx, evt))

	evt.Title = "Final"
	evt.Type = strPtr("call")
	evt.UpdatedAt = evt.UpdatedAt.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, evt))

	got, err := repo.Get(ctx, evt.ID)
	require.NoError(t, err)
	require.Equal(t, "Final", got.Title)
	require.Equal(t, "call", *got.Type)

	require.NoError(t, repo.Delete(ctx, evt.ID))
	require.ErrorIs(t, repo.Delete(ctx, evt.ID), repository.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, evt), repository.ErrNotFound)
}

func TestEventRepository_Query_OwnerScoped(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	seed(t, repo,
		newEvent(t, "a@x.com", "A1", "2024-01-01", 0),
		newEvent(t, "b@x.com", "B1", "2024-01-01", 0),
		newEvent(t, "a@x.com", "A2", "2024-01-02", 0),
	)

	events, total, err := repo.Query(ctx, "a@x.com", event.Criteria{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, events, 2)
	for _, evt := range events {
		require.Equal(t, "a@x.com", evt.OwnerEmail)
	}

	events, total, err = repo.Query(ctx, "nobody@x.com", event.Criteria{})
	require.NoError(t, err)
	require.Zero(t, total)
	require.NotNil(t, events)
	require.Empty(t, events)
}

func TestEventRepository_Query_DateThenTime(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	seed(t, repo,
		newEvent(t, "a@x.com", "nine", "2024-01-01", event.NewTimeOfDay(9, 0, 0)),
		newEvent(t, "a@x.com", "eight", "2024-01-01", event.NewTimeOfDay(8, 0, 0)),
		newEvent(t, "a@x.com", "earlier day", "2023-12-31", event.NewTimeOfDay(23, 0, 0)),
	)

	events, _, err := repo.Query(ctx, "a@x.com", event.Criteria{SortBy: event.SortByDate})
	require.NoError(t, err)
	require.Equal(t, []string{"earlier day", "eight", "nine"}, titles(events))

	events, _, err = repo.Query(ctx, "a@x.com", event.Criteria{SortBy: event.SortByDate, SortDirection: event.Descending})
	require.NoError(t, err)
	require.Equal(t, []string{"nine", "eight", "earlier day"}, titles(events))
}

func TestEventRepository_Query_Filters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	standup := newEvent(t, "a@x.com", "Daily Standup", "2024-01-10", event.NewTimeOfDay(9, 0, 0))
	standup.Type = strPtr("Meeting")
	review := newEvent(t, "a@x.com", "Review", "2024-01-15", event.NewTimeOfDay(14, 0, 0))
	review.Client = strPtr("Acme Corp")
	review.Notes = strPtr("Quarterly PLANNING")
	review.ReminderMinutes = intPtr(30)
	lunch := newEvent(t, "a@x.com", "Lunch", "2024-02-01", event.NewTimeOfDay(12, 0, 0))
	lunch.Type = strPtr("personal")
	lunch.Client = strPtr("")
	seed(t, repo, standup, review, lunch)

	from := mustDate(t, "2024-01-10")
	to := mustDate(t, "2024-01-15")
	events, total, err := repo.Query(ctx, "a@x.com", event.Criteria{From: &from, To: &to})
	require.NoError(t, err)
	require.Equal(t, 2, total, "date bounds are inclusive")
	require.Equal(t, []string{"Daily Standup", "Review"}, titles(events))

	events, _, err = repo.Query(ctx, "a@x.com", event.Criteria{TypeContains: "meet"})
	require.NoError(t, err)
	require.Equal(t, []string{"Daily Standup"}, titles(events))

	events, _, err = repo.Query(ctx, "a@x.com", event.Criteria{ClientContains: "ACME"})
	require.NoError(t, err)
	require.Equal(t, []string{"Review"}, titles(events))

	events, _, err = repo.Query(ctx, "a@x.com", event.Criteria{Term: "planning"})
	require.NoError(t, err)
	require.Equal(t, []string{"Review"}, titles(events), "term matches notes")

	events, _, err = repo.Query(ctx, "a@x.com", event.Criteria{Term: "stand"})
	require.NoError(t, err)
	require.Equal(t, []string{"Daily Standup"}, titles(events), "term matches title")

	events, _, err = repo.Query(ctx, "a@x.com", event.Criteria{HasClient: true})
	require.NoError(t, err)
	require.Equal(t, []string{"Review"}, titles(events), "empty client is not a client")

	inverted := event.Criteria{From: &to, To: &from}
	events, total, err = repo.Query(ctx, "a@x.com", inverted)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, events)
}

func TestEventRepository_Query_Pagination(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	// Identical sort keys everywhere so only the id tiebreak orders them.
	for i := 0; i < 23; i++ {
		seed(t, repo, newEvent(t, "a@x.com", fmt.Sprintf("e%02d", i), "2024-01-01", event.NewTimeOfDay(9, 0, 0)))
	}

	seen := map[int64]bool{}
	for page := 0; page < 3; page++ {
		events, total, err := repo.Query(ctx, "a@x.com", event.Criteria{
			SortBy: event.SortByDate,
			Offset: page * 10,
			Limit:  10,
		})
		require.NoError(t, err)
		require.Equal(t, 23, total)
		require.LessOrEqual(t, len(events), 10)
		for _, evt := range events {
			require.False(t, seen[evt.ID], "event %d returned twice", evt.ID)
			seen[evt.ID] = true
		}
	}
	require.Len(t, seen, 23)
}

func TestEventRepository_Query_SortByTitle(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	seed(t, repo,
		newEvent(t, "a@x.com", "beta", "2024-01-01", 0),
		newEvent(t, "a@x.com", "Alpha", "2024-01-02", 0),
		newEvent(t, "a@x.com", "gamma", "2024-01-03", 0),
	)

	events, _, err := repo.Query(ctx, "a@x.com", event.Criteria{SortBy: event.SortByTitle, SortDirection: event.Descending})
	require.NoError(t, err)
	require.Equal(t, []string{"gamma", "beta", "Alpha"}, titles(events))
}

func TestEventRepository_CreateMany(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	batch := []*event.Event{
		newEvent(t, "a@x.com", "one", "2024-01-01", 0),
		newEvent(t, "a@x.com", "two", "2024-01-02", 0),
	}
	require.NoError(t, repo.CreateMany(ctx, batch))
	require.NotZero(t, batch[0].ID)
	require.NotEqual(t, batch[0].ID, batch[1].ID)

	_, total, err := repo.Query(ctx, "a@x.com", event.Criteria{})
	require.NoError(t, err)
	require.Equal(t, 2, total)

	require.NoError(t, repo.CreateMany(ctx, nil))
}

func titles(events []event.Event) []string {
	out := make([]string, 0, len(events))
	for _, evt := range events {
		out = append(out, evt.Title)
	}
	return out
}
