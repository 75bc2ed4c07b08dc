package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/agenda/internal/domain/event"
	"github.com/rpggio/agenda/internal/repository"
)

const eventColumns = `id, title, date, time, client, type, reminder_minutes, notes, owner_email, created_at, updated_at`

// EventRepository implements event.Repository for SQLite
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

const insertEvent = `
	INSERT INTO events (
		title, date, time, client, type, reminder_minutes, notes,
		owner_email, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func insertArgs(evt *event.Event) []any {
	return []any{
		evt.Title,
		evt.Date.Format(event.DateLayout),
		evt.Time.String(),
		evt.Client,
		evt.Type,
		evt.ReminderMinutes,
		evt.Notes,
		evt.OwnerEmail,
		evt.CreatedAt,
		evt.UpdatedAt,
	}
}

// Create inserts an event and assigns its id
func (r *EventRepository) Create(ctx context.Context, evt *event.Event) error {
	result, err := r.db.ExecContext(ctx, insertEvent, insertArgs(evt)...)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read event id: %w", err)
	}
	evt.ID = id
	return nil
}

// CreateMany inserts events in a single transaction
func (r *EventRepository) CreateMany(ctx context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertEvent)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	ids := make([]int64, len(events))
	for i, evt := range events {
		result, err := stmt.ExecContext(ctx, insertArgs(evt)...)
		if err != nil {
			return fmt.Errorf("failed to insert event %d: %w", i, err)
		}
		if ids[i], err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read event id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit events: %w", err)
	}
	for i, evt := range events {
		evt.ID = ids[i]
	}
	return nil
}

// Get retrieves an event by ID
func (r *EventRepository) Get(ctx context.Context, id int64) (*event.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	evt, err := scanEvent(row)
	if isNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return evt, nil
}

// Update overwrites every mutable column of an event
func (r *EventRepository) Update(ctx context.Context, evt *event.Event) error {
	query := `
		UPDATE events
		SET title = ?, date = ?, time = ?, client = ?, type = ?,
		    reminder_minutes = ?, notes = ?, owner_email = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		evt.Title,
		evt.Date.Format(event.DateLayout),
		evt.Time.String(),
		evt.Client,
		evt.Type,
		evt.ReminderMinutes,
		evt.Notes,
		evt.OwnerEmail,
		evt.UpdatedAt,
		evt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireRowAffected(result, "update")
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireRowAffected(result, "delete")
}

// Query filters, sorts and slices the owner's events. The returned count
// ignores Offset and Limit.
func (r *EventRepository) Query(ctx context.Context, ownerEmail string, criteria event.Criteria) ([]event.Event, int, error) {
	where, args := buildConditions(ownerEmail, criteria)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE ` + where + ` ORDER BY ` + orderBy(criteria)
	if criteria.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, criteria.Limit, criteria.Offset)
	} else if criteria.Offset > 0 {
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, criteria.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []event.Event{}
	for rows.Next() {
		evt, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *evt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, total, nil
}

func buildConditions(ownerEmail string, criteria event.Criteria) (string, []any) {
	conditions := []string{"owner_email = ?"}
	args := []any{ownerEmail}

	if criteria.From != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, criteria.From.Format(event.DateLayout))
	}
	if criteria.To != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, criteria.To.Format(event.DateLayout))
	}
	if criteria.TypeContains != "" {
		conditions = append(conditions, "instr(fold(type), ?) > 0")
		args = append(args, strings.ToLower(criteria.TypeContains))
	}
	if criteria.ClientContains != "" {
		conditions = append(conditions, "instr(fold(client), ?) > 0")
		args = append(args, strings.ToLower(criteria.ClientContains))
	}
	if criteria.Term != "" {
		term := strings.ToLower(criteria.Term)
		conditions = append(conditions, "(instr(fold(title), ?) > 0 OR instr(fold(notes), ?) > 0 OR instr(fold(client), ?) > 0)")
		args = append(args, term, term, term)
	}
	if criteria.HasClient {
		conditions = append(conditions, "client IS NOT NULL AND client <> ''")
	}

	return strings.Join(conditions, " AND "), args
}

// orderBy renders the sort clause. id is always the last key so pages are
// stable across calls.
func orderBy(criteria event.Criteria) string {
	dir := "ASC"
	if criteria.SortDirection == event.Descending {
		dir = "DESC"
	}
	switch criteria.SortBy {
	case event.SortByTitle:
		return "title COLLATE NOCASE " + dir + ", id " + dir
	case event.SortByType:
		return "type COLLATE NOCASE " + dir + ", id " + dir
	case event.SortByClient:
		return "client COLLATE NOCASE " + dir + ", id " + dir
	default:
		return "date " + dir + ", time " + dir + ", id " + dir
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*event.Event, error) {
	var evt event.Event
	var date, tod string
	err := row.Scan(
		&evt.ID,
		&evt.Title,
		&date,
		&tod,
		&evt.Client,
		&evt.Type,
		&evt.ReminderMinutes,
		&evt.Notes,
		&evt.OwnerEmail,
		&evt.CreatedAt,
		&evt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if evt.Date, err = event.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: event %d: %v", repository.ErrInvalidInput, evt.ID, err)
	}
	if evt.Time, err = event.ParseTimeOfDay(tod); err != nil {
		return nil, fmt.Errorf("%w: event %d: %v", repository.ErrInvalidInput, evt.ID, err)
	}
	return &evt, nil
}
