package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rpggio/agenda/internal/repository"
)

// Service handles event business logic.
type Service struct {
	events   Repository
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new event service. A nil validate or logger gets a
// usable default.
func NewService(events Repository, validate *validator.Validate, logger *slog.Logger) *Service {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		events:   events,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock replaces the wall clock used for "today" and timestamps.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Search returns one page of the owner's events matching req.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*Page, error) {
	owner, err := requireOwner(req.Email)
	if err != nil {
		return nil, err
	}

	criteria, page, pageSize := req.normalize()
	events, total, err := s.events.Query(ctx, owner, criteria)
	if err != nil {
		return nil, fmt.Errorf("searching events: %w", err)
	}
	if events == nil {
		events = []Event{}
	}

	return &Page{
		Data:       events,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}, nil
}

// TotalPages is ceil(total / pageSize).
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Get retrieves a single event.
func (s *Service) Get(ctx context.Context, id int64) (*Event, error) {
	evt, err := s.events.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return evt, nil
}

// ListByOwner returns every event of the owner ordered by date and time.
func (s *Service) ListByOwner(ctx context.Context, email string) ([]Event, error) {
	return s.list(ctx, email, Criteria{})
}

// Upcoming returns events dated from today through today+days. Negative
// days fall back to a week.
func (s *Service) Upcoming(ctx context.Context, email string, days int) ([]Event, error) {
	if days < 0 {
		days = DefaultUpcoming
	}
	today := s.today()
	return s.list(ctx, email, DateRange(today, today.AddDate(0, 0, days)))
}

// ByType returns events whose type contains typ.
func (s *Service) ByType(ctx context.Context, email, typ string) ([]Event, error) {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return nil, &ValidationError{Fields: []FieldError{{Field: "type", Message: "is required"}}}
	}
	return s.list(ctx, email, Criteria{TypeContains: typ})
}

// ByClient returns events whose client contains client.
func (s *Service) ByClient(ctx context.Context, email, client string) ([]Event, error) {
	client = strings.TrimSpace(client)
	if client == "" {
		return nil, &ValidationError{Fields: []FieldError{{Field: "client", Message: "is required"}}}
	}
	return s.list(ctx, email, Criteria{ClientContains: client})
}

func (s *Service) list(ctx context.Context, email string, criteria Criteria) ([]Event, error) {
	owner, err := requireOwner(email)
	if err != nil {
		return nil, err
	}
	criteria.SortBy = SortByDate
	criteria.SortDirection = Ascending
	events, _, err := s.events.Query(ctx, owner, criteria)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

// Statistics computes summary counters for the owner.
func (s *Service) Statistics(ctx context.Context, email string) (Statistics, error) {
	events, err := s.ListByOwner(ctx, email)
	if err != nil {
		return nil, err
	}
	return ComputeStatistics(events, s.today()), nil
}

// ComputeStatistics counts events by period relative to today and by type.
// Weeks start on Sunday.
func ComputeStatistics(events []Event, today time.Time) Statistics {
	today = DateOf(today)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)

	stats := Statistics{
		"Total":     len(events),
		"ThisMonth": 0,
		"ThisWeek":  0,
		"Upcoming":  0,
	}
	for _, evt := range events {
		if evt.Date.Year() == today.Year() && evt.Date.Month() == today.Month() {
			stats["ThisMonth"]++
		}
		if !evt.Date.Before(weekStart) && evt.Date.Before(weekEnd) {
			stats["ThisWeek"]++
		}
		if !evt.Date.Before(today) {
			stats["Upcoming"]++
		}
		if evt.Type != nil && *evt.Type != "" {
			stats["Type_"+*evt.Type]++
		}
	}
	return stats
}

// Create validates and stores a new event.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Email = strings.TrimSpace(req.Email)
	if err := ValidateCreateInput(s.validate, req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	evt := &Event{
		Title:           req.Title,
		Date:            DateOf(req.Date),
		Time:            req.Time,
		Client:          req.Client,
		Type:            req.Type,
		ReminderMinutes: req.ReminderMinutes,
		Notes:           req.Notes,
		OwnerEmail:      req.Email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.events.Create(ctx, evt); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	s.logger.Info("event created", "id", evt.ID, "email", evt.OwnerEmail)
	return evt, nil
}

// Update replaces all mutable fields of an event. Concurrent updates are
// not detected; the last write wins.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Email = strings.TrimSpace(req.Email)
	if err := ValidateUpdateInput(s.validate, req); err != nil {
		return nil, err
	}

	evt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	evt.Title = req.Title
	evt.Date = DateOf(req.Date)
	evt.Time = req.Time
	evt.Client = req.Client
	evt.Type = req.Type
	evt.ReminderMinutes = req.ReminderMinutes
	evt.Notes = req.Notes
	evt.OwnerEmail = req.Email
	evt.UpdatedAt = s.now().UTC()
	if evt.UpdatedAt.Before(evt.CreatedAt) {
		evt.UpdatedAt = evt.CreatedAt
	}

	if err := s.events.Update(ctx, evt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("updating event: %w", err)
	}

	s.logger.Info("event updated", "id", evt.ID)
	return evt, nil
}

// Delete removes an event permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("deleting event: %w", err)
	}
	s.logger.Info("event deleted", "id", id)
	return nil
}

func (s *Service) today() time.Time {
	return DateOf(s.now())
}

func requireOwner(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrMissingOwner
	}
	return email, nil
}
