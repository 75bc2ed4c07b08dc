package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/agenda/internal/domain/event"
)

// DefaultTrendMonths is the trailing window of a trend report.
const DefaultTrendMonths = 12

// Service builds reports from one query per request.
type Service struct {
	events EventQuerier
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new report service.
func NewService(events EventQuerier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{events: events, logger: logger, now: time.Now}
}

// SetClock replaces the wall clock used for "today".
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// EventsByPeriod groups the owner's events dated within [start, end].
func (s *Service) EventsByPeriod(ctx context.Context, email string, start, end time.Time) (*PeriodReport, error) {
	var missing []event.FieldError
	if start.IsZero() {
		missing = append(missing, event.FieldError{Field: "startDate", Message: "is required"})
	}
	if end.IsZero() {
		missing = append(missing, event.FieldError{Field: "endDate", Message: "is required"})
	}
	if len(missing) > 0 {
		return nil, &event.ValidationError{Fields: missing}
	}

	events, err := s.query(ctx, email, event.DateRange(start, end))
	if err != nil {
		return nil, err
	}

	return &PeriodReport{
		Summary: PeriodSummary{
			TotalEvents: len(events),
			StartDate:   event.DateOf(start).Format(event.DateLayout),
			EndDate:     event.DateOf(end).Format(event.DateLayout),
		},
		EventsByMonth:     GroupByPeriod(events),
		EventsByType:      TypeDistribution(events),
		EventsByDayOfWeek: DayOfWeekCounts(events),
	}, nil
}

// ClientProductivity summarizes the owner's events per client.
func (s *Service) ClientProductivity(ctx context.Context, email string) ([]ClientStats, error) {
	events, err := s.query(ctx, email, event.Criteria{HasClient: true, SortBy: event.SortByDate})
	if err != nil {
		return nil, err
	}
	return ClientProductivity(events), nil
}

// TemporalTrends analyzes events dated within the trailing months. A
// non-positive months uses DefaultTrendMonths.
func (s *Service) TemporalTrends(ctx context.Context, email string, months int) (*TrendReport, error) {
	if months < 1 {
		months = DefaultTrendMonths
	}
	since := AddMonths(event.DateOf(s.now()), -months)

	events, err := s.query(ctx, email, event.Criteria{From: &since, SortBy: event.SortByDate})
	if err != nil {
		return nil, err
	}

	trend := MonthlyTrend(events)
	hours := HourDistribution(events)
	return &TrendReport{
		Summary:          Summarize(events, months, trend, hours),
		MonthlyTrend:     trend,
		TimeAnalysis:     hours,
		ReminderAnalysis: ReminderDistribution(events),
	}, nil
}

// TimeConflicts reports overlapping events on date, today when nil.
func (s *Service) TimeConflicts(ctx context.Context, email string, date *time.Time) (*ConflictReport, error) {
	target := event.DateOf(s.now())
	if date != nil && !date.IsZero() {
		target = event.DateOf(*date)
	}

	events, err := s.query(ctx, email, event.DateRange(target, target))
	if err != nil {
		return nil, err
	}

	conflicts := DetectConflicts(events)
	if len(conflicts) > 0 {
		s.logger.Debug("time conflicts found", "email", email, "date", target.Format(event.DateLayout), "count", len(conflicts))
	}
	return &ConflictReport{
		Date:         target.Format(event.DateLayout),
		TotalEvents:  len(events),
		Conflicts:    conflicts,
		HasConflicts: len(conflicts) > 0,
	}, nil
}

func (s *Service) query(ctx context.Context, email string, criteria event.Criteria) ([]event.Event, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, event.ErrMissingOwner
	}
	events, _, err := s.events.Query(ctx, email, criteria)
	if err != nil {
		return nil, fmt.Errorf("loading events for report: %w", err)
	}
	return events, nil
}
