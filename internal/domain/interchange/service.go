package interchange

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/agenda/internal/domain/event"
)

// Format names an export rendering.
type Format string

const (
	FormatJSON Format = "json"
	FormatICS  Format = "ics"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat maps a case-insensitive name to a Format; empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatICS, FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// ContentType is the MIME type of the rendering.
func (f Format) ContentType() string {
	switch f {
	case FormatICS:
		return "text/calendar; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Filename is the suggested download name for an owner's export.
func (f Format) Filename(owner string) string {
	return fmt.Sprintf("events_%s.%s", owner, f)
}

// Store is the persistence needed for export and import.
type Store interface {
	Query(ctx context.Context, ownerEmail string, criteria event.Criteria) ([]event.Event, int, error)
	CreateMany(ctx context.Context, events []*event.Event) error
}

// Service exports and imports events in bulk.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new interchange service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// SetClock replaces the wall clock used for import timestamps.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Export returns the owner's events in interchange shape, ordered by date
// and time.
func (s *Service) Export(ctx context.Context, email string) (Document, []event.Event, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Document{}, nil, event.ErrMissingOwner
	}
	events, _, err := s.store.Query(ctx, email, event.Criteria{SortBy: event.SortByDate, SortDirection: event.Ascending})
	if err != nil {
		return Document{}, nil, fmt.Errorf("loading events for export: %w", err)
	}
	return NewDocument(events), events, nil
}

// ExportTo renders the owner's events in format to w.
func (s *Service) ExportTo(ctx context.Context, email string, format Format, w io.Writer) error {
	doc, events, err := s.Export(ctx, email)
	if err != nil {
		return err
	}
	switch format {
	case FormatICS:
		err = WriteICS(w, events)
	case FormatXLSX:
		err = WriteXLSX(w, doc)
	case FormatPDF:
		err = WritePDF(w, strings.TrimSpace(email), doc)
	case FormatJSON:
		err = WriteJSON(w, doc)
	default:
		return ErrUnsupportedFormat
	}
	if err != nil {
		return err
	}
	s.logger.Debug("events exported", "email", email, "format", format, "count", len(events))
	return nil
}

// Import creates every well-formed item of payload in one transaction and
// returns how many were created.
func (s *Service) Import(ctx context.Context, payload []byte) (int, error) {
	events, skipped, err := ParseImport(payload)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	batch := make([]*event.Event, 0, len(events))
	for i := range events {
		events[i].CreatedAt = now
		events[i].UpdatedAt = now
		batch = append(batch, &events[i])
	}
	if err := s.store.CreateMany(ctx, batch); err != nil {
		return 0, fmt.Errorf("importing events: %w", err)
	}

	if skipped > 0 {
		s.logger.Debug("import skipped malformed items", "skipped", skipped)
	}
	s.logger.Info("events imported", "created", len(batch))
	return len(batch), nil
}
