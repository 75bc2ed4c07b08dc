package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rpggio/agenda/internal/domain/event"
	"github.com/rpggio/agenda/internal/domain/interchange"
	"github.com/rpggio/agenda/internal/domain/report"
)

// EventService defines event operations needed by MCP.
type EventService interface {
	Search(ctx context.Context, req event.SearchRequest) (*event.Page, error)
	Get(ctx context.Context, id int64) (*event.Event, error)
	Create(ctx context.Context, req event.CreateRequest) (*event.Event, error)
	Update(ctx context.Context, id int64, req event.UpdateRequest) (*event.Event, error)
	Delete(ctx context.Context, id int64) error
	Upcoming(ctx context.Context, email string, days int) ([]event.Event, error)
	Statistics(ctx context.Context, email string) (event.Statistics, error)
}

// ReportService defines report operations needed by MCP.
type ReportService interface {
	EventsByPeriod(ctx context.Context, email string, start, end time.Time) (*report.PeriodReport, error)
	ClientProductivity(ctx context.Context, email string) ([]report.ClientStats, error)
	TemporalTrends(ctx context.Context, email string, months int) (*report.TrendReport, error)
	TimeConflicts(ctx context.Context, email string, date *time.Time) (*report.ConflictReport, error)
}

// InterchangeService defines bulk export and import needed by MCP.
type InterchangeService interface {
	ExportTo(ctx context.Context, email string, format interchange.Format, w io.Writer) error
	Import(ctx context.Context, payload []byte) (int, error)
}

// Handler dispatches MCP tool calls.
type Handler struct {
	events      EventService
	reports     ReportService
	interchange InterchangeService
}

// NewHandler creates a new MCP handler.
func NewHandler(events EventService, reports ReportService, interchangeSvc InterchangeService) *Handler {
	return &Handler{
		events:      events,
		reports:     reports,
		interchange: interchangeSvc,
	}
}

// Handle dispatches a tool call to the domain services.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "search_events":
		var in SearchEventsParams
		if err := decodeParams(params, &in); err != nil {
			return nil, err
		}
		req, err := in.SearchRequest()
		if err != nil {
			return nil, mapError(err)
		}
		page, err := h.events.Search(ctx, req)
		return page, mapError(err)
	case "get_event":
		var req GetEventParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		evt, err := h.events.Get(ctx, req.ID)
		return evt, mapError(err)
	case "create_event":
		var in CreateEventParams
		if err := decodeParams(params, &in); err != nil {
			return nil, err
		}
		req, err := in.CreateRequest()
		if err != nil {
			return nil, mapError(err)
		}
		evt, err := h.events.Create(ctx, req)
		return evt, mapError(err)
	case "update_event":
		var in UpdateEventParams
		if err := decodeParams(params, &in); err != nil {
			return nil, err
		}
		req, err := in.UpdateRequest()
		if err != nil {
			return nil, mapError(err)
		}
		evt, err := h.events.Update(ctx, in.ID, req)
		return evt, mapError(err)
	case "delete_event":
		var req DeleteEventParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.events.Delete(ctx, req.ID); err != nil {
			return nil, mapError(err)
		}
		return DeleteResponse{Deleted: true, ID: req.ID}, nil
	case "upcoming_events":
		var req UpcomingEventsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		days := event.DefaultUpcoming
		if req.Days != nil {
			days = *req.Days
		}
		events, err := h.events.Upcoming(ctx, req.Email, days)
		return events, mapError(err)
	case "event_statistics":
		var req OwnerParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		stats, err := h.events.Statistics(ctx, req.Email)
		return stats, mapError(err)
	case "events_by_period":
		var req EventsByPeriodParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		start, err := event.ParseDateParam("startDate", req.StartDate)
		if err != nil {
			return nil, mapError(err)
		}
		end, err := event.ParseDateParam("endDate", req.EndDate)
		if err != nil {
			return nil, mapError(err)
		}
		result, err := h.reports.EventsByPeriod(ctx, req.Email, derefTime(start), derefTime(end))
		return result, mapError(err)
	case "client_productivity":
		var req OwnerParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		stats, err := h.reports.ClientProductivity(ctx, req.Email)
		return stats, mapError(err)
	case "temporal_trends":
		var req TemporalTrendsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		result, err := h.reports.TemporalTrends(ctx, req.Email, req.Months)
		return result, mapError(err)
	case "time_conflicts":
		var req TimeConflictsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		date, err := event.ParseDateParam("date", req.Date)
		if err != nil {
			return nil, mapError(err)
		}
		result, err := h.reports.TimeConflicts(ctx, req.Email, date)
		return result, mapError(err)
	case "export_events":
		var req ExportEventsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.export(ctx, req)
	case "import_events":
		n, err := h.interchange.Import(ctx, params)
		if err != nil {
			return nil, mapError(err)
		}
		return ImportResponse{Created: n}, nil
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func (h *Handler) export(ctx context.Context, req ExportEventsParams) (*ExportResponse, error) {
	format, err := interchange.ParseFormat(req.Format)
	if err != nil {
		return nil, mapError(err)
	}
	var buf bytes.Buffer
	if err := h.interchange.ExportTo(ctx, req.Email, format, &buf); err != nil {
		return nil, mapError(err)
	}

	resp := &ExportResponse{
		Format:      string(format),
		Filename:    format.Filename(req.Email),
		ContentType: format.ContentType(),
		Encoding:    "utf-8",
		Content:     buf.String(),
	}
	if format == interchange.FormatXLSX || format == interchange.FormatPDF {
		resp.Encoding = "base64"
		resp.Content = base64.StdEncoding.EncodeToString(buf.Bytes())
	}
	return resp, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return &APIError{Code: CodeInvalidInput, Message: fmt.Sprintf("malformed arguments: %v", err)}
	}
	return nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
