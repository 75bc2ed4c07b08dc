package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rpggio/agenda/internal/domain/event"
	"github.com/rpggio/agenda/internal/domain/interchange"
	"github.com/rpggio/agenda/internal/domain/report"
	"github.com/stretchr/testify/require"
)

type eventStub struct {
	EventService
	lastSearch event.SearchRequest
	lastDays   int
	created    event.CreateRequest
	err        error
}

func (s *eventStub) Search(_ context.Context, req event.SearchRequest) (*event.Page, error) {
	s.lastSearch = req
	if s.err != nil {
		return nil, s.err
	}
	return &event.Page{Data: []event.Event{}, Page: 1, PageSize: 10}, nil
}

func (s *eventStub) Get(_ context.Context, id int64) (*event.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &event.Event{ID: id, Title: "Standup"}, nil
}

func (s *eventStub) ListByOwner(_ context.Context, email string) ([]event.Event, error) {
	if email == "" {
		return nil, event.ErrMissingOwner
	}
	return []event.Event{{ID: 1, OwnerEmail: email}}, nil
}

func (s *eventStub) Upcoming(_ context.Context, _ string, days int) ([]event.Event, error) {
	s.lastDays = days
	return []event.Event{}, nil
}

func (s *eventStub) Create(_ context.Context, req event.CreateRequest) (*event.Event, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &event.Event{ID: 42, Title: req.Title}, nil
}

func (s *eventStub) Delete(_ context.Context, _ int64) error {
	return s.err
}

type reportStub struct {
	ReportService
	start, end time.Time
	date       *time.Time
}

func (s *reportStub) EventsByPeriod(_ context.Context, _ string, start, end time.Time) (*report.PeriodReport, error) {
	s.start, s.end = start, end
	if start.IsZero() || end.IsZero() {
		return nil, &event.ValidationError{Fields: []event.FieldError{{Field: "startDate", Message: "is required"}}}
	}
	return &report.PeriodReport{}, nil
}

func (s *reportStub) TimeConflicts(_ context.Context, _ string, date *time.Time) (*report.ConflictReport, error) {
	s.date = date
	return &report.ConflictReport{Conflicts: []report.Conflict{}}, nil
}

type interchangeStub struct {
	payload []byte
}

func (s *interchangeStub) ExportTo(_ context.Context, email string, format interchange.Format, w io.Writer) error {
	if email == "" {
		return event.ErrMissingOwner
	}
	_, err := io.WriteString(w, "BEGIN:"+string(format))
	return err
}

func (s *interchangeStub) Import(_ context.Context, payload []byte) (int, error) {
	s.payload = payload
	return 3, nil
}

func newTestServer(t *testing.T, events *eventStub, reports *reportStub, ix *interchangeStub) *echo.Echo {
	t.Helper()
	e, err := NewServer(Services{Events: events, Reports: reports, Interchange: ix}, Options{})
	require.NoError(t, err)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, &eventStub{}, &reportStub{}, &interchangeStub{})
	rec := do(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestEvents_ListAndErrors(t *testing.T) {
	e := newTestServer(t, &eventStub{}, &reportStub{}, &interchangeStub{})

	rec := do(e, http.MethodGet, "/api/events?email=a@x.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []event.Event `json:"data"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Data, 1)

	rec = do(e, http.MethodGet, "/api/events", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errBody ErrorResponse
	decode(t, rec, &errBody)
	require.Contains(t, errBody.Error, "email is required")
}

func TestEvents_Search(t *testing.T) {
	events := &eventStub{}
	e := newTestServer(t, events, &reportStub{}, &interchangeStub{})

	rec := do(e, http.MethodPost, "/api/events/search", `{"email":"a@x.com","startDate":"2024-01-01","sortBy":"title","page":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "a@x.com", events.lastSearch.Email)
	require.Equal(t, 2, events.lastSearch.Page)
	require.Equal(t, "2024-01-01", events.lastSearch.StartDate.Format(event.DateLayout))

	rec = do(e, http.MethodPost, "/api/events/search", `{"email":"a@x.com","endDate":"soon"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errBody struct {
		Error   string             `json:"error"`
		Details []event.FieldError `json:"details"`
	}
	decode(t, rec, &errBody)
	require.Equal(t, "endDate", errBody.Details[0].Field)

	rec = do(e, http.MethodPost, "/api/events/search", `{"email":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvents_Upcoming(t *testing.T) {
	events := &eventStub{}
	e := newTestServer(t, events, &reportStub{}, &interchangeStub{})

	rec := do(e, http.MethodGet, "/api/events/upcoming?email=a@x.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, event.DefaultUpcoming, events.lastDays)

	rec = do(e, http.MethodGet, "/api/events/upcoming?email=a@x.com&days=14", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 14, events.lastDays)

	rec = do(e, http.MethodGet, "/api/events/upcoming?email=a@x.com&days=two", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvents_CRUD(t *testing.T) {
	events := &eventStub{}
	e := newTestServer(t, events, &reportStub{}, &interchangeStub{})

	rec := do(e, http.MethodPost, "/api/events", `{"title":"Standup","date":"2024-05-01","time":"09:00","email":"a@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "/api/events/42", rec.Header().Get(echo.HeaderLocation))
	require.Equal(t, event.NewTimeOfDay(9, 0, 0), events.created.Time)

	rec = do(e, http.MethodPost, "/api/events", `{"title":"Standup","date":"2024-05-01","time":"9 o'clock","email":"a@x.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/events/7", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/events/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodDelete, "/api/events/7", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	events.err = event.ErrEventNotFound
	rec = do(e, http.MethodGet, "/api/events/7", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var errBody ErrorResponse
	decode(t, rec, &errBody)
	require.Equal(t, "event not found", errBody.Error)

	events.err = errors.New("database is locked")
	rec = do(e, http.MethodDelete, "/api/events/7", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	decode(t, rec, &errBody)
	require.Equal(t, "database is locked", errBody.Details)
}

func TestEvents_ExportImport(t *testing.T) {
	ix := &interchangeStub{}
	e := newTestServer(t, &eventStub{}, &reportStub{}, ix)

	rec := do(e, http.MethodGet, "/api/events/export?email=a@x.com&format=ics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	require.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "events_a@x.com.ics")
	require.Equal(t, "BEGIN:ics", rec.Body.String())

	rec = do(e, http.MethodGet, "/api/events/export?email=a@x.com&format=doc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/events/export", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/events/import", `{"data":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"created":3}`, rec.Body.String())
	require.JSONEq(t, `{"data":[]}`, string(ix.payload))
}

func TestReports_DateParams(t *testing.T) {
	reports := &reportStub{}
	e := newTestServer(t, &eventStub{}, reports, &interchangeStub{})

	rec := do(e, http.MethodGet, "/api/reports/events-by-period?email=a@x.com&startDate=2024-01-01&endDate=2024-01-31", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2024-01-31", reports.end.Format(event.DateLayout))

	rec = do(e, http.MethodGet, "/api/reports/events-by-period?email=a@x.com", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/reports/events-by-period?email=a@x.com&startDate=Jan&endDate=2024-01-31", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/reports/time-conflicts?email=a@x.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, reports.date)

	rec = do(e, http.MethodGet, "/api/reports/time-conflicts?email=a@x.com&date=2024-03-04", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2024-03-04", reports.date.Format(event.DateLayout))
}

func TestRateLimit(t *testing.T) {
	e, err := NewServer(Services{Events: &eventStub{}}, Options{RateLimit: "2-M"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health", "").Code)
	}
	rec := do(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	_, err = NewServer(Services{}, Options{RateLimit: "lots"})
	require.Error(t, err)
}

func TestMCPMount(t *testing.T) {
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	e, err := NewServer(Services{}, Options{MCP: mcpHandler})
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, do(e, http.MethodPost, "/mcp", `{}`).Code)
}
