package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rpggio/agenda/internal/domain/event"
	"github.com/rpggio/agenda/internal/domain/interchange"
	"github.com/rpggio/agenda/internal/domain/report"
)

// EventService defines the event operations served over REST.
type EventService interface {
	Search(ctx context.Context, req event.SearchRequest) (*event.Page, error)
	Get(ctx context.Context, id int64) (*event.Event, error)
	ListByOwner(ctx context.Context, email string) ([]event.Event, error)
	Upcoming(ctx context.Context, email string, days int) ([]event.Event, error)
	ByType(ctx context.Context, email, typ string) ([]event.Event, error)
	ByClient(ctx context.Context, email, client string) ([]event.Event, error)
	Statistics(ctx context.Context, email string) (event.Statistics, error)
	Create(ctx context.Context, req event.CreateRequest) (*event.Event, error)
	Update(ctx context.Context, id int64, req event.UpdateRequest) (*event.Event, error)
	Delete(ctx context.Context, id int64) error
}

// ReportService defines the report operations served over REST.
type ReportService interface {
	EventsByPeriod(ctx context.Context, email string, start, end time.Time) (*report.PeriodReport, error)
	ClientProductivity(ctx context.Context, email string) ([]report.ClientStats, error)
	TemporalTrends(ctx context.Context, email string, months int) (*report.TrendReport, error)
	TimeConflicts(ctx context.Context, email string, date *time.Time) (*report.ConflictReport, error)
}

// InterchangeService defines bulk export and import.
type InterchangeService interface {
	ExportTo(ctx context.Context, email string, format interchange.Format, w io.Writer) error
	Import(ctx context.Context, payload []byte) (int, error)
}

// Services contains the domain services behind the routes.
type Services struct {
	Events      EventService
	Reports     ReportService
	Interchange InterchangeService
}

// Options tunes the HTTP server.
type Options struct {
	Logger *slog.Logger
	// RateLimit is a ulule/limiter formatted rate such as "100-M". Empty
	// disables limiting.
	RateLimit    string
	AllowOrigins []string
	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

// NewServer creates the echo router with middleware and all routes.
func NewServer(services Services, opts Options) (*echo.Echo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: newRequestID}))
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	if len(opts.AllowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: opts.AllowOrigins}))
	} else {
		e.Use(middleware.CORS())
	}
	if opts.RateLimit != "" {
		limit, err := rateLimiter(opts.RateLimit)
		if err != nil {
			return nil, err
		}
		e.Use(limit)
	}

	e.GET("/health", handleHealth)

	events := &eventRoutes{events: services.Events, interchange: services.Interchange}
	api := e.Group("/api/events")
	api.GET("", events.list)
	api.POST("", events.create)
	api.POST("/search", events.search)
	api.GET("/upcoming", events.upcoming)
	api.GET("/by-type", events.byType)
	api.GET("/by-client", events.byClient)
	api.GET("/statistics", events.statistics)
	api.GET("/export", events.export)
	api.POST("/import", events.importEvents)
	api.GET("/:id", events.get)
	api.PUT("/:id", events.update)
	api.DELETE("/:id", events.delete)

	reports := &reportRoutes{reports: services.Reports}
	rg := e.Group("/api/reports")
	rg.GET("/events-by-period", reports.eventsByPeriod)
	rg.GET("/client-productivity", reports.clientProductivity)
	rg.GET("/temporal-trends", reports.temporalTrends)
	rg.GET("/time-conflicts", reports.timeConflicts)

	if opts.MCP != nil {
		e.Any("/mcp", echo.WrapHandler(opts.MCP))
		e.Any("/mcp/*", echo.WrapHandler(opts.MCP))
	}

	return e, nil
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
