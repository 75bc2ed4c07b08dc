package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/agenda/internal/domain/event"
	"github.com/rpggio/agenda/internal/domain/interchange"
	"github.com/rpggio/agenda/internal/domain/report"
	"github.com/rpggio/agenda/internal/mcp"
	"github.com/rpggio/agenda/internal/sqlite"
	"github.com/rpggio/agenda/internal/transport"
	"github.com/stretchr/testify/require"
)

// TestServer runs the full REST and MCP stack over an in-memory database.
type TestServer struct {
	Server      *httptest.Server
	DB          *sqlite.DB
	Events      *event.Service
	Reports     *report.Service
	Interchange *interchange.Service
}

// New starts a server whose database is private to the test.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	repo := sqlite.NewEventRepository(db)
	eventSvc := event.NewService(repo, event.NewValidator(), nil)
	reportSvc := report.NewService(repo, nil)
	interchangeSvc := interchange.NewService(repo, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Events:      eventSvc,
			Reports:     reportSvc,
			Interchange: interchangeSvc,
		},
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)

	router, err := transport.NewServer(transport.Services{
		Events:      eventSvc,
		Reports:     reportSvc,
		Interchange: interchangeSvc,
	}, transport.Options{MCP: mcpHandler})
	require.NoError(t, err)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:      server,
		DB:          db,
		Events:      eventSvc,
		Reports:     reportSvc,
		Interchange: interchangeSvc,
	}
}

// SetClock pins "today" for every service.
func (ts *TestServer) SetClock(now time.Time) {
	clock := func() time.Time { return now }
	ts.Events.SetClock(clock)
	ts.Reports.SetClock(clock)
	ts.Interchange.SetClock(clock)
}

// ConnectMCP opens an MCP client session over streamable HTTP.
func (ts *TestServer) ConnectMCP(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL + "/mcp",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}
