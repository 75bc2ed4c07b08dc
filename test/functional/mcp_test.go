package functional_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/agenda/internal/testserver"
	"github.com/stretchr/testify/require"
)

// callTool runs a tool and returns its JSON text and error flag.
func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) (json.RawMessage, bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	require.NotEmpty(t, result.Content, "Tool %s returned no content", name)
	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(text.Text), result.IsError
		}
	}
	t.Fatalf("Tool %s returned no text content", name)
	return nil, false
}

func mustCall(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	raw, isErr := callTool(t, session, name, args)
	require.False(t, isErr, "tool %s: %s", name, raw)
	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out))
	}
}

func TestMCPHTTP_EventWorkflow(t *testing.T) {
	ts := testserver.New(t)
	session := ts.ConnectMCP(t)

	info := session.InitializeResult()
	require.Equal(t, "agenda", info.ServerInfo.Name)

	var created struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	mustCall(t, session, "create_event", map[string]any{
		"title": "Planning", "date": "2024-07-01", "time": "09:00", "type": "meeting", "email": owner,
	}, &created)
	require.NotZero(t, created.ID)

	mustCall(t, session, "create_event", map[string]any{
		"title": "Overlap", "date": "2024-07-01", "time": "09:45", "email": owner,
	}, nil)

	var page struct {
		TotalCount int `json:"totalCount"`
	}
	mustCall(t, session, "search_events", map[string]any{"email": owner, "searchTerm": "plan"}, &page)
	require.Equal(t, 1, page.TotalCount)

	var conflicts struct {
		HasConflicts bool `json:"hasConflicts"`
	}
	mustCall(t, session, "time_conflicts", map[string]any{"email": owner, "date": "2024-07-01"}, &conflicts)
	require.True(t, conflicts.HasConflicts)

	mustCall(t, session, "update_event", map[string]any{
		"id": created.ID, "title": "Planning moved", "date": "2024-07-02", "time": "09:00", "email": owner,
	}, &created)
	require.Equal(t, "Planning moved", created.Title)

	var export struct {
		Encoding string `json:"encoding"`
		Content  string `json:"content"`
	}
	mustCall(t, session, "export_events", map[string]any{"email": owner, "format": "xlsx"}, &export)
	require.Equal(t, "base64", export.Encoding)
	raw, err := base64.StdEncoding.DecodeString(export.Content)
	require.NoError(t, err)
	require.Equal(t, "PK", string(raw[:2]))

	var deleted struct {
		Deleted bool `json:"deleted"`
	}
	mustCall(t, session, "delete_event", map[string]any{"id": created.ID}, &deleted)
	require.True(t, deleted.Deleted)

	errText, isErr := callTool(t, session, "get_event", map[string]any{"id": created.ID})
	require.True(t, isErr)
	var apiErr struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(errText, &apiErr))
	require.Equal(t, "EVENT_NOT_FOUND", apiErr.Code)
}

func TestMCPHTTP_ValidationError(t *testing.T) {
	ts := testserver.New(t)
	session := ts.ConnectMCP(t)

	errText, isErr := callTool(t, session, "create_event", map[string]any{
		"title": "x", "date": "2024-07-01", "time": "25:00", "email": owner,
	})
	require.True(t, isErr)
	var apiErr struct {
		Code    string `json:"code"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(errText, &apiErr))
	require.Equal(t, "INVALID_INPUT", apiErr.Code)
	require.Equal(t, "time", apiErr.Details[0].Field)
}
