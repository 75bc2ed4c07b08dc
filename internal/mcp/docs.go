package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `agenda keeps calendar events for owners identified by email address.

Core concepts:
- Event: title, date (YYYY-MM-DD), time of day (HH:MM[:SS]) and optional client, type, reminderMinutes and notes.
- Owner: every read is scoped to one email. Pass it on every call except get/update/delete by id.
- Reports assume each event lasts one hour.

Default workflow:
1) Browse with search_events (paged, sortable) or upcoming_events.
2) Mutate with create_event / update_event (full replacement) / delete_event.
3) Summarize with event_statistics, events_by_period, client_productivity, temporal_trends and time_conflicts.
4) Move data in bulk with export_events and import_events.

Docs:
- agenda://docs/events (fields, validation limits)
- agenda://docs/reports (report shapes and rules)
- agenda://docs/interchange (export formats and import document)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "agenda://docs/events",
		Name:        "docs_events",
		Title:       "Events",
		Description: "Event fields, validation limits and search behavior.",
		Content: `# Events

| field | rules |
|---|---|
| title | required, at most 200 characters; updates need at least 3 |
| date | required, YYYY-MM-DD |
| time | required, HH:MM or HH:MM:SS |
| client | optional, at most 100 characters |
| type | optional, at most 50 characters |
| reminderMinutes | optional, 0 to 1440 |
| notes | optional, at most 500 characters |
| email | required, valid address |

## Search

- Text filters (type, client, searchTerm) are case-insensitive substring matches.
- Date bounds are inclusive. A start after the end yields an empty page.
- sortBy is one of date, title, type, client; unknown values sort by date.
- Pages start at 1; pageSize defaults to 10.
`,
	},
	{
		URI:         "agenda://docs/reports",
		Name:        "docs_reports",
		Title:       "Reports",
		Description: "What each report computes and how percentages are rounded.",
		Content: `# Reports

- events_by_period: months (YYYY-MM), type distribution and weekday counts for a date range.
- client_productivity: per-client totals, first and last event, active days and average per month.
- temporal_trends: per-month counts with type breakdown, hour-of-day and reminder distributions.
- time_conflicts: overlapping events on one day. Events last one hour; touching events do not conflict.

Percentages are rounded to two decimals. Events without a type or client are left out of the groupings that need one.
`,
	},
	{
		URI:         "agenda://docs/interchange",
		Name:        "docs_interchange",
		Title:       "Export and import",
		Description: "Export formats and the import document shape.",
		Content: `# Export and import

export_events renders json (default), ics, xlsx or pdf. xlsx and pdf are returned base64 encoded.

The json document looks like:

    {"data": [{"Titulo": "...", "Data": "2024-05-01", "Hora": "09:00:00",
               "Cliente": null, "Tipo": "meeting", "Lembrete": "15",
               "Notas": null, "email": "owner@example.com"}]}

import_events accepts the same document. Items with missing or malformed fields are skipped and the rest are created together.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
