package mcp

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

func object(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func eventBodyProperties() map[string]any {
	return map[string]any{
		"title":           prop("string", "Event title (at most 200 characters)"),
		"date":            prop("string", "Event date, YYYY-MM-DD"),
		"time":            prop("string", "Time of day, HH:MM or HH:MM:SS"),
		"client":          prop("string", "Client name (at most 100 characters)"),
		"type":            prop("string", "Free-form category such as meeting or call (at most 50 characters)"),
		"reminderMinutes": map[string]any{"type": "integer", "minimum": 0, "maximum": 1440, "description": "Minutes before start to remind"},
		"notes":           prop("string", "Notes (at most 500 characters)"),
		"email":           prop("string", "Owner email"),
	}
}

var readOnly = map[string]any{"readOnlyHint": true}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	update := eventBodyProperties()
	update["id"] = prop("integer", "Event id")

	return []ToolDefinition{
		// Events
		{
			Name:        "search_events",
			Description: "Search an owner's events with optional date range, type, client and text filters. Results are paged.",
			InputSchema: object(map[string]any{
				"email":         prop("string", "Owner email"),
				"startDate":     prop("string", "Earliest date, inclusive (YYYY-MM-DD)"),
				"endDate":       prop("string", "Latest date, inclusive (YYYY-MM-DD)"),
				"type":          prop("string", "Case-insensitive substring of the event type"),
				"client":        prop("string", "Case-insensitive substring of the client"),
				"searchTerm":    prop("string", "Case-insensitive substring of title, notes or client"),
				"sortBy":        map[string]any{"type": "string", "enum": []string{"date", "title", "type", "client"}},
				"sortDirection": map[string]any{"type": "string", "enum": []string{"asc", "desc"}},
				"page":          prop("integer", "Page number starting at 1 (default 1)"),
				"pageSize":      prop("integer", "Items per page (default 10)"),
			}, "email"),
			Annotations: readOnly,
		},
		{
			Name:        "get_event",
			Description: "Get one event by id",
			InputSchema: object(map[string]any{
				"id": prop("integer", "Event id"),
			}, "id"),
			Annotations: readOnly,
		},
		{
			Name:        "create_event",
			Description: "Create an event",
			InputSchema: object(eventBodyProperties(), "title", "date", "time", "email"),
		},
		{
			Name:        "update_event",
			Description: "Replace every field of an existing event",
			InputSchema: object(update, "id", "title", "date", "time", "email"),
		},
		{
			Name:        "delete_event",
			Description: "Delete an event",
			InputSchema: object(map[string]any{
				"id": prop("integer", "Event id"),
			}, "id"),
			Annotations: map[string]any{"destructiveHint": true},
		},
		{
			Name:        "upcoming_events",
			Description: "List events dated from today through today plus the given number of days",
			InputSchema: object(map[string]any{
				"email": prop("string", "Owner email"),
				"days":  prop("integer", "Window length in days (default 7)"),
			}, "email"),
			Annotations: readOnly,
		},
		{
			Name:        "event_statistics",
			Description: "Count an owner's events in total, this month, this week, upcoming and per type",
			InputSchema: object(map[string]any{
				"email": prop("string", "Owner email"),
			}, "email"),
			Annotations: readOnly,
		},

		// Reports
		{
			Name:        "events_by_period",
			Description: "Group events within a date range by month, type and weekday",
			InputSchema: object(map[string]any{
				"email":     prop("string", "Owner email"),
				"startDate": prop("string", "Range start, inclusive (YYYY-MM-DD)"),
				"endDate":   prop("string", "Range end, inclusive (YYYY-MM-DD)"),
			}, "email", "startDate", "endDate"),
			Annotations: readOnly,
		},
		{
			Name:        "client_productivity",
			Description: "Per-client event counts, activity span and monthly average",
			InputSchema: object(map[string]any{
				"email": prop("string", "Owner email"),
			}, "email"),
			Annotations: readOnly,
		},
		{
			Name:        "temporal_trends",
			Description: "Monthly, hourly and reminder distributions over the trailing months",
			InputSchema: object(map[string]any{
				"email":  prop("string", "Owner email"),
				"months": prop("integer", "Trailing window in months (default 12)"),
			}, "email"),
			Annotations: readOnly,
		},
		{
			Name:        "time_conflicts",
			Description: "Find overlapping events on one day, assuming each lasts one hour",
			InputSchema: object(map[string]any{
				"email": prop("string", "Owner email"),
				"date":  prop("string", "Day to check (YYYY-MM-DD, default today)"),
			}, "email"),
			Annotations: readOnly,
		},

		// Interchange
		{
			Name:        "export_events",
			Description: "Export all of an owner's events as json, ics, xlsx or pdf. xlsx and pdf content is base64 encoded.",
			InputSchema: object(map[string]any{
				"email":  prop("string", "Owner email"),
				"format": map[string]any{"type": "string", "enum": []string{"json", "ics", "xlsx", "pdf"}},
			}, "email"),
			Annotations: readOnly,
		},
		{
			Name:        "import_events",
			Description: "Import events in the export document shape. Malformed items are skipped.",
			InputSchema: object(map[string]any{
				"data": map[string]any{
					"type":        "array",
					"description": "Items with Titulo, Data, Hora, email and optional Cliente, Tipo, Lembrete, Notas",
					"items":       map[string]any{"type": "object"},
				},
			}, "data"),
		},
	}
}
