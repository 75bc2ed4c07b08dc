package mcp

import (
	"github.com/rpggio/agenda/internal/domain/event"
)

// ToolDefinition describes one tool in the catalog.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	Annotations map[string]any `json:"annotations,omitempty"`
}

type SearchEventsParams = event.SearchInput

type GetEventParams struct {
	ID int64 `json:"id"`
}

type CreateEventParams = event.Input

type UpdateEventParams struct {
	ID int64 `json:"id"`
	event.Input
}

type DeleteEventParams struct {
	ID int64 `json:"id"`
}

type UpcomingEventsParams struct {
	Email string `json:"email"`
	Days  *int   `json:"days,omitempty"`
}

type OwnerParams struct {
	Email string `json:"email"`
}

type EventsByPeriodParams struct {
	Email     string `json:"email"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type TemporalTrendsParams struct {
	Email  string `json:"email"`
	Months int    `json:"months,omitempty"`
}

type TimeConflictsParams struct {
	Email string `json:"email"`
	Date  string `json:"date,omitempty"`
}

type ExportEventsParams struct {
	Email  string `json:"email"`
	Format string `json:"format,omitempty"`
}

// ExportResponse carries a rendered export. Binary formats are base64
// encoded.
type ExportResponse struct {
	Format      string `json:"format"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Encoding    string `json:"encoding"`
	Content     string `json:"content"`
}

type ImportResponse struct {
	Created int `json:"created"`
}

type DeleteResponse struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}
