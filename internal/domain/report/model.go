package report

import "github.com/rpggio/agenda/internal/domain/event"

// EventSummary is the short form of an event inside a grouping.
type EventSummary struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Date  string  `json:"date"`
	Type  *string `json:"type"`
}

// PeriodGroup counts events falling in one calendar month.
type PeriodGroup struct {
	Period string         `json:"period"`
	Count  int            `json:"count"`
	Events []EventSummary `json:"events"`
}

// TypeShare is one type's slice of a distribution.
type TypeShare struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type DayCount struct {
	DayOfWeek string `json:"dayOfWeek"`
	Count     int    `json:"count"`
}

// ClientStats summarizes the activity booked for one client.
type ClientStats struct {
	Client                string      `json:"client"`
	TotalEvents           int         `json:"totalEvents"`
	FirstEvent            string      `json:"firstEvent"`
	LastEvent             string      `json:"lastEvent"`
	EventTypes            []TypeCount `json:"eventTypes"`
	AverageEventsPerMonth float64     `json:"averageEventsPerMonth"`
}

type MonthTrend struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Count int         `json:"count"`
	Types []TypeCount `json:"types"`
}

type HourShare struct {
	Hour       int     `json:"hour"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type ReminderShare struct {
	ReminderMinutes int     `json:"reminderMinutes"`
	Count           int     `json:"count"`
	Percentage      float64 `json:"percentage"`
}

// ConflictEvent identifies one side of a conflict.
type ConflictEvent struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Time  event.TimeOfDay `json:"time"`
}

// Conflict is a pair of consecutive events whose assumed durations overlap.
type Conflict struct {
	Event1         ConflictEvent `json:"event1"`
	Event2         ConflictEvent `json:"event2"`
	OverlapMinutes float64       `json:"overlapMinutes"`
}

type PeriodSummary struct {
	TotalEvents int    `json:"totalEvents"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// PeriodReport groups an owner's events within a date range.
type PeriodReport struct {
	Summary           PeriodSummary `json:"summary"`
	EventsByMonth     []PeriodGroup `json:"eventsByMonth"`
	EventsByType      []TypeShare   `json:"eventsByType"`
	EventsByDayOfWeek []DayCount    `json:"eventsByDayOfWeek"`
}

type TrendSummary struct {
	TotalEvents           int     `json:"totalEvents"`
	AverageEventsPerMonth float64 `json:"averageEventsPerMonth"`
	MostActiveMonth       *int    `json:"mostActiveMonth"`
	MostActiveHour        *int    `json:"mostActiveHour"`
}

// TrendReport describes activity over the trailing months.
type TrendReport struct {
	Summary          TrendSummary    `json:"summary"`
	MonthlyTrend     []MonthTrend    `json:"monthlyTrend"`
	TimeAnalysis     []HourShare     `json:"timeAnalysis"`
	ReminderAnalysis []ReminderShare `json:"reminderAnalysis"`
}

// ConflictReport lists overlapping events on one date.
type ConflictReport struct {
	Date         string     `json:"date"`
	TotalEvents  int        `json:"totalEvents"`
	Conflicts    []Conflict `json:"conflicts"`
	HasConflicts bool       `json:"hasConflicts"`
}
