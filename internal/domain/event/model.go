package event

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the storage and wire layout for event dates.
const DateLayout = "2006-01-02"

// Event is a single calendar entry owned by an email address.
type Event struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	Time            TimeOfDay `json:"time"`
	Client          *string   `json:"client"`
	Type            *string   `json:"type"`
	ReminderMinutes *int      `json:"reminderMinutes"`
	Notes           *string   `json:"notes"`
	OwnerEmail      string    `json:"email"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Start combines the event date and time of day.
func (e Event) Start() time.Time {
	return e.Date.Add(e.Time.Duration())
}

// Page is one slice of a search result.
type Page struct {
	Data       []Event `json:"data"`
	TotalCount int     `json:"totalCount"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

// Statistics holds named counters for one owner.
type Statistics map[string]int

// DateOf truncates t to midnight of its wall-clock date, expressed in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// date part.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return DateOf(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// TimeOfDay is a wall-clock time stored as seconds since midnight.
type TimeOfDay int

// Hour is one hour expressed as a TimeOfDay offset.
const Hour TimeOfDay = 3600

const secondsPerDay = 24 * 3600

// NewTimeOfDay builds a TimeOfDay from its components.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	var fields [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || len(part) == 0 || len(part) > 2 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		fields[i] = n
	}
	if fields[0] > 23 || fields[1] > 59 || fields[2] > 59 || fields[0] < 0 || fields[1] < 0 || fields[2] < 0 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return NewTimeOfDay(fields[0], fields[1], fields[2]), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

// Duration returns the offset from midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Second
}

// Valid reports whether t falls within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < secondsPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
