package interchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rpggio/agenda/internal/domain/event"
)

// WriteJSON writes the document as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// ParseImport decodes an import payload into events. Items missing a title,
// date, hour or email, or holding values that don't parse, are dropped; the
// second result counts them.
func ParseImport(payload []byte) ([]event.Event, int, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, 0, ErrInvalidPayload
	}
	raw, ok := envelope["data"]
	if !ok {
		return nil, 0, ErrInvalidPayload
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, 0, ErrInvalidPayload
	}

	events := make([]event.Event, 0, len(items))
	skipped := 0
	for _, item := range items {
		evt, err := parseItem(item)
		if err != nil {
			skipped++
			continue
		}
		events = append(events, evt)
	}
	return events, skipped, nil
}

func parseItem(item map[string]json.RawMessage) (event.Event, error) {
	title, err := requiredString(item, "Titulo")
	if err != nil {
		return event.Event{}, err
	}
	dateStr, err := requiredString(item, "Data")
	if err != nil {
		return event.Event{}, err
	}
	timeStr, err := requiredString(item, "Hora")
	if err != nil {
		return event.Event{}, err
	}
	email, err := requiredString(item, "email")
	if err != nil {
		return event.Event{}, err
	}

	date, err := event.ParseDate(dateStr)
	if err != nil {
		return event.Event{}, errSkipItem
	}
	tod, err := event.ParseTimeOfDay(timeStr)
	if err != nil {
		return event.Event{}, errSkipItem
	}

	evt := event.Event{
		Title:      title,
		Date:       date,
		Time:       tod,
		OwnerEmail: email,
	}
	if evt.Client, err = optionalString(item, "Cliente"); err != nil {
		return event.Event{}, err
	}
	if evt.Type, err = optionalString(item, "Tipo"); err != nil {
		return event.Event{}, err
	}
	if evt.Notes, err = optionalString(item, "Notas"); err != nil {
		return event.Event{}, err
	}

	// Lembrete only counts when it is a string holding an integer.
	var reminder string
	if raw, ok := item["Lembrete"]; ok && json.Unmarshal(raw, &reminder) == nil {
		if mins, err := strconv.Atoi(strings.TrimSpace(reminder)); err == nil {
			evt.ReminderMinutes = &mins
		}
	}
	return evt, nil
}

// requiredString returns the trimmed value and skips the item when nothing
// is left.
func requiredString(item map[string]json.RawMessage, key string) (string, error) {
	s, err := optionalString(item, key)
	if err != nil || s == nil {
		return "", errSkipItem
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return "", errSkipItem
	}
	return trimmed, nil
}

// optionalString treats a missing key or null as absent and rejects
// non-string values.
func optionalString(item map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := item[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errSkipItem
	}
	return &s, nil
}
