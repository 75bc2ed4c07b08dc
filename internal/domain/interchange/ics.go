package interchange

import (
	"fmt"
	"io"
	"strconv"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/rpggio/agenda/internal/domain/event"
	"github.com/rpggio/agenda/internal/domain/report"
)

const (
	productID   = "-//rpggio//agenda//EN"
	floatingFmt = "20060102T150405"
)

// uidNamespace scopes event UIDs so re-exports keep stable identifiers.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/rpggio/agenda/events"))

// EventUID derives a stable iCalendar UID for an owner's event.
func EventUID(evt event.Event) string {
	name := evt.OwnerEmail + "/" + strconv.FormatInt(evt.ID, 10)
	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

// WriteICS renders events as an iCalendar feed. Times are floating so the
// reader's wall clock applies.
func WriteICS(w io.Writer, events []event.Event) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, evt := range events {
		start := evt.Start()
		end := start.Add(report.AssumedDuration.Duration())

		ve := cal.AddEvent(EventUID(evt))
		ve.SetCreatedTime(evt.CreatedAt)
		ve.SetDtStampTime(evt.UpdatedAt)
		ve.SetModifiedAt(evt.UpdatedAt)
		ve.SetProperty(ics.ComponentPropertyDtStart, start.Format(floatingFmt))
		ve.SetProperty(ics.ComponentPropertyDtEnd, end.Format(floatingFmt))
		ve.SetSummary(evt.Title)
		if evt.Notes != nil && *evt.Notes != "" {
			ve.SetDescription(*evt.Notes)
		}
		if evt.Type != nil && *evt.Type != "" {
			ve.SetProperty(ics.ComponentPropertyCategories, *evt.Type)
		}
		if evt.Client != nil && *evt.Client != "" {
			ve.SetProperty(ics.ComponentPropertyComment, "Client: "+*evt.Client)
		}
		if evt.ReminderMinutes != nil {
			alarm := ve.AddAlarm()
			alarm.SetAction(ics.ActionDisplay)
			alarm.SetTrigger(reminderTrigger(*evt.ReminderMinutes))
			alarm.SetProperty(ics.ComponentPropertyDescription, evt.Title)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

func reminderTrigger(minutes int) string {
	if minutes <= 0 {
		return "PT0M"
	}
	return fmt.Sprintf("-PT%dM", minutes)
}
