package interchange

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rpggio/agenda/internal/domain/event"
)

var (
	// ErrInvalidPayload indicates an import body without a data array.
	ErrInvalidPayload = fmt.Errorf("%w: payload must be {\"data\": [...]}", event.ErrInvalidInput)
	// ErrUnsupportedFormat indicates an unknown export format.
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported export format", event.ErrInvalidInput)

	errSkipItem = errors.New("skip item")
)

// Item is the localized export/import projection of an event.
type Item struct {
	Titulo   string  `json:"Titulo"`
	Data     string  `json:"Data"`
	Hora     string  `json:"Hora"`
	Cliente  *string `json:"Cliente"`
	Tipo     *string `json:"Tipo"`
	Lembrete string  `json:"Lembrete"`
	Notas    *string `json:"Notas"`
	Email    string  `json:"email"`
}

// Document is the export file body.
type Document struct {
	Data []Item `json:"data"`
}

// ToItem projects an event into the interchange shape.
func ToItem(evt event.Event) Item {
	item := Item{
		Titulo:  evt.Title,
		Data:    evt.Date.Format(event.DateLayout),
		Hora:    evt.Time.String(),
		Cliente: evt.Client,
		Tipo:    evt.Type,
		Notas:   evt.Notes,
		Email:   evt.OwnerEmail,
	}
	if evt.ReminderMinutes != nil {
		item.Lembrete = strconv.Itoa(*evt.ReminderMinutes)
	}
	return item
}

// NewDocument projects events in the given order.
func NewDocument(events []event.Event) Document {
	doc := Document{Data: make([]Item, 0, len(events))}
	for _, evt := range events {
		doc.Data = append(doc.Data, ToItem(evt))
	}
	return doc
}
