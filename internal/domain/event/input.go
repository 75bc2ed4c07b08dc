package event

import (
	"strings"
	"time"
)

// Input is the wire form of an event body. Date and time arrive as text.
type Input struct {
	Title           string  `json:"title"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	Client          *string `json:"client,omitempty"`
	Type            *string `json:"type,omitempty"`
	ReminderMinutes *int    `json:"reminderMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Email           string  `json:"email"`
}

// CreateRequest parses the input for Service.Create.
func (in Input) CreateRequest() (CreateRequest, error) {
	date, tod, err := in.schedule()
	if err != nil {
		return CreateRequest{}, err
	}
	return CreateRequest{
		Title:           in.Title,
		Date:            date,
		Time:            tod,
		Client:          in.Client,
		Type:            in.Type,
		ReminderMinutes: in.ReminderMinutes,
		Notes:           in.Notes,
		Email:           in.Email,
	}, nil
}

// UpdateRequest parses the input for Service.Update.
func (in Input) UpdateRequest() (UpdateRequest, error) {
	date, tod, err := in.schedule()
	if err != nil {
		return UpdateRequest{}, err
	}
	return UpdateRequest{
		Title:           in.Title,
		Date:            date,
		Time:            tod,
		Client:          in.Client,
		Type:            in.Type,
		ReminderMinutes: in.ReminderMinutes,
		Notes:           in.Notes,
		Email:           in.Email,
	}, nil
}

func (in Input) schedule() (time.Time, TimeOfDay, error) {
	var fields []FieldError
	var date time.Time
	var tod TimeOfDay

	if strings.TrimSpace(in.Date) == "" {
		fields = append(fields, FieldError{Field: "date", Message: "is required"})
	} else if d, err := ParseDate(in.Date); err != nil {
		fields = append(fields, FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	} else {
		date = d
	}

	if strings.TrimSpace(in.Time) == "" {
		fields = append(fields, FieldError{Field: "time", Message: "is required"})
	} else if t, err := ParseTimeOfDay(in.Time); err != nil {
		fields = append(fields, FieldError{Field: "time", Message: "must be HH:MM or HH:MM:SS"})
	} else {
		tod = t
	}

	if len(fields) > 0 {
		return time.Time{}, 0, &ValidationError{Fields: fields}
	}
	return date, tod, nil
}

// SearchInput is the wire form of a search request.
type SearchInput struct {
	Email         string `json:"email"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	Type          string `json:"type,omitempty"`
	Client        string `json:"client,omitempty"`
	SearchTerm    string `json:"searchTerm,omitempty"`
	SortBy        string `json:"sortBy,omitempty"`
	SortDirection string `json:"sortDirection,omitempty"`
	Page          int    `json:"page,omitempty"`
	PageSize      int    `json:"pageSize,omitempty"`
}

// SearchRequest parses the optional date bounds.
func (in SearchInput) SearchRequest() (SearchRequest, error) {
	req := SearchRequest{
		Email:         in.Email,
		Type:          in.Type,
		Client:        in.Client,
		SearchTerm:    in.SearchTerm,
		SortBy:        in.SortBy,
		SortDirection: in.SortDirection,
		Page:          in.Page,
		PageSize:      in.PageSize,
	}
	var fields []FieldError
	var err error
	if req.StartDate, err = optionalDate(in.StartDate); err != nil {
		fields = append(fields, FieldError{Field: "startDate", Message: "must be YYYY-MM-DD"})
	}
	if req.EndDate, err = optionalDate(in.EndDate); err != nil {
		fields = append(fields, FieldError{Field: "endDate", Message: "must be YYYY-MM-DD"})
	}
	if len(fields) > 0 {
		return SearchRequest{}, &ValidationError{Fields: fields}
	}
	return req, nil
}

func optionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseDateParam parses an optional date argument named field. A blank value
// yields nil; a malformed one yields a ValidationError.
func ParseDateParam(field, value string) (*time.Time, error) {
	d, err := optionalDate(value)
	if err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: field, Message: "must be YYYY-MM-DD"}}}
	}
	return d, nil
}
