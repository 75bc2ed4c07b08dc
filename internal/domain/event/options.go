package event

import (
	"strings"
	"time"
)

// SortField selects the primary ordering of a query.
type SortField string

const (
	SortByDate   SortField = "date"
	SortByTitle  SortField = "title"
	SortByType   SortField = "type"
	SortByClient SortField = "client"
)

// ParseSortField maps a case-insensitive name to a SortField. Unknown names
// sort by date.
func ParseSortField(s string) SortField {
	switch SortField(strings.ToLower(strings.TrimSpace(s))) {
	case SortByTitle:
		return SortByTitle
	case SortByType:
		return SortByType
	case SortByClient:
		return SortByClient
	default:
		return SortByDate
	}
}

// SortDirection is asc or desc.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortDirection maps a case-insensitive name to a direction. Anything
// but "desc" is ascending.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(Descending)) {
		return Descending
	}
	return Ascending
}

// Criteria filters, orders and slices an owner's events.
type Criteria struct {
	From           *time.Time // inclusive
	To             *time.Time // inclusive
	TypeContains   string
	ClientContains string
	Term           string // matches title, notes or client
	HasClient      bool
	SortBy         SortField
	SortDirection  SortDirection
	Offset         int
	Limit          int // 0 means no limit
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSortBy   = SortByDate
	DefaultUpcoming = 7
)

// SearchRequest holds the caller-facing search filters and paging.
type SearchRequest struct {
	Email         string
	StartDate     *time.Time
	EndDate       *time.Time
	Type          string
	Client        string
	SearchTerm    string
	SortBy        string
	SortDirection string
	Page          int
	PageSize      int
}

// normalize applies paging defaults and returns the store criteria.
func (r SearchRequest) normalize() (Criteria, int, int) {
	page := r.Page
	if page < 1 {
		page = DefaultPage
	}
	pageSize := r.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	criteria := Criteria{
		TypeContains:   strings.TrimSpace(r.Type),
		ClientContains: strings.TrimSpace(r.Client),
		Term:           strings.TrimSpace(r.SearchTerm),
		SortBy:         ParseSortField(r.SortBy),
		SortDirection:  ParseSortDirection(r.SortDirection),
		Offset:         (page - 1) * pageSize,
		Limit:          pageSize,
	}
	if r.StartDate != nil {
		from := DateOf(*r.StartDate)
		criteria.From = &from
	}
	if r.EndDate != nil {
		to := DateOf(*r.EndDate)
		criteria.To = &to
	}
	return criteria, page, pageSize
}

// DateRange returns criteria covering [from, to] in date order.
func DateRange(from, to time.Time) Criteria {
	from, to = DateOf(from), DateOf(to)
	return Criteria{From: &from, To: &to, SortBy: SortByDate, SortDirection: Ascending}
}
