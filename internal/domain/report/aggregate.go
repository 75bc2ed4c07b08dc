package report

import (
	"math"
	"slices"
	"sort"
	"time"

	"github.com/rpggio/agenda/internal/domain/event"
)

// Round2 rounds to two decimals, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(count) / float64(total) * 100)
}

// groups keeps keys in first-appearance order.
type groups[K comparable] struct {
	keys  []K
	items map[K][]event.Event
}

func groupBy[K comparable](events []event.Event, key func(event.Event) (K, bool)) *groups[K] {
	g := &groups[K]{items: map[K][]event.Event{}}
	for _, evt := range events {
		k, ok := key(evt)
		if !ok {
			continue
		}
		if _, seen := g.items[k]; !seen {
			g.keys = append(g.keys, k)
		}
		g.items[k] = append(g.items[k], evt)
	}
	return g
}

func typeKey(evt event.Event) (string, bool) {
	if evt.Type == nil || *evt.Type == "" {
		return "", false
	}
	return *evt.Type, true
}

func clientKey(evt event.Event) (string, bool) {
	if evt.Client == nil || *evt.Client == "" {
		return "", false
	}
	return *evt.Client, true
}

// GroupByPeriod partitions events by calendar month, oldest first.
func GroupByPeriod(events []event.Event) []PeriodGroup {
	g := groupBy(events, func(evt event.Event) (string, bool) {
		return evt.Date.Format("2006-01"), true
	})

	out := make([]PeriodGroup, 0, len(g.keys))
	for _, period := range g.keys {
		members := g.items[period]
		summaries := make([]EventSummary, 0, len(members))
		for _, evt := range members {
			summaries = append(summaries, EventSummary{
				ID:    evt.ID,
				Title: evt.Title,
				Date:  evt.Date.Format(event.DateLayout),
				Type:  evt.Type,
			})
		}
		out = append(out, PeriodGroup{Period: period, Count: len(members), Events: summaries})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// TypeDistribution counts typed events per type. Percentages are relative to
// the typed events only.
func TypeDistribution(events []event.Event) []TypeShare {
	g := groupBy(events, typeKey)

	typed := 0
	for _, k := range g.keys {
		typed += len(g.items[k])
	}

	out := make([]TypeShare, 0, len(g.keys))
	for _, k := range g.keys {
		n := len(g.items[k])
		out = append(out, TypeShare{Type: k, Count: n, Percentage: percentage(n, typed)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// DayOfWeekCounts counts events per weekday name, ordered by name.
func DayOfWeekCounts(events []event.Event) []DayCount {
	g := groupBy(events, func(evt event.Event) (string, bool) {
		return evt.Date.Weekday().String(), true
	})

	out := make([]DayCount, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, DayCount{DayOfWeek: k, Count: len(g.items[k])})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out
}

func typeCounts(events []event.Event) []TypeCount {
	g := groupBy(events, typeKey)
	out := make([]TypeCount, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, TypeCount{Type: k, Count: len(g.items[k])})
	}
	return out
}

// ClientProductivity summarizes events per non-empty client, busiest first.
func ClientProductivity(events []event.Event) []ClientStats {
	g := groupBy(events, clientKey)

	out := make([]ClientStats, 0, len(g.keys))
	for _, client := range g.keys {
		members := g.items[client]
		first, last := members[0].Date, members[0].Date
		for _, evt := range members[1:] {
			if evt.Date.Before(first) {
				first = evt.Date
			}
			if evt.Date.After(last) {
				last = evt.Date
			}
		}
		days := math.Floor(last.Sub(first).Hours() / 24)
		months := max(1, days/30)

		out = append(out, ClientStats{
			Client:                client,
			TotalEvents:           len(members),
			FirstEvent:            first.Format(event.DateLayout),
			LastEvent:             last.Format(event.DateLayout),
			EventTypes:            typeCounts(members),
			AverageEventsPerMonth: Round2(float64(len(members)) / months),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalEvents > out[j].TotalEvents })
	return out
}

// MonthlyTrend counts events per (year, month) in calendar order.
func MonthlyTrend(events []event.Event) []MonthTrend {
	type ym struct{ year, month int }
	g := groupBy(events, func(evt event.Event) (ym, bool) {
		return ym{evt.Date.Year(), int(evt.Date.Month())}, true
	})

	out := make([]MonthTrend, 0, len(g.keys))
	for _, k := range g.keys {
		members := g.items[k]
		out = append(out, MonthTrend{Year: k.year, Month: k.month, Count: len(members), Types: typeCounts(members)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// HourDistribution counts events per starting hour, busiest first.
// Percentages are relative to all events.
func HourDistribution(events []event.Event) []HourShare {
	g := groupBy(events, func(evt event.Event) (int, bool) {
		return evt.Time.Hour(), true
	})

	out := make([]HourShare, 0, len(g.keys))
	for _, h := range g.keys {
		n := len(g.items[h])
		out = append(out, HourShare{Hour: h, Count: n, Percentage: percentage(n, len(events))})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ReminderDistribution counts events per reminder lead time, shortest
// first. Percentages are relative to all events.
func ReminderDistribution(events []event.Event) []ReminderShare {
	g := groupBy(events, func(evt event.Event) (int, bool) {
		if evt.ReminderMinutes == nil {
			return 0, false
		}
		return *evt.ReminderMinutes, true
	})

	out := make([]ReminderShare, 0, len(g.keys))
	for _, m := range g.keys {
		n := len(g.items[m])
		out = append(out, ReminderShare{ReminderMinutes: m, Count: n, Percentage: percentage(n, len(events))})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReminderMinutes < out[j].ReminderMinutes })
	return out
}

// Summarize derives the headline numbers of a trend report.
func Summarize(events []event.Event, months int, trend []MonthTrend, hours []HourShare) TrendSummary {
	summary := TrendSummary{
		TotalEvents:           len(events),
		AverageEventsPerMonth: Round2(float64(len(events)) / float64(months)),
	}
	if len(trend) > 0 {
		busiest := trend[0]
		for _, m := range trend[1:] {
			if m.Count > busiest.Count {
				busiest = m
			}
		}
		month := busiest.Month
		summary.MostActiveMonth = &month
	}
	if len(hours) > 0 {
		hour := hours[0].Hour
		summary.MostActiveHour = &hour
	}
	return summary
}

// SortByTime orders events by time of day, keeping input order for ties.
func SortByTime(events []event.Event) []event.Event {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b event.Event) int {
		return int(a.Time) - int(b.Time)
	})
	return sorted
}

// AddMonths shifts t by n calendar months, clamping to the last day of the
// target month instead of overflowing into the next one.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	return time.Date(first.Year(), first.Month(), min(d, lastDay), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
