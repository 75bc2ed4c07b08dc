package report

import "github.com/rpggio/agenda/internal/domain/event"

// AssumedDuration is the length given to every event when looking for
// overlaps; events carry no end time.
const AssumedDuration = event.Hour

// DetectConflicts compares each event with the next one in time order. An
// event starting exactly when the previous one ends is not a conflict.
// Non-adjacent overlaps (an event spanning two later ones) are not reported.
func DetectConflicts(events []event.Event) []Conflict {
	sorted := SortByTime(events)

	conflicts := []Conflict{}
	for i := 0; i+1 < len(sorted); i++ {
		current, next := sorted[i], sorted[i+1]
		end := current.Time + AssumedDuration
		if end <= next.Time {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Event1:         ConflictEvent{ID: current.ID, Title: current.Title, Time: current.Time},
			Event2:         ConflictEvent{ID: next.ID, Title: next.Title, Time: next.Time},
			OverlapMinutes: (end - next.Time).Duration().Minutes(),
		})
	}
	return conflicts
}
