package feed

import (
	"sort"
	"time"

	"github.com/matty-app/matty-backend/internal/event"
)

// Snapshot is one viewer's feed: their own events plus discoverable events
// matching their interests.
type Snapshot struct {
	MyEvents       []event.Event `json:"my_events"`
	RelevantEvents []event.Event `json:"relevant_events"`
	LoadedAt       time.Time     `json:"loaded_at"`
}

// Arrange orders a feed section: ascending by start date, then the head is
// rotated to the back while it has finished. An ongoing event at the head
// shields finished events behind it, so those keep their chronological slot.
// The rotation is skipped when the latest event is itself finished, since
// then everything is history and chronological order reads better.
func Arrange(events []event.Event, now time.Time) []event.Event {
	sorted := append([]event.Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	if len(sorted) == 0 || sorted[len(sorted)-1].EndDate.Before(now) {
		return sorted
	}

	for i := 0; i < len(sorted) && sorted[0].EndDate.Before(now); i++ {
		sorted = append(sorted[1:], sorted[0])
	}
	return sorted
}
