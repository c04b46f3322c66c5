package user

import (
	"github.com/matty-app/matty-backend/internal/interest"
)

// Selection models the modal interest-editing state: toggles accumulate
// against the catalog and only commit to the confirmed set on Save. Cancel
// recomputes the selected flags from the confirmed set, discarding edits.
type Selection struct {
	catalog   []interest.Interest
	confirmed []interest.Interest
	selected  map[string]bool
}

// NewSelection starts an editing session over the catalog, with the selected
// flags derived from the confirmed set.
func NewSelection(catalog, confirmed []interest.Interest) *Selection {
	s := &Selection{
		catalog:   catalog,
		confirmed: confirmed,
		selected:  make(map[string]bool),
	}
	s.reset()
	return s
}

func (s *Selection) reset() {
	s.selected = make(map[string]bool)
	for _, in := range s.confirmed {
		s.selected[in.ID] = true
	}
}

// Toggle flips the selection state of a catalog entry. Unknown IDs are ignored.
func (s *Selection) Toggle(interestID string) {
	if !interest.Contains(s.catalog, interestID) {
		return
	}
	s.selected[interestID] = !s.selected[interestID]
}

// Save commits the toggled state as the new confirmed set, in catalog order.
func (s *Selection) Save() []interest.Interest {
	confirmed := make([]interest.Interest, 0, len(s.catalog))
	for _, in := range s.catalog {
		if s.selected[in.ID] {
			confirmed = append(confirmed, in)
		}
	}
	s.confirmed = confirmed
	return confirmed
}

// Cancel discards uncommitted toggles and reverts to the confirmed set.
func (s *Selection) Cancel() {
	s.reset()
}

// Tagged returns the catalog with each entry's current selection flag.
func (s *Selection) Tagged() []interest.SelectableInterest {
	tagged := make([]interest.SelectableInterest, 0, len(s.catalog))
	for _, in := range s.catalog {
		tagged = append(tagged, interest.SelectableInterest{
			Selected: s.selected[in.ID],
			Value:    in,
		})
	}
	return tagged
}

// Confirmed returns the committed interest set.
func (s *Selection) Confirmed() []interest.Interest {
	return s.confirmed
}

// Tag computes selection flags for a catalog against a confirmed set without
// an editing session.
func Tag(catalog, confirmed []interest.Interest) []interest.SelectableInterest {
	tagged := make([]interest.SelectableInterest, 0, len(catalog))
	for _, in := range catalog {
		tagged = append(tagged, interest.SelectableInterest{
			Selected: interest.Contains(confirmed, in.ID),
			Value:    in,
		})
	}
	return tagged
}
