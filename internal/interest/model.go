package interest

import "strings"

// ============================
// 🔷 Interest Catalog Entry
//
// Interests are an admin-curated catalog; the app only reads it. Compared by
// ID for membership tests.
type Interest struct {
	ID    string `json:"id" firestore:"-"`
	Name  string `json:"name" firestore:"name"`
	Emoji string `json:"emoji" firestore:"emoji"`
}

// SelectableInterest tags a catalog entry with the viewer's selection state.
type SelectableInterest struct {
	Selected bool     `json:"selected"`
	Value    Interest `json:"value"`
}

// Contains reports whether the set holds an interest with the given ID.
func Contains(set []Interest, id string) bool {
	for _, in := range set {
		if in.ID == id {
			return true
		}
	}
	return false
}

// Filter returns the entries whose name contains the query, case-insensitive.
// An empty query matches everything.
func Filter(set []Interest, query string) []Interest {
	if query == "" {
		return set
	}
	q := strings.ToLower(query)
	matched := make([]Interest, 0, len(set))
	for _, in := range set {
		if strings.Contains(strings.ToLower(in.Name), q) {
			matched = append(matched, in)
		}
	}
	return matched
}
