package interest

import "testing"

var testCatalog = []Interest{
	{ID: "csgo", Name: "CS:GO"},
	{ID: "hiking", Name: "Hiking"},
	{ID: "coding", Name: "Coding"},
}

func TestContains(t *testing.T) {
	if !Contains(testCatalog, "hiking") {
		t.Error("Contains(hiking) = false")
	}
	if Contains(testCatalog, "Hiking") {
		t.Error("Contains matches by id, not name")
	}
	if Contains(nil, "hiking") {
		t.Error("Contains on empty set")
	}
}

func TestFilter(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"ing", 2}, // Hiking, Coding
		{"CS", 1},
		{"cs:go", 1},
		{"zzz", 0},
	}

	for _, tc := range cases {
		if got := Filter(testCatalog, tc.query); len(got) != tc.want {
			t.Errorf("Filter(%q) = %d entries, want %d", tc.query, len(got), tc.want)
		}
	}
}
