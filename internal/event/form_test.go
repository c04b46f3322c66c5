package event

import (
	"testing"
	"time"

	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/user"
)

func date(hour, min int) time.Time {
	return time.Date(2026, 8, 30, hour, min, 0, 0, time.UTC)
}

func TestSuggestedStartDate(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		// next full hour lands 18 minutes away, pushed one more hour
		{date(14, 42), date(16, 0)},
		// 29 minutes away is still under the threshold
		{date(15, 31), date(17, 0)},
		// 55 minutes away is fine
		{date(14, 5), date(15, 0)},
		// exactly on the hour: next hour is exactly 60 minutes away
		{date(12, 0), date(13, 0)},
	}

	for _, tc := range cases {
		if got := SuggestedStartDate(tc.now); !got.Equal(tc.want) {
			t.Errorf("SuggestedStartDate(%v) = %v, want %v", tc.now, got, tc.want)
		}
	}
}

func TestSuggestedEndDate(t *testing.T) {
	now := date(14, 42)
	want := date(17, 0)
	if got := SuggestedEndDate(now); !got.Equal(want) {
		t.Errorf("SuggestedEndDate(%v) = %v, want %v", now, got, want)
	}
}

func TestNewFormDefaults(t *testing.T) {
	now := date(14, 5)
	f := NewForm(now)

	if !f.Now {
		t.Error("new form should start with the now toggle on")
	}
	if !f.IsPublic || !f.WithApproval {
		t.Error("new form should default to public with approval")
	}
	if !f.StartDate.Equal(date(15, 0)) {
		t.Errorf("StartDate = %v, want %v", f.StartDate, date(15, 0))
	}
	if !f.EndDate.Equal(date(16, 0)) {
		t.Errorf("EndDate = %v, want %v", f.EndDate, date(16, 0))
	}
	if !f.IsNew() {
		t.Error("new form should report IsNew")
	}
}

func TestFinalizeRequiresInterest(t *testing.T) {
	f := NewForm(date(10, 0))
	if _, err := f.Finalize(user.User{ID: "u1"}, date(10, 0)); err != ErrNoInterestSelected {
		t.Fatalf("err = %v, want ErrNoInterestSelected", err)
	}
}

func TestFinalizeNowForcesStart(t *testing.T) {
	now := date(10, 0)
	f := NewForm(now)
	f.Interest = &interest.Interest{ID: "hiking", Name: "Hiking"}
	f.EndDate = date(9, 0) // invalid against the forced start

	e, err := f.Finalize(user.User{ID: "u1"}, now)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !e.StartDate.Equal(now) {
		t.Errorf("StartDate = %v, want %v", e.StartDate, now)
	}
	if !e.EndDate.Equal(now.Add(time.Hour)) {
		t.Errorf("EndDate = %v, want start+1h", e.EndDate)
	}
}

func TestFinalizeRejectsEndBeforeStart(t *testing.T) {
	now := date(10, 0)
	f := NewForm(now)
	f.Interest = &interest.Interest{ID: "hiking"}
	f.Now = false
	f.StartDate = date(15, 0)
	f.EndDate = date(14, 0)

	if _, err := f.Finalize(user.User{ID: "u1"}, now); err != ErrEndBeforeStart {
		t.Fatalf("err = %v, want ErrEndBeforeStart", err)
	}
}

func TestFinalizeNewEventAutoJoinsCreator(t *testing.T) {
	now := date(10, 0)
	viewer := user.User{ID: "u1", Name: "Dev"}
	f := NewForm(now)
	f.Interest = &interest.Interest{ID: "hiking"}

	e, err := f.Finalize(viewer, now)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if e.Creator.ID != "u1" || e.UserStatus != StatusOwner {
		t.Errorf("creator = %q status = %q, want owner u1", e.Creator.ID, e.UserStatus)
	}
	if len(e.Participants) != 1 || e.Participants[0].ID != "u1" {
		t.Errorf("participants = %v, want just the creator", e.Participants)
	}
}

func TestFinalizeEditCarriesIdentity(t *testing.T) {
	now := date(10, 0)
	creator := user.User{ID: "owner"}
	other := user.User{ID: "other"}
	existing := Event{
		ID:           "e1",
		Name:         "Old name",
		Interest:     interest.Interest{ID: "hiking"},
		StartDate:    date(18, 0),
		EndDate:      date(19, 0),
		Creator:      creator,
		CreatedAt:    date(8, 0),
		Participants: []user.User{creator, other},
	}

	f := EditForm(existing, now)
	f.Name = "New name"

	e, err := f.Finalize(creator, now)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if e.ID != "e1" || !e.CreatedAt.Equal(date(8, 0)) {
		t.Errorf("identity not carried: id=%q createdAt=%v", e.ID, e.CreatedAt)
	}
	if len(e.Participants) != 2 {
		t.Errorf("participants = %d, want existing set preserved", len(e.Participants))
	}
	if e.Name != "New name" {
		t.Errorf("Name = %q", e.Name)
	}
	if f.Now {
		t.Error("edit form for a pending event should not force the now toggle")
	}
}

func TestEditFormStartedEventKeepsNowToggle(t *testing.T) {
	now := date(12, 0)
	existing := Event{
		StartDate: date(11, 0),
		EndDate:   date(13, 0),
	}
	if f := EditForm(existing, now); !f.Now {
		t.Error("edit form for a started event should keep the now toggle on")
	}
}
