package event

import (
	"errors"
	"time"

	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/user"
)

var (
	ErrNoInterestSelected = errors.New("no interest selected")
	ErrEndBeforeStart     = errors.New("end date is before start date")
)

// minEventDuration is the smallest start→end window the form accepts.
const minEventDuration = time.Minute

// Form holds the draft field state for creating or editing an event. A zero
// Existing means a new draft.
type Form struct {
	Name         string
	Description  string
	Details      string
	Interest     *interest.Interest
	Location     Location
	StartDate    time.Time
	EndDate      time.Time
	Now          bool
	IsPublic     bool
	WithApproval bool

	Existing *Event // nil for a new event
}

// NewForm returns a draft with the suggested schedule and the defaults the
// mobile form starts from.
func NewForm(now time.Time) *Form {
	start := SuggestedStartDate(now)
	return &Form{
		StartDate:    start,
		EndDate:      start.Add(time.Hour),
		Now:          true,
		IsPublic:     true,
		WithApproval: true,
	}
}

// EditForm returns a draft pre-filled from an existing event. The "now"
// toggle stays on for events that already started; a pending event edits its
// chosen start date.
func EditForm(e Event, now time.Time) *Form {
	f := &Form{
		Name:         e.Name,
		Description:  e.Description,
		Details:      e.Details,
		Interest:     &e.Interest,
		Location:     e.Location,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Now:          e.StartDate.Before(now),
		IsPublic:     e.IsPublic,
		WithApproval: e.WithApproval,
		Existing:     &e,
	}
	return f
}

// SuggestedStartDate is the next full hour at least 30 minutes away: now+1h
// truncated to the hour, plus another hour when that lands under 30 minutes
// from now.
func SuggestedStartDate(now time.Time) time.Time {
	start := now.Add(time.Hour).Truncate(time.Hour)
	if start.Sub(now) < 30*time.Minute {
		start = start.Add(time.Hour)
	}
	return start
}

// SuggestedEndDate is the suggested start plus one hour.
func SuggestedEndDate(now time.Time) time.Time {
	return SuggestedStartDate(now).Add(time.Hour)
}

// Finalize validates the draft and produces the event to persist. For a new
// draft the creator is auto-joined as the only participant; edits carry the
// prior participant set. The caller routes the result to Add or Update based
// on IsNew.
func (f *Form) Finalize(viewer user.User, now time.Time) (Event, error) {
	if f.Interest == nil {
		return Event{}, ErrNoInterestSelected
	}

	start := f.StartDate
	if f.Now {
		start = now
	}
	end := f.EndDate
	if f.Now && end.Before(start.Add(minEventDuration)) {
		end = start.Add(time.Hour)
	}
	if end.Before(start.Add(minEventDuration)) {
		return Event{}, ErrEndBeforeStart
	}

	e := Event{
		Name:         f.Name,
		Description:  f.Description,
		Details:      f.Details,
		Interest:     *f.Interest,
		Location:     f.Location,
		StartDate:    start,
		EndDate:      end,
		IsPublic:     f.IsPublic,
		WithApproval: f.WithApproval,
		Creator:      viewer,
		UserStatus:   StatusOwner,
		Participants: []user.User{viewer},
	}
	if f.Existing != nil {
		e.ID = f.Existing.ID
		e.CreatedAt = f.Existing.CreatedAt
		e.Creator = f.Existing.Creator
		if len(f.Existing.Participants) > 0 {
			e.Participants = f.Existing.Participants
		}
	}
	return e, nil
}

// IsNew reports whether the draft creates a new event.
func (f *Form) IsNew() bool {
	return f.Existing == nil
}
