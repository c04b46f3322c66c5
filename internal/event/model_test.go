package event

import (
	"testing"

	"github.com/matty-app/matty-backend/internal/user"
)

func TestStatus(t *testing.T) {
	e := Event{
		Creator: user.User{ID: "owner"},
		Participants: []user.User{
			{ID: "owner"},
			{ID: "member"},
		},
	}

	cases := []struct {
		viewerID string
		want     UserStatus
	}{
		{"owner", StatusOwner},
		{"member", StatusParticipant},
		{"stranger", StatusNone},
		{"", StatusNone},
	}

	for _, tc := range cases {
		if got := Status(e, tc.viewerID); got != tc.want {
			t.Errorf("Status(%q) = %q, want %q", tc.viewerID, got, tc.want)
		}
	}
}

// The creator wins even when also listed as a participant.
func TestStatusOwnerBeatsParticipant(t *testing.T) {
	e := Event{
		Creator:      user.User{ID: "u1"},
		Participants: []user.User{{ID: "u1"}},
	}
	if got := Status(e, "u1"); got != StatusOwner {
		t.Errorf("Status = %q, want owner", got)
	}
}
