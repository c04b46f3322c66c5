package event

import (
	"time"

	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/user"
)

// UserStatus is the viewer-relative relationship to an event. It is derived
// at read time and never persisted.
type UserStatus string

const (
	StatusOwner       UserStatus = "owner"
	StatusParticipant UserStatus = "participant"
	StatusNone        UserStatus = "none"
)

// Coordinates is an optional latitude/longitude pair; absent when the creator
// skipped map selection.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Location struct {
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// ============================
// 🔷 Event Model
//
// ID is empty only for an unsaved draft; the store assigns a generated
// document id on creation. The creator is always a member of Participants.
type Event struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Details      string            `json:"details"`
	Interest     interest.Interest `json:"interest"`
	Location     Location          `json:"location"`
	StartDate    time.Time         `json:"start_date"`
	EndDate      time.Time         `json:"end_date"`
	IsPublic     bool              `json:"is_public"`
	WithApproval bool              `json:"with_approval"`
	Creator      user.User         `json:"creator"`
	CreatedAt    time.Time         `json:"created_at"`
	UserStatus   UserStatus        `json:"user_status"`
	Participants []user.User       `json:"participants"`
}

// Past reports whether the event has already ended.
func (e Event) Past() bool {
	return e.EndDate.Before(time.Now())
}

// Started reports whether the event has already begun.
func (e Event) Started() bool {
	return e.StartDate.Before(time.Now())
}

// Status derives the viewer-relative status: owner if the viewer created the
// event, participant if the viewer is in the participant set, none otherwise.
func Status(e Event, viewerID string) UserStatus {
	if e.Creator.ID == viewerID {
		return StatusOwner
	}
	for _, p := range e.Participants {
		if p.ID == viewerID {
			return StatusParticipant
		}
	}
	return StatusNone
}

// ============================
// 🟡 Create / Update Event Request
type EventRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Details      string   `json:"details"`
	InterestID   string   `json:"interest_id" binding:"required"`
	LocationName string   `json:"location_name"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	StartDate    string   `json:"start_date"` // RFC3339; ignored when now=true
	EndDate      string   `json:"end_date" binding:"required"`
	Now          bool     `json:"now"`
	IsPublic     *bool    `json:"is_public"`
	WithApproval *bool    `json:"with_approval"`
}

// ============================
// 🟠 Delete Confirmation
type DeleteRequestResponse struct {
	ConfirmToken string `json:"confirm_token"`
	ExpiresIn    int    `json:"expires_in_seconds"`
}
