package user

import (
	"github.com/matty-app/matty-backend/internal/interest"
)

// ============================
// 🔷 User Model
type User struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	About     string              `json:"about,omitempty"`
	Interests []interest.Interest `json:"interests"`
}

// ============================
// 🟡 Update Profile Request
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	About string `json:"about"`
}

// ============================
// 🟡 Update Interests Request
type UpdateInterestsRequest struct {
	InterestIDs []string `json:"interest_ids" binding:"required"`
}

// ProfileResponse is the profile screen payload: the user plus the full
// catalog tagged against their confirmed interest set.
type ProfileResponse struct {
	User         User                          `json:"user"`
	AllInterests []interest.SelectableInterest `json:"all_interests"`
}
