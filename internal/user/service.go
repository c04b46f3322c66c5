package user

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matty-app/matty-backend/internal/auditlog"
	"github.com/matty-app/matty-backend/internal/interest"
)

var ErrNoImage = errors.New("no profile image")

// Store is the slice of the data store the user service needs.
type Store interface {
	FetchUser(ctx context.Context, id string) (User, error)
	FetchAllInterests(ctx context.Context) ([]interest.Interest, error)
	UpdateUserProfile(ctx context.Context, id, name, about string) error
	UpdateUserInterests(ctx context.Context, id string, interestIDs []string) error
}

// Service handles profile reads and edits plus the profile image file.
type Service struct {
	store     Store
	audit     auditlog.Service
	uploadDir string
}

func NewService(store Store, audit auditlog.Service, uploadDir string) *Service {
	return &Service{store: store, audit: audit, uploadDir: uploadDir}
}

// ===========================
// 👤 Profile - the user plus the full catalog tagged with selection flags
func (s *Service) Profile(ctx context.Context, viewerID string) (ProfileResponse, error) {
	u, err := s.store.FetchUser(ctx, viewerID)
	if err != nil {
		return ProfileResponse{}, err
	}
	catalog, err := s.store.FetchAllInterests(ctx)
	if err != nil {
		return ProfileResponse{}, err
	}
	return ProfileResponse{
		User:         u,
		AllInterests: Tag(catalog, u.Interests),
	}, nil
}

// ===========================
// ✏️ Update Profile (name + about)
func (s *Service) UpdateProfile(ctx context.Context, viewerID string, req UpdateProfileRequest, ip string) (User, error) {
	if err := s.store.UpdateUserProfile(ctx, viewerID, req.Name, req.About); err != nil {
		s.audit.LogAction(ctx, viewerID, "", "UPDATE_PROFILE", nil, ip, "failure")
		return User{}, err
	}
	s.audit.LogAction(ctx, viewerID, "", "UPDATE_PROFILE", map[string]interface{}{
		"name": req.Name,
	}, ip, "success")
	return s.store.FetchUser(ctx, viewerID)
}

// ===========================
// 🏷 Update Interests - requested ids run through a selection session so
// unknown ids are dropped and the saved set keeps catalog order.
func (s *Service) UpdateInterests(ctx context.Context, viewerID string, interestIDs []string, ip string) ([]interest.Interest, error) {
	u, err := s.store.FetchUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.store.FetchAllInterests(ctx)
	if err != nil {
		return nil, err
	}

	sel := NewSelection(catalog, nil)
	for _, id := range interestIDs {
		sel.Toggle(id)
	}
	confirmed := sel.Save()

	ids := make([]string, 0, len(confirmed))
	for _, in := range confirmed {
		ids = append(ids, in.ID)
	}

	if err := s.store.UpdateUserInterests(ctx, viewerID, ids); err != nil {
		s.audit.LogAction(ctx, viewerID, "", "UPDATE_INTERESTS", nil, ip, "failure")
		return nil, err
	}
	s.audit.LogAction(ctx, viewerID, "", "UPDATE_INTERESTS", map[string]interface{}{
		"interest_ids": ids,
		"previous":     len(u.Interests),
	}, ip, "success")
	return confirmed, nil
}

// TaggedInterests returns the catalog with the viewer's selection flags.
func (s *Service) TaggedInterests(ctx context.Context, viewerID string) ([]interest.SelectableInterest, error) {
	u, err := s.store.FetchUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.store.FetchAllInterests(ctx)
	if err != nil {
		return nil, err
	}
	return Tag(catalog, u.Interests), nil
}

// ===========================
// 🖼 Profile image - stored as a raw bytes file per user
func (s *Service) imagePath(viewerID string) string {
	return filepath.Join(s.uploadDir, fmt.Sprintf("profile_%s.img", viewerID))
}

func (s *Service) SaveProfileImage(ctx context.Context, viewerID string, data []byte, ip string) error {
	if err := os.MkdirAll(s.uploadDir, os.ModePerm); err != nil {
		return err
	}
	if err := os.WriteFile(s.imagePath(viewerID), data, 0o644); err != nil {
		s.audit.LogAction(ctx, viewerID, "", "UPDATE_PROFILE_IMAGE", nil, ip, "failure")
		return err
	}
	s.audit.LogAction(ctx, viewerID, "", "UPDATE_PROFILE_IMAGE", map[string]interface{}{
		"bytes": len(data),
	}, ip, "success")
	return nil
}

func (s *Service) ProfileImage(viewerID string) ([]byte, error) {
	data, err := os.ReadFile(s.imagePath(viewerID))
	if os.IsNotExist(err) {
		return nil, ErrNoImage
	}
	return data, err
}

func (s *Service) DeleteProfileImage(ctx context.Context, viewerID, ip string) error {
	err := os.Remove(s.imagePath(viewerID))
	if os.IsNotExist(err) {
		return ErrNoImage
	}
	if err != nil {
		return err
	}
	s.audit.LogAction(ctx, viewerID, "", "DELETE_PROFILE_IMAGE", nil, ip, "success")
	return nil
}
