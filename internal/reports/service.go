package reports

import (
	"context"
	"strings"

	"github.com/matty-app/matty-backend/internal/apperr"
	"github.com/matty-app/matty-backend/internal/event"
)

// Store is the slice of the data store the report service needs.
type Store interface {
	FetchEvent(ctx context.Context, viewerID, eventID string) (event.Event, error)
	FetchUserEvents(ctx context.Context, viewerID string) ([]event.Event, error)
}

// Service builds report rows from store data and hands them to the exporter.
type Service struct {
	store    Store
	exporter Exporter
}

func NewService(store Store, exporter Exporter) *Service {
	return &Service{store: store, exporter: exporter}
}

// ===========================
// 👥 Participant export - owner only
func (s *Service) ExportParticipants(ctx context.Context, viewerID, eventID, format string) ([]byte, string, string, error) {
	e, err := s.store.FetchEvent(ctx, viewerID, eventID)
	if err != nil {
		return nil, "", "", err
	}
	if e.UserStatus != event.StatusOwner {
		return nil, "", "", apperr.ErrNotOwner
	}

	rows := make([]ParticipantReportRow, 0, len(e.Participants))
	for _, p := range e.Participants {
		names := make([]string, 0, len(p.Interests))
		for _, in := range p.Interests {
			names = append(names, in.Name)
		}
		rows = append(rows, ParticipantReportRow{
			Name:      p.Name,
			Email:     p.Email,
			About:     p.About,
			Interests: strings.Join(names, ", "),
			Status:    string(event.Status(e, p.ID)),
		})
	}

	return s.exporter.ExportParticipants(format, rows)
}

// ===========================
// 📆 My-events export
func (s *Service) ExportMyEvents(ctx context.Context, viewerID, format string) ([]byte, string, string, error) {
	events, err := s.store.FetchUserEvents(ctx, viewerID)
	if err != nil {
		return nil, "", "", err
	}

	rows := make([]MyEventReportRow, 0, len(events))
	for _, e := range events {
		location := e.Location.Name
		if e.Location.Address != "" {
			if location != "" {
				location += ", "
			}
			location += e.Location.Address
		}
		rows = append(rows, MyEventReportRow{
			Name:         e.Name,
			Interest:     e.Interest.Name,
			Location:     location,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
			Participants: len(e.Participants),
			Status:       string(e.UserStatus),
		})
	}

	return s.exporter.ExportMyEvents(format, rows)
}
