package reports

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matty-app/matty-backend/internal/apperr"
	"github.com/matty-app/matty-backend/internal/event"
	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/user"
)

type fakeReportStore struct {
	event  event.Event
	events []event.Event
}

func (f *fakeReportStore) FetchEvent(ctx context.Context, viewerID, eventID string) (event.Event, error) {
	e := f.event
	e.UserStatus = event.Status(e, viewerID)
	return e, nil
}

func (f *fakeReportStore) FetchUserEvents(ctx context.Context, viewerID string) ([]event.Event, error) {
	return f.events, nil
}

func reportFixture() *Service {
	owner := user.User{ID: "owner", Name: "Owner", Email: "owner@example.com"}
	member := user.User{
		ID: "member", Name: "Member", Email: "member@example.com",
		Interests: []interest.Interest{{ID: "hiking", Name: "Hiking"}, {ID: "coding", Name: "Coding"}},
	}
	e := event.Event{
		ID:           "e1",
		Name:         "Morning hike",
		Interest:     interest.Interest{ID: "hiking", Name: "Hiking"},
		Location:     event.Location{Name: "Sulov", Address: "Sulov rocks"},
		StartDate:    time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Creator:      owner,
		Participants: []user.User{owner, member},
		UserStatus:   event.StatusOwner,
	}
	return NewService(&fakeReportStore{event: e, events: []event.Event{e}}, NewExporter())
}

func TestExportParticipantsCSV(t *testing.T) {
	svc := reportFixture()

	data, filename, mime, err := svc.ExportParticipants(context.Background(), "owner", "e1", FormatCSV)
	if err != nil {
		t.Fatalf("ExportParticipants: %v", err)
	}
	if mime != "text/csv" || !strings.HasSuffix(filename, ".csv") {
		t.Errorf("filename=%q mime=%q", filename, mime)
	}

	body := string(data)
	if !strings.Contains(body, "member@example.com") {
		t.Errorf("csv missing participant row:\n%s", body)
	}
	if !strings.Contains(body, "Hiking, Coding") {
		t.Errorf("csv missing joined interests:\n%s", body)
	}
}

func TestExportParticipantsOwnerOnly(t *testing.T) {
	svc := reportFixture()

	_, _, _, err := svc.ExportParticipants(context.Background(), "member", "e1", FormatCSV)
	if !errors.Is(err, apperr.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}

func TestExportMyEventsFormats(t *testing.T) {
	svc := reportFixture()
	ctx := context.Background()

	for _, format := range []string{FormatCSV, FormatExcel, FormatPDF} {
		data, filename, _, err := svc.ExportMyEvents(ctx, "owner", format)
		if err != nil {
			t.Fatalf("ExportMyEvents(%s): %v", format, err)
		}
		if len(data) == 0 || filename == "" {
			t.Errorf("%s export empty", format)
		}
	}

	if _, _, _, err := svc.ExportMyEvents(ctx, "owner", "docx"); err == nil {
		t.Error("unsupported format should error")
	}
}

func TestExportMyEventsPDFMagic(t *testing.T) {
	svc := reportFixture()

	data, _, mime, err := svc.ExportMyEvents(context.Background(), "owner", FormatPDF)
	if err != nil {
		t.Fatalf("ExportMyEvents: %v", err)
	}
	if mime != "application/pdf" {
		t.Errorf("mime = %q", mime)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("pdf export missing %PDF header")
	}
}
