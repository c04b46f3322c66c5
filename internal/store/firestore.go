package store

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/matty-app/matty-backend/internal/auditlog"
	"github.com/matty-app/matty-backend/internal/event"
	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/notification"
	"github.com/matty-app/matty-backend/internal/user"
)

// Firestore is the production DataStore over Cloud Firestore.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

var _ DataStore = (*Firestore)(nil)

// ===========================
// 📌 Document references
func (s *Firestore) interestRef(id string) *firestore.DocumentRef {
	return s.client.Collection(colInterests).Doc(id)
}

func (s *Firestore) userRef(id string) *firestore.DocumentRef {
	return s.client.Collection(colUsers).Doc(id)
}

func (s *Firestore) eventRef(id string) *firestore.DocumentRef {
	return s.client.Collection(colEvents).Doc(id)
}

// ===========================
// 🔍 Fetch All Interests
func (s *Firestore) FetchAllInterests(ctx context.Context) ([]interest.Interest, error) {
	var interests []interest.Interest
	iter := s.client.Collection(colInterests).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc interestDoc
		if err := snap.DataTo(&doc); err != nil {
			log.Printf("skipping malformed interest %s: %v", snap.Ref.ID, err)
			continue
		}
		interests = append(interests, interest.Interest{ID: snap.Ref.ID, Name: doc.Name, Emoji: doc.Emoji})
	}
	return interests, nil
}

// ===========================
// 🔍 Fetch User Interests
func (s *Firestore) FetchUserInterests(ctx context.Context, userID string) ([]interest.Interest, error) {
	var doc userDoc
	snap, err := s.userRef(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	return s.resolveInterests(ctx, doc.Interests), nil
}

// resolveInterests follows interest references one by one, dropping any that
// no longer resolve.
func (s *Firestore) resolveInterests(ctx context.Context, refs []*firestore.DocumentRef) []interest.Interest {
	interests := make([]interest.Interest, 0, len(refs))
	for _, ref := range refs {
		in := s.resolveInterest(ctx, ref)
		if in == nil {
			continue
		}
		interests = append(interests, *in)
	}
	return interests
}

func (s *Firestore) resolveInterest(ctx context.Context, ref *firestore.DocumentRef) *interest.Interest {
	if ref == nil {
		return nil
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		log.Printf("skipping unresolved interest ref %s: %v", ref.ID, err)
		return nil
	}
	var doc interestDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil
	}
	return &interest.Interest{ID: snap.Ref.ID, Name: doc.Name, Emoji: doc.Emoji}
}

// resolveUser follows a user reference and the user's interest references.
func (s *Firestore) resolveUser(ctx context.Context, ref *firestore.DocumentRef) *user.User {
	if ref == nil {
		return nil
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		log.Printf("skipping unresolved user ref %s: %v", ref.ID, err)
		return nil
	}
	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil
	}
	return &user.User{
		ID:        snap.Ref.ID,
		Name:      doc.Name,
		Email:     doc.Email,
		About:     doc.About,
		Interests: s.resolveInterests(ctx, doc.Interests),
	}
}

// unwrapEvent turns an event snapshot into a fully-populated domain record
// with the viewer-relative status. A nil result means a reference failed to
// resolve and the event should be dropped from the result set.
func (s *Firestore) unwrapEvent(ctx context.Context, snap *firestore.DocumentSnapshot, viewerID string) *event.Event {
	var doc eventDoc
	if err := snap.DataTo(&doc); err != nil {
		log.Printf("skipping malformed event %s: %v", snap.Ref.ID, err)
		return nil
	}

	in := s.resolveInterest(ctx, doc.InterestRef)
	if in == nil {
		return nil
	}
	creator := s.resolveUser(ctx, doc.CreatorRef)
	if creator == nil {
		return nil
	}

	participants := make([]user.User, 0, len(doc.Participants))
	for _, ref := range doc.Participants {
		p := s.resolveUser(ctx, ref)
		if p == nil {
			continue
		}
		participants = append(participants, *p)
	}

	e := event.Event{
		ID:          snap.Ref.ID,
		Name:        doc.Name,
		Description: doc.Description,
		Details:     doc.Details,
		Interest:    *in,
		Location: event.Location{
			Name:        doc.LocationName,
			Address:     doc.LocationAddress,
			Coordinates: fromGeoPoint(doc.Coordinates),
		},
		StartDate:    doc.StartDate,
		EndDate:      doc.EndDate,
		IsPublic:     doc.Public,
		WithApproval: doc.WithApproval,
		Creator:      *creator,
		CreatedAt:    doc.CreatedAt,
		Participants: participants,
	}
	e.UserStatus = event.Status(e, viewerID)
	return &e
}

// ===========================
// 👤 Users
func (s *Firestore) CreateUser(ctx context.Context, u user.User, passwordHash string) (user.User, error) {
	if _, _, err := s.FetchUserByEmail(ctx, u.Email); err == nil {
		return user.User{}, ErrEmailTaken
	}

	interestRefs := make([]*firestore.DocumentRef, 0, len(u.Interests))
	for _, in := range u.Interests {
		interestRefs = append(interestRefs, s.interestRef(in.ID))
	}

	ref := s.client.Collection(colUsers).NewDoc()
	_, err := ref.Create(ctx, userDoc{
		Name:         u.Name,
		Email:        u.Email,
		About:        u.About,
		PasswordHash: passwordHash,
		Events:       []*firestore.DocumentRef{},
		Interests:    interestRefs,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return user.User{}, err
	}
	u.ID = ref.ID
	return u, nil
}

func (s *Firestore) FetchUser(ctx context.Context, id string) (user.User, error) {
	u := s.resolveUser(ctx, s.userRef(id))
	if u == nil {
		return user.User{}, ErrNotFound
	}
	return *u, nil
}

func (s *Firestore) FetchUserByEmail(ctx context.Context, email string) (user.User, string, error) {
	iter := s.client.Collection(colUsers).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()
	snap, err := iter.Next()
	if err == iterator.Done {
		return user.User{}, "", ErrNotFound
	}
	if err != nil {
		return user.User{}, "", err
	}
	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return user.User{}, "", err
	}
	u := user.User{
		ID:        snap.Ref.ID,
		Name:      doc.Name,
		Email:     doc.Email,
		About:     doc.About,
		Interests: s.resolveInterests(ctx, doc.Interests),
	}
	return u, doc.PasswordHash, nil
}

func (s *Firestore) UpdateUserProfile(ctx context.Context, id, name, about string) error {
	_, err := s.userRef(id).Update(ctx, []firestore.Update{
		{Path: "name", Value: name},
		{Path: "about", Value: about},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (s *Firestore) UpdateUserInterests(ctx context.Context, id string, interestIDs []string) error {
	refs := make([]*firestore.DocumentRef, 0, len(interestIDs))
	for _, interestID := range interestIDs {
		refs = append(refs, s.interestRef(interestID))
	}
	_, err := s.userRef(id).Update(ctx, []firestore.Update{
		{Path: "interests", Value: refs},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// ===========================
// 🔍 Fetch Single Event
func (s *Firestore) FetchEvent(ctx context.Context, viewerID, eventID string) (event.Event, error) {
	snap, err := s.eventRef(eventID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return event.Event{}, ErrNotFound
		}
		return event.Event{}, err
	}
	e := s.unwrapEvent(ctx, snap, viewerID)
	if e == nil {
		return event.Event{}, ErrNotFound
	}
	return *e, nil
}

// ===========================
// 📆 Fetch User Events - resolves the viewer's event reference list.
// Unresolvable references (deleted events, broken refs) are silently skipped.
func (s *Firestore) FetchUserEvents(ctx context.Context, viewerID string) ([]event.Event, error) {
	snap, err := s.userRef(viewerID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	events := make([]event.Event, 0, len(doc.Events))
	for _, ref := range doc.Events {
		eventSnap, err := ref.Get(ctx)
		if err != nil {
			log.Printf("skipping unresolved event ref %s: %v", ref.ID, err)
			continue
		}
		e := s.unwrapEvent(ctx, eventSnap, viewerID)
		if e == nil {
			continue
		}
		events = append(events, *e)
	}
	return events, nil
}

// ===========================
// 🔎 Fetch Relevant Events - events matching the viewer's interests that the
// viewer is not already part of.
func (s *Firestore) FetchRelevantEvents(ctx context.Context, viewerID string) ([]event.Event, error) {
	snap, err := s.userRef(viewerID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	if len(doc.Interests) == 0 {
		return []event.Event{}, nil
	}

	var events []event.Event
	iter := s.client.Collection(colEvents).Where("interestRef", "in", doc.Interests).Documents(ctx)
	defer iter.Stop()
	for {
		eventSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		e := s.unwrapEvent(ctx, eventSnap, viewerID)
		if e == nil {
			continue
		}
		if e.UserStatus == event.StatusNone {
			events = append(events, *e)
		}
	}
	return events, nil
}

// ===========================
// 🔎 Fetch Events by Interest (category search)
func (s *Firestore) FetchEventsByInterest(ctx context.Context, viewerID, interestID string) ([]event.Event, error) {
	var events []event.Event
	iter := s.client.Collection(colEvents).Where("interestRef", "==", s.interestRef(interestID)).Documents(ctx)
	defer iter.Stop()
	for {
		eventSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		e := s.unwrapEvent(ctx, eventSnap, viewerID)
		if e == nil {
			continue
		}
		events = append(events, *e)
	}
	return events, nil
}

// toEventDoc maps the mutable event fields to their document representation.
func (s *Firestore) toEventDoc(e event.Event, creatorRef *firestore.DocumentRef, participants []*firestore.DocumentRef, createdAt time.Time) eventDoc {
	return eventDoc{
		Name:            e.Name,
		Description:     e.Description,
		Details:         e.Details,
		InterestRef:     s.interestRef(e.Interest.ID),
		Coordinates:     toGeoPoint(e.Location.Coordinates),
		LocationName:    e.Location.Name,
		LocationAddress: e.Location.Address,
		StartDate:       e.StartDate,
		EndDate:         e.EndDate,
		Public:          e.IsPublic,
		WithApproval:    e.WithApproval,
		CreatorRef:      creatorRef,
		CreatedAt:       createdAt,
		Participants:    participants,
	}
}

// ===========================
// 🎯 Add Event - the event document and the creator's back-reference are
// written in one atomic batch so a crash cannot leave either side dangling.
func (s *Firestore) AddEvent(ctx context.Context, viewerID string, e event.Event) (event.Event, error) {
	creatorRef := s.userRef(viewerID)
	eventRef := s.client.Collection(colEvents).NewDoc()
	createdAt := time.Now()

	batch := s.client.Batch()
	batch.Create(eventRef, s.toEventDoc(e, creatorRef, []*firestore.DocumentRef{creatorRef}, createdAt))
	batch.Update(creatorRef, []firestore.Update{
		{Path: "events", Value: firestore.ArrayUnion(eventRef)},
	})
	if _, err := batch.Commit(ctx); err != nil {
		return event.Event{}, err
	}

	e.ID = eventRef.ID
	e.CreatedAt = createdAt
	e.UserStatus = event.StatusOwner
	return e, nil
}

// ===========================
// ➕ Join Event - both sides of the membership are updated atomically.
func (s *Firestore) JoinEvent(ctx context.Context, viewerID, eventID string) error {
	userRef := s.userRef(viewerID)
	eventRef := s.eventRef(eventID)

	batch := s.client.Batch()
	batch.Update(userRef, []firestore.Update{
		{Path: "events", Value: firestore.ArrayUnion(eventRef)},
	})
	batch.Update(eventRef, []firestore.Update{
		{Path: "participants", Value: firestore.ArrayUnion(userRef)},
	})
	_, err := batch.Commit(ctx)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// ===========================
// ➖ Leave Event - inverse of join.
func (s *Firestore) LeaveEvent(ctx context.Context, viewerID, eventID string) error {
	userRef := s.userRef(viewerID)
	eventRef := s.eventRef(eventID)

	batch := s.client.Batch()
	batch.Update(userRef, []firestore.Update{
		{Path: "events", Value: firestore.ArrayRemove(eventRef)},
	})
	batch.Update(eventRef, []firestore.Update{
		{Path: "participants", Value: firestore.ArrayRemove(userRef)},
	})
	_, err := batch.Commit(ctx)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// ===========================
// 🛠 Update Event - full overwrite of the mutable fields. Participants,
// creator and createdAt are never touched here. The owner check and the
// write run in one transaction so a concurrent delete aborts the update.
func (s *Firestore) UpdateEvent(ctx context.Context, viewerID string, e event.Event) error {
	eventRef := s.eventRef(e.ID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(eventRef)
		if err != nil {
			return err
		}
		var doc eventDoc
		if err := snap.DataTo(&doc); err != nil {
			return err
		}
		if doc.CreatorRef == nil || doc.CreatorRef.ID != viewerID {
			return ErrNotOwner
		}

		return tx.Update(eventRef, []firestore.Update{
			{Path: "name", Value: e.Name},
			{Path: "description", Value: e.Description},
			{Path: "details", Value: e.Details},
			{Path: "interestRef", Value: s.interestRef(e.Interest.ID)},
			{Path: "coordinates", Value: toGeoPoint(e.Location.Coordinates)},
			{Path: "locationName", Value: e.Location.Name},
			{Path: "locationAddress", Value: e.Location.Address},
			{Path: "startDate", Value: e.StartDate},
			{Path: "endDate", Value: e.EndDate},
			{Path: "public", Value: e.IsPublic},
			{Path: "withApproval", Value: e.WithApproval},
		})
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// ===========================
// ❌ Delete Event - deletes the document and retracts the creator's
// back-reference, transactionally with the owner check.
func (s *Firestore) DeleteEvent(ctx context.Context, viewerID, eventID string) error {
	eventRef := s.eventRef(eventID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(eventRef)
		if err != nil {
			return err
		}
		var doc eventDoc
		if err := snap.DataTo(&doc); err != nil {
			return err
		}
		if doc.CreatorRef == nil || doc.CreatorRef.ID != viewerID {
			return ErrNotOwner
		}

		if err := tx.Delete(eventRef); err != nil {
			return err
		}
		return tx.Update(doc.CreatorRef, []firestore.Update{
			{Path: "events", Value: firestore.ArrayRemove(eventRef)},
		})
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// ===========================
// 🔔 Notifications
func (s *Firestore) CreateNotification(ctx context.Context, n notification.InAppNotification) error {
	_, err := s.client.Collection(colNotifications).NewDoc().Create(ctx, notificationDoc{
		UserID:    n.UserID,
		EventID:   n.EventID,
		Title:     n.Title,
		Message:   n.Message,
		Category:  n.Category,
		IsRead:    false,
		CreatedAt: time.Now(),
	})
	return err
}

func (s *Firestore) ListNotifications(ctx context.Context, userID string) ([]notification.InAppNotification, error) {
	var notifications []notification.InAppNotification
	iter := s.client.Collection(colNotifications).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc notificationDoc
		if err := snap.DataTo(&doc); err != nil {
			continue
		}
		notifications = append(notifications, notification.InAppNotification{
			ID:        snap.Ref.ID,
			UserID:    doc.UserID,
			EventID:   doc.EventID,
			Title:     doc.Title,
			Message:   doc.Message,
			Category:  doc.Category,
			IsRead:    doc.IsRead,
			CreatedAt: doc.CreatedAt,
		})
	}
	return notifications, nil
}

func (s *Firestore) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	ref := s.client.Collection(colNotifications).Doc(notificationID)
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return err
	}
	var doc notificationDoc
	if err := snap.DataTo(&doc); err != nil {
		return err
	}
	if doc.UserID != userID {
		return ErrNotFound
	}
	_, err = ref.Update(ctx, []firestore.Update{{Path: "isRead", Value: true}})
	return err
}

func (s *Firestore) RegisterDeviceToken(ctx context.Context, t notification.DeviceToken) error {
	// Token value doubles as the document id so re-registration overwrites.
	_, err := s.client.Collection(colDeviceTokens).Doc(t.Token).Set(ctx, deviceTokenDoc{
		UserID:     t.UserID,
		Token:      t.Token,
		DeviceType: t.DeviceType,
		CreatedAt:  time.Now(),
	})
	return err
}

func (s *Firestore) DeviceTokensForUsers(ctx context.Context, userIDs []string) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var tokens []string
	iter := s.client.Collection(colDeviceTokens).Where("userId", "in", userIDs).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc deviceTokenDoc
		if err := snap.DataTo(&doc); err != nil {
			continue
		}
		tokens = append(tokens, doc.Token)
	}
	return tokens, nil
}

// ===========================
// 📝 Audit trail
func (s *Firestore) CreateAuditLog(ctx context.Context, entry auditlog.AuditLog) error {
	_, err := s.client.Collection(colAuditLogs).NewDoc().Create(ctx, auditLogDoc{
		UserID:    entry.UserID,
		EventID:   entry.EventID,
		Action:    entry.Action,
		Details:   entry.Details,
		IPAddress: entry.IPAddress,
		Status:    entry.Status,
		CreatedAt: time.Now(),
	})
	return err
}

func (s *Firestore) ListAuditLogs(ctx context.Context, userID string, limit int) ([]auditlog.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []auditlog.AuditLog
	iter := s.client.Collection(colAuditLogs).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc auditLogDoc
		if err := snap.DataTo(&doc); err != nil {
			continue
		}
		logs = append(logs, auditlog.AuditLog{
			ID:        snap.Ref.ID,
			UserID:    doc.UserID,
			EventID:   doc.EventID,
			Action:    doc.Action,
			Details:   doc.Details,
			IPAddress: doc.IPAddress,
			Status:    doc.Status,
			CreatedAt: doc.CreatedAt,
		})
	}
	return logs, nil
}
