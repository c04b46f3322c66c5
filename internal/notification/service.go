package notification

import (
	"context"
	"fmt"
	"log"
)

// Store is the slice of the data store the notification service needs.
type Store interface {
	CreateNotification(ctx context.Context, n InAppNotification) error
	ListNotifications(ctx context.Context, userID string) ([]InAppNotification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
	RegisterDeviceToken(ctx context.Context, t DeviceToken) error
	DeviceTokensForUsers(ctx context.Context, userIDs []string) ([]string, error)
}

// Service fans activity messages out to in-app notifications and push, and
// serves the notification endpoints.
type Service struct {
	store Store
	push  Channel
}

func NewService(store Store, push Channel) *Service {
	return &Service{store: store, push: push}
}

// ===========================
// 🟡 Activity fan-out - one in-app notification per recipient, one push
// multicast across their devices.
func (s *Service) HandleActivity(ctx context.Context, msg ActivityMessage) error {
	title, body := renderActivity(msg)
	if title == "" {
		return fmt.Errorf("unknown activity type %q", msg.Type)
	}

	for _, userID := range msg.Recipients {
		n := InAppNotification{
			UserID:   userID,
			EventID:  msg.EventID,
			Title:    title,
			Message:  body,
			Category: "event",
		}
		if err := s.store.CreateNotification(ctx, n); err != nil {
			log.Printf("⚠️ storing notification for %s failed: %v", userID, err)
		}
	}

	if s.push == nil || len(msg.Recipients) == 0 {
		return nil
	}
	tokens, err := s.store.DeviceTokensForUsers(ctx, msg.Recipients)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	if err := s.push.Send(ctx, tokens, title, body); err != nil {
		log.Printf("⚠️ push delivery failed: %v", err)
	}
	return nil
}

func renderActivity(msg ActivityMessage) (title, body string) {
	switch msg.Type {
	case ActivityEventCreated:
		return "New event", fmt.Sprintf("%s created %q", msg.ActorName, msg.EventName)
	case ActivityEventUpdated:
		return "Event updated", fmt.Sprintf("%q has changed, check the details", msg.EventName)
	case ActivityEventDeleted:
		return "Event cancelled", fmt.Sprintf("%q was cancelled by %s", msg.EventName, msg.ActorName)
	case ActivityUserJoined:
		return "New participant", fmt.Sprintf("%s joined %q", msg.ActorName, msg.EventName)
	case ActivityUserLeft:
		return "Participant left", fmt.Sprintf("%s left %q", msg.ActorName, msg.EventName)
	}
	return "", ""
}

// ===========================
// 🔔 Endpoint operations
func (s *Service) List(ctx context.Context, userID string) ([]InAppNotification, error) {
	return s.store.ListNotifications(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkNotificationRead(ctx, userID, notificationID)
}

func (s *Service) RegisterDevice(ctx context.Context, t DeviceToken) error {
	return s.store.RegisterDeviceToken(ctx, t)
}
