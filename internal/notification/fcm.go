package notification

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// Channel delivers a notification to a list of recipients. Recipients are
// channel-specific: FCM takes device tokens.
type Channel interface {
	Send(ctx context.Context, recipients []string, title, body string) error
}

// FCMChannel implements Channel over Firebase Cloud Messaging.
type FCMChannel struct {
	client *messaging.Client
}

// NewFCMChannel takes the already-initialized Firebase app. A nil app yields
// a disabled channel so local runs work without credentials.
func NewFCMChannel(app *firebase.App) Channel {
	if app == nil {
		log.Println("⚠️ FCM disabled, no Firebase app")
		return &FCMChannel{}
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Printf("❌ Error getting FCM client: %v", err)
		return &FCMChannel{}
	}

	log.Println("✅ FCM initialized successfully")
	return &FCMChannel{client: client}
}

func (f *FCMChannel) Send(ctx context.Context, tokens []string, title, body string) error {
	if f.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("no FCM tokens provided")
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: intPtr(1),
				},
			},
		},
	}

	resp, err := f.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	log.Printf("✅ FCM sent: %d ok, %d failed", resp.SuccessCount, resp.FailureCount)
	return nil
}

func intPtr(i int) *int {
	return &i
}
