package database

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/matty-app/matty-backend/config"
)

// Connect initializes the Firebase app and returns a Firestore client.
// The service account credentials file must exist; callers that want to run
// without Firestore (dev mode) should check cfg.UseMemoryStore first.
func Connect(cfg *config.Config) (*firestore.Client, error) {
	ctx := context.Background()

	credentialsPath := cfg.FirebaseCredentialsPath
	if credentialsPath == "" {
		credentialsPath = "./serviceAccountKey.json"
	}

	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
	}

	if cfg.FirebaseProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}

	fbConfig := &firebase.Config{
		ProjectID: cfg.FirebaseProjectID,
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, fbConfig, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase app initialization failed: %v", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client initialization failed: %v", err)
	}

	log.Printf("✅ Firestore connected (project: %s)", cfg.FirebaseProjectID)
	return client, nil
}

// App initializes the Firebase app alone, for services that need messaging.
func App(cfg *config.Config) (*firebase.App, error) {
	ctx := context.Background()

	credentialsPath := cfg.FirebaseCredentialsPath
	if credentialsPath == "" {
		credentialsPath = "./serviceAccountKey.json"
	}
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)
	return firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opt)
}
