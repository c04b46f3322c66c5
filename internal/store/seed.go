package store

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/matty-app/matty-backend/internal/user"
)

// Seed fills a Memory store with a fixed interest catalog, a development
// account and a couple of sample events so the API is usable out of the box.
// The dev account logs in as dev@matty.app / password.
func Seed(m *Memory) {
	ctx := context.Background()

	m.mu.Lock()
	m.interests = []memInterest{
		{id: "csgo", name: "CS:GO", em: "🎮"},
		{id: "hiking", name: "Hiking", em: "🥾"},
		{id: "soccer", name: "Soccer", em: "⚽️"},
		{id: "swimming", name: "Swimming", em: "🏊"},
		{id: "cycling", name: "Cycling", em: "🚴"},
		{id: "documentary", name: "Documentary", em: "🎬"},
		{id: "coding", name: "Coding", em: "💻"},
	}
	m.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed: hashing dev password failed: %v", err)
		return
	}

	dev, err := m.CreateUser(ctx, user.User{
		Name:  "Dev",
		Email: "dev@matty.app",
		About: "Local development account",
	}, string(hash))
	if err != nil {
		log.Printf("seed: creating dev user failed: %v", err)
		return
	}
	if err := m.UpdateUserInterests(ctx, dev.ID, []string{"csgo", "hiking", "coding"}); err != nil {
		log.Printf("seed: setting dev interests failed: %v", err)
	}

	other, err := m.CreateUser(ctx, user.User{
		Name:  "Petr",
		Email: "petr@matty.app",
		About: "Weekend hiker",
	}, string(hash))
	if err != nil {
		log.Printf("seed: creating sample user failed: %v", err)
		return
	}
	if err := m.UpdateUserInterests(ctx, other.ID, []string{"hiking", "cycling"}); err != nil {
		log.Printf("seed: setting sample interests failed: %v", err)
	}

	now := time.Now()
	m.mu.Lock()
	seedEvents := []*memEvent{
		{
			id:             "seed-hike",
			name:           "Morning hike to Sulov rocks",
			description:    "Easy trail, around three hours up and down.",
			interestID:     "hiking",
			locationName:   "Sulov",
			startDate:      now.Add(48 * time.Hour).Truncate(time.Hour),
			endDate:        now.Add(51 * time.Hour).Truncate(time.Hour),
			public:         true,
			creatorID:      other.ID,
			createdAt:      now.Add(-2 * time.Hour),
			participantIDs: []string{other.ID},
		},
		{
			id:             "seed-csgo",
			name:           "CS:GO five stack",
			description:    "Looking for two more for competitive.",
			interestID:     "csgo",
			startDate:      now.Add(24 * time.Hour).Truncate(time.Hour),
			endDate:        now.Add(26 * time.Hour).Truncate(time.Hour),
			public:         true,
			creatorID:      other.ID,
			createdAt:      now.Add(-1 * time.Hour),
			participantIDs: []string{other.ID},
		},
	}
	for _, e := range seedEvents {
		m.events[e.id] = e
		m.users[e.creatorID].eventIDs = append(m.users[e.creatorID].eventIDs, e.id)
	}
	m.mu.Unlock()

	log.Println("✅ Seeded in-memory store with stub data")
}
