package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/matty-app/matty-backend/config"
	"github.com/matty-app/matty-backend/database"
	"github.com/matty-app/matty-backend/internal/auditlog"
	"github.com/matty-app/matty-backend/internal/auth"
	"github.com/matty-app/matty-backend/internal/event"
	"github.com/matty-app/matty-backend/internal/feed"
	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/notification"
	"github.com/matty-app/matty-backend/internal/reports"
	"github.com/matty-app/matty-backend/internal/store"
	"github.com/matty-app/matty-backend/internal/user"
	"github.com/matty-app/matty-backend/routes"
	"github.com/matty-app/matty-backend/utils"
)

func main() {
	cfg := config.Load()

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		log.Printf("⚠️ Redis unavailable, caching and delete tokens disabled: %v", err)
		utils.RedisClient = nil
	}

	// Init Kafka
	utils.InitializeKafka(cfg)

	// Pick the data store: Firestore in production, seeded memory in dev
	var dataStore store.DataStore
	var pushChannel notification.Channel

	if cfg.UseMemoryStore {
		log.Println("🧪 Using in-memory store")
		mem := store.NewMemory()
		store.Seed(mem)
		dataStore = mem
		pushChannel = notification.NewFCMChannel(nil)
	} else {
		client, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("❌ Firestore init failed: %v", err)
		}
		dataStore = store.NewFirestore(client)

		app, err := database.App(cfg)
		if err != nil {
			log.Printf("⚠️ Firebase app init failed, push disabled: %v", err)
		}
		pushChannel = notification.NewFCMChannel(app)
	}

	// Init services
	auditSvc := auditlog.NewService(dataStore)
	authSvc := auth.NewService(dataStore, cfg)
	interestSvc := interest.NewService(dataStore, utils.RedisClient)
	userSvc := user.NewService(dataStore, auditSvc, cfg.UploadDir)

	notificationSvc := notification.NewService(dataStore, pushChannel)
	notification.StartKafkaConsumer(utils.NewKafkaReader(cfg), notificationSvc)

	var publisher event.Publisher
	if utils.KafkaWriter != nil {
		publisher = notification.NewKafkaPublisher(utils.KafkaWriter)
	} else {
		publisher = notification.NewDirectPublisher(notificationSvc)
	}

	eventSvc := event.NewService(dataStore, interestSvc, auditSvc, publisher, utils.RedisClient)
	feedSvc := feed.NewService(dataStore, eventSvc, interestSvc)
	reportSvc := reports.NewService(dataStore, reports.NewExporter())

	// Profile images live on disk
	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, routes.Handlers{
		Auth:          auth.NewHandler(authSvc),
		AuthService:   authSvc,
		Interests:     interest.NewHandler(interestSvc),
		Users:         user.NewHandler(userSvc),
		Events:        event.NewHandler(eventSvc),
		Feed:          feed.NewHandler(feedSvc),
		Notifications: notification.NewHandler(notificationSvc),
		Reports:       reports.NewHandler(reportSvc),
		AuditLogs:     auditlog.NewHandler(auditSvc),
	})

	// Start server
	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	fmt.Printf("📁 Upload directory: %s\n", cfg.UploadDir)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
