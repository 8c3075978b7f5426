package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rangbot-io/rangbotgo/internal/ai"
	"github.com/rangbot-io/rangbotgo/internal/config"
	"github.com/rangbot-io/rangbotgo/internal/database"
	"github.com/rangbot-io/rangbotgo/internal/handlers"
	"github.com/rangbot-io/rangbotgo/internal/jobs"
	"github.com/rangbot-io/rangbotgo/internal/models"
	"github.com/rangbot-io/rangbotgo/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema (Critical for Zero-Config)
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.StaffUser{},
		&models.PurchaseOrder{},
		&models.Member{},
		&models.RangBotDevice{},
		&models.ActivityLog{},
		&models.DetectionHistory{},
		&models.Notification{},

		// Landing-page content
		&models.ProductInfo{},
		&models.FAQ{},
		&models.Article{},
		&models.ContactMessage{},

		// Community forum
		&models.ForumUser{},
		&models.ForumPost{},
		&models.ForumComment{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Start the staff activity feed hub
	feed := websocket.NewHub()
	go feed.Run()

	// 5. Set up HTTP router
	router := handlers.NewRouter(db, cfg, feed)

	// 6. Optional AI detection advisor
	var detector *ai.Detector
	if cfg.Detection.GeminiAPIKey != "" {
		detector, err = ai.NewDetector(context.Background(), cfg.Detection)
		if err != nil {
			log.Printf("⚠️ AI detection advisor disabled: %v", err)
		} else {
			router.SetDetector(detector)
			log.Printf("✅ AI detection advisor ready (%s)", cfg.Detection.GeminiModel)
		}
	}

	// 7. Offline device monitor
	monitor := jobs.NewOfflineMonitor(db.DB, cfg.Jobs)
	if err := monitor.Start(cfg.Jobs.SweepSpec); err != nil {
		log.Printf("⚠️ Offline monitor failed to start: %v", err)
	}

	// 8. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 Server (%s) starting on port %s\n", cfg.Env, cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	monitor.Stop()

	if detector != nil {
		detector.Close()
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
