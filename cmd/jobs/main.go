package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mentormatch/internal/config"
	"mentormatch/internal/database"
	"mentormatch/internal/jobs"
	"mentormatch/internal/logger"
	"mentormatch/internal/messaging"
	"mentormatch/internal/repository"
	"mentormatch/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Jobs instance gets its own NATS client ID
	cfg.NATS.ClientID = "mentormatch-jobs"

	log.Println("Starting jobs service...")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Printf("NATS unavailable, events disabled: %v", err)
		natsClient = nil
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, cfg.BookingTTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweepJob := jobs.NewExpirySweepJob(services.Lifecycle, cfg.SweepInterval)
	reconcileJob := jobs.NewStatusReconcileJob(services.Lifecycle, cfg.ReconcileInterval)

	sweepJob.Start(ctx)
	reconcileJob.Start(ctx)

	log.Println("Jobs service started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down jobs service...")

	sweepJob.Stop()
	reconcileJob.Stop()
	cancel()

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.Printf("Error closing NATS connection: %v", err)
		}
	}

	log.Println("Jobs service stopped")
}
