// cmd/worker/main.go
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/clout-botaa/saas-mailer/internal/config"
	"github.com/clout-botaa/saas-mailer/internal/db"
	"github.com/clout-botaa/saas-mailer/internal/mailer"
	"github.com/clout-botaa/saas-mailer/internal/model"
	"github.com/clout-botaa/saas-mailer/internal/queue"
	"github.com/clout-botaa/saas-mailer/internal/repository"
	"github.com/clout-botaa/saas-mailer/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration:", err)
	}

	conn, err := db.Connect(cfg.DSN())
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatal("failed to migrate DB:", err)
	}

	userRepo := &repository.UserRepository{DB: conn}
	queueRepo := &repository.QueueRepository{DB: conn, ChunkSize: cfg.BulkChunkSize}
	hookRepo := &repository.WebhookRepository{DB: conn}

	smtp := mailer.SMTPMailer{}
	reports := &service.ReportService{Mailer: smtp}
	quota := &service.QuotaService{
		Users:  userRepo,
		Period: cfg.QuotaPeriod,
		OnReset: func(u *model.User) {
			reports.Notify(u, "Daily allowance reset",
				fmt.Sprintf("Your send allowance is back to %d for the next 24 hours.", u.DailyLimit))
		},
		OnExhausted: func(u *model.User) {
			reports.Notify(u, "Daily limit reached",
				fmt.Sprintf("You have used all %d sends for this period. Queued emails resume after the next reset.", u.DailyLimit))
		},
	}
	retention := &service.RetentionService{Queue: queueRepo, Keep: cfg.RetentionKeep}
	dispatch := &service.DispatchService{
		Users:     userRepo,
		Queue:     queueRepo,
		Quota:     quota,
		Mailer:    smtp,
		Retention: retention,
		Reports:   reports,
		SendDelay: cfg.SendDelay,
	}

	// Webhook automation consumer.
	q, err := queue.NewAMQPQueue(cfg.AMQPURL)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ:", err)
	}
	defer q.Close()

	automation := &service.AutomationService{
		Hooks:  hookRepo,
		Users:  userRepo,
		Mailer: smtp,
	}
	if err := service.StartAutomationSubscriber(q, automation); err != nil {
		log.Fatal("failed to start automation consumer:", err)
	}

	// Periodic dispatch. One run at a time; the interval must exceed the
	// run duration, overlapping runs are not guarded against.
	log.Println("Worker running, dispatching every", cfg.TriggerInterval)
	ticker := time.NewTicker(cfg.TriggerInterval)
	defer ticker.Stop()

	runOnce(dispatch)
	for range ticker.C {
		runOnce(dispatch)
	}
}

func runOnce(dispatch *service.DispatchService) {
	start := time.Now()
	result, err := dispatch.Run()
	if err != nil {
		log.Println("⚠️ dispatch run failed:", err)
		return
	}
	log.Printf("✅ Run complete: %d users, %d sent, took %s",
		len(result.Users), result.TotalSent, time.Since(start).Round(time.Millisecond))
}
