// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/clout-botaa/saas-mailer/internal/config"
	"github.com/clout-botaa/saas-mailer/internal/controller"
	"github.com/clout-botaa/saas-mailer/internal/db"
	"github.com/clout-botaa/saas-mailer/internal/mailer"
	"github.com/clout-botaa/saas-mailer/internal/queue"
	"github.com/clout-botaa/saas-mailer/internal/repository"
	"github.com/clout-botaa/saas-mailer/internal/service"
)

func main() {
	// Load .env
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

	q, err := queue.NewAMQPQueue(cfg.AMQPURL)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ:", err)
	}
	defer q.Close()

	userRepo := &repository.UserRepository{DB: conn}
	queueRepo := &repository.QueueRepository{DB: conn, ChunkSize: cfg.BulkChunkSize}
	hookRepo := &repository.WebhookRepository{DB: conn}

	smtp := mailer.SMTPMailer{}
	quota := &service.QuotaService{Users: userRepo, Period: cfg.QuotaPeriod}
	reports := &service.ReportService{Mailer: smtp}
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
	queueSvc := &service.QueueService{Queue: queueRepo}

	authController := &controller.AuthController{
		Users:             userRepo,
		DefaultDailyLimit: cfg.DefaultDailyLimit,
		DefaultSMTPHost:   cfg.SMTPHost,
		DefaultSMTPPort:   cfg.SMTPPort,
	}
	queueController := &controller.QueueController{
		Users:    userRepo,
		Queue:    queueRepo,
		QueueSvc: queueSvc,
		Quota:    quota,
		Dispatch: dispatch,
	}
	hookController := &controller.HookController{
		Hooks: hookRepo,
		Users: userRepo,
		Queue: q,
	}

	r := chi.NewRouter()

	r.Post("/api/register", authController.Register)
	r.Post("/api/login", authController.Login)
	r.Post("/api/queue/upload", queueController.Upload)
	r.Get("/api/users/{id}/stats", queueController.Stats)
	r.Post("/api/hooks", hookController.CreateHook)
	r.Post("/api/hooks/{token}/trigger", hookController.TriggerHook)
	r.Get("/api/cron-processor", queueController.CronProcessor)

	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
