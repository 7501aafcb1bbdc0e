package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/hashtagwebpage/prospector/internal/config"
	"github.com/hashtagwebpage/prospector/internal/entity"
	"github.com/hashtagwebpage/prospector/internal/infra/cache"
	"github.com/hashtagwebpage/prospector/internal/infra/database"
	"github.com/hashtagwebpage/prospector/internal/infra/deploy"
	"github.com/hashtagwebpage/prospector/internal/infra/http/handlers"
	"github.com/hashtagwebpage/prospector/internal/infra/http/middleware"
	"github.com/hashtagwebpage/prospector/internal/infra/integration/cloudflare"
	"github.com/hashtagwebpage/prospector/internal/infra/integration/github"
	"github.com/hashtagwebpage/prospector/internal/infra/integration/places"
	"github.com/hashtagwebpage/prospector/internal/infra/integration/resend"
	"github.com/hashtagwebpage/prospector/internal/infra/mail"
	"github.com/hashtagwebpage/prospector/internal/infra/queue"
	"github.com/hashtagwebpage/prospector/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg := config.FromEnv()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	// Lead store: Postgres when configured, in-process otherwise.
	var db *sql.DB
	var leadRepo entity.LeadRepository
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Error("database connection failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := database.EnsureSchema(ctx, db); err != nil {
			cancel()
			log.Error("schema setup failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		cancel()
		leadRepo = database.NewLeadRepository(db)
		log.Info("lead store: postgres")
	} else {
		leadRepo = database.NewMemoryLeadRepository()
		log.Warn("lead store: in-memory, leads are lost on restart")
	}

	// Event bus: RabbitMQ when configured, log-and-drop otherwise.
	var rabbitConn *amqp091.Connection
	var producer queue.EventProducer = &queue.LogProducer{Log: log}
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Error("rabbitmq connection failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
		log.Info("lead events: rabbitmq")
	}

	searchProvider := places.NewClient(cfg.GoogleAPIKey, "", cfg.HTTPTimeout)

	// Outreach transport: Resend API preferred, SMTP fallback.
	var emailSender usecase.EmailSender
	if cfg.ResendAPIKey != "" {
		emailSender = resend.NewClient(cfg.ResendAPIKey, cfg.FromEmail, "", cfg.HTTPTimeout)
		log.Info("email: resend")
	} else {
		emailSender = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.FromEmail)
		log.Info("email: smtp", slog.String("host", cfg.SMTPHost))
	}

	var strategy deploy.Strategy
	var localPush *deploy.LocalPush
	var cfClient *cloudflare.Client
	switch cfg.DeployTarget {
	case config.DeployGitHub:
		gh := github.NewClient(cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubToken, "", cfg.HTTPTimeout)
		strategy = deploy.NewRemoteCommit(gh, cfg.PagesDomain, log)
	case config.DeployCloudflare:
		cfClient = cloudflare.NewClient(cfg.CFAccountID, cfg.CFAPIToken, "", "", cfg.HTTPTimeout)
		strategy = deploy.NewManifestUpload(cfClient, cfg.CFProjectName, cfg.PagesDomain, log)
	default:
		localPush = deploy.NewLocalPush(cfg.SitesDir, cfg.PagesDomain, deploy.ExecGitRunner{}, log)
		strategy = localPush
	}
	log.Info("deploy strategy", slog.String("name", strategy.Name()))

	searchUC := usecase.NewSearchLeadsUseCase(cache.NewSearchCache(), searchProvider, log)
	deployUC := usecase.NewDeploySiteUseCase(strategy, leadRepo, log)
	outreachUC := usecase.NewSendOutreachUseCase(leadRepo, emailSender, producer, log)
	confirmUC := usecase.NewConfirmPaymentUseCase(leadRepo, producer, log)
	surveyUC := usecase.NewRecordSurveyUseCase(leadRepo, producer, log)
	leadsUC := usecase.NewManageLeadsUseCase(leadRepo, log)

	searchHandler := handlers.NewSearchHandler(searchUC)
	deployHandler := handlers.NewDeployHandler(deployUC, strategy.Name())
	emailHandler := handlers.NewEmailHandler(outreachUC)
	webhookHandler := handlers.NewWebhookHandler(confirmUC, cfg.StripeWebhookSecret, log)
	surveyHandler := handlers.NewSurveyHandler(surveyUC)
	leadHandler := handlers.NewLeadHandler(leadsUC)
	siteHandler := handlers.NewSiteHandler(localPush)
	takedownHandler := handlers.NewTakedownHandler(cfClient, log)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, cfg.GoogleAPIKey != "")

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Stripe-Signature"},
	}))
	r.Use(middleware.Metrics)

	r.Post("/api/search", searchHandler.Handle)
	r.Post("/api/deploy", deployHandler.Handle)
	r.Post("/api/send-email", emailHandler.Handle)
	r.Post("/api/webhook/payment", webhookHandler.Handle)
	r.Post("/api/survey-response", surveyHandler.Handle)
	r.Get("/api/leads", leadHandler.List)
	r.Post("/api/leads", leadHandler.Ingest)
	r.Post("/api/leads/update", leadHandler.Update)
	r.Post("/api/delete-deployment", takedownHandler.Handle)
	r.Get("/api/sites", siteHandler.List)
	r.Get("/sites/{slug}", siteHandler.Serve)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("server listening", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server stopped", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
