package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// DeployTarget selects which deployment strategy the engine is bound to.
// Chosen once at startup, not re-derived per request.
type DeployTarget string

const (
	DeployGitHub     DeployTarget = "github"
	DeployCloudflare DeployTarget = "cloudflare"
	DeployLocal      DeployTarget = "local"
)

type Config struct {
	Port        string
	DatabaseURL string
	AMQPURL     string
	HTTPTimeout time.Duration
	LogLevel    slog.Level

	GoogleAPIKey string

	ResendAPIKey string
	FromEmail    string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	StripeWebhookSecret string

	DeployTarget  DeployTarget
	PagesDomain   string // public domain preview URLs are built on
	GitHubOwner   string
	GitHubRepo    string
	GitHubToken   string
	CFAccountID   string
	CFAPIToken    string
	CFProjectName string
	SitesDir      string // local strategy: where sites/<slug>/index.html lands
}

func FromEnv() Config {
	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			smtpPort = p
		}
	}
	target := DeployTarget(envOr("DEPLOY_TARGET", string(DeployLocal)))
	switch target {
	case DeployGitHub, DeployCloudflare, DeployLocal:
	default:
		target = DeployLocal
	}

	return Config{
		Port:        envOr("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		AMQPURL:     os.Getenv("AMQP_URL"),
		HTTPTimeout: to,
		LogLevel:    lvl,

		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		FromEmail:    envOr("FROM_EMAIL", "hello@hashtagwebpage.co"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: smtpPort,
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),

		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		DeployTarget:  target,
		PagesDomain:   envOr("PAGES_DOMAIN", "hashtagwebpage.pages.dev"),
		GitHubOwner:   os.Getenv("GITHUB_OWNER"),
		GitHubRepo:    os.Getenv("GITHUB_REPO"),
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		CFAccountID:   os.Getenv("CF_ACCOUNT_ID"),
		CFAPIToken:    os.Getenv("CF_API_TOKEN"),
		CFProjectName: envOr("CF_PROJECT_NAME", "hashtagwebpage"),
		SitesDir:      envOr("SITES_DIR", "sites"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
