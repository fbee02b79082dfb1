package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	FrontendURL string
	// Ranking workflow upstream (workflow-exe)
	RankingEndpoint       string
	RankingWorkflowID     string
	RankingTimeoutSeconds int
	// Email-domain authorization
	AllowedEmailDomains []string // first entry is the privileged domain
	// Credit ledger allowances
	PrivilegedDomainCredits int64
	DefaultDomainCredits    int64
	// Result filtering
	ExperienceRangeMax float64
	// Resume upload constraints
	MaxResumeSizeBytes int64
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// SMTP Configuration (shortlist notifications)
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	ShortlistEmailTo string
	// Google Sheets submission log
	GoogleProjectID   string
	GoogleClientEmail string
	GooglePrivateKey  string
	GoogleSheetID     string
	SheetsTimezone    string
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Ranking upstream
		RankingEndpoint:       strings.TrimRight(getEnv("RANKING_ENDPOINT", "https://agentic-ai.co.in/api/agentic-ai/workflow-exe"), "/"),
		RankingWorkflowID:     getEnv("RANKING_WORKFLOW_ID", "resume_ranker"),
		RankingTimeoutSeconds: getEnvInt("RANKING_TIMEOUT_SECONDS", 120),
		// The first domain in the list gets the privileged credit allowance
		AllowedEmailDomains:     getEnvList("ALLOWED_EMAIL_DOMAINS", []string{"startitnow.co.in", "zoho.com"}),
		PrivilegedDomainCredits: int64(getEnvInt("PRIVILEGED_DOMAIN_CREDITS", 500)),
		DefaultDomainCredits:    int64(getEnvInt("DEFAULT_DOMAIN_CREDITS", 100)),
		// Deployed variants disagree on the slider ceiling (10 vs 35), so keep it configurable
		ExperienceRangeMax: float64(getEnvInt("EXPERIENCE_RANGE_MAX", 35)),
		MaxResumeSizeBytes: int64(getEnvInt("MAX_RESUME_SIZE_BYTES", 2*1024*1024)),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// SMTP Configuration
		SMTPHost:         getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		ShortlistEmailTo: getEnv("SHORTLIST_EMAIL_TO", ""),
		// Google Sheets submission log
		GoogleProjectID:   getEnv("GOOGLE_PROJECT_ID", ""),
		GoogleClientEmail: getEnv("GOOGLE_CLIENT_EMAIL", ""),
		GooglePrivateKey:  getEnv("GOOGLE_PRIVATE_KEY", ""),
		GoogleSheetID:     getEnv("GOOGLE_SHEET_ID", ""),
		SheetsTimezone:    getEnv("SHEETS_TIMEZONE", "Asia/Kolkata"),
	}

	if len(cfg.AllowedEmailDomains) == 0 {
		log.Println("WARNING: ALLOWED_EMAIL_DOMAINS is empty. All submissions will be rejected.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Credit ledger will use in-memory fallback.")
	}

	return cfg, nil
}

// PrivilegedDomain returns the domain entitled to the larger credit allowance.
func (c *Config) PrivilegedDomain() string {
	if len(c.AllowedEmailDomains) == 0 {
		return ""
	}
	return c.AllowedEmailDomains[0]
}

// InitialCredits returns the lazy-initialization allowance for a domain.
func (c *Config) InitialCredits(domain string) int64 {
	if domain == c.PrivilegedDomain() {
		return c.PrivilegedDomainCredits
	}
	return c.DefaultDomainCredits
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvList parses a comma-separated environment variable, trimming blanks.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(strings.ToLower(item)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
