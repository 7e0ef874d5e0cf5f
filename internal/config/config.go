// Package config loads the service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RabbitMQ struct {
	User string
	Pass string
	Host string
	Port string
}

type Mail struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type Config struct {
	Port        string
	LogLevel    string
	DatabaseURL string
	RabbitMQ    RabbitMQ
	Mail        Mail

	GooglePlacesKey string
	YelpKey         string
	CensusKey       string
	ProviderTimeout time.Duration
	EnrichWebsites  bool

	GeminiKey   string
	GeminiModel string

	KommoToken    string
	KommoBaseURL  string
	KommoStatusID int

	ExportBucket string
	AWSRegion    string

	AllowedOrigins []string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        env("PORT", "8080"),
		LogLevel:    env("LOG_LEVEL", "info"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RabbitMQ: RabbitMQ{
			User: env("RABBITMQ_USER", "guest"),
			Pass: env("RABBITMQ_PASS", "guest"),
			Host: os.Getenv("RABBITMQ_HOST"),
			Port: env("RABBITMQ_PORT", "5672"),
		},
		Mail: Mail{
			Host: os.Getenv("MAIL_HOST"),
			User: os.Getenv("MAIL_USER"),
			Pass: os.Getenv("MAIL_PASS"),
			From: env("MAIL_FROM", "outreach@leadlocal.app"),
		},
		GooglePlacesKey: os.Getenv("GOOGLE_PLACES_API_KEY"),
		YelpKey:         os.Getenv("YELP_API_KEY"),
		CensusKey:       os.Getenv("CENSUS_API_KEY"),
		GeminiKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     env("GEMINI_MODEL", "gemini-2.5-flash"),
		KommoToken:      os.Getenv("KOMMO_API_TOKEN"),
		KommoBaseURL:    os.Getenv("KOMMO_BASE_URL"),
		ExportBucket:    os.Getenv("EXPORT_BUCKET"),
		AWSRegion:       env("AWS_REGION", "us-east-1"),
		AllowedOrigins:  splitList(env("ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	var err error
	if cfg.Mail.Port, err = strconv.Atoi(env("MAIL_PORT", "587")); err != nil {
		return nil, fmt.Errorf("MAIL_PORT: %w", err)
	}
	if cfg.ProviderTimeout, err = time.ParseDuration(env("PROVIDER_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("PROVIDER_TIMEOUT: %w", err)
	}
	if cfg.KommoStatusID, err = strconv.Atoi(env("KOMMO_STATUS_ID", "0")); err != nil {
		return nil, fmt.Errorf("KOMMO_STATUS_ID: %w", err)
	}
	if cfg.EnrichWebsites, err = strconv.ParseBool(env("ENRICH_WEBSITES", "false")); err != nil {
		return nil, fmt.Errorf("ENRICH_WEBSITES: %w", err)
	}

	return cfg, nil
}

func (c *Config) QueueEnabled() bool    { return c.RabbitMQ.Host != "" }
func (c *Config) MailEnabled() bool     { return c.Mail.Host != "" }
func (c *Config) DatabaseEnabled() bool { return c.DatabaseURL != "" }

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
