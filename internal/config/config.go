// Package config centralizes the environment-driven settings shared by the
// server, worker and scheduler binaries.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port      string
	RootURL   string
	FeedsDir  string
	TmpDir    string
	RedisAddr string

	// ScrapeDelay is the fixed politeness pause before each request to the
	// scraped site.
	ScrapeDelay time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
}

func Load() *Config {
	return &Config{
		Port:         getenv("PORT", "8080"),
		RootURL:      getenv("ROOT_URL", "http://localhost:8080"),
		FeedsDir:     getenv("FEEDS_DIR", "feeds"),
		TmpDir:       getenv("TMP_DIR", "uploads"),
		RedisAddr:    getenv("REDIS_ADDR", "127.0.0.1:6379"),
		ScrapeDelay:  time.Duration(getenvInt("SCRAPE_DELAY_SECONDS", 2)) * time.Second,
		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPFrom:     getenv("SMTP_FROM", ""),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
