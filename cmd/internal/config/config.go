// Package config loads runtime configuration from environment variables.
package config

import (
	"os"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port   string
	DBPath string

	JWTSecret         string
	TokenTTL          time.Duration
	AdminUser         string
	AdminPasswordHash string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	AMQPURL   string
	RedisAddr string
}

func Load() Config {
	cfg := Config{
		Port:              getenv("PORT", "6060"),
		DBPath:            getenv("DB_PATH", "./database.db"),
		JWTSecret:         getenv("JWT_SECRET", ""),
		TokenTTL:          getdur("TOKEN_TTL", 30*time.Minute),
		AdminUser:         getenv("ADMIN_USER", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getenv("SMTP_PORT", "587"),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPass:          os.Getenv("SMTP_PASS"),
		MailFrom:          getenv("MAIL_FROM", "noreply@schedly.local"),
		AMQPURL:           os.Getenv("AMQP_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	if cfg.AdminPasswordHash == "" {
		// Dev fallback: hash the plaintext ADMIN_PASSWORD at startup.
		pw := getenv("ADMIN_PASSWORD", "")
		if pw == "" {
			log.Fatal("either ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("failed to hash admin password", err)
		}
		cfg.AdminPasswordHash = string(hash)
		log.Warn("ADMIN_PASSWORD_HASH not set, hashed ADMIN_PASSWORD at startup")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getdur(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warnf("invalid duration for %s: %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
