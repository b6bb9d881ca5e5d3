package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	AppEnv          string
	AppPort         string
	MongoURI        string
	MongoDatabase   string
	SessionTTL      time.Duration
	OTPTTL          time.Duration
	OTPLimitPerHour int
	SMSAPIKey       string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	AllowedOrigins  []string
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		AppPort:         getEnv("APP_PORT", "5000"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DB", "moryastationery"),
		SessionTTL:      getEnvDuration("SESSION_TTL_HOURS", 24) * time.Hour,
		OTPTTL:          getEnvDuration("OTP_TTL_MINUTES", 5) * time.Minute,
		OTPLimitPerHour: getEnvInt("OTP_LIMIT_PER_HOUR", 5),
		SMSAPIKey:       getEnv("FAST2SMS_API_KEY", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		AllowedOrigins:  splitEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	if cfg.AppPort == "" {
		log.Fatal("APP_PORT must be set")
	}

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI must be set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback))
}

func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
