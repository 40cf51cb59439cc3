package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup and treated as immutable.
type Config struct {
	DBURL              string        // empty means in-memory stores
	ListenAddr         string
	PredictBaseURL     string        // prediction service, POST {base}/predict
	PredictTimeout     time.Duration // 0 disables the client timeout
	CORSAllowedOrigins []string
	PlanRatePerMinute  int
	PlanRateBurst      int
}

// loadConfig reads .env (if present) and then the environment.
func loadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[loadConfig] no .env loaded: %v", err)
	}

	return Config{
		DBURL:              os.Getenv("DB_URL"),
		ListenAddr:         getEnv("LISTEN_ADDR", "localhost:3000"),
		PredictBaseURL:     strings.TrimRight(getEnv("PREDICT_BASE_URL", "http://localhost:5001"), "/"),
		PredictTimeout:     getEnvDuration("PREDICT_TIMEOUT", 30*time.Second),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		PlanRatePerMinute:  getEnvInt("PLAN_RATE_PER_MIN", 6),
		PlanRateBurst:      getEnvInt("PLAN_RATE_BURST", 3),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
