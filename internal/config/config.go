package config

import (
	"os"
	"strings"
)

type Config struct {
	Port           string
	UpstreamAPIURL string
	ForecastAPIURL string
	SessionSecret  string
	SessionCookie  string
	LoginRedirect  string
	AllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8082"),
		UpstreamAPIURL: getEnv("UPSTREAM_API_URL", "https://landahan-5.onrender.com/api"),
		ForecastAPIURL: getEnv("FORECAST_API_URL", "https://landahan-5.onrender.com/arima"),
		SessionSecret:  getEnv("SESSION_SECRET", "dev-secret-change-in-production"),
		SessionCookie:  getEnv("SESSION_COOKIE", "console_session"),
		LoginRedirect:  getEnv("LOGIN_REDIRECT", "/pages/login.html"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
