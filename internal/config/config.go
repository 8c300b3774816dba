package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port                     string
	UpstreamURL              string
	JWTSecret                string
	DashboardRefreshInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:                     getEnv("PORT", "4100"),
		UpstreamURL:              getEnv("UPSTREAM_API_URL", "http://localhost:4000"),
		JWTSecret:                getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		DashboardRefreshInterval: getEnvSeconds("DASHBOARD_REFRESH_SECONDS", 60),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}
