package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	LogLevel string

	DatabasePath    string
	CatalogSource   string // "api" or "database"
	CatalogSeedPath string

	// CatalogMaxAge is how long a loaded catalog is served without reloading.
	CatalogMaxAge time.Duration
	// CatalogRetention bounds how long a stale catalog is kept as a fallback.
	CatalogRetention time.Duration
	SessionTTL       time.Duration

	DashboardAPIBaseURL  string
	DashboardAPITimeout  time.Duration
	DashboardAuthMode    string // "jwt", "oauth2" or "none"
	DashboardJWTSecret   string
	DashboardServiceName string
	ServiceTokenExpiry   time.Duration

	OAuthClientID     string
	OAuthClientSecret string
	OAuthTokenURL     string
	OAuthScopes       []string

	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	Cfg = &AppConfig{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabasePath:    getEnv("DATABASE_PATH", "./ibportal.db"),
		CatalogSource:   strings.ToLower(getEnv("CATALOG_SOURCE", "api")),
		CatalogSeedPath: getEnv("CATALOG_SEED_PATH", ""),

		CatalogMaxAge:    getEnvAsDuration("CATALOG_MAX_AGE", 5*time.Minute),
		CatalogRetention: getEnvAsDuration("CATALOG_RETENTION", time.Hour),
		SessionTTL:       getEnvAsDuration("SESSION_TTL", 30*time.Minute),

		DashboardAPIBaseURL:  strings.TrimRight(getEnv("DASHBOARD_API_BASE_URL", "http://localhost:8000"), "/"),
		DashboardAPITimeout:  getEnvAsDuration("DASHBOARD_API_TIMEOUT", 20*time.Second),
		DashboardAuthMode:    strings.ToLower(getEnv("DASHBOARD_AUTH_MODE", "none")),
		DashboardJWTSecret:   getEnv("DASHBOARD_JWT_SECRET", ""),
		DashboardServiceName: getEnv("DASHBOARD_SERVICE_NAME", "ib-portal-calculator"),
		ServiceTokenExpiry:   getEnvAsDuration("SERVICE_TOKEN_EXPIRY", time.Minute),

		OAuthClientID:     getEnv("OAUTH_CLIENT_ID", ""),
		OAuthClientSecret: getEnv("OAUTH_CLIENT_SECRET", ""),
		OAuthTokenURL:     getEnv("OAUTH_TOKEN_URL", ""),
		OAuthScopes:       getEnvAsList("OAUTH_SCOPES", nil),

		AllowedOrigins:     getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 30),
	}

	if Cfg.DashboardAuthMode == "jwt" && len(Cfg.DashboardJWTSecret) < 32 {
		log.Println("WARNING: DASHBOARD_JWT_SECRET should be at least 32 bytes when DASHBOARD_AUTH_MODE is 'jwt'.")
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, CatalogSource=%s, CatalogMaxAge=%s, DashboardAuthMode=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.CatalogSource, Cfg.CatalogMaxAge, Cfg.DashboardAuthMode)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	log.Printf("Invalid float value for %s ('%s'), using default: %g", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

// getEnvAsList splits a comma separated value, dropping empty items.
func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
