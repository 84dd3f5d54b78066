package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. Values come from the environment,
// optionally pre-populated from a .env file.
type Config struct {
	AppName       string
	Port          string
	AllowedOrigin string

	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBTimeZone  string

	JWTSecret     string
	TokenTTLHours int

	LogLevel string

	LowStockThreshold int
	Currency          string

	UploadDir     string
	MaxImageBytes int64

	// Optional overrides for the finance schema descriptor. Empty means the
	// column is detected from the database once at startup.
	PaymentField string
	CostField    string

	AdminEmail    string
	AdminPassword string
}

// LoadDotEnv reads .env when present. A missing file is not an error.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

func Load() Config {
	return Config{
		AppName:       getEnv("APP_NAME", "Inventory POS v1.0"),
		Port:          getEnv("PORT", "3000"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBTimeZone:  getEnv("DB_TIMEZONE", "UTC"),

		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTLHours: intFromEnv("TOKEN_TTL_HOURS", 24, 1),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		LowStockThreshold: intFromEnv("LOW_STOCK_THRESHOLD", 5, 0),
		Currency:          getEnv("CURRENCY", "FCFA"),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxImageBytes: int64(intFromEnv("MAX_IMAGE_BYTES", 5*1024*1024, 1)),

		PaymentField: strings.TrimSpace(os.Getenv("FINANCE_PAYMENT_FIELD")),
		CostField:    strings.TrimSpace(os.Getenv("FINANCE_COST_FIELD")),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

// DSN returns DATABASE_URL when set, otherwise a key/value postgres DSN
// assembled from the DB_* variables.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBTimeZone,
	)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

// intFromEnv falls back to def when the variable is unset, unparsable or below min.
func intFromEnv(key string, def int, min int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		return def
	}
	return n
}
