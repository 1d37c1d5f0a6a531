package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	// Server
	Port     string
	Env      string
	HallName string

	// Database (optional, read-only booking catalog)
	DatabaseURL string

	// Redis (optional, submission journal)
	RedisURL string

	// CORS
	AllowedOrigins []string

	// Booking catalog file (YAML), replaces the built-in list
	BookingsFile string

	// Storage for attachment previews
	StorageDriver    string
	StorageLocalPath string
	StoragePublicURL string
	S3Endpoint       string
	S3Region         string
	S3Bucket         string
	S3AccessKey      string
	S3SecretKey      string

	// Booking form
	SubmitDelay     time.Duration
	ResetDelay      time.Duration
	MaxUploadBytes  int64
	FormIdleTimeout time.Duration

	// Logging
	LogLevel string
	LogFile  string
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Server
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		HallName: getEnv("HALL_NAME", "Library Hall"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		BookingsFile: getEnv("BOOKINGS_FILE", ""),

		// Storage
		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", StorageLocal)),
		StorageLocalPath: getEnv("STORAGE_LOCAL_PATH", "./data/media"),
		StoragePublicURL: getEnv("STORAGE_PUBLIC_URL", "/media"),
		S3Endpoint:       getEnv("S3_ENDPOINT", ""),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Bucket:         getEnv("S3_BUCKET", "hallbook-previews"),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:      getEnv("S3_SECRET_KEY", ""),

		// Booking form
		SubmitDelay:     parseDuration(getEnv("SUBMIT_DELAY", "1500ms"), 1500*time.Millisecond),
		ResetDelay:      parseDuration(getEnv("RESET_DELAY", "3000ms"), 3*time.Second),
		MaxUploadBytes:  parseInt64(getEnv("MAX_UPLOAD_BYTES", "5242880"), 5*1024*1024),
		FormIdleTimeout: parseDuration(getEnv("FORM_IDLE_TIMEOUT", "30m"), 30*time.Minute),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}

func parseInt64(s string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func parseStringSlice(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
