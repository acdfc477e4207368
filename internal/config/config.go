// Package config provides configuration for the playback gateway
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the gateway
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	Redis    RedisConfig
	Backend  BackendConfig
	Bunny    BunnyConfig
	Playback PlaybackConfig
	APIKey   string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// RedisConfig holds Redis connection settings for the enrollment cache
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// BackendConfig holds settings for the platform REST backend
type BackendConfig struct {
	BaseURL      string
	SalesPageURL string
}

// BunnyConfig holds video CDN settings
type BunnyConfig struct {
	APIKey           string
	UploadBaseURL    string
	EmbedBaseURL     string
	DefaultLibraryID string
}

// PlaybackConfig holds access-policy settings for lesson playback
type PlaybackConfig struct {
	// TrialLessonCount is the number of lessons (in flattened chapter order)
	// viewable without enrollment when trial mode is requested.
	TrialLessonCount int
	// YouTubeRequiresEnrollment gates YouTube-sourced lessons behind
	// enrollment the same way CDN-hosted lessons are gated.
	YouTubeRequiresEnrollment bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		cfg.CORS.AllowedOrigins = []string{"*"}
	} else {
		origins := strings.Split(corsOrigins, ",")
		cfg.CORS.AllowedOrigins = make([]string, 0, len(origins))
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
			}
		}
		if len(cfg.CORS.AllowedOrigins) == 0 {
			cfg.CORS.AllowedOrigins = []string{"*"}
		}
	}

	// Platform backend configuration
	backendURL := os.Getenv("COURSE_API_BASE_URL")
	if backendURL == "" {
		return nil, fmt.Errorf("COURSE_API_BASE_URL is required")
	}
	cfg.Backend.BaseURL = strings.TrimRight(backendURL, "/")

	salesURL := os.Getenv("SALES_PAGE_BASE_URL")
	if salesURL == "" {
		salesURL = "/courses" // default: relative catalog path
	}
	cfg.Backend.SalesPageURL = strings.TrimRight(salesURL, "/")

	// Bunny CDN configuration
	bunnyKey := os.Getenv("BUNNY_API_KEY")
	if bunnyKey == "" {
		return nil, fmt.Errorf("BUNNY_API_KEY is required")
	}
	cfg.Bunny.APIKey = bunnyKey

	uploadBase := os.Getenv("BUNNY_UPLOAD_BASE_URL")
	if uploadBase == "" {
		uploadBase = "https://video.bunnycdn.com" // default
	}
	cfg.Bunny.UploadBaseURL = strings.TrimRight(uploadBase, "/")

	embedBase := os.Getenv("BUNNY_EMBED_BASE_URL")
	if embedBase == "" {
		embedBase = "https://iframe.mediadelivery.net/embed" // default
	}
	cfg.Bunny.EmbedBaseURL = strings.TrimRight(embedBase, "/")

	cfg.Bunny.DefaultLibraryID = os.Getenv("BUNNY_DEFAULT_LIBRARY_ID") // optional

	// Playback policy configuration
	trialCountStr := os.Getenv("TRIAL_LESSON_COUNT")
	if trialCountStr == "" {
		trialCountStr = "2" // default: first two lessons are sampleable
	}
	trialCount, err := strconv.Atoi(trialCountStr)
	if err != nil || trialCount < 0 {
		return nil, fmt.Errorf("invalid TRIAL_LESSON_COUNT: %q", trialCountStr)
	}
	cfg.Playback.TrialLessonCount = trialCount

	ytGate := os.Getenv("YOUTUBE_REQUIRES_ENROLLMENT")
	if ytGate != "" {
		gate, err := strconv.ParseBool(ytGate)
		if err != nil {
			return nil, fmt.Errorf("invalid YOUTUBE_REQUIRES_ENROLLMENT: %w", err)
		}
		cfg.Playback.YouTubeRequiresEnrollment = gate
	}

	// Redis configuration (enrollment cache)
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost" // default
	}
	cfg.Redis.Host = redisHost

	redisPortStr := os.Getenv("REDIS_PORT")
	if redisPortStr == "" {
		redisPortStr = "6379" // default
	}
	redisPort, err := strconv.Atoi(redisPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	cfg.Redis.Port = redisPort

	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD") // optional

	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		redisDBStr = "0" // default
	}
	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.Redis.DB = redisDB

	// API Key configuration (admin endpoints)
	cfg.APIKey = os.Getenv("API_KEY")

	return cfg, nil
}

// RedisAddr returns the Redis connection address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
