package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Display  DisplayConfig
	Paths    PathsConfig
	Redis    RedisConfig
	LogLevel string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  int
	WriteTimeout int
}

// DisplayConfig holds panel geometry and rotation configuration
type DisplayConfig struct {
	Width  int
	Height int
	// PhotoRotation is applied when preparing slideshow photos (degrees,
	// clockwise, one of 0/90/180/270).
	PhotoRotation int
	PhotoFitMode  string // "fit" or "fill"
}

// PathsConfig holds on-disk locations
type PathsConfig struct {
	LayoutsFile string // YAML layout definitions
	OutputDir   string // rendered frames, one per layout
	PhotosDir   string // photo set scanned by the slideshow
	StateFile   string // persisted display state
}

// RedisConfig holds Redis-related configuration. An empty Addr disables
// Redis and the snapshot store falls back to memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
		},
		Display: DisplayConfig{
			Width:         getEnvAsInt("DISPLAY_WIDTH", 800),
			Height:        getEnvAsInt("DISPLAY_HEIGHT", 480),
			PhotoRotation: getEnvAsInt("PHOTO_ROTATION", 0),
			PhotoFitMode:  getEnv("PHOTO_FIT_MODE", "fit"),
		},
		Paths: PathsConfig{
			LayoutsFile: getEnv("LAYOUTS_FILE", "layouts.yaml"),
			OutputDir:   getEnv("OUTPUT_DIR", "previews"),
			PhotosDir:   getEnv("PHOTOS_DIR", "uploads"),
			StateFile:   getEnv("STATE_FILE", "state.json"),
		},
		Redis: RedisConfig{
			Addr:     getRedisAddr(),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// getRedisAddr resolves the Redis address from REDIS_URL or REDIS_ADDR.
// Empty means "no Redis configured".
func getRedisAddr() string {
	if url := os.Getenv("REDIS_URL"); url != "" {
		return strings.TrimPrefix(url, "redis://")
	}
	return getEnv("REDIS_ADDR", "")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
