package webapp

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	PlatformURL string // Base URL of the MathApp platform host (default: http://localhost)
	BackendPort int    // Port the backend listens on (default: 8080)

	UIPort       int    // Local UI server port (default: 3000)
	DatabaseFile string // Path to the SQLite settings database (default: ./mathapp.db)
	DownloadDir  string // Directory for saved downloads (default: ./downloads)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		PlatformURL:         getEnvOrDefault("PLATFORM_URL", "http://localhost"),
		BackendPort:         getEnvIntOrDefault("BACKEND_PORT", 8080),
		UIPort:              getEnvIntOrDefault("UI_PORT", 3000),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "mathapp.db"),
		DownloadDir:         getEnvOrDefault("DOWNLOAD_DIR", "downloads"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// BackendBaseURL composes the backend address the SDK talks to.
func (c Config) BackendBaseURL() string {
	return fmt.Sprintf("%s:%d", strings.TrimRight(c.PlatformURL, "/"), c.BackendPort)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
