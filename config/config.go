package config

import (
	"os"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via the environment.
type AppConfig struct {
	AppPort     string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Device user: likes, saves, downloads and play history belong to this user
	DeviceUserID       string
	RateLimitPerMinute int
	AllowedOrigins     []string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Tag generation
	OpenAIAPIKey  string
	OpenAIBaseURL string
	// Simulated transfer time for offline downloads, in milliseconds
	DownloadDelayMS int
	// Minimum continuous listen time before a play counts, in seconds
	PlayCountMinSeconds int
	// Redis for store persistence
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var (
	cfg    AppConfig
	loaded bool
)

// Load reads configuration from environment variables, filling defaults for anything unset.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	cfg = AppConfig{
		AppPort:             getEnv("APP_PORT", "8080"),
		DatabaseURI:         getEnv("DATABASE_URI", ""),
		DBHost:              getEnv("DB_HOST", "127.0.0.1"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBUser:              getEnv("DB_USER", "echo"),
		DBPassword:          getEnv("DB_PASSWORD", ""),
		DBName:              getEnv("DB_NAME", "echo"),
		DeviceUserID:        getEnv("DEVICE_USER_ID", "user_123"),
		RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		AllowedOrigins:      getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		GinMode:             getEnv("GIN_MODE", "release"),
		GinPath:             getEnv("GIN_LOG_PATH", "logs/gin.log"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		DownloadDelayMS:     getEnvInt("DOWNLOAD_DELAY_MS", 2000),
		PlayCountMinSeconds: getEnvInt("PLAY_COUNT_MIN_SECONDS", 5),
		RedisHost:           getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:           getEnvInt("REDIS_PORT", 6379),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogPath:             getEnv("LOG_PATH", "logs/app.log"),
		LogMaxSizeMB:        getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:       getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:       getEnvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:         getEnvBool("LOG_COMPRESS", false),
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
