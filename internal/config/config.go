package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Flash messages
	FlashStore    string
	SessionSecret string
	FlashTTL      time.Duration

	// HTTP
	AppPort         string
	GinMode         string
	LogFile         string
	ShutdownTimeout time.Duration
	Debug           bool
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "fyyur"),
		DBPath:     getEnv("DB_PATH", "fyyur.db"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		FlashStore:    getEnv("FLASH_STORE", "cookie"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me"),
		FlashTTL:      parseDuration(getEnv("FLASH_TTL", "10m"), 10*time.Minute),

		AppPort:         getEnv("APP_PORT", "5000"),
		GinMode:         getEnv("GIN_MODE", "release"),
		LogFile:         getEnv("LOG_FILE", "error.log"),
		ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
		Debug:           getEnvBool("DEBUG", false),
	}

	return config, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=disable TimeZone=UTC"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	valueBool, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return valueBool
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return duration
}
