package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL    string
	ListenAddr    string
	GinMode       string
	SessionSecret string
	RedisHost     string
	RedisPort     string
	BoardCacheTTL time.Duration
	HTTPTimeout   time.Duration
	LogLevel      string

	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DevServerAddr string
}

var defaults = map[string]interface{}{
	"API_BASE_URL":    "http://localhost:8080/api/v1",
	"LISTEN_ADDR":     ":3000",
	"GIN_MODE":        "debug",
	"SESSION_SECRET":  "default-secret-key-change-me",
	"REDIS_HOST":      "",
	"REDIS_PORT":      "6379",
	"BOARD_CACHE_TTL": "5m",
	"HTTP_TIMEOUT":    "0s",
	"LOG_LEVEL":       "info",
	"DB_DRIVER":       "sqlite",
	"DB_HOST":         "localhost",
	"DB_PORT":         "3306",
	"DB_USER":         "taskuser",
	"DB_PASSWORD":     "taskpassword",
	"DB_NAME":         "task_management",
	"DEVSERVER_ADDR":  ":8080",
}

// Load reads taskboard.yaml from the working directory when present and
// lets environment variables override it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("taskboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		APIBaseURL:    strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		ListenAddr:    v.GetString("LISTEN_ADDR"),
		GinMode:       v.GetString("GIN_MODE"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		BoardCacheTTL: v.GetDuration("BOARD_CACHE_TTL"),
		HTTPTimeout:   v.GetDuration("HTTP_TIMEOUT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		DBDriver:      v.GetString("DB_DRIVER"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DevServerAddr: v.GetString("DEVSERVER_ADDR"),
	}, nil
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}
