package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	Server  ServerConfig
	OpenAI  OpenAIConfig
	Storage StorageConfig
	Session SessionConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	MaxTokens      int
	Temperature    float64
	RequestTimeout time.Duration
}

type StorageConfig struct {
	// SQLitePath — путь к базе долговременного хранилища.
	// Пустое значение оставляет только хранилище в памяти.
	SQLitePath string
}

type SessionConfig struct {
	TTL time.Duration
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

func LoadAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			BaseURL:        getEnv("OPENAI_BASE_URL", ""),
			MaxTokens:      getEnvAsInt("OPENAI_MAX_TOKENS", 500),
			Temperature:    getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
			RequestTimeout: getEnvAsDuration("OPENAI_REQUEST_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			SQLitePath: getEnv("STORAGE_SQLITE_PATH", ""),
		},
		Session: SessionConfig{
			TTL: getEnvAsDuration("SESSION_TTL", time.Hour),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
	}
}

// Enabled сообщает, настроен ли генератор вопросов
func (c *OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

// ValidateConfig проверяет корректность конфигурации OpenAI
func (c *OpenAIConfig) ValidateConfig() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("OPENAI_MAX_TOKENS must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE must be between 0 and 2")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
