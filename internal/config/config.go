package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"
)

// Env представляет окружение приложения
type Env string

const (
	// EnvLocal - локальное окружение
	EnvLocal Env = "local"
	// EnvDocker - запуск в контейнере
	EnvDocker Env = "docker"
)

// Config содержит конфигурацию клиента
// Заполняется из переменных окружения через caarlos0/env
type Config struct {
	AppEnv Env `env:"APP_ENV" envDefault:"local"`

	// APIBaseURL базовый адрес API магазина, включая префикс /api
	APIBaseURL string `env:"SWEETSHOP_API_URL" envDefault:"http://localhost:8080/api"`
	// HTTPTimeout таймаут одного запроса к API
	HTTPTimeout time.Duration `env:"SWEETSHOP_HTTP_TIMEOUT" envDefault:"15s"`
	// SessionFile путь к файлу сессии; пустое значение - дефолт в конфиг-директории пользователя
	SessionFile string `env:"SWEETSHOP_SESSION_FILE"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"`

	OTELEnabled   bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint  string  `env:"OTLP_ENDPOINT" envDefault:"127.0.0.1:4317"`
	SamplingRatio float64 `env:"OTEL_SAMPLING_RATIO" envDefault:"1"`
}

// Load загружает конфигурацию из переменных окружения
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve user config dir: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, "sweetshop", "session.json")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	if c.AppEnv != EnvLocal && c.AppEnv != EnvDocker {
		return fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", c.AppEnv)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("SWEETSHOP_API_URL is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("SWEETSHOP_HTTP_TIMEOUT must be positive")
	}
	if c.SamplingRatio < 0 || c.SamplingRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLING_RATIO must be in [0, 1]")
	}
	return nil
}

// Log выводит загруженную конфигурацию
// Токенов в конфигурации нет, маскировать нечего
func (c Config) Log(logger *zap.Logger) {
	logger.Debug("Config loaded",
		zap.String("app_env", string(c.AppEnv)),
		zap.String("api_base_url", c.APIBaseURL),
		zap.Duration("http_timeout", c.HTTPTimeout),
		zap.String("session_file", c.SessionFile),
		zap.Bool("otel_enabled", c.OTELEnabled),
	)
}
