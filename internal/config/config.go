package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "RESERVATION"

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrEnvOverride возвращается при некорректном значении переменной окружения
	ErrEnvOverride = errors.New("config: invalid environment override")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig параметры HTTP сервера. Таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level  string `toml:"level" split_words:"true"`
	File   string `toml:"file" split_words:"true"`
	Format string `toml:"format" split_words:"true"` // text | json
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// AuthConfig параметры выпуска токенов и хеширования паролей
type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret" split_words:"true"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes" split_words:"true"`
	Issuer          string `toml:"issuer" split_words:"true"`
	BcryptCost      int    `toml:"bcrypt_cost" split_words:"true"`
}

// RedisConfig параметры распределённой блокировки слотов
type RedisConfig struct {
	Enabled       bool   `toml:"enabled" split_words:"true"`
	Addr          string `toml:"addr" split_words:"true"`
	Password      string `toml:"password" split_words:"true"`
	DB            int    `toml:"db" split_words:"true"`
	LockTTLMs     int    `toml:"lock_ttl_ms" split_words:"true"`
	LockWaitMs    int    `toml:"lock_wait_ms" split_words:"true"`
	LockRetryMs   int    `toml:"lock_retry_ms" split_words:"true"`
	LockKeyPrefix string `toml:"lock_key_prefix" split_words:"true"`
}

// EventsConfig параметры публикации событий бронирований
type EventsConfig struct {
	Driver         string   `toml:"driver" split_words:"true"` // none | rabbitmq | kafka
	RabbitURL      string   `toml:"rabbit_url" split_words:"true"`
	RabbitExchange string   `toml:"rabbit_exchange" split_words:"true"`
	KafkaBrokers   []string `toml:"kafka_brokers" split_words:"true"`
	KafkaTopic     string   `toml:"kafka_topic" split_words:"true"`
	PublishTimeout int      `toml:"publish_timeout_ms" split_words:"true"`
}

// Load читает config.toml, затем .env (если есть) и переменные окружения RESERVATION_*
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения, используемые при отсутствии ключа в файле
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "reservation-service",
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 120,
			Issuer:          "reservation-service",
			BcryptCost:      10,
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			LockTTLMs:   10000,
			LockWaitMs:  3000,
			LockRetryMs: 50,
		},
		Events: EventsConfig{
			Driver:         "none",
			RabbitExchange: "reservations",
			KafkaTopic:     "reservations",
			PublishTimeout: 2000,
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host, user and dbname are required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required (or %s_AUTH_JWT_SECRET)", ErrInvalidConfig, EnvPrefix)
	}
	switch c.Events.Driver {
	case "", "none":
	case "rabbitmq":
		if c.Events.RabbitURL == "" {
			return fmt.Errorf("%w: events.rabbit_url is required for rabbitmq driver", ErrInvalidConfig)
		}
	case "kafka":
		if len(c.Events.KafkaBrokers) == 0 {
			return fmt.Errorf("%w: events.kafka_brokers is required for kafka driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown events.driver %q", ErrInvalidConfig, c.Events.Driver)
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// TokenTTL время жизни токена доступа
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// ms переводит миллисекунды конфигурации в Duration
func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// LockTTL время жизни блокировки слота
func (r RedisConfig) LockTTL() time.Duration { return ms(r.LockTTLMs) }

// LockWait время ожидания занятого слота
func (r RedisConfig) LockWait() time.Duration { return ms(r.LockWaitMs) }

// LockRetry пауза между попытками захвата
func (r RedisConfig) LockRetry() time.Duration { return ms(r.LockRetryMs) }

// PublishTimeoutDuration таймаут публикации одного события
func (e EventsConfig) PublishTimeoutDuration() time.Duration { return ms(e.PublishTimeout) }
