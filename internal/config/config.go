package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// Режимы доставки уведомлений
const (
	NotificationsInline = "inline"
	NotificationsAsync  = "async"
	NotificationsQueue  = "queue"
)

// Хранилища истории диалога
const (
	ConversationMemory = "memory"
	ConversationRedis  = "redis"
)

// Config конфигурация сервиса.
// Значения читаются из toml-файла, затем перекрываются переменными окружения.
type Config struct {
	Timezone      string              `toml:"timezone" env:"APP_TIMEZONE"`
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Gemini        GeminiConfig        `toml:"gemini"`
	Brevo         BrevoConfig         `toml:"brevo"`
	Redis         RedisConfig         `toml:"redis"`
	Conversation  ConversationConfig  `toml:"conversation"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// GeminiConfig пустой api_key отключает модель, работает только детерминированный разбор
type GeminiConfig struct {
	APIKey            string `toml:"api_key" env:"GEMINI_API_KEY"`
	Model             string `toml:"model" env:"GEMINI_MODEL"`
	RequestsPerMinute int    `toml:"requests_per_minute" env:"GEMINI_RPM"`
	Timeout           int    `toml:"timeout"`
}

// BrevoConfig пустой api_key или sender_email отключает отправку писем
type BrevoConfig struct {
	BaseURL     string `toml:"base_url" env:"BREVO_BASE_URL"`
	APIKey      string `toml:"api_key" env:"BREVO_API_KEY"`
	SenderEmail string `toml:"sender_email" env:"BREVO_SENDER_EMAIL"`
	SenderName  string `toml:"sender_name" env:"BREVO_SENDER_NAME"`
	AppLink     string `toml:"app_link" env:"APP_LINK"`
	Timeout     int    `toml:"timeout"`
}

type RedisConfig struct {
	Addr     string `toml:"addr" env:"REDIS_ADDR"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB"`
}

type ConversationConfig struct {
	Backend       string `toml:"backend" env:"CONVERSATION_BACKEND"`
	Window        int    `toml:"window"`
	MaxIdentities int    `toml:"max_identities"`
	TTL           int    `toml:"ttl"` // секунды, только для redis
}

type NotificationsConfig struct {
	Mode        string `toml:"mode" env:"NOTIFICATIONS_MODE"`
	Timeout     int    `toml:"timeout"`
	Queue       string `toml:"queue"`
	MaxRetry    int    `toml:"max_retry"`
	Concurrency int    `toml:"concurrency"`
}

// Load читает конфигурацию из файла и переменных окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFile, path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseEnv, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Timezone: domain.DefaultTimezone,
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
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
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "appointment_desk",
		},
		Gemini: GeminiConfig{
			Model:             "gemini-2.0-flash",
			RequestsPerMinute: 15,
			Timeout:           20,
		},
		Brevo: BrevoConfig{
			BaseURL:    "https://api.brevo.com/v3",
			SenderName: "Appointment Desk",
			Timeout:    10,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Conversation: ConversationConfig{
			Backend:       ConversationMemory,
			Window:        domain.ConversationWindow,
			MaxIdentities: 10000,
			TTL:           86400,
		},
		Notifications: NotificationsConfig{
			Mode:        NotificationsAsync,
			Timeout:     10,
			Queue:       "notifications",
			MaxRetry:    5,
			Concurrency: 5,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidValue, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidValue)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Brevo.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.Brevo.BaseURL); err != nil {
			return fmt.Errorf("%w: brevo.base_url: %v", ErrInvalidValue, err)
		}
	}

	switch c.Conversation.Backend {
	case ConversationMemory, ConversationRedis:
	default:
		return fmt.Errorf("%w: conversation.backend=%q", ErrInvalidValue, c.Conversation.Backend)
	}

	switch c.Notifications.Mode {
	case NotificationsInline, NotificationsAsync, NotificationsQueue:
	default:
		return fmt.Errorf("%w: notifications.mode=%q", ErrInvalidValue, c.Notifications.Mode)
	}

	return nil
}

// Location часовой пояс площадки
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone=%q: %v", ErrInvalidValue, c.Timezone, err)
	}
	return loc, nil
}

// DSN строка подключения к postgres
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ModelEnabled настроен ли доступ к модели
func (c GeminiConfig) ModelEnabled() bool {
	return c.APIKey != ""
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func (c GeminiConfig) TimeoutDuration() time.Duration        { return seconds(c.Timeout) }
func (c BrevoConfig) TimeoutDuration() time.Duration         { return seconds(c.Timeout) }
func (c NotificationsConfig) TimeoutDuration() time.Duration { return seconds(c.Timeout) }
func (c ConversationConfig) TTLDuration() time.Duration      { return seconds(c.TTL) }
