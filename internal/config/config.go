package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // часовые пояса доступны и в минимальных образах

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Booking     BookingConfig     `toml:"booking"`
	RoomService RoomServiceConfig `toml:"room_service"`
	RateLimit   RateLimitConfig   `toml:"ratelimit"`
	Events      EventsConfig      `toml:"events"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig параметры логирования. Пустой File - только stdout.
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-параметры бронирования
type BookingConfig struct {
	// Timezone часовой пояс отеля, в нем вычисляется "сегодня"
	Timezone string `toml:"timezone"`
	// MaxGuests ограничение на число гостей, если RoomService не вернул вместимость
	MaxGuests int `toml:"max_guests"`
	// StoreTimeout таймаут одного обращения к хранилищу, мс
	StoreTimeout int `toml:"store_timeout_ms"`
	// TxMaxRetries повторы сериализуемой транзакции
	TxMaxRetries int `toml:"tx_max_retries"`
	// TxInitialBackoff первая задержка перед повтором, мс
	TxInitialBackoff int `toml:"tx_initial_backoff_ms"`
	// TxMaxBackoff максимальная задержка перед повтором, мс
	TxMaxBackoff int `toml:"tx_max_backoff_ms"`
}

// Location загружает часовой пояс отеля
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// RoomServiceConfig параметры клиента сервиса номеров
type RoomServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// RateLimitConfig ограничение частоты создания бронирований на клиента
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// EventsConfig параметры LISTEN/NOTIFY
type EventsConfig struct {
	Enabled              bool   `toml:"enabled"`
	Channel              string `toml:"channel"`
	MinReconnectInterval int    `toml:"min_reconnect_interval_ms"`
	MaxReconnectInterval int    `toml:"max_reconnect_interval_ms"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию,
// переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
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
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "hotel-booking",
		},
		Booking: BookingConfig{
			Timezone:         "UTC",
			MaxGuests:        10,
			StoreTimeout:     3000,
			TxMaxRetries:     3,
			TxInitialBackoff: 10,
			TxMaxBackoff:     200,
		},
		RoomService: RoomServiceConfig{
			Timeout: 5,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             5,
		},
		Events: EventsConfig{
			Channel:              "room_bookings",
			MinReconnectInterval: 100,
			MaxReconnectInterval: 10000,
		},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv("ROOM_SERVICE_URL"); v != "" {
		c.RoomService.URL = v
	}
	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database.host, database.dbname and database.user are required", ErrInvalidConfig)
	}
	if c.RoomService.URL == "" {
		return fmt.Errorf("%w: room_service.url is required", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Booking.MaxGuests < 1 {
		return fmt.Errorf("%w: booking.max_guests must be positive", ErrInvalidConfig)
	}
	if c.Booking.StoreTimeout <= 0 {
		return fmt.Errorf("%w: booking.store_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.Booking.TxMaxRetries < 0 {
		return fmt.Errorf("%w: booking.tx_max_retries must not be negative", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: ratelimit.requests_per_second and ratelimit.burst must be positive", ErrInvalidConfig)
	}
	if c.Events.Enabled && c.Events.Channel == "" {
		return fmt.Errorf("%w: events.channel is required", ErrInvalidConfig)
	}
	return nil
}
