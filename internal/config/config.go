package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих файл
const EnvPrefix = "CLINIC"

var (
	ErrReadConfig    = errors.New("config: failed to read file")
	ErrEnvOverride   = errors.New("config: failed to apply environment overrides")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

type Config struct {
	Server    ServerConfig    `toml:"server" envconfig:"SERVER"`
	Database  DatabaseConfig  `toml:"database" envconfig:"DATABASE"`
	Logs      LogsConfig      `toml:"logs" envconfig:"LOGS"`
	Metrics   MetricsConfig   `toml:"metrics" envconfig:"METRICS"`
	Booking   BookingConfig   `toml:"booking" envconfig:"BOOKING"`
	PayFast   PayFastConfig   `toml:"payfast" envconfig:"PAYFAST"`
	Mail      MailConfig      `toml:"mail" envconfig:"MAIL"`
	Events    EventsConfig    `toml:"events" envconfig:"EVENTS"`
	Auth      AuthConfig      `toml:"auth" envconfig:"AUTH"`
	RateLimit RateLimitConfig `toml:"rate_limit" envconfig:"RATE_LIMIT"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port" split_words:"true" validate:"required,min=1,max=65535"`
	ReadTimeout     Duration `toml:"read_timeout" split_words:"true"`
	WriteTimeout    Duration `toml:"write_timeout" split_words:"true"`
	IdleTimeout     Duration `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string   `toml:"host" split_words:"true" validate:"required"`
	Port            int      `toml:"port" split_words:"true" validate:"required"`
	User            string   `toml:"user" split_words:"true" validate:"required"`
	Password        string   `toml:"password" split_words:"true"`
	DBName          string   `toml:"dbname" split_words:"true" validate:"required"`
	SSLMode         string   `toml:"sslmode" split_words:"true" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int      `toml:"max_open_conns" split_words:"true" validate:"gte=0"`
	MaxIdleConns    int      `toml:"max_idle_conns" split_words:"true" validate:"gte=0"`
	ConnMaxLifetime Duration `toml:"conn_max_lifetime" split_words:"true"`
}

var dsnQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.DBName, sslMode)
	// пустое значение без кавычек lib/pq склеит со следующим ключом
	if d.Password != "" {
		dsn += fmt.Sprintf(" password='%s'", dsnQuoter.Replace(d.Password))
	}
	return dsn
}

type LogsConfig struct {
	Level string `toml:"level" split_words:"true" validate:"omitempty,oneof=debug info warn error"`
	File  string `toml:"file" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true" validate:"required_if=Enabled true"`
	Path        string `toml:"path" split_words:"true" validate:"required_if=Enabled true"`
}

type BookingConfig struct {
	// Fee фиксированный сбор площадки в минимальных единицах валюты
	Fee              int64    `toml:"fee" split_words:"true" validate:"gte=0"`
	ProviderCacheTTL Duration `toml:"provider_cache_ttl" split_words:"true"`
}

type PayFastConfig struct {
	MerchantID      string   `toml:"merchant_id" split_words:"true" validate:"required"`
	MerchantKey     string   `toml:"merchant_key" split_words:"true" validate:"required"`
	Passphrase      string   `toml:"passphrase" split_words:"true"`
	ProcessURL      string   `toml:"process_url" split_words:"true" validate:"required,url"`
	ReturnURL       string   `toml:"return_url" split_words:"true" validate:"omitempty,url"`
	CancelURL       string   `toml:"cancel_url" split_words:"true" validate:"omitempty,url"`
	NotifyURL       string   `toml:"notify_url" split_words:"true" validate:"omitempty,url"`
	Timeout         Duration `toml:"timeout" split_words:"true"`
	VerifySignature bool     `toml:"verify_signature" split_words:"true"`
}

type MailConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	Host     string `toml:"host" split_words:"true" validate:"required_if=Enabled true"`
	Port     int    `toml:"port" split_words:"true"`
	Username string `toml:"username" split_words:"true"`
	Password string `toml:"password" split_words:"true"`
	From     string `toml:"from" split_words:"true" validate:"omitempty,email"`
}

type EventsConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	URL      string `toml:"url" split_words:"true" validate:"required_if=Enabled true"`
	Exchange string `toml:"exchange" split_words:"true" validate:"required_if=Enabled true"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" split_words:"true" validate:"required,min=16"`
	Issuer    string `toml:"issuer" split_words:"true"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled" split_words:"true"`
	RequestsPerSecond float64 `toml:"requests_per_second" split_words:"true" validate:"required_if=Enabled true,gte=0"`
	Burst             int     `toml:"burst" split_words:"true" validate:"required_if=Enabled true,gte=0"`
}

// Load читает TOML файл, затем .env (если есть) и переменные CLINIC_<SECTION>_<FIELD>,
// например CLINIC_PAYFAST_PASSPHRASE. Окружение имеет приоритет над файлом
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrEnvOverride, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет struct-теги
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(10 * time.Second),
			IdleTimeout:     Duration(60 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: Duration(5 * time.Minute),
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "clinic-booking-service",
			Path:        "/metrics",
		},
		Booking: BookingConfig{
			Fee:              1000,
			ProviderCacheTTL: Duration(time.Minute),
		},
		PayFast: PayFastConfig{
			ProcessURL:      "https://sandbox.payfast.co.za/eng/process",
			Timeout:         Duration(10 * time.Second),
			VerifySignature: true,
		},
		Mail:   MailConfig{Port: 587},
		Events: EventsConfig{Exchange: "clinic.events"},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
	}
}
