package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Storage       StorageConfig       `toml:"storage"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	Kafka         KafkaConfig         `toml:"kafka"`
	SMTP          SMTPConfig          `toml:"smtp"`
	Notifications NotificationsConfig `toml:"notifications"`
	IntakeService IntakeServiceConfig `toml:"intake_service"`
	Admin         AdminConfig         `toml:"admin"`
	Booking       BookingConfig       `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	TxMaxAttempts   int    `toml:"tx_max_attempts"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// StorageConfig выбор хранилища: postgres или memory
type StorageConfig struct {
	Driver string `toml:"driver"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig кэш параметризации агентств. Пустой addr отключает кэш
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

// Enabled сообщает, настроен ли redis
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// KafkaConfig публикация событий о записи. Пустой brokers отключает публикацию
type KafkaConfig struct {
	Brokers string `toml:"brokers"` // через запятую
	Topic   string `toml:"topic"`
}

// SMTPConfig отправка писем-подтверждений. Пустой host отключает отправку
type SMTPConfig struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	From string `toml:"from"`
}

// NotificationsConfig адресаты банка и ссылки на PDF
type NotificationsConfig struct {
	NaturalRecipient   string `toml:"natural_recipient"`
	JuridicalRecipient string `toml:"juridical_recipient"`
	PdfBaseURL         string `toml:"pdf_base_url"`
	DispatchTimeout    int    `toml:"dispatch_timeout"` // секунды
}

// IntakeServiceConfig сервис анкет заявителей. Пустой url включает статический режим
type IntakeServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// AdminConfig доступ в бэк-офис
type AdminConfig struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"` // bcrypt
	JWTSecret    string `toml:"jwt_secret"`
	TokenTTL     int    `toml:"token_ttl"` // минуты
}

// BookingConfig политика записи
type BookingConfig struct {
	// EnforceWindow запрещает запись раньше ближайшего рабочего дня
	EnforceWindow bool `toml:"enforce_window"`
}

// Load читает конфигурацию из TOML файла и проверяет её
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse разбирает конфигурацию из строки TOML
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения по умолчанию
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
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxMaxAttempts:   3,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc_appointment_service",
		},
		Redis: RedisConfig{TTL: 60},
		Kafka: KafkaConfig{Topic: "appointment.booked"},
		SMTP:  SMTPConfig{Port: "25", From: "no-reply@bbva.com"},
		Notifications: NotificationsConfig{
			NaturalRecipient:   "citas@bbva.com",
			JuridicalRecipient: "citas.juridicas@bbva.com",
			PdfBaseURL:         "/placeholder.svg?height=800&width=600",
			DispatchTimeout:    10,
		},
		IntakeService: IntakeServiceConfig{Timeout: 5},
		Admin: AdminConfig{
			Username: "admin",
			TokenTTL: 60,
		},
		Booking: BookingConfig{EnforceWindow: true},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Notifications.NaturalRecipient == "" || c.Notifications.JuridicalRecipient == "" {
		return fmt.Errorf("%w: notifications recipients are required", ErrInvalidConfig)
	}

	if c.Admin.JWTSecret == "" {
		return fmt.Errorf("%w: admin.jwt_secret is required", ErrInvalidConfig)
	}

	if c.Admin.TokenTTL <= 0 {
		return fmt.Errorf("%w: admin.token_ttl must be positive", ErrInvalidConfig)
	}

	return nil
}
