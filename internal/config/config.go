package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Провайдеры отправки писем
const (
	EmailProviderNone    = "none"
	EmailProviderSMTP    = "smtp"
	EmailProviderMailjet = "mailjet"
)

// Переменные окружения с секретами, перекрывают значения из файла
const (
	envDBPassword         = "DB_PASSWORD"
	envSMTPPassword       = "SMTP_PASSWORD"
	envMailjetPublicKey   = "MAILJET_API_KEY_PUBLIC"
	envMailjetPrivateKey  = "MAILJET_API_KEY_PRIVATE"
	envRedisPassword      = "REDIS_PASSWORD"
	defaultEnvFile        = ".env"
	defaultReminderRunAt  = "08:00"
	defaultDBStatsSeconds = 15
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Email     EmailConfig     `toml:"email"`
	Reminders RemindersConfig `toml:"reminders"`
	Redis     RedisConfig     `toml:"redis"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled         bool   `toml:"enabled"`
	Path            string `toml:"path"`
	ServiceName     string `toml:"service_name"`
	DBStatsInterval int    `toml:"db_stats_interval"`
}

type EmailConfig struct {
	Provider string        `toml:"provider"`
	AppName  string        `toml:"app_name"`
	From     string        `toml:"from"`
	FromName string        `toml:"from_name"`
	SMTP     SMTPConfig    `toml:"smtp"`
	Mailjet  MailjetConfig `toml:"mailjet"`
}

type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

type MailjetConfig struct {
	APIKeyPublic  string `toml:"api_key_public"`
	APIKeyPrivate string `toml:"api_key_private"`
}

type RemindersConfig struct {
	Enabled    bool   `toml:"enabled"`
	RunAt      string `toml:"run_at"`
	Timezone   string `toml:"timezone"`
	WindowDays int    `toml:"window_days"`
}

// Location часовой пояс сервиса, пустое значение означает UTC
func (c RemindersConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// RunAtTime время ежедневного запуска
func (c RemindersConfig) RunAtTime() (types.TimeString, error) {
	return types.NewTimeStringFromString(c.RunAt)
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	LockTTL  int    `toml:"lock_ttl"`
}

// Load читает .env (если есть), затем TOML файл, подставляет значения
// по умолчанию и секреты из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", defaultEnvFile, err)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "reservation_service"
	}
	if c.Metrics.DBStatsInterval == 0 {
		c.Metrics.DBStatsInterval = defaultDBStatsSeconds
	}

	if c.Email.Provider == "" {
		c.Email.Provider = EmailProviderNone
	}
	c.Email.Provider = strings.ToLower(c.Email.Provider)
	if c.Email.SMTP.Port == 0 {
		c.Email.SMTP.Port = 587
	}

	if c.Reminders.RunAt == "" {
		c.Reminders.RunAt = defaultReminderRunAt
	}
	if c.Reminders.WindowDays == 0 {
		c.Reminders.WindowDays = domain.DefaultReminderDays
	}

	if c.Redis.LockTTL == 0 {
		c.Redis.LockTTL = 3600
	}
}

func (c *Config) applyEnv() {
	overrideFromEnv(&c.Database.Password, envDBPassword)
	overrideFromEnv(&c.Email.SMTP.Password, envSMTPPassword)
	overrideFromEnv(&c.Email.Mailjet.APIKeyPublic, envMailjetPublicKey)
	overrideFromEnv(&c.Email.Mailjet.APIKeyPrivate, envMailjetPrivateKey)
	overrideFromEnv(&c.Redis.Password, envRedisPassword)
}

func overrideFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate проверяет значения после подстановки значений по умолчанию
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}

	switch c.Email.Provider {
	case EmailProviderNone:
	case EmailProviderSMTP:
		if c.Email.SMTP.Host == "" || c.Email.From == "" {
			return fmt.Errorf("%w: email.smtp.host and email.from are required for smtp", ErrInvalidConfig)
		}
	case EmailProviderMailjet:
		if c.Email.Mailjet.APIKeyPublic == "" || c.Email.Mailjet.APIKeyPrivate == "" || c.Email.From == "" {
			return fmt.Errorf("%w: mailjet keys and email.from are required for mailjet", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown email.provider %q", ErrInvalidConfig, c.Email.Provider)
	}

	if _, err := c.Reminders.RunAtTime(); err != nil {
		return fmt.Errorf("%w: reminders.run_at: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Reminders.Location(); err != nil {
		return fmt.Errorf("%w: reminders.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Reminders.WindowDays < 0 {
		return fmt.Errorf("%w: reminders.window_days must not be negative", ErrInvalidConfig)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}

	return nil
}
