package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/robfig/cron/v3"
)

// Config holds the whole application configuration, populated from
// environment variables (optionally loaded from .env by godotenv).
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Mail      MailConfig
	LateLoans LateLoansConfig
	Worker    WorkerConfig
	Import    ImportConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// MailConfig points at the SMTP relay used for late-loan notices.
type MailConfig struct {
	Driver   string // smtp or log
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// =====================================================
// LATE LOANS
// =====================================================

// LateLoansConfig controls the scheduled late-loan notification run.
type LateLoansConfig struct {
	Cron    string // standard 5-field cron, evaluated by the asynq scheduler
	Subject string
	Message string
}

type WorkerConfig struct {
	Concurrency  int
	HealthAddr   string
	ShutdownWait int // seconds
}

type ImportConfig struct {
	MaxRows int
}

const (
	MailDriverSMTP = "smtp"
	MailDriverLog  = "log"
)

const (
	DefaultLateLoansCron    = "0 0 * * *"
	DefaultLateLoansSubject = "Late book loan"
	DefaultLateLoansMessage = "Hello, your book loan is overdue. Please return it as soon as possible."
)

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "library"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Mail: MailConfig{
			Driver:   getEnv("MAIL_DRIVER", MailDriverSMTP),
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvInt("SMTP_PORT", 1025),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("MAIL_FROM", "library@example.com"),
		},
		LateLoans: LateLoansConfig{
			Cron:    getEnv("LATE_LOANS_CRON", DefaultLateLoansCron),
			Subject: getEnv("LATE_LOANS_SUBJECT", DefaultLateLoansSubject),
			Message: getEnv("LATE_LOANS_MESSAGE", DefaultLateLoansMessage),
		},
		Worker: WorkerConfig{
			Concurrency:  getEnvInt("WORKER_CONCURRENCY", 5),
			HealthAddr:   getEnv("WORKER_HEALTH_ADDR", ":9999"),
			ShutdownWait: getEnvInt("WORKER_SHUTDOWN_TIMEOUT", 30),
		},
		Import: ImportConfig{
			MaxRows: getEnvInt("IMPORT_MAX_ROWS", 1000),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the services cannot start with.
func (c *Config) Validate() error {
	if c.App.Environment == "production" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}

	if err := validation.ValidateStruct(&c.Mail,
		validation.Field(&c.Mail.Driver, validation.In(MailDriverSMTP, MailDriverLog)),
		validation.Field(&c.Mail.Host, validation.Required),
		validation.Field(&c.Mail.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Mail.From, validation.Required, is.EmailFormat),
	); err != nil {
		return fmt.Errorf("mail: %w", err)
	}

	if err := validation.ValidateStruct(&c.LateLoans,
		validation.Field(&c.LateLoans.Cron, validation.Required, validation.By(validCron)),
		validation.Field(&c.LateLoans.Message, validation.Required),
	); err != nil {
		return fmt.Errorf("late loans: %w", err)
	}

	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be >= 1")
	}
	if c.Import.MaxRows < 1 {
		return fmt.Errorf("IMPORT_MAX_ROWS must be >= 1")
	}

	return nil
}

func validCron(value interface{}) error {
	expr, _ := value.(string)
	if _, err := cron.ParseStandard(strings.TrimSpace(expr)); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
