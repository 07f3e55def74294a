package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment   DeploymentConfig   `validate:"required"`
	Server       ServerConfig       `validate:"required"`
	Logging      LoggingConfig      `validate:"required"`
	Postgres     PostgresConfig     `validate:"required"`
	Email        EmailConfig        `mapstructure:"email"`
	Notification NotificationConfig `mapstructure:"notification"`
	Reference    ReferenceConfig    `mapstructure:"reference"`
	Sequence     SequenceConfig     `mapstructure:"sequence"`
	Sweep        SweepConfig        `mapstructure:"sweep"`
	Sentry       SentryConfig       `mapstructure:"sentry"`
	Cache        CacheConfig        `mapstructure:"cache"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	LockTimeout time.Duration `mapstructure:"lock_timeout"`

	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int `mapstructure:"conn_max_lifetime_minutes"`
}

type EmailConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	APIKey        string  `mapstructure:"api_key"`
	FromAddress   string  `mapstructure:"from_address"`
	ReplyTo       string  `mapstructure:"reply_to"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	Concurrency   int     `mapstructure:"concurrency"`
}

// ReferenceConfig controls how letter reference numbers are built
type ReferenceConfig struct {
	SenderCodeMode  types.SenderCodeMode `mapstructure:"sender_code_mode" validate:"omitempty,oneof=organization fixed"`
	FixedSenderCode string               `mapstructure:"fixed_sender_code"`
	PerOrganization bool                 `mapstructure:"per_organization"`
}

// SequenceConfig bounds the retry of counter allocation under lock contention
type SequenceConfig struct {
	MaxRetries      uint64        `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
}

type SweepConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
	Workers  int    `mapstructure:"workers"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func NewConfig() (*Configuration, error) {
	// A missing .env is fine, it only feeds AutomaticEnv below
	_ = godotenv.Load()

	v := viper.New()

	// Modify config paths to ensure config.yaml is found
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/papertrails")

	setDefaults(v)

	// Set up environment variables support
	v.SetEnvPrefix("PAPERTRAILS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.lock_timeout", "5s")
	v.SetDefault("postgres.max_open_conns", 20)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 30)
	v.SetDefault("email.rate_per_second", 2)
	v.SetDefault("email.concurrency", 4)
	v.SetDefault("notification.enabled", true)
	v.SetDefault("notification.topic", "agreement_notifications")
	v.SetDefault("notification.company_name", "Papertrails")
	v.SetDefault("notification.max_retries", 3)
	v.SetDefault("notification.initial_interval", "1s")
	v.SetDefault("notification.max_interval", "10s")
	v.SetDefault("notification.multiplier", 2.0)
	v.SetDefault("notification.max_elapsed_time", "2m")
	v.SetDefault("reference.sender_code_mode", string(types.SenderCodeModeOrganization))
	v.SetDefault("sequence.max_retries", 3)
	v.SetDefault("sequence.initial_interval", "50ms")
	v.SetDefault("sweep.enabled", true)
	v.SetDefault("sweep.schedule", "0 0 6 * * *")
	v.SetDefault("sweep.workers", 4)
	v.SetDefault("cache.enabled", true)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Reference.SenderCodeMode == types.SenderCodeModeFixed && c.Reference.FixedSenderCode == "" {
		return errors.New("reference.fixed_sender_code is required when sender_code_mode is fixed")
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or tests without a config file
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Postgres:   PostgresConfig{LockTimeout: 5 * time.Second},
		Notification: NotificationConfig{
			Enabled:         true,
			Topic:           "agreement_notifications",
			CompanyName:     "Papertrails",
			MaxRetries:      3,
			InitialInterval: time.Second,
			MaxInterval:     10 * time.Second,
			Multiplier:      2.0,
			MaxElapsedTime:  2 * time.Minute,
		},
		Reference: ReferenceConfig{SenderCodeMode: types.SenderCodeModeOrganization},
		Sequence:  SequenceConfig{MaxRetries: 3, InitialInterval: 50 * time.Millisecond},
		Sweep:     SweepConfig{Enabled: true, Schedule: "0 0 6 * * *", Workers: 4},
		Cache:     CacheConfig{Enabled: true},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
