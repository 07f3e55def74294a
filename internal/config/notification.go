package config

import "time"

// NotificationConfig represents the configuration for agreement notifications
type NotificationConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Topic       string `mapstructure:"topic" default:"agreement_notifications"`
	FrontendURL string `mapstructure:"frontend_url"`
	CompanyName string `mapstructure:"company_name"`

	// Retry policy of the bus handler. Delivery failures are swallowed inside the
	// handler, so retries only cover decode and lookup failures.
	MaxRetries      int           `mapstructure:"max_retries" default:"3"`
	InitialInterval time.Duration `mapstructure:"initial_interval" default:"1s"`
	MaxInterval     time.Duration `mapstructure:"max_interval" default:"10s"`
	Multiplier      float64       `mapstructure:"multiplier" default:"2.0"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time" default:"2m"`
}
