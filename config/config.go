package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/skillsenselab/appkit/logger"
	"github.com/skillsenselab/appkit/version"
)

// AppConfig is the configuration object read once at startup. Absence of an
// optional key disables the corresponding startup step rather than failing.
type AppConfig struct {
	App      AppMeta       `yaml:"app" mapstructure:"app"`
	Logging  logger.Config `yaml:"logging" mapstructure:"logging"`
	Backend  Backend       `yaml:"backend" mapstructure:"backend"`
	Features Features      `yaml:"features" mapstructure:"features"`
	Keys     Keys          `yaml:"keys" mapstructure:"keys"`
	Storage  Storage       `yaml:"storage" mapstructure:"storage"`
}

// AppMeta identifies the application.
type AppMeta struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// Backend holds backend endpoints and network defaults.
type Backend struct {
	APIURL            string        `yaml:"api_url" mapstructure:"api_url" validate:"omitempty,url"`
	TelemetryEndpoint string        `yaml:"telemetry_endpoint" mapstructure:"telemetry_endpoint"`
	Insecure          bool          `yaml:"insecure" mapstructure:"insecure"`
	RequestTimeout    time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

// Features toggles optional subsystems.
type Features struct {
	Analytics    bool `yaml:"analytics" mapstructure:"analytics"`
	RemoteConfig bool `yaml:"remote_config" mapstructure:"remote_config"`
	Messaging    bool `yaml:"messaging" mapstructure:"messaging"`
}

// Keys holds optional third-party API keys. An empty key disables the
// capability that needs it.
type Keys struct {
	Purchases string `yaml:"purchases" mapstructure:"purchases" validate:"omitempty,min=8"`
	Messaging string `yaml:"messaging" mapstructure:"messaging"`
}

// Storage configures the local key-value store.
type Storage struct {
	Namespace     string `yaml:"namespace" mapstructure:"namespace"`
	EncryptionKey string `yaml:"encryption_key" mapstructure:"encryption_key"`
}

// HasPurchases reports whether the purchases capability is configured.
func (c *AppConfig) HasPurchases() bool {
	return c.Keys.Purchases != ""
}

// ApplyDefaults fills zero-value fields with sensible defaults.
func (c *AppConfig) ApplyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.Version == "" {
		c.App.Version = version.Short()
	}
	if c.App.Environment == "development" {
		c.App.Debug = true
	}
	if c.Backend.RequestTimeout <= 0 {
		c.Backend.RequestTimeout = 30 * time.Second
	}
	if c.Storage.Namespace == "" {
		c.Storage.Namespace = c.App.Name
	}
	if c.Logging.AppName == "" {
		c.Logging.AppName = c.App.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the configuration. Struct tags carry field rules; the
// logging section validates itself.
func (c *AppConfig) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.App.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("app.environment must be one of [development, staging, production] (got: %s)", c.App.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func getValidator() *validator.Validate {
	return validate
}
