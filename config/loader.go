package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderOption customizes Load.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	configFile string
	envFile    string
	envPrefix  string
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.envFile = path }
}

// WithEnvPrefix sets the environment variable prefix (default "APPKIT").
func WithEnvPrefix(prefix string) LoaderOption {
	return func(o *loaderOptions) { o.envPrefix = prefix }
}

// Load reads the application configuration exactly once: .env file (if
// present), then the YAML config file, then environment overrides. The
// result has defaults applied and is validated.
func Load(opts ...LoaderOption) (*AppConfig, error) {
	o := &loaderOptions{envPrefix: "APPKIT"}
	for _, opt := range opts {
		opt(o)
	}

	// .env is optional; a missing file is not an error.
	envFile := o.envFile
	if envFile == "" && fileExists(".env") {
		envFile = ".env"
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := o.configFile
	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile searches standard locations for appkit.yml.
func findConfigFile() string {
	searchPaths := []string{
		"./appkit.yml",
		"./config/appkit.yml",
		"./appkit.yaml",
		"./config/appkit.yaml",
	}
	for _, path := range searchPaths {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
