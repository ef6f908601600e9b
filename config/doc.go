// Package config loads the appkit application configuration.
//
// Configuration is read once at startup from an optional .env file, an
// optional YAML file, and APPKIT_-prefixed environment variables. Feature
// toggles and third-party API keys are optional: a missing key disables the
// capability that needs it instead of failing startup.
package config
