package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/samber/lo"
)

// Placeholder values shipped in the public config template. Any of these
// means "not configured" and must short-circuit before a network call.
var placeholderValues = []string{
	"YOUR_GOOGLE_APPS_SCRIPT_DEPLOYMENT_URL",
	"YOUR_EMAILJS_SERVICE_ID",
	"YOUR_EMAILJS_TEMPLATE_ID",
	"YOUR_EMAILJS_API_KEY",
}

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// Google Apps Script deployment serving the Events sheet and
	// accepting log rows
	AppsScriptURL string `env:"GOOGLE_SCRIPT_URL"`

	// EmailJS credentials
	EmailServiceID  string `env:"EMAILJS_SERVICE_ID"`
	EmailTemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	EmailAPIKey     string `env:"EMAILJS_API_KEY"`

	AffiliationsPath string `env:"AFFILIATIONS_PATH"`
	DBPath           string `env:"DB_PATH" envDefault:"./db/"`

	MaxRequestsPerHour int  `env:"MAX_REQUESTS_PER_HOUR" envDefault:"10"`
	Debug              bool `env:"DEBUG" envDefault:"false"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.MaxRequestsPerHour < 1 {
		return nil, fmt.Errorf("MAX_REQUESTS_PER_HOUR must be positive, got %d", cfg.MaxRequestsPerHour)
	}

	return cfg, nil
}

// configured reports whether a value is present and not one of the known
// template placeholders.
func configured(value string) bool {
	if value == "" {
		return false
	}
	return !lo.Contains(placeholderValues, value)
}

// CheckSheets verifies the Apps Script endpoint is usable.
func (c *Config) CheckSheets() error {
	if !configured(c.AppsScriptURL) {
		return ConfigError("GOOGLE_SCRIPT_URL")
	}
	return nil
}

// CheckEmail verifies the EmailJS credentials are usable.
func (c *Config) CheckEmail() error {
	for name, value := range map[string]string{
		"EMAILJS_SERVICE_ID":  c.EmailServiceID,
		"EMAILJS_TEMPLATE_ID": c.EmailTemplateID,
		"EMAILJS_API_KEY":     c.EmailAPIKey,
	} {
		if !configured(value) {
			return ConfigError(name)
		}
	}
	return nil
}
