package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/models"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Billing  BillingConfig
	Overdue  OverdueConfig
	Auth     AuthConfig
	AMQPURL  string // empty disables event publishing
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type BillingConfig struct {
	TaxRatePercent       decimal.Decimal
	ServiceChargePercent decimal.Decimal
}

type OverdueConfig struct {
	ThresholdMinutes int
}

// AuthConfig maps terminal keys to roles, and roles to the capability set
// fed into the status machine. Capabilities are policy input, not engine
// logic, so they live here.
type AuthConfig struct {
	TerminalKeys     map[string]string // key -> role
	RoleCapabilities map[string][]models.Capability
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Billing: BillingConfig{
			TaxRatePercent:       getEnvAsDecimal("TAX_RATE_PERCENT", "10"),
			ServiceChargePercent: getEnvAsDecimal("SERVICE_CHARGE_PERCENT", "0"),
		},
		Overdue: OverdueConfig{
			ThresholdMinutes: getEnvAsInt("OVERDUE_THRESHOLD_MINUTES", 15),
		},
		Auth: AuthConfig{
			TerminalKeys: getEnvAsKeyRoleMap("TERMINAL_KEYS", map[string]string{
				"kitchen-key": "kitchen",
				"cashier-key": "cashier",
				"manager-key": "manager",
			}),
			RoleCapabilities: defaultRoleCapabilities(),
		},
		AMQPURL:  getEnv("AMQP_URL", ""),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func defaultRoleCapabilities() map[string][]models.Capability {
	return map[string][]models.Capability{
		"kitchen": {models.CapKitchen},
		"cashier": {models.CapBilling, models.CapCancel},
		"manager": {models.CapKitchen, models.CapBilling, models.CapCancel},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	hundred := decimal.NewFromInt(100)
	if c.Billing.TaxRatePercent.IsNegative() || c.Billing.TaxRatePercent.GreaterThan(hundred) {
		return fmt.Errorf("TAX_RATE_PERCENT must be between 0 and 100")
	}
	if c.Billing.ServiceChargePercent.IsNegative() || c.Billing.ServiceChargePercent.GreaterThan(hundred) {
		return fmt.Errorf("SERVICE_CHARGE_PERCENT must be between 0 and 100")
	}

	if c.Overdue.ThresholdMinutes <= 0 {
		return fmt.Errorf("OVERDUE_THRESHOLD_MINUTES must be positive")
	}

	if len(c.Auth.TerminalKeys) == 0 {
		return fmt.Errorf("at least one terminal key must be configured")
	}
	for key, role := range c.Auth.TerminalKeys {
		if _, ok := c.Auth.RoleCapabilities[role]; !ok {
			return fmt.Errorf("terminal key %s references unknown role %s", key, role)
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Actor resolves a terminal key into the acting identity, or false if the
// key is unknown.
func (c *AuthConfig) Actor(key string) (models.Actor, bool) {
	role, ok := c.TerminalKeys[key]
	if !ok {
		return models.Actor{}, false
	}
	return models.Actor{
		ID:           key,
		Role:         role,
		Capabilities: c.RoleCapabilities[role],
	}, true
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
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

func getEnvAsDecimal(key, defaultValue string) decimal.Decimal {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return decimal.RequireFromString(defaultValue)
	}
	return value
}

// getEnvAsKeyRoleMap parses "key1=role1,key2=role2" pairs
func getEnvAsKeyRoleMap(key string, defaultValue map[string]string) map[string]string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	out := make(map[string]string)
	for _, pair := range strings.Split(valueStr, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		out[parts[0]] = parts[1]
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
