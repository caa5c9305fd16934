package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Web       WebConfig       `yaml:"web"`
	Auth      AuthConfig      `yaml:"auth"`
	Rental    RentalConfig    `yaml:"rental"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains TCP command server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// ReadTimeoutSeconds bounds how long a connection may sit idle before
	// the server gives up on it. Ledger operations themselves never block.
	ReadTimeoutSeconds int `yaml:"read_timeout_seconds"`
}

// WebConfig contains the HTML dashboard settings
type WebConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// AuthConfig contains the connection authentication gate settings.
// Credentials maps usernames to bcrypt password hashes. An empty map
// disables the gate.
type AuthConfig struct {
	Secret             string            `yaml:"secret"`
	SessionTokenExpiry int               `yaml:"session_token_expiry_minutes"`
	Credentials        map[string]string `yaml:"credentials"`
}

// RentalConfig contains loan period and late fee settings
type RentalConfig struct {
	LoanDays  int   `yaml:"loan_days"`
	FeePerDay int64 `yaml:"late_fee_per_day"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ReportOverdueRentals string `yaml:"report_overdue_rentals"`
}

// Default returns the built-in configuration: the server runs without a
// config file the same way the auth gate runs without credentials.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file. An empty path yields the
// built-in defaults.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		cfg := Default()
		cfg.overrideWithEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 30
	}
	if c.Web.Host == "" {
		c.Web.Host = "0.0.0.0"
	}
	if c.Web.Port == 0 {
		c.Web.Port = 8080
	}
	if c.Auth.SessionTokenExpiry == 0 {
		c.Auth.SessionTokenExpiry = 60
	}
	if c.Rental.LoanDays == 0 {
		c.Rental.LoanDays = 7
	}
	if c.Rental.FeePerDay == 0 {
		c.Rental.FeePerDay = 2
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Scheduler.ReportOverdueRentals == "" {
		c.Scheduler.ReportOverdueRentals = "0 0 2 * * *" // 2 AM UTC
	}
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("WEB_HOST"); val != "" {
		c.Web.Host = val
	}
	if val := os.Getenv("WEB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Web.Port)
	}
	if val := os.Getenv("AUTH_SECRET"); val != "" {
		c.Auth.Secret = val
	}
	if val := os.Getenv("LOAN_DAYS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Rental.LoanDays)
	}
	if val := os.Getenv("LATE_FEE_PER_DAY"); val != "" {
		fmt.Sscanf(val, "%d", &c.Rental.FeePerDay)
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Web.Enabled && (c.Web.Port <= 0 || c.Web.Port > 65535) {
		return fmt.Errorf("invalid web port: %d", c.Web.Port)
	}
	if c.Rental.LoanDays <= 0 {
		return fmt.Errorf("loan_days must be positive, got %d", c.Rental.LoanDays)
	}
	if c.Rental.FeePerDay < 0 {
		return fmt.Errorf("late_fee_per_day must not be negative, got %d", c.Rental.FeePerDay)
	}
	if len(c.Auth.Credentials) > 0 {
		if len(c.Auth.Secret) < 32 {
			return fmt.Errorf("auth secret must be at least 32 characters when credentials are configured")
		}
	}
	return nil
}

// AuthEnabled reports whether connections must pass the credential gate.
func (c *Config) AuthEnabled() bool {
	return len(c.Auth.Credentials) > 0
}

// GetServerAddress returns the TCP command server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetWebAddress returns the HTML dashboard address
func (c *Config) GetWebAddress() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}
