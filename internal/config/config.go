package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Mail      MailConfig      `yaml:"mail"`
	JWT       JWTConfig       `yaml:"jwt"`
	Storage   StorageConfig   `yaml:"storage"`
	Payment   PaymentConfig   `yaml:"payment"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Log       LogConfig       `yaml:"log"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP and gRPC listener settings
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	GRPCPort        int    `yaml:"grpc_port"`
	ShutdownTimeout int    `yaml:"shutdown_timeout_seconds"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Driver       string `yaml:"driver"` // "postgres" (lib/pq) or "pgx"
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	SSLMode      string `yaml:"ssl_mode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// MailConfig selects the outgoing mail provider
type MailConfig struct {
	Provider       string `yaml:"provider"` // "smtp", "sendgrid" or "none"
	From           string `yaml:"from"`
	FromName       string `yaml:"from_name"`
	SMTPHost       string `yaml:"smtp_host"`
	SMTPPort       int    `yaml:"smtp_port"`
	SMTPUser       string `yaml:"smtp_user"`
	SMTPPassword   string `yaml:"smtp_password"`
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	ResetURL       string `yaml:"reset_url"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	Issuer            string `yaml:"issuer"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
	ResetTokenExpiry  int    `yaml:"reset_token_expiry_minutes"`
}

// StorageConfig contains image storage settings
type StorageConfig struct {
	Type              string   `yaml:"type"`       // "local" or "cloudinary"
	UploadDir         string   `yaml:"upload_dir"` // local only
	BaseURL           string   `yaml:"base_url"`   // local only
	CloudName         string   `yaml:"cloud_name"`
	APIKey            string   `yaml:"api_key"`
	APISecret         string   `yaml:"api_secret"`
	Folder            string   `yaml:"folder"`
	MaxFileSizeMB     int64    `yaml:"max_file_size_mb"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

// PaymentConfig contains card gateway settings. An empty key disables the
// card gateway and card payments are recorded without a charge.
type PaymentConfig struct {
	StripeSecretKey string `yaml:"stripe_secret_key"`
	Currency        string `yaml:"currency"`
}

// PricingConfig contains contract pricing and activation rules
type PricingConfig struct {
	LateFeeMultiplier         float64 `yaml:"late_fee_multiplier"`
	ActivationToleranceMinute int     `yaml:"activation_tolerance_minutes"`
	ActivationWindowHours     int     `yaml:"activation_window_hours"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// TracingConfig enables OTLP/HTTP span export when Endpoint is set
type TracingConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	ServiceName string  `yaml:"service_name"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ExpireDiscounts      string `yaml:"expire_discounts"`
	CancelStaleContracts string `yaml:"cancel_stale_contracts"`
}

// Load reads configuration from a YAML file. A .env file next to the
// process is loaded first so its values take part in the env overrides.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func envString(key string, dst *string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func envInt(key string, dst *int) {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*dst = n
		}
	}
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	envString("SERVER_HOST", &c.Server.Host)
	envInt("SERVER_PORT", &c.Server.Port)
	envInt("GRPC_PORT", &c.Server.GRPCPort)

	envString("DB_DRIVER", &c.Database.Driver)
	envString("DB_HOST", &c.Database.Host)
	envInt("DB_PORT", &c.Database.Port)
	envString("DB_USER", &c.Database.User)
	envString("DB_PASSWORD", &c.Database.Password)
	envString("DB_NAME", &c.Database.Database)
	envString("DB_SSL_MODE", &c.Database.SSLMode)

	envString("MAIL_PROVIDER", &c.Mail.Provider)
	envString("MAIL_FROM", &c.Mail.From)
	envString("SMTP_HOST", &c.Mail.SMTPHost)
	envInt("SMTP_PORT", &c.Mail.SMTPPort)
	envString("SMTP_USER", &c.Mail.SMTPUser)
	envString("SMTP_PASSWORD", &c.Mail.SMTPPassword)
	envString("SENDGRID_API_KEY", &c.Mail.SendGridAPIKey)

	envString("JWT_SECRET", &c.JWT.Secret)

	envString("STORAGE_TYPE", &c.Storage.Type)
	envString("UPLOAD_DIR", &c.Storage.UploadDir)
	envString("CLOUDINARY_CLOUD_NAME", &c.Storage.CloudName)
	envString("CLOUDINARY_API_KEY", &c.Storage.APIKey)
	envString("CLOUDINARY_API_SECRET", &c.Storage.APISecret)

	envString("STRIPE_SECRET_KEY", &c.Payment.StripeSecretKey)

	envString("LOG_LEVEL", &c.Log.Level)
	envString("LOG_FORMAT", &c.Log.Format)

	envString("OTEL_EXPORTER_OTLP_ENDPOINT", &c.Tracing.Endpoint)
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 9090
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.Server.GRPCPort)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "pgx" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	switch c.Mail.Provider {
	case "":
		c.Mail.Provider = "none"
	case "none":
	case "smtp":
		if c.Mail.SMTPHost == "" {
			return fmt.Errorf("SMTP host is required")
		}
		if c.Mail.SMTPPort <= 0 || c.Mail.SMTPPort > 65535 {
			return fmt.Errorf("invalid SMTP port: %d", c.Mail.SMTPPort)
		}
	case "sendgrid":
		if c.Mail.SendGridAPIKey == "" {
			return fmt.Errorf("SendGrid API key is required")
		}
	default:
		return fmt.Errorf("unsupported mail provider: %s", c.Mail.Provider)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "motorent-backoffice"
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.JWT.ResetTokenExpiry == 0 {
		c.JWT.ResetTokenExpiry = 30
	}

	switch c.Storage.Type {
	case "", "local":
		c.Storage.Type = "local"
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("upload directory is required")
		}
	case "cloudinary":
		if c.Storage.CloudName == "" || c.Storage.APIKey == "" || c.Storage.APISecret == "" {
			return fmt.Errorf("cloudinary credentials are required")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	if c.Storage.MaxFileSizeMB == 0 {
		c.Storage.MaxFileSizeMB = 5
	}
	if len(c.Storage.AllowedExtensions) == 0 {
		c.Storage.AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	}

	if c.Payment.Currency == "" {
		c.Payment.Currency = "vnd"
	}

	if c.Pricing.LateFeeMultiplier == 0 {
		c.Pricing.LateFeeMultiplier = 2.0
	}
	if c.Pricing.LateFeeMultiplier < 1 {
		return fmt.Errorf("late fee multiplier must be at least 1")
	}
	if c.Pricing.ActivationToleranceMinute == 0 {
		c.Pricing.ActivationToleranceMinute = 30
	}
	if c.Pricing.ActivationWindowHours == 0 {
		c.Pricing.ActivationWindowHours = 10
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "motorent-backoffice"
	}
	if c.Tracing.SampleRatio == 0 {
		c.Tracing.SampleRatio = 1.0
	}

	if c.Scheduler.ExpireDiscounts == "" {
		c.Scheduler.ExpireDiscounts = "@every 2m"
	}
	if c.Scheduler.CancelStaleContracts == "" {
		c.Scheduler.CancelStaleContracts = "@every 10m"
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetGRPCAddress returns the gRPC health listen address
func (c *Config) GetGRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}

func (c PricingConfig) ActivationTolerance() time.Duration {
	return time.Duration(c.ActivationToleranceMinute) * time.Minute
}

func (c PricingConfig) ActivationWindow() time.Duration {
	return time.Duration(c.ActivationWindowHours) * time.Hour
}

func (c JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenExpiry) * time.Minute
}

func (c JWTConfig) ResetTTL() time.Duration {
	return time.Duration(c.ResetTokenExpiry) * time.Minute
}
