package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Database driver names accepted by DatabaseConfig.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the configuration for the Quill server and its dependencies.
type Config struct {
	// Listen is the address the Quill server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// SessionKey is the key used to sign session cookies.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// Database holds the persistence configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Email holds the contact notification configuration.
	Email *EmailConfig `yaml:"email" mapstructure:"email"`
	// Gravatar holds the configuration for Gravatar profile pictures.
	Gravatar *GravatarConfig `yaml:"gravatar" mapstructure:"gravatar"`
}

// DatabaseConfig holds the persistence configuration.
type DatabaseConfig struct {
	// Driver selects the database backend ("sqlite" or "postgres").
	Driver string `yaml:"driver" mapstructure:"driver"`
	// Path is the sqlite database file path.
	Path string `yaml:"path" mapstructure:"path"`
	// DSN is the postgres connection string.
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

// EmailConfig holds the contact notification configuration.
type EmailConfig struct {
	// Enabled indicates whether contact notifications are enabled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// SMTPHost is the SMTP server host.
	SMTPHost string `yaml:"smtp_host" mapstructure:"smtp_host"`
	// SMTPPort is the SMTP server port.
	SMTPPort int `yaml:"smtp_port" mapstructure:"smtp_port"`
	// Username is the SMTP username.
	Username string `yaml:"username" mapstructure:"username"`
	// Password is the SMTP password.
	Password string `yaml:"password" mapstructure:"password"`
	// FromEmail is the email address from which notifications are sent.
	FromEmail string `yaml:"from_email" mapstructure:"from_email"`
	// FromName is the name from which notifications are sent.
	FromName string `yaml:"from_name" mapstructure:"from_name"`
	// ToEmail is the address contact messages are delivered to.
	// Defaults to FromEmail when empty.
	ToEmail string `yaml:"to_email" mapstructure:"to_email"`
	// UseTLS indicates whether to use STARTTLS for the SMTP connection.
	UseTLS bool `yaml:"use_tls" mapstructure:"use_tls"`
	// UseSSL indicates whether to use SSL for the SMTP connection.
	UseSSL bool `yaml:"use_ssl" mapstructure:"use_ssl"`
	// InsecureSkipVerify indicates whether to skip TLS certificate verification.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`
}

// GravatarConfig holds the configuration for Gravatar profile pictures.
type GravatarConfig struct {
	// Enabled indicates whether Gravatar avatars are included in responses.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// DefaultImage is the fallback image style.
	// Valid values: "404", "mp", "identicon", "monsterid", "wavatar", "retro", "robohash", "blank"
	DefaultImage string `yaml:"default_image" mapstructure:"default_image"`
	// Rating is the maximum rating for Gravatar images.
	// Valid values: "g", "pg", "r", "x"
	Rating string `yaml:"rating" mapstructure:"rating"`
	// Size is the size of the Gravatar image in pixels (1-2048).
	Size int `yaml:"size" mapstructure:"size"`
}

// Load reads the configuration from the specified path and returns a Config
// struct. If path is empty, default search paths are used. A missing config
// file is not an error; defaults and environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("QUILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindNestedEnv(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.quill")
		v.AddConfigPath("/etc/quill")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("session_max_age", 172800) // 48 hours

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "data/quill.db")

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "smtp.gmail.com")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.from_name", "Quill")
	v.SetDefault("email.use_tls", true)
	v.SetDefault("email.use_ssl", false)
	v.SetDefault("email.insecure_skip_verify", false)

	v.SetDefault("gravatar.enabled", true)
	v.SetDefault("gravatar.default_image", "retro")
	v.SetDefault("gravatar.rating", "g")
	v.SetDefault("gravatar.size", 100)
}

// bindNestedEnv binds environment variables for nested secrets explicitly.
// The auto env function from viper only resolves nested keys once the
// surrounding struct is non-nil, so secrets that may arrive via environment
// only are bound by hand.
func bindNestedEnv(v *viper.Viper) {
	v.MustBindEnv("session_key", "QUILL_SESSION_KEY")
	v.MustBindEnv("database.dsn", "QUILL_DATABASE_DSN")
	v.MustBindEnv("email.username", "QUILL_EMAIL_USERNAME")
	v.MustBindEnv("email.password", "QUILL_EMAIL_PASSWORD")
}

// validateConfig checks the required configuration values. Missing SMTP
// credentials are deliberately not validated here; they degrade the contact
// notification to a failed result at send time instead of failing startup.
func validateConfig(c *Config) error {
	if c.SessionKey == "" {
		return fmt.Errorf("session_key is required")
	}
	if c.Database == nil {
		return fmt.Errorf("database configuration is required")
	}
	if c.Database.Driver == DriverPostgres && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for the postgres driver")
	}
	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		return fmt.Errorf("database.path is required for the sqlite driver")
	}
	return nil
}
