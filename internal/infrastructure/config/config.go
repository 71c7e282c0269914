// Package config resolves configuration once per process with defined
// precedence: config file, then environment, then hardcoded defaults. The
// resulting struct is passed explicitly into constructors; nothing reads
// ambient global state after startup.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Email    EmailConfig    `mapstructure:"email"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// Load loads configuration from file and environment variables.
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("HELPDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	bindLegacyEnvKeys()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; env and defaults carry a full setup.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.Set("server.mode", ginModeFor(env))

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// ginModeFor maps the deployment environment to the gin engine mode.
func ginModeFor(env string) string {
	switch env {
	case "production":
		return "release"
	case "test":
		return "test"
	default:
		return "debug"
	}
}

// bindLegacyEnvKeys binds the flat environment names used by earlier
// deployments so existing process environments keep working.
func bindLegacyEnvKeys() {
	_ = viper.BindEnv("email.smtp_host", "HELPDESK_EMAIL_SMTP_HOST", "SMTP_HOST")
	_ = viper.BindEnv("email.smtp_port", "HELPDESK_EMAIL_SMTP_PORT", "SMTP_PORT")
	_ = viper.BindEnv("email.smtp_user", "HELPDESK_EMAIL_SMTP_USER", "SMTP_USER")
	_ = viper.BindEnv("email.smtp_password", "HELPDESK_EMAIL_SMTP_PASSWORD", "SMTP_PASSWORD")
	_ = viper.BindEnv("email.use_tls", "HELPDESK_EMAIL_USE_TLS", "SMTP_USE_TLS")
	_ = viper.BindEnv("email.from_name", "HELPDESK_EMAIL_FROM_NAME", "EMAIL_FROM")
	_ = viper.BindEnv("email.from_address", "HELPDESK_EMAIL_FROM_ADDRESS", "EMAIL_FROM_ADDRESS")
	_ = viper.BindEnv("email.admin_address", "HELPDESK_EMAIL_ADMIN_ADDRESS", "EMAIL_ADMIN")
	_ = viper.BindEnv("email.max_retries", "HELPDESK_EMAIL_MAX_RETRIES", "EMAIL_MAX_RETRIES")
	_ = viper.BindEnv("email.retry_delay_seconds", "HELPDESK_EMAIL_RETRY_DELAY_SECONDS", "EMAIL_RETRY_DELAY")
	_ = viper.BindEnv("email.enabled", "HELPDESK_EMAIL_ENABLED", "EMAIL_ENABLED")
	_ = viper.BindEnv("server.base_url", "HELPDESK_SERVER_BASE_URL", "BASE_URL")
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.base_url", "http://localhost:8080")

	// Database defaults: local sqlite file store
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "helpdesk.db")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.database", "helpdesk")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.password.bcrypt_cost", 12)
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.session_exp_hours", 12)
	viper.SetDefault("auth.jwt.cookie_name", "helpdesk_session")
	viper.SetDefault("auth.jwt.cookie_secure", false)

	// Email defaults
	viper.SetDefault("email.enabled", false)
	viper.SetDefault("email.smtp_host", "")
	viper.SetDefault("email.smtp_port", 587)
	viper.SetDefault("email.smtp_user", "")
	viper.SetDefault("email.smtp_password", "")
	viper.SetDefault("email.use_tls", true)
	viper.SetDefault("email.from_name", "Helpdesk")
	viper.SetDefault("email.from_address", "noreply@helpdesk.local")
	viper.SetDefault("email.admin_address", "")
	viper.SetDefault("email.max_retries", 3)
	viper.SetDefault("email.retry_delay_seconds", 5)
	viper.SetDefault("email.queue_size", 64)
	viper.SetDefault("email.workers", 2)

	// Redis defaults (empty addr leaves the login limiter disabled)
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
}
