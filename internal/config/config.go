package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	App struct {
		Env  string
		Addr string

		// TrustProxy reads client addresses from X-Forwarded-For and X-Real-IP.
		TrustProxy bool `mapstructure:"trust_proxy"`
	} `mapstructure:"app"`

	Auth struct {
		JWTSecret  string        `mapstructure:"jwt_secret"`
		TokenTTL   time.Duration `mapstructure:"token_ttl"`
		RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
		BcryptCost int           `mapstructure:"bcrypt_cost"`

		// RefreshFile keeps in-memory refresh tokens across restarts when Redis is not configured.
		RefreshFile string `mapstructure:"refresh_file"`
	} `mapstructure:"auth"`

	Storage struct {
		Driver string
		DSN    string
		Seed   bool
		// Latency delays every API response, mimicking a remote backend.
		Latency time.Duration
	} `mapstructure:"storage"`

	Redis struct {
		Addr     string
		Password string
		DB       int
	} `mapstructure:"redis"`

	RateLimit struct {
		Enabled bool
		RPS     float64
		Burst   int
	} `mapstructure:"ratelimit"`

	Alerts struct {
		From         string
		To           string
		SMTPServer   string `mapstructure:"smtp_server"`
		SMTPPort     string `mapstructure:"smtp_port"`
		SMTPUser     string `mapstructure:"smtp_user"`
		SMTPPassword string `mapstructure:"smtp_password"`
		AuthDisabled bool   `mapstructure:"auth_disabled"`
		// Immediate mails every alert as it happens, on top of the daily digest.
		Immediate bool
	} `mapstructure:"alerts"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.addr", ":8080")
	v.SetDefault("app.trust_proxy", false)

	v.SetDefault("auth.jwt_secret", "super-secret-key")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("auth.refresh_ttl", 7*24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.refresh_file", "")

	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.seed", true)
	v.SetDefault("storage.latency", 0)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.rps", 10)
	v.SetDefault("ratelimit.burst", 20)

	v.SetDefault("alerts.from", "")
	v.SetDefault("alerts.to", "")
	v.SetDefault("alerts.smtp_server", "")
	v.SetDefault("alerts.smtp_port", "587")
	v.SetDefault("alerts.smtp_user", "")
	v.SetDefault("alerts.smtp_password", "")
	v.SetDefault("alerts.auth_disabled", false)
	v.SetDefault("alerts.immediate", false)

	v.SetDefault("metrics.enabled", true)
}

// Load reads the optional config file at path and lets INVENTORY_* environment
// variables override it, e.g. INVENTORY_STORAGE_DRIVER for storage.driver.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Variable names the deployment scripts already export.
	_ = v.BindEnv("storage.dsn", "INVENTORY_STORAGE_DSN", "DATABASE_URL")
	_ = v.BindEnv("alerts.from", "INVENTORY_ALERTS_FROM", "ALERT_FROM")
	_ = v.BindEnv("alerts.to", "INVENTORY_ALERTS_TO", "ALERT_TO")
	_ = v.BindEnv("alerts.smtp_server", "INVENTORY_ALERTS_SMTP_SERVER", "SMTP_SERVER")
	_ = v.BindEnv("alerts.smtp_port", "INVENTORY_ALERTS_SMTP_PORT", "SMTP_PORT")
	_ = v.BindEnv("alerts.smtp_user", "INVENTORY_ALERTS_SMTP_USER", "SMTP_USER")
	_ = v.BindEnv("alerts.smtp_password", "INVENTORY_ALERTS_SMTP_PASSWORD", "SMTP_PASS")

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			errs = append(errs, errors.New("storage.dsn is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret must not be empty"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		errs = append(errs, errors.New("ratelimit.rps and ratelimit.burst must be positive"))
	}
	return errors.Join(errs...)
}

// AlertsEnabled reports whether enough SMTP settings exist to send mail.
func (c Config) AlertsEnabled() bool {
	return c.Alerts.SMTPServer != "" && c.Alerts.From != "" && c.Alerts.To != ""
}
