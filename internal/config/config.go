package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                  string   `mapstructure:"PORT"`
	Env                   string   `mapstructure:"ENV"`
	HospitalName          string   `mapstructure:"HOSPITAL_NAME"`
	AuthSecret            string   `mapstructure:"AUTH_SECRET"`
	SessionTTLMinutes     int      `mapstructure:"SESSION_TTL_MINUTES"`
	CORSOrigins           []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS          float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst        int      `mapstructure:"RATE_LIMIT_BURST"`
	Currency              string   `mapstructure:"CURRENCY"`
	GatewayKeyID          string   `mapstructure:"GATEWAY_KEY_ID"`
	GatewayKeySecret      string   `mapstructure:"GATEWAY_KEY_SECRET"`
	GatewayTimeoutSeconds int      `mapstructure:"GATEWAY_TIMEOUT_SECONDS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("HOSPITAL_NAME", "MediCare Hospital")
	v.SetDefault("SESSION_TTL_MINUTES", 480)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("CURRENCY", "INR")
	v.SetDefault("GATEWAY_KEY_ID", "rzp_test_9999999999")
	v.SetDefault("GATEWAY_KEY_SECRET", "rzp_test_secret")
	v.SetDefault("GATEWAY_TIMEOUT_SECONDS", 0)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("HOSPITAL_NAME")
	v.BindEnv("AUTH_SECRET")
	v.BindEnv("SESSION_TTL_MINUTES")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("CURRENCY")
	v.BindEnv("GATEWAY_KEY_ID")
	v.BindEnv("GATEWAY_KEY_SECRET")
	v.BindEnv("GATEWAY_TIMEOUT_SECONDS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.IsDev() {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevAuthMiddleware is active — all requests get admin access.")
		log.Println("WARNING: Department credentials are the hardcoded demo accounts.")
		log.Println("WARNING: Do NOT use this configuration in production.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SessionTTL returns the configured session token lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// GatewayTimeout returns the checkout wait bound. Zero means wait forever,
// matching the gateway's own behavior of never timing out a checkout surface.
func (c *Config) GatewayTimeout() time.Duration {
	return time.Duration(c.GatewayTimeoutSeconds) * time.Second
}

// Validate checks that the configuration is safe to run. Outside development
// an AUTH_SECRET must be set so that session tokens are actually signed with
// a private key, and it must not be trivially short.
func (c *Config) Validate() error {
	if !c.IsDev() {
		if c.AuthSecret == "" {
			return fmt.Errorf("AUTH_SECRET is required when ENV is %q", c.Env)
		}
		if len(c.AuthSecret) < 32 {
			return fmt.Errorf("AUTH_SECRET must be at least 32 bytes, got %d", len(c.AuthSecret))
		}
	}
	if c.SessionTTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.SessionTTLMinutes)
	}
	if c.GatewayTimeoutSeconds < 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT_SECONDS must not be negative, got %d", c.GatewayTimeoutSeconds)
	}
	if c.Currency == "" {
		return fmt.Errorf("CURRENCY must not be empty")
	}
	return nil
}
