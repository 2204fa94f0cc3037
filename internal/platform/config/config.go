package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultLockTTL      = 5 * time.Minute
	defaultRuleCacheTTL = 60 * time.Second
	defaultJWTSecret    = "a-very-secret-key-should-be-longer-and-random"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	MigrationsPath string
	RateLimit      string
	AllowedOrigins []string

	// Rules
	RuleLockTTL                 time.Duration
	RuleListCacheTTL            time.Duration
	RuleNotifyDomain            string
	RuleRequireSingleCostObject bool

	// ERP file drop
	ErpErrorAccount string
	ErpDropDir      string
	ErpRemoteDir    string

	// Mailgun notifications, disabled when the domain or key is empty
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RULE_LOCK_TTL", defaultLockTTL.String())
	viper.SetDefault("RULE_LIST_CACHE_TTL", defaultRuleCacheTTL.String())
	viper.SetDefault("RULE_NOTIFY_DOMAIN", "")
	viper.SetDefault("RULE_REQUIRE_SINGLE_COST_OBJECT", false)
	viper.SetDefault("ERP_ERROR_ACCOUNT", "")
	viper.SetDefault("ERP_DROP_DIR", "./erp-outbox")
	viper.SetDefault("ERP_REMOTE_DIR", "/inbound/postings")
	viper.SetDefault("MAILGUN_DOMAIN", "")
	viper.SetDefault("MAILGUN_API_KEY", "")
	viper.SetDefault("MAILGUN_SENDER", "")

	// Environment variables override .env values, which override the defaults above.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RuleLockTTL = durationOr("RULE_LOCK_TTL", defaultLockTTL)
	cfg.RuleListCacheTTL = durationOr("RULE_LIST_CACHE_TTL", defaultRuleCacheTTL)

	cfg.ErpErrorAccount = viper.GetString("ERP_ERROR_ACCOUNT")
	if cfg.ErpErrorAccount == "" {
		log.Println("Warning: ERP_ERROR_ACCOUNT not set. Transactions without a status account cannot be posted.")
	}

	cfg.MailgunDomain = viper.GetString("MAILGUN_DOMAIN")
	cfg.MailgunAPIKey = viper.GetString("MAILGUN_API_KEY")
	cfg.MailgunSender = viper.GetString("MAILGUN_SENDER")
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
		log.Println("Warning: MAILGUN_DOMAIN or MAILGUN_API_KEY not set. Posting notifications are disabled.")
	}
	if cfg.MailgunSender == "" && cfg.MailgunDomain != "" {
		cfg.MailgunSender = "postings@" + cfg.MailgunDomain
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RuleNotifyDomain = strings.TrimSpace(viper.GetString("RULE_NOTIFY_DOMAIN"))
	cfg.RuleRequireSingleCostObject = viper.GetBool("RULE_REQUIRE_SINGLE_COST_OBJECT")
	cfg.ErpDropDir = viper.GetString("ERP_DROP_DIR")
	cfg.ErpRemoteDir = viper.GetString("ERP_REMOTE_DIR")

	return cfg, nil
}

// MailgunEnabled reports whether notifications can be sent.
func (c *Config) MailgunEnabled() bool {
	return c.MailgunDomain != "" && c.MailgunAPIKey != ""
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
