package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AdvisoryConfig holds the settings for the external language-model
// provider. It is passed explicitly into the advisory gateway at
// construction time; Configured reports whether calls should be attempted
// at all.
type AdvisoryConfig struct {
	APIKey       string
	Model        string
	Instructions string
	Timeout      time.Duration
}

// Configured reports whether the advisory provider can be called.
func (a AdvisoryConfig) Configured() bool {
	return a.APIKey != ""
}

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	CORSOrigins  []string
	RateLimit    string // ulule/limiter format, e.g. "100-M"

	Advisory AdvisoryConfig
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("ADVISORY_API_KEY", "")
	viper.SetDefault("ADVISORY_MODEL", "gemini-2.0-flash")
	viper.SetDefault("ADVISORY_INSTRUCTIONS", "")
	viper.SetDefault("ADVISORY_TIMEOUT", "20s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	for _, origin := range strings.Split(viper.GetString("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	timeoutStr := viper.GetString("ADVISORY_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 20 * time.Second
		log.Printf("Warning: Invalid value for ADVISORY_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}

	cfg.Advisory = AdvisoryConfig{
		APIKey:       viper.GetString("ADVISORY_API_KEY"),
		Model:        viper.GetString("ADVISORY_MODEL"),
		Instructions: viper.GetString("ADVISORY_INSTRUCTIONS"),
		Timeout:      timeout,
	}
	if !cfg.Advisory.Configured() {
		log.Println("Warning: ADVISORY_API_KEY not set. Advisory suggestions will use deterministic fallbacks.")
	}

	return cfg, nil
}
