package config

import (
	"fmt"
	"strings"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

type Config struct {
	Port             string `env:"PORT,default=8080"`
	CurrentCompanyID string `env:"CURRENT_COMPANY_ID,default=comp-001"`
	DatabaseURL      string `env:"DATABASE_URL"`
	MatchValue       int64  `env:"MATCH_VALUE,default=150000"`
	MatchCommission  int64  `env:"MATCH_COMMISSION,default=15000"`
	OpenAIKey        string `env:"OPENAI_API_KEY"`
	OpenAIModel      string `env:"OPENAI_MODEL"`
	MatchWebhookURL  string `env:"MATCH_WEBHOOK_URL"`
	CORSOrigins      string `env:"CORS_ORIGINS,default=*"`
}

// Load reads an optional .env file and decodes the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.CurrentCompanyID) == "" {
		return fmt.Errorf("CURRENT_COMPANY_ID must not be blank")
	}
	if c.MatchValue < 0 || c.MatchCommission < 0 {
		return fmt.Errorf("MATCH_VALUE and MATCH_COMMISSION must be non-negative, got %d/%d",
			c.MatchValue, c.MatchCommission)
	}
	return nil
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
