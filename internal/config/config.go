package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"port"`
	DatabaseURL string `mapstructure:"database_url"`
	// AuthSecret is the shared secret the identity collaborator signs
	// bearer tokens with.
	AuthSecret string `mapstructure:"auth_secret"`

	BlobDir      string        `mapstructure:"blob_dir"`
	BlobSecret   string        `mapstructure:"blob_sign_secret"`
	BlobBaseURL  string        `mapstructure:"blob_base_url"`
	ResumeURLTTL time.Duration `mapstructure:"resume_url_ttl"`

	FreemiumJobLimit   int `mapstructure:"freemium_job_limit"`
	ApplicationsPerJob int `mapstructure:"applications_per_job"`

	LogJSON bool `mapstructure:"log_json"`
	Debug   bool `mapstructure:"debug"`
}

// Load reads configuration from the environment with sane defaults.
// DATABASE_URL and AUTH_SECRET have no default and must be set.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("port", "3000")
	v.SetDefault("database_url", "")
	v.SetDefault("auth_secret", "")
	v.SetDefault("blob_dir", "data/resumes")
	v.SetDefault("blob_sign_secret", "")
	v.SetDefault("blob_base_url", "http://localhost:3000")
	v.SetDefault("resume_url_ttl", "15m")
	v.SetDefault("freemium_job_limit", 2)
	v.SetDefault("applications_per_job", 3)
	v.SetDefault("log_json", false)
	v.SetDefault("debug", false)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is required")
	}
	if cfg.BlobSecret == "" {
		// resume links are signed with the auth secret when no dedicated
		// one is configured
		cfg.BlobSecret = cfg.AuthSecret
	}
	return &cfg, nil
}
