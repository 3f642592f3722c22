// Package config centralises configuration parsing for the assistant.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Timezone is the fixed zone every timestamp in the system is rendered in.
// Compiled in on purpose; the assistant serves one household.
const Timezone = "Europe/Amsterdam"

// DefaultUpstreamBaseURL is the hosted API that owns books, cakes and the
// remote crochet identifier space.
const DefaultUpstreamBaseURL = "https://lilazul-api.fly.dev"

// Config captures runtime configuration for the assistant process.
type Config struct {
	HTTPAddress     string `yaml:"http_address"`
	StoreURL        string `yaml:"store_url"`
	UpstreamBaseURL string `yaml:"upstream_base_url"`
	StatePath       string `yaml:"state_path"`
	DiscordToken    string `yaml:"discord_token"`
	DiscordChannel  string `yaml:"discord_channel"`
}

// Load builds the configuration from an optional YAML file layered under
// environment variables. Environment always wins.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddress:     ":8080",
		UpstreamBaseURL: DefaultUpstreamBaseURL,
		StatePath:       "state",
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		if _, err := os.Stat("lilazul.yaml"); err == nil {
			path = "lilazul.yaml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg.HTTPAddress, "HTTP_ADDRESS")
	applyEnv(&cfg.StoreURL, "SUPABASE_DB_URL")
	if cfg.StoreURL == "" {
		applyEnv(&cfg.StoreURL, "DATABASE_URL")
	}
	applyEnv(&cfg.UpstreamBaseURL, "UPSTREAM_BASE_URL")
	applyEnv(&cfg.StatePath, "STATE_PATH")
	applyEnv(&cfg.DiscordToken, "DISCORD_TOKEN")
	applyEnv(&cfg.DiscordChannel, "DISCORD_CHANNEL_ID")

	return cfg, nil
}

func applyEnv(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*target = value
	}
}
