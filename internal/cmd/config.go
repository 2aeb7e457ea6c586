package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	League struct {
		Name             string `yaml:"name"`
		GuildID          string `yaml:"guild_id"`
		StandingsFile    string `yaml:"standings_file"`
		StatWorkbook     string `yaml:"stat_workbook"`
		LogoURL          string `yaml:"logo_url"`
		StandingsChannel string `yaml:"standings_channel"`
		ScoresChannelID  string `yaml:"scores_channel_id"`
		LogsChannelID    string `yaml:"logs_channel_id"`
		SessionTimeout   int    `yaml:"session_timeout_minutes"`
	} `yaml:"league"`
	NATS struct {
		URL           string `yaml:"url"`
		StreamName    string `yaml:"stream_name"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"nats"`
	Identity struct {
		BaseURL    string `yaml:"base_url"`
		TTLMinutes int    `yaml:"cache_ttl_minutes"`
	} `yaml:"identity"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&config)

	// env overrides for the values that differ between deployments
	config.League.GuildID = getEnv("GUILD_ID", config.League.GuildID)
	config.NATS.URL = getEnv("NATS_URL", config.NATS.URL)
	config.Identity.TTLMinutes = getEnvAsInt("IDENTITY_CACHE_TTL_MINUTES", config.Identity.TTLMinutes)

	return &config, nil
}

func applyDefaults(config *Config) {
	if config.League.StandingsFile == "" {
		config.League.StandingsFile = "standings.json"
	}
	if config.League.StatWorkbook == "" {
		config.League.StatWorkbook = "statsheet.xlsx"
	}
	if config.League.StandingsChannel == "" {
		config.League.StandingsChannel = "standings"
	}
	if config.League.SessionTimeout <= 0 {
		config.League.SessionTimeout = 3
	}
	if config.NATS.StreamName == "" {
		config.NATS.StreamName = "LEAGUE_EVENTS"
	}
	if config.NATS.SubjectPrefix == "" {
		config.NATS.SubjectPrefix = "league.events"
	}
	if config.Identity.TTLMinutes <= 0 {
		config.Identity.TTLMinutes = 15
	}
}

func (c *Config) sessionTimeout() time.Duration {
	return time.Duration(c.League.SessionTimeout) * time.Minute
}

func (c *Config) identityTTL() time.Duration {
	return time.Duration(c.Identity.TTLMinutes) * time.Minute
}
