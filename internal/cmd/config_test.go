package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
league:
  name: SFG
  guild_id: "123"
  standings_channel: standings
  scores_channel_id: "456"
  session_timeout_minutes: 5
nats:
  url: nats://localhost:4222
identity:
  cache_ttl_minutes: 30
`)

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "SFG", config.League.Name)
	assert.Equal(t, "123", config.League.GuildID)
	assert.Equal(t, "456", config.League.ScoresChannelID)
	assert.Equal(t, 5*time.Minute, config.sessionTimeout())
	assert.Equal(t, "nats://localhost:4222", config.NATS.URL)
	assert.Equal(t, 30*time.Minute, config.identityTTL())
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "league:\n  name: SFG\n")

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "standings.json", config.League.StandingsFile)
	assert.Equal(t, "statsheet.xlsx", config.League.StatWorkbook)
	assert.Equal(t, "standings", config.League.StandingsChannel)
	assert.Equal(t, 3*time.Minute, config.sessionTimeout())
	assert.Equal(t, "LEAGUE_EVENTS", config.NATS.StreamName)
	assert.Equal(t, "league.events", config.NATS.SubjectPrefix)
	assert.Equal(t, 15*time.Minute, config.identityTTL())
	assert.Empty(t, config.NATS.URL, "events stay disabled without a url")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "league:\n  guild_id: \"123\"\nnats:\n  url: nats://file:4222\n")

	t.Setenv("GUILD_ID", "999")
	t.Setenv("NATS_URL", "nats://env:4222")
	t.Setenv("IDENTITY_CACHE_TTL_MINUTES", "45")

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "999", config.League.GuildID)
	assert.Equal(t, "nats://env:4222", config.NATS.URL)
	assert.Equal(t, 45*time.Minute, config.identityTTL())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
