// Package identity resolves Roblox user IDs to guild member IDs through
// the Bloxlink public API, with a TTL cache in front to respect rate
// limits.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// DefaultBaseURL is the Bloxlink public API root.
const DefaultBaseURL = "https://api.blox.link/v4/public"

// Client calls the link service. A client with an empty API key is
// disabled: every lookup misses without touching the network.
type Client struct {
	baseURL string
	apiKey  string
	guildID string
	client  *http.Client
}

// NewClient builds a Client for one guild. apiKey may be empty.
func NewClient(baseURL, apiKey, guildID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		guildID: guildID,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// MemberForRoblox returns the guild member ID linked to a Roblox user,
// or "" when no link exists, the service declines, or the client is
// disabled. Only transport and decode failures are errors.
func (c *Client) MemberForRoblox(ctx context.Context, robloxID int64) (string, error) {
	if c.apiKey == "" {
		return "", nil
	}

	endpoint := fmt.Sprintf("%s/guilds/%s/roblox-to-discord/%d", c.baseURL, c.guildID, robloxID)
	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", nil
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("decode link response: %w", err)
	}

	// the service has shipped several field spellings over time
	if id := digitsField(data, "discordID", "discordId", "discord_id", "discord"); id != "" {
		return id, nil
	}
	if userRaw, ok := data["user"]; ok {
		var user map[string]json.RawMessage
		if err := json.Unmarshal(userRaw, &user); err == nil {
			if id := digitsField(user, "discordID", "discordId", "id"); id != "" {
				return id, nil
			}
		}
	}
	return "", nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// digitsField probes keys in order and returns the first all-digit value,
// tolerating both string and number encodings.
func digitsField(obj map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if isAllDigits(s) {
				return s
			}
			continue
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			if _, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
				return n.String()
			}
		}
	}
	return ""
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
