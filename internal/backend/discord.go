package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

const discordBotPath = "/api/manage/admin/discord-bot"

// GetBotConfig returns the Discord bot registration state.
func (c *Client) GetBotConfig(ctx context.Context) (*BotConfig, error) {
	var cfg BotConfig
	if err := c.makeRequest(ctx, http.MethodGet, discordBotPath+"/config", nil, nil, &cfg); err != nil {
		return nil, fmt.Errorf("getting bot config: %w", err)
	}
	return &cfg, nil
}

// CreateBotConfig registers the Discord bot with the given token.
// The server rejects a second registration with 409.
func (c *Client) CreateBotConfig(ctx context.Context, botToken string) (*BotConfig, error) {
	body := struct {
		BotToken string `json:"bot_token"`
	}{BotToken: botToken}
	var cfg BotConfig
	if err := c.makeRequest(ctx, http.MethodPost, discordBotPath+"/config", nil, body, &cfg); err != nil {
		return nil, fmt.Errorf("creating bot config: %w", err)
	}
	return &cfg, nil
}

// DeleteBotConfig removes the Discord bot registration.
func (c *Client) DeleteBotConfig(ctx context.Context) error {
	if err := c.makeRequest(ctx, http.MethodDelete, discordBotPath+"/config", nil, nil, nil); err != nil {
		return fmt.Errorf("deleting bot config: %w", err)
	}
	return nil
}

// ListGuildConfigs returns every configured Discord guild.
func (c *Client) ListGuildConfigs(ctx context.Context) ([]GuildConfig, error) {
	var guilds []GuildConfig
	if err := c.makeRequest(ctx, http.MethodGet, discordBotPath+"/guilds", nil, nil, &guilds); err != nil {
		return nil, fmt.Errorf("listing guild configs: %w", err)
	}
	return guilds, nil
}

// UpdateGuildConfig updates a single guild's configuration.
func (c *Client) UpdateGuildConfig(ctx context.Context, guild GuildConfig) (*GuildConfig, error) {
	path := fmt.Sprintf("%s/guilds/%s", discordBotPath, guild.ID)
	var updated GuildConfig
	if err := c.makeRequest(ctx, http.MethodPatch, path, nil, guild, &updated); err != nil {
		return nil, fmt.Errorf("updating guild config: %w", err)
	}
	return &updated, nil
}

// DeleteGuildConfig removes a guild and all of its channel configs.
// Destructive; callers confirm with the user first.
func (c *Client) DeleteGuildConfig(ctx context.Context, id uuid.UUID) error {
	path := fmt.Sprintf("%s/guilds/%s", discordBotPath, id)
	if err := c.makeRequest(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("deleting guild config: %w", err)
	}
	return nil
}

// ListChannelConfigs returns the channel configurations of a guild.
func (c *Client) ListChannelConfigs(ctx context.Context, guildID string) ([]ChannelConfig, error) {
	q := url.Values{}
	q.Set("guild_id", guildID)
	var channels []ChannelConfig
	if err := c.makeRequest(ctx, http.MethodGet, discordBotPath+"/channels", q, nil, &channels); err != nil {
		return nil, fmt.Errorf("listing channel configs: %w", err)
	}
	return channels, nil
}

// UpdateChannelConfigs submits only the changed channel rows. The write is
// atomic: all rows in the diff succeed or all fail.
func (c *Client) UpdateChannelConfigs(ctx context.Context, changed []ChannelConfig) ([]ChannelConfig, error) {
	var updated []ChannelConfig
	if err := c.makeRequest(ctx, http.MethodPatch, discordBotPath+"/channels", nil, changed, &updated); err != nil {
		return nil, fmt.Errorf("updating channel configs: %w", err)
	}
	return updated, nil
}
