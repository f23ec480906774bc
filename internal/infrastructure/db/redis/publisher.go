package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// actionsChannel is the pub/sub channel the bot process subscribes to.
const actionsChannel = "actions"

// Publisher pushes control events to the bot over Redis pub/sub.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// GuildUpdate tells the bot to reload the guild's config.
// Payload format: {"type": "GUILD_UPDATE", "id": "<guild id>"}
func (p *Publisher) GuildUpdate(ctx context.Context, guildID string) error {
	payload, err := json.Marshal(map[string]string{
		"type": "GUILD_UPDATE",
		"id":   guildID,
	})
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, actionsChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish guild update: %w", err)
	}
	return nil
}
