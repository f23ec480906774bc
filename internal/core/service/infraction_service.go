package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/speedboat/dashboard/internal/core/domain"
	"github.com/speedboat/dashboard/internal/core/ports"
)

const (
	defaultInfractionLimit = 1000
	maxInfractionLimit     = 1000
)

var canFilter = map[string]bool{
	"id": true, "user_id": true, "actor_id": true, "type": true, "reason": true,
}

var canSort = map[string]bool{
	"id": true, "user_id": true, "actor_id": true,
	"created_at": true, "expires_at": true, "type": true,
}

// InfractionService lists recorded moderation actions for a guild.
type InfractionService struct {
	infractions ports.InfractionRepository
	users       ports.UserRepository
	guilds      ports.GuildService
	logger      zerolog.Logger
}

func NewInfractionService(infractions ports.InfractionRepository, users ports.UserRepository, guilds ports.GuildService, logger zerolog.Logger) *InfractionService {
	return &InfractionService{infractions: infractions, users: users, guilds: guilds, logger: logger}
}

// List returns a page of infractions with target and moderator denormalised
// into full user objects. Filters and sorts outside the whitelists are
// silently dropped, matching the permissive query contract of the dashboard.
func (s *InfractionService) List(ctx context.Context, user *domain.User, guildID string, q ports.InfractionQuery) ([]*domain.Infraction, error) {
	guild, err := s.guilds.GuildFor(ctx, user, guildID)
	if err != nil {
		return nil, err
	}

	sanitized := ports.InfractionQuery{Page: q.Page, Limit: q.Limit}
	if sanitized.Page < 1 {
		sanitized.Page = 1
	}
	if sanitized.Limit < 1 || sanitized.Limit > maxInfractionLimit {
		sanitized.Limit = defaultInfractionLimit
	}
	for _, f := range q.Filters {
		if canFilter[f.Field] {
			sanitized.Filters = append(sanitized.Filters, f)
		}
	}
	for _, srt := range q.Sorts {
		if canSort[srt.Field] {
			sanitized.Sorts = append(sanitized.Sorts, srt)
		}
	}

	records, err := s.infractions.List(ctx, guild.ID, sanitized)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(records)*2)
	for _, r := range records {
		ids = append(ids, r.UserID, r.ActorID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolve := func(id string) *domain.User {
		if u := users[id]; u != nil {
			return u
		}
		return &domain.User{ID: id}
	}

	out := make([]*domain.Infraction, 0, len(records))
	for _, r := range records {
		out = append(out, &domain.Infraction{
			ID:        r.ID,
			GuildID:   r.GuildID,
			User:      resolve(r.UserID),
			Actor:     resolve(r.ActorID),
			Type:      domain.InfractionTypeByID(r.Type),
			Reason:    r.Reason,
			ExpiresAt: r.ExpiresAt,
			CreatedAt: r.CreatedAt,
			Active:    r.Active,
			Messaged:  r.Messaged,
		})
	}
	return out, nil
}
