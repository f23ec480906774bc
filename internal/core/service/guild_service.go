package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/speedboat/dashboard/internal/core/domain"
	"github.com/speedboat/dashboard/internal/core/ports"
)

const configHistoryPerPage = 25

// GuildService resolves guild access and manages the per-guild YAML config.
type GuildService struct {
	guilds    ports.GuildRepository
	users     ports.UserRepository
	messages  ports.MessageRepository
	publisher ports.EventPublisher
	logger    zerolog.Logger
}

func NewGuildService(guilds ports.GuildRepository, users ports.UserRepository, messages ports.MessageRepository, publisher ports.EventPublisher, logger zerolog.Logger) *GuildService {
	return &GuildService{guilds: guilds, users: users, messages: messages, publisher: publisher, logger: logger}
}

// GuildFor loads a guild and attaches the caller's role. Global admins get
// the admin role on every guild; everyone else needs an entry in the config
// web access map. A guild that grants no role is indistinguishable from a
// missing guild.
func (s *GuildService) GuildFor(ctx context.Context, user *domain.User, guildID string) (*domain.Guild, error) {
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}

	guild, err := s.guilds.FindByID(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if user.Admin {
		guild.Role = domain.RoleAdmin
		return guild, nil
	}

	role := guild.RoleFor(user.ID)
	if role == "" {
		return nil, domain.ErrGuildNotFound
	}
	guild.Role = role
	return guild, nil
}

// Config returns the raw YAML text exactly as last saved. Guilds created
// before raw storage existed only have the parsed form; those are re-rendered.
func (s *GuildService) Config(ctx context.Context, user *domain.User, guildID string) (string, error) {
	guild, err := s.GuildFor(ctx, user, guildID)
	if err != nil {
		return "", err
	}

	if guild.ConfigRaw != "" {
		return guild.ConfigRaw, nil
	}

	out, err := yaml.Marshal(guild.Config)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// SetConfig validates and persists a new config blob. The write is
// last-write-wins: concurrent editors overwrite each other and no version
// check is performed.
//
// Access rules:
//   - viewers may not save at all
//   - editors may not touch the web access map
//   - nobody may change their own role, except global admins
func (s *GuildService) SetConfig(ctx context.Context, user *domain.User, guildID string, raw string) error {
	guild, err := s.GuildFor(ctx, user, guildID)
	if err != nil {
		return err
	}

	if guild.Role != domain.RoleAdmin && guild.Role != domain.RoleEditor {
		return domain.ErrForbidden
	}

	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(raw), &parsed); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	before := guild.WebACL()
	after := domain.WebACLFromConfig(parsed)

	if guild.Role != domain.RoleAdmin && !aclEqual(before, after) {
		return domain.ErrForbidden
	}

	if after[user.ID] != guild.Role && !user.Admin {
		return fmt.Errorf("%w: cannot change your own permissions", domain.ErrInvalidConfig)
	}

	if err := s.guilds.UpdateConfig(ctx, guild.ID, raw, parsed); err != nil {
		return err
	}

	if err := s.guilds.RecordConfigChange(ctx, ports.ConfigChangeRecord{
		GuildID:   guild.ID,
		UserID:    user.ID,
		Before:    guild.ConfigRaw,
		After:     raw,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		s.logger.Error().Err(err).Str("guild_id", guild.ID).Msg("failed to record config change")
	}

	if err := s.publisher.GuildUpdate(ctx, guild.ID); err != nil {
		s.logger.Error().Err(err).Str("guild_id", guild.ID).Msg("failed to publish guild update")
	}

	s.logger.Info().Str("guild_id", guild.ID).Str("user_id", user.ID).Msg("guild config updated")
	return nil
}

func (s *GuildService) ConfigHistory(ctx context.Context, user *domain.User, guildID string, page int) ([]*domain.ConfigChange, error) {
	guild, err := s.GuildFor(ctx, user, guildID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	records, err := s.guilds.ConfigHistory(ctx, guild.ID, page, configHistoryPerPage)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.UserID)
	}
	authors, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	changes := make([]*domain.ConfigChange, 0, len(records))
	for _, r := range records {
		author := authors[r.UserID]
		if author == nil {
			author = &domain.User{ID: r.UserID}
		}
		changes = append(changes, &domain.ConfigChange{
			User:      author,
			Before:    r.Before,
			After:     r.After,
			CreatedAt: r.CreatedAt,
		})
	}
	return changes, nil
}

func (s *GuildService) MessageStats(ctx context.Context, user *domain.User, guildID string, days int) ([]domain.MessageStat, error) {
	guild, err := s.GuildFor(ctx, user, guildID)
	if err != nil {
		return nil, err
	}

	if days < 1 || days > 90 {
		days = 7
	}
	return s.messages.CountByDay(ctx, guild.ID, days)
}

func aclEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
