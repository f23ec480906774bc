package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/speedboat/dashboard/internal/core/domain"
	"github.com/speedboat/dashboard/internal/core/ports"
)

// UserService serves user lookups and the caller's guild listing.
type UserService struct {
	users  ports.UserRepository
	guilds ports.GuildRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, guilds ports.GuildRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, guilds: guilds, logger: logger}
}

func (s *UserService) ByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// The admin flag is private to the /users/@me surface.
	public := *user
	public.Admin = false
	return &public, nil
}

func (s *UserService) GuildsFor(ctx context.Context, user *domain.User) ([]*domain.Guild, error) {
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}

	if user.Admin {
		guilds, err := s.guilds.All(ctx)
		if err != nil {
			return nil, err
		}
		for _, g := range guilds {
			g.Role = domain.RoleAdmin
		}
		return guilds, nil
	}

	guilds, err := s.guilds.AllForMember(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, g := range guilds {
		g.Role = g.RoleFor(user.ID)
	}
	return guilds, nil
}
