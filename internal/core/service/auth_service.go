package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/speedboat/dashboard/internal/core/domain"
	"github.com/speedboat/dashboard/internal/core/ports"
)

const stateTTL = 10 * time.Minute

// AuthService implements the Discord OAuth login flow and session lifecycle.
type AuthService struct {
	provider    ports.OAuthProvider
	users       ports.UserRepository
	sessions    ports.SessionStore
	stateSecret string
	sessionTTL  time.Duration
	logger      zerolog.Logger
}

func NewAuthService(provider ports.OAuthProvider, users ports.UserRepository, sessions ports.SessionStore, stateSecret string, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		provider:    provider,
		users:       users,
		sessions:    sessions,
		stateSecret: stateSecret,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

func (s *AuthService) LoginURL() (string, error) {
	state, err := s.signState()
	if err != nil {
		return "", err
	}
	return s.provider.AuthorizeURL(state), nil
}

func (s *AuthService) Callback(ctx context.Context, code, state string) (string, error) {
	if err := s.verifyState(state); err != nil {
		return "", err
	}

	token, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return "", err
	}

	identity, err := s.provider.Identity(ctx, token)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:       identity.ID,
		Username: identity.Username,
		Avatar:   identity.Avatar,
		Bot:      identity.Bot,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return "", err
	}

	sid, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user logged in")
	return sid, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// signState issues a short-lived HS256 token used as the OAuth state value,
// binding the callback to a login started by this service.
func (s *AuthService) signState() (string, error) {
	claims := jwt.MapClaims{
		"purpose": "oauth_state",
		"exp":     time.Now().Add(stateTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.stateSecret))
}

func (s *AuthService) verifyState(state string) error {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(state, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.stateSecret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.ErrInvalidState
	}
	if purpose, _ := claims["purpose"].(string); purpose != "oauth_state" {
		return domain.ErrInvalidState
	}
	return nil
}
