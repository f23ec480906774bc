package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/speedboat/dashboard/internal/core/domain"
	"github.com/speedboat/dashboard/internal/core/ports"
)

// SessionCookie is the name of the browser session cookie.
const SessionCookie = "sid"

// ContextUserKey is where the resolved user is stored on the echo context.
const ContextUserKey = "user"

// Session resolves the session cookie into a user and injects it into the
// request context. Requests without a valid session pass through with no
// user set; individual routes decide whether that is acceptable.
func Session(sessions ports.SessionStore, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			userID, err := sessions.Get(ctx, cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return next(c)
				}
				return err
			}

			user, err := users.FindByID(ctx, userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return next(c)
				}
				return err
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// RequireUser rejects requests that did not resolve to an authenticated user.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(ContextUserKey).(*domain.User); !ok {
				return domain.ErrNotAuthenticated
			}
			return next(c)
		}
	}
}
