package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/speedboat/dashboard/internal/api/metrics"
	"github.com/speedboat/dashboard/internal/api/middleware"
	"github.com/speedboat/dashboard/internal/core/domain"
	"github.com/speedboat/dashboard/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	secureCookie bool
}

// NewAuthHandler creates the OAuth login handlers. secureCookie should be
// true whenever the dashboard is served over HTTPS.
func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// Login redirects the browser into the Discord OAuth authorize flow.
//
// @Summary      Start Discord OAuth login
// @Tags         auth
// @Success      302
// @Router       /api/auth/discord [get]
func (h *AuthHandler) Login(c echo.Context) error {
	url, err := h.authService.LoginURL()
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, url)
}

// Callback completes the OAuth flow, opens a session and sends the browser
// back to the dashboard root.
//
// @Summary      Discord OAuth callback
// @Tags         auth
// @Param        code   query  string  true  "Authorization code"
// @Param        state  query  string  true  "Signed state value"
// @Success      302
// @Failure      400  {object}  errorResponse
// @Router       /api/auth/discord/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "missing authorization code")
	}

	sid, err := h.authService.Callback(c.Request().Context(), code, state)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			metrics.LoginsTotal.WithLabelValues("invalid_state").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/")
}

// Logout tears down the current session.
//
// @Summary      Logout
// @Tags         auth
// @Success      200
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	// Expire the cookie regardless of whether a session existed.
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusOK)
}
