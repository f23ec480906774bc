package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/speedboat/dashboard/internal/api/metrics"
	"github.com/speedboat/dashboard/internal/core/domain"
	"github.com/speedboat/dashboard/internal/core/ports"
)

type GuildHandler struct {
	guildService      ports.GuildService
	infractionService ports.InfractionService
}

func NewGuildHandler(guildService ports.GuildService, infractionService ports.InfractionService) *GuildHandler {
	return &GuildHandler{guildService: guildService, infractionService: infractionService}
}

type configResponse struct {
	Contents string `json:"contents"`
}

type setConfigRequest struct {
	Config string `json:"config" validate:"required"`
}

// Get returns a guild with the caller's role attached.
//
// @Summary      Get a guild
// @Tags         guilds
// @Produce      json
// @Param        gid  path      string  true  "Guild id"
// @Success      200  {object}  domain.Guild
// @Failure      404  {object}  errorResponse
// @Router       /api/guilds/{gid} [get]
func (h *GuildHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	guild, err := h.guildService.GuildFor(c.Request().Context(), user, c.Param("gid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, guild)
}

// GetConfig returns the guild's raw YAML config.
//
// @Summary      Get guild config
// @Tags         guilds
// @Produce      json
// @Param        gid  path      string  true  "Guild id"
// @Success      200  {object}  configResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/guilds/{gid}/config [get]
func (h *GuildHandler) GetConfig(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	contents, err := h.guildService.Config(c.Request().Context(), user, c.Param("gid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, configResponse{Contents: contents})
}

// SetConfig persists a new YAML config for the guild. Last write wins; the
// save carries no version information.
//
// @Summary      Save guild config
// @Tags         guilds
// @Accept       json
// @Param        gid   path  string            true  "Guild id"
// @Param        body  body  setConfigRequest  true  "New config"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/guilds/{gid}/config [post]
func (h *GuildHandler) SetConfig(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req setConfigRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.guildService.SetConfig(c.Request().Context(), user, c.Param("gid"), req.Config)
	switch {
	case err == nil:
		metrics.ConfigSavesTotal.WithLabelValues("success").Inc()
		metrics.GuildUpdatesPublishedTotal.Inc()
		return c.NoContent(http.StatusOK)
	case errors.Is(err, domain.ErrForbidden):
		metrics.ConfigSavesTotal.WithLabelValues("forbidden").Inc()
	case errors.Is(err, domain.ErrInvalidConfig):
		metrics.ConfigSavesTotal.WithLabelValues("invalid").Inc()
	default:
		metrics.ConfigSavesTotal.WithLabelValues("error").Inc()
	}
	return err
}

// ConfigHistory returns a page of config edits, newest first.
//
// @Summary      Guild config history
// @Tags         guilds
// @Produce      json
// @Param        gid   path   string  true   "Guild id"
// @Param        page  query  int     false  "Page (1-based)"
// @Success      200  {array}  domain.ConfigChange
// @Router       /api/guilds/{gid}/config/history [get]
func (h *GuildHandler) ConfigHistory(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	changes, err := h.guildService.ConfigHistory(c.Request().Context(), user, c.Param("gid"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, changes)
}

// Infractions lists recorded moderation actions for the guild.
//
// The filtered and sorted query params carry JSON arrays in the shape the
// table widget sends: [{"id": "<field>", "value": "..."}] and
// [{"id": "<field>", "desc": true}].
//
// @Summary      List guild infractions
// @Tags         guilds
// @Produce      json
// @Param        gid       path   string  true   "Guild id"
// @Param        page      query  int     false  "Page (1-based)"
// @Param        limit     query  int     false  "Page size (max 1000)"
// @Param        filtered  query  string  false  "JSON filter spec"
// @Param        sorted    query  string  false  "JSON sort spec"
// @Success      200  {array}  domain.Infraction
// @Router       /api/guilds/{gid}/infractions [get]
func (h *GuildHandler) Infractions(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	q := ports.InfractionQuery{}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	if raw := c.QueryParam("filtered"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.Filters); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid filter spec")
		}
	}
	if raw := c.QueryParam("sorted"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.Sorts); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid sort spec")
		}
	}

	infractions, err := h.infractionService.List(c.Request().Context(), user, c.Param("gid"), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, infractions)
}

// MessageStats returns the per-day message volume series for the guild.
//
// @Summary      Guild message stats
// @Tags         guilds
// @Produce      json
// @Param        gid     path   string  true   "Guild id"
// @Param        unit    query  string  false  "Bucket unit (only days)"
// @Param        amount  query  int     false  "Window size"
// @Success      200  {array}  domain.MessageStat
// @Router       /api/guilds/{gid}/stats/messages [get]
func (h *GuildHandler) MessageStats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if unit := c.QueryParam("unit"); unit != "" && unit != "days" {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported unit")
	}
	amount, _ := strconv.Atoi(c.QueryParam("amount"))

	stats, err := h.guildService.MessageStats(c.Request().Context(), user, c.Param("gid"), amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
