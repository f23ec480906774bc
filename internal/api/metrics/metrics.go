// Package metrics defines and registers all custom Prometheus metrics for the
// Speedboat dashboard API. It is the single source of truth for metric names,
// labels, and help strings. Request-level HTTP metrics come from the
// echoprometheus middleware and are not declared here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// LoginsTotal counts completed OAuth callback attempts.
// Label:
//   - result: "success", "invalid_state", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of OAuth login attempts, by result.",
	},
	[]string{"result"},
)

// ConfigSavesTotal counts guild config save attempts.
// Label:
//   - result: "success", "forbidden", "invalid", or "error"
var ConfigSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "config_saves_total",
		Help:      "Total number of guild config save attempts, by result.",
	},
	[]string{"result"},
)

// GuildUpdatesPublishedTotal counts GUILD_UPDATE events pushed to the bot.
var GuildUpdatesPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guild_updates_published_total",
		Help:      "Total number of GUILD_UPDATE events published to the bot.",
	},
)
