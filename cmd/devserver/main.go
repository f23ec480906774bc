package main

import (
	"net/http"
	"os"

	"github.com/speedboat/dashboard/internal/infrastructure/proxy"
	"github.com/speedboat/dashboard/pkg/logger"
)

// The dev server exists for local development and containerized previews
// only; production traffic never flows through it.
func main() {
	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: true,
	})

	env := os.Getenv("ENV")
	upstream := proxy.UpstreamFor(env, os.Getenv("UPSTREAM"))

	dist := os.Getenv("DIST_DIR")
	if dist == "" {
		dist = "dist"
	}

	srv, err := proxy.New(upstream, dist, log)
	if err != nil {
		log.Fatal().Err(err).Str("upstream", upstream).Msg("invalid upstream url")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "80"
	}
	addr := ":" + port

	if cert, key, ok := proxy.TLSFiles("ssl"); ok {
		log.Info().Str("addr", addr).Str("upstream", upstream).Msg("dev server listening (https)")
		if err := http.ListenAndServeTLS(addr, cert, key, srv); err != nil {
			log.Fatal().Err(err).Msg("dev server stopped")
		}
		return
	}

	log.Info().Str("addr", addr).Str("upstream", upstream).Msg("dev server listening")
	if err := http.ListenAndServe(addr, srv); err != nil {
		log.Fatal().Err(err).Msg("dev server stopped")
	}
}
