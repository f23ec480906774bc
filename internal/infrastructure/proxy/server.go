// Package proxy implements the local development server: it forwards /api
// traffic to a running dashboard backend and serves the built frontend for
// every other path, with a single-page fallback to index.html.
package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const (
	defaultUpstream = "http://localhost:8686"
	dockerUpstream  = "http://web:8686"
)

// UpstreamFor selects the backend origin for the given environment. An
// explicit override always wins.
func UpstreamFor(env, override string) string {
	if override != "" {
		return override
	}
	if env == "docker" {
		return dockerUpstream
	}
	return defaultUpstream
}

// Server is the dev proxy/static handler.
type Server struct {
	proxy  *httputil.ReverseProxy
	dist   string
	logger zerolog.Logger
}

// New builds a Server forwarding /api to upstream and serving static files
// from dist. Returns an error only when the upstream URL is unparseable.
func New(upstream, dist string, logger zerolog.Logger) (*Server, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, err
	}

	rp := httputil.NewSingleHostReverseProxy(target)
	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("upstream request failed")
		w.WriteHeader(http.StatusBadGateway)
	}

	return &Server{proxy: rp, dist: dist, logger: logger}, nil
}

// ServeHTTP routes /api to the upstream, everything else to static files.
// Headers pass through untouched in both directions.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api") {
		s.proxy.ServeHTTP(w, r)
		return
	}
	s.serveStatic(w, r)
}

// serveStatic serves the requested file from the dist dir, falling back to
// index.html so client-side routes resolve on hard refresh.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.dist, filepath.Clean("/"+r.URL.Path))

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(s.dist, "index.html"))
		return
	}
	http.ServeFile(w, r, path)
}

// TLSFiles reports the cert/key pair under sslDir when both exist. The dev
// server switches to HTTPS only when a pair is present.
func TLSFiles(sslDir string) (cert string, key string, ok bool) {
	cert = filepath.Join(sslDir, "certificate.pem")
	key = filepath.Join(sslDir, "key.pem")
	if _, err := os.Stat(cert); err != nil {
		return "", "", false
	}
	if _, err := os.Stat(key); err != nil {
		return "", "", false
	}
	return cert, key, true
}
