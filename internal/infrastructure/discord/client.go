// Package discord implements the small slice of the Discord REST API the
// dashboard needs: the OAuth2 code flow and the identity endpoint.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/speedboat/dashboard/internal/core/ports"
)

const (
	defaultBaseURL = "https://discord.com/api/v10"
	defaultScope   = "identify"
	clientTimeout  = 10 * time.Second
)

// Config carries the OAuth application credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Client talks to the Discord API. BaseURL is overridable for tests.
type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:     cfg,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: clientTimeout},
	}
}

// NewClientWithBaseURL is intended for tests pointing at an httptest server.
func NewClientWithBaseURL(cfg Config, baseURL string) *Client {
	c := NewClient(cfg)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// AuthorizeURL builds the browser redirect for the OAuth authorize screen.
func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", defaultScope)
	q.Set("state", state)
	return c.baseURL + "/oauth2/authorize?" + q.Encode()
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// Exchange trades an authorization code for an access token.
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok tokenResponse
	if err := c.do(req, &tok); err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	return tok.AccessToken, nil
}

// Identity fetches /users/@me for the given bearer token.
func (c *Client) Identity(ctx context.Context, accessToken string) (*ports.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/@me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var identity ports.Identity
	if err := c.do(req, &identity); err != nil {
		return nil, fmt.Errorf("fetch identity: %w", err)
	}
	return &identity, nil
}

func (c *Client) do(req *http.Request, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("discord api %s: %s", res.Status, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(res.Body).Decode(out)
}
