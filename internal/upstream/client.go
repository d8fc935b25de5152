package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// refreshPath is the only endpoint exchanged credentials go to. A 401
// from any path under /auth is never retried: recursing into another
// refresh from a failed refresh would loop forever.
const refreshPath = "/auth/refresh-token"

// ResolveBaseURL picks the API root for a tenant. An explicit override
// from configuration always wins. Otherwise the root is derived from
// the tenant hostname: administrative calls go to the admin subdomain,
// so a hostname not already under admin. is rewritten with the prefix.
// localhost keeps the local development path.
func ResolveBaseURL(override, host string) string {
	if override != "" {
		return strings.TrimRight(override, "/")
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if host == "" || host == "localhost" || host == "127.0.0.1" {
		return "http://localhost:5000/api"
	}
	if !strings.HasPrefix(host, "admin.") {
		host = "admin." + host
	}
	return "https://" + host + "/api"
}

// Client is the authenticated HTTP client for the remote backend. All
// gateway traffic funnels through Do, which attaches the bearer token,
// refreshes it once on 401 and maps failures onto the error taxonomy
// in errors.go. Concurrent 401s share a single refresh call through
// the singleflight group.
//
// The API root is resolved per request: an explicit override always
// wins, otherwise it is derived from the tenant hostname carried in
// the request context (see WithTenantHost), falling back to the
// configured default host.
type Client struct {
	override    string
	defaultHost string

	HTTP   *http.Client
	Tokens TokenStore

	// OnSessionExpired runs after a failed refresh has cleared the
	// store, so the embedding application can force a re-login. It
	// fires once per failed refresh flight, however many requests
	// shared it.
	OnSessionExpired func()

	sf singleflight.Group
}

// New returns a Client backed by the given token store. override, when
// non-empty, pins every request to that API root; defaultHost is the
// tenant hostname used when a request's context does not carry one.
func New(override, defaultHost string, tokens TokenStore) *Client {
	return &Client{
		override:    strings.TrimRight(override, "/"),
		defaultHost: defaultHost,
		HTTP:        &http.Client{Timeout: 15 * time.Second},
		Tokens:      tokens,
	}
}

type hostKey struct{}

// WithTenantHost returns a context carrying the tenant hostname the
// request's API root is derived from.
func WithTenantHost(ctx context.Context, host string) context.Context {
	return context.WithValue(ctx, hostKey{}, host)
}

// HostFromContext returns the tenant hostname stored by WithTenantHost,
// or empty when none is set.
func HostFromContext(ctx context.Context) string {
	v, _ := ctx.Value(hostKey{}).(string)
	return v
}

// Root resolves the API root for one request: the override when set,
// otherwise the base URL derived from the context's tenant hostname
// (default host as fallback).
func (c *Client) Root(ctx context.Context) string {
	if c.override != "" {
		return c.override
	}
	host := HostFromContext(ctx)
	if host == "" {
		host = c.defaultHost
	}
	return ResolveBaseURL("", host)
}

// Do performs one request against the backend and returns the raw
// response body. body is JSON-encoded when non-nil. Non-2xx responses
// come back as *APIError; transport failures wrap ErrUnreachable.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}
	return c.doRaw(ctx, method, path, query, payload, "application/json")
}

// doRaw sends the prepared payload, retrying exactly once after a
// successful token refresh when the first attempt came back 401.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, payload []byte, contentType string) ([]byte, error) {
	tok, err := c.Tokens.Load(ctx)
	if err != nil {
		log.Printf("upstream: token load failed: %v", err)
	}
	// A token already past its exp claim is refreshed up front instead
	// of burning a round trip on a guaranteed 401.
	if !isAuthPath(path) && tok.RefreshToken != "" && accessTokenStale(tok.AccessToken) {
		if tok, err = c.refresh(ctx); err != nil {
			return nil, err
		}
	}

	status, respBody, err := c.send(ctx, method, path, query, payload, contentType, tok.AccessToken)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized && !isAuthPath(path) {
		tok, err = c.refresh(ctx)
		if err != nil {
			return nil, err
		}
		status, respBody, err = c.send(ctx, method, path, query, payload, contentType, tok.AccessToken)
		if err != nil {
			return nil, err
		}
	}
	if status < 200 || status > 299 {
		return nil, decodeError(status, respBody)
	}
	return respBody, nil
}

// send performs a single HTTP round trip.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, contentType, bearer string) (int, []byte, error) {
	u := c.Root(ctx) + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return resp.StatusCode, b, nil
}

// refresh exchanges the stored refresh token for a new pair. All
// concurrent callers share one POST through the singleflight group and
// all of them observe the same outcome. On failure the store is
// cleared and OnSessionExpired fires inside the flight, exactly once,
// before every sharing caller gets ErrSessionExpired back.
func (c *Client) refresh(ctx context.Context) (Token, error) {
	v, err, _ := c.sf.Do("refresh", func() (any, error) {
		next, err := c.refreshOnce(ctx)
		if err != nil {
			log.Printf("upstream: token refresh failed: %v", err)
			if cerr := c.Tokens.Clear(ctx); cerr != nil {
				log.Printf("upstream: token clear failed: %v", cerr)
			}
			if c.OnSessionExpired != nil {
				c.OnSessionExpired()
			}
			return Token{}, fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}
		return next, nil
	})
	if err != nil {
		return Token{}, err
	}
	return v.(Token), nil
}

func (c *Client) refreshOnce(ctx context.Context) (Token, error) {
	tok, err := c.Tokens.Load(ctx)
	if err != nil {
		return Token{}, err
	}
	if tok.RefreshToken == "" {
		return Token{}, fmt.Errorf("no refresh token stored")
	}
	payload, _ := json.Marshal(map[string]string{"refreshToken": tok.RefreshToken})
	status, body, err := c.send(ctx, http.MethodPost, refreshPath, nil, payload, "application/json", "")
	if err != nil {
		return Token{}, err
	}
	if status < 200 || status > 299 {
		return Token{}, decodeError(status, body)
	}
	next, err := decodeTokenPair(body, tok)
	if err != nil {
		return Token{}, err
	}
	if err := c.Tokens.Save(ctx, next); err != nil {
		log.Printf("upstream: token save failed: %v", err)
	}
	return next, nil
}

// decodeTokenPair reads the refresh response, tolerating both casings
// the backend emits. A response without a usable access token is a
// hard error. The old refresh token is kept when the backend does not
// rotate it.
func decodeTokenPair(body []byte, prev Token) (Token, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Token{}, fmt.Errorf("decode refresh response: %w", err)
	}
	next := Token{
		AccessToken:  stringKey(raw, "accessToken"),
		RefreshToken: stringKey(raw, "refreshToken"),
	}
	if next.AccessToken == "" {
		return Token{}, fmt.Errorf("refresh response missing access token")
	}
	if next.RefreshToken == "" {
		next.RefreshToken = prev.RefreshToken
	}
	return next, nil
}

// stringKey reads a string field by its camelCase key with the
// PascalCase fallback used across the backend.
func stringKey(raw map[string]any, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	if v, ok := raw[strings.ToUpper(key[:1])+key[1:]].(string); ok {
		return v
	}
	return ""
}

func isAuthPath(path string) bool {
	return strings.Contains(path, "/auth/")
}

// Get issues a GET and returns the raw body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// GetJSON issues a GET and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	b, err := c.Get(ctx, path, query)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil, nil)
	return err
}
