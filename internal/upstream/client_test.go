package upstream

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.Handler, tok Token) (*Client, *MemoryTokenStore, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	store := NewMemoryTokenStore()
	if err := store.Save(context.Background(), tok); err != nil {
		t.Fatal(err)
	}
	return New(srv.URL, "", store), store, srv
}

func TestBearerTokenAttached(t *testing.T) {
	var got string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})
	c, _, _ := newTestClient(t, h, Token{AccessToken: "abc"})

	if _, err := c.Get(context.Background(), "/things", nil); err != nil {
		t.Fatal(err)
	}
	if got != "Bearer abc" {
		t.Errorf("Authorization = %q, want Bearer abc", got)
	}
}

func TestRefreshAndRetryOn401(t *testing.T) {
	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["refreshToken"] != "refresh-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"accessToken": "fresh", "refreshToken": "refresh-2",
		})
	})
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	c, store, _ := newTestClient(t, mux, Token{AccessToken: "stale", RefreshToken: "refresh-1"})

	if _, err := c.Get(context.Background(), "/things", nil); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if n := atomic.LoadInt32(&refreshCalls); n != 1 {
		t.Errorf("refresh calls = %d, want 1", n)
	}
	tok, _ := store.Load(context.Background())
	if tok.AccessToken != "fresh" || tok.RefreshToken != "refresh-2" {
		t.Errorf("rotated pair not persisted: %+v", tok)
	}
}

func TestConcurrent401sShareOneRefresh(t *testing.T) {
	var refreshCalls, retried int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		time.Sleep(100 * time.Millisecond) // hold the flight open for the second caller
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh"})
	})
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer fresh" {
			atomic.AddInt32(&retried, 1)
			_, _ = w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	c, _, _ := newTestClient(t, mux, Token{AccessToken: "stale", RefreshToken: "refresh-1"})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Get(context.Background(), "/things", nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("request %d failed: %v", i, err)
		}
	}
	if n := atomic.LoadInt32(&refreshCalls); n != 1 {
		t.Errorf("refresh calls = %d, want exactly 1", n)
	}
	if n := atomic.LoadInt32(&retried); n != 2 {
		t.Errorf("retried with fresh token %d times, want 2", n)
	}
}

func TestRefreshFailureTearsDownSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c, store, _ := newTestClient(t, mux, Token{AccessToken: "stale", RefreshToken: "bad"})
	var expired bool
	c.OnSessionExpired = func() { expired = true }

	_, err := c.Get(context.Background(), "/things", nil)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
	if !expired {
		t.Error("OnSessionExpired was not invoked")
	}
	tok, _ := store.Load(context.Background())
	if tok.AccessToken != "" || tok.RefreshToken != "" {
		t.Errorf("credentials not cleared: %+v", tok)
	}
}

func TestAuthEndpointsNeverTriggerRefresh(t *testing.T) {
	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c, _, _ := newTestClient(t, mux, Token{RefreshToken: "refresh-1"})

	_, err := c.Post(context.Background(), "/auth/login", map[string]string{"email": "x"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Fatalf("expected a plain 401 APIError, got %v", err)
	}
	if n := atomic.LoadInt32(&refreshCalls); n != 0 {
		t.Errorf("login 401 caused %d refresh attempts, want 0", n)
	}
}

// makeJWT builds an unsigned token whose only claim is the given exp.
func makeJWT(exp int64) string {
	enc := func(v any) string {
		b, _ := json.Marshal(v)
		return base64.RawURLEncoding.EncodeToString(b)
	}
	return enc(map[string]string{"alg": "none", "typ": "JWT"}) + "." +
		enc(map[string]int64{"exp": exp}) + "."
}

func TestExpiredAccessTokenRefreshedUpFront(t *testing.T) {
	var dataAuth []string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh"})
	})
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		dataAuth = append(dataAuth, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	})
	expired := makeJWT(time.Now().Add(-time.Hour).Unix())
	c, _, _ := newTestClient(t, mux, Token{AccessToken: expired, RefreshToken: "refresh-1"})

	if _, err := c.Get(context.Background(), "/things", nil); err != nil {
		t.Fatal(err)
	}
	if len(dataAuth) != 1 || dataAuth[0] != "Bearer fresh" {
		t.Errorf("expected a single request with the fresh token, got %v", dataAuth)
	}
}

func TestAccessTokenStale(t *testing.T) {
	if !accessTokenStale("") {
		t.Error("empty token is stale")
	}
	if accessTokenStale("opaque-not-a-jwt") {
		t.Error("non-JWT tokens are left to the backend to judge")
	}
	if !accessTokenStale(makeJWT(time.Now().Add(-time.Minute).Unix())) {
		t.Error("past exp should read as stale")
	}
	if accessTokenStale(makeJWT(time.Now().Add(time.Hour).Unix())) {
		t.Error("future exp should not read as stale")
	}
}

func TestErrorTaxonomy(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/validation", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": map[string][]string{
				"name":  {"Name is required"},
				"email": {"Email is invalid", "Email is taken"},
			},
		})
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "db timeout"})
	})
	c, _, _ := newTestClient(t, mux, Token{AccessToken: "abc"})
	ctx := context.Background()

	_, err := c.Get(ctx, "/validation", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %v", err)
	}
	want := "email: Email is invalid; Email is taken\nname: Name is required"
	if apiErr.Message != want {
		t.Errorf("validation message = %q, want %q", apiErr.Message, want)
	}
	if len(apiErr.Fields) != 2 {
		t.Errorf("fields not preserved: %v", apiErr.Fields)
	}

	_, err = c.Get(ctx, "/missing", nil)
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Fatalf("want 404 APIError, got %v", err)
	}

	_, err = c.Get(ctx, "/boom", nil)
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 500 {
		t.Fatalf("want 500 APIError, got %v", err)
	}
	if apiErr.Message != "the server encountered an error: db timeout" {
		t.Errorf("5xx detail not surfaced: %q", apiErr.Message)
	}
}

func TestTransportFailureIsUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", "", NewMemoryTokenStore())
	_, err := c.Get(context.Background(), "/things", nil)
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
}

func TestDecodeTokenPairCasingAndRotation(t *testing.T) {
	prev := Token{RefreshToken: "keep-me"}
	tok, err := decodeTokenPair([]byte(`{"AccessToken":"a"}`), prev)
	if err != nil {
		t.Fatal(err)
	}
	if tok.AccessToken != "a" {
		t.Errorf("PascalCase access token not read: %+v", tok)
	}
	if tok.RefreshToken != "keep-me" {
		t.Errorf("unrotated refresh token should be kept: %+v", tok)
	}
	if _, err := decodeTokenPair([]byte(`{}`), prev); err == nil {
		t.Error("missing access token must be an error")
	}
}

func TestResolveBaseURL(t *testing.T) {
	cases := []struct {
		override, host, want string
	}{
		{"https://api.example.com/", "", "https://api.example.com"},
		{"", "localhost:3000", "http://localhost:5000/api"},
		{"", "127.0.0.1", "http://localhost:5000/api"},
		{"", "", "http://localhost:5000/api"},
		{"", "bistro.restx.app", "https://admin.bistro.restx.app/api"},
		{"", "admin.bistro.restx.app", "https://admin.bistro.restx.app/api"},
		{"", "bistro.restx.app:8443", "https://admin.bistro.restx.app/api"},
	}
	for _, tc := range cases {
		if got := ResolveBaseURL(tc.override, tc.host); got != tc.want {
			t.Errorf("ResolveBaseURL(%q, %q) = %q, want %q", tc.override, tc.host, got, tc.want)
		}
	}
}

func TestRootDerivedFromRequestHost(t *testing.T) {
	c := New("", "bistro.restx.app", NewMemoryTokenStore())

	if got := c.Root(context.Background()); got != "https://admin.bistro.restx.app/api" {
		t.Errorf("default host root = %q", got)
	}
	// A request carrying its own tenant hostname must not be routed to
	// the configured default tenant's backend.
	ctx := WithTenantHost(context.Background(), "cafe.restx.app")
	if got := c.Root(ctx); got != "https://admin.cafe.restx.app/api" {
		t.Errorf("per-request root = %q, want the cafe tenant's backend", got)
	}

	pinned := New("http://127.0.0.1:9/api/", "bistro.restx.app", NewMemoryTokenStore())
	if got := pinned.Root(ctx); got != "http://127.0.0.1:9/api" {
		t.Errorf("override must win over the request host, got %q", got)
	}
}

func TestRefreshFailureTeardownRunsOnce(t *testing.T) {
	var expiredCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond) // hold the flight open for the second caller
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c, _, _ := newTestClient(t, mux, Token{AccessToken: "stale", RefreshToken: "bad"})
	c.OnSessionExpired = func() { atomic.AddInt32(&expiredCalls, 1) }

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Get(context.Background(), "/things", nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, ErrSessionExpired) {
			t.Errorf("request %d: err = %v, want ErrSessionExpired", i, err)
		}
	}
	if n := atomic.LoadInt32(&expiredCalls); n != 1 {
		t.Errorf("OnSessionExpired fired %d times for one failed flight, want 1", n)
	}
}

func TestQueryParamsEncoded(t *testing.T) {
	var gotQuery string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = fmt.Fprint(w, `{}`)
	})
	c, _, _ := newTestClient(t, h, Token{AccessToken: "abc"})
	q := map[string][]string{"pageNumber": {"2"}, "search": {"le bistro"}}
	if _, err := c.Get(context.Background(), "/reservations", q); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "pageNumber=2&search=le+bistro" {
		t.Errorf("query = %q", gotQuery)
	}
}
