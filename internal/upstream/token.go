package upstream

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// Token is the credential pair persisted between requests. AccessToken
// is attached as a bearer header; RefreshToken buys a new access token
// when the old one is rejected or known to be stale.
type Token struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenStore persists the credential pair. Implementations must be
// safe for concurrent use; the client may load from several in-flight
// requests while a refresh saves.
type TokenStore interface {
	Load(ctx context.Context) (Token, error)
	Save(ctx context.Context, t Token) error
	Clear(ctx context.Context) error
}

// MemoryTokenStore keeps the token pair in memory. It is the default
// store and the one used by tests.
type MemoryTokenStore struct {
	mu sync.RWMutex
	t  Token
}

// NewMemoryTokenStore returns an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

func (s *MemoryTokenStore) Load(ctx context.Context) (Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t, nil
}

func (s *MemoryTokenStore) Save(ctx context.Context, t Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = t
	return nil
}

func (s *MemoryTokenStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = Token{}
	return nil
}

// RedisTokenStore persists the credential pair in Redis so the pair
// survives gateway restarts and is shared between replicas.
type RedisTokenStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisTokenStore returns a store writing under "<prefix>:access"
// and "<prefix>:refresh". The client must be non-nil and reachable;
// callers fall back to the in-memory store otherwise.
func NewRedisTokenStore(rdb *redis.Client, prefix string) *RedisTokenStore {
	if prefix == "" {
		prefix = "auth:token"
	}
	return &RedisTokenStore{rdb: rdb, prefix: prefix}
}

func (s *RedisTokenStore) Load(ctx context.Context) (Token, error) {
	vals, err := s.rdb.MGet(ctx, s.prefix+":access", s.prefix+":refresh").Result()
	if err != nil {
		return Token{}, err
	}
	var t Token
	if v, ok := vals[0].(string); ok {
		t.AccessToken = v
	}
	if v, ok := vals[1].(string); ok {
		t.RefreshToken = v
	}
	return t, nil
}

func (s *RedisTokenStore) Save(ctx context.Context, t Token) error {
	if err := s.rdb.Set(ctx, s.prefix+":access", t.AccessToken, 0).Err(); err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.prefix+":refresh", t.RefreshToken, 0).Err()
}

func (s *RedisTokenStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.prefix+":access", s.prefix+":refresh").Err()
}

// accessTokenStale reports whether the access token is missing or
// already past its exp claim. The token is parsed unverified: the
// gateway does not hold the backend's signing key and only needs the
// expiry to decide whether a request is worth sending at all. A token
// without a readable exp claim is treated as usable and left to the
// backend to judge.
func accessTokenStale(raw string) bool {
	if raw == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
