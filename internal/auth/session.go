package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const issuer = "opentreasury"

var ErrInvalidSession = errors.New("invalid or expired session")

// SessionClaims is the JWT payload of an admin session cookie.
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// SessionStore tracks which session ids are live so logout can revoke a
// token before it expires.
type SessionStore interface {
	Save(ctx context.Context, id string, ttl time.Duration) error
	Exists(ctx context.Context, id string) (bool, error)
	Revoke(ctx context.Context, id string) error
}

// Sessions issues and verifies HS256 session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	store  SessionStore
	now    func() time.Time
}

func NewSessions(secret []byte, ttl time.Duration, store SessionStore) *Sessions {
	return &Sessions{secret: secret, ttl: ttl, store: store, now: time.Now}
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for id and records its session id.
func (s *Sessions) Issue(ctx context.Context, id Identity) (string, error) {
	now := s.now()
	claims := SessionClaims{
		Email: id.Email,
		Name:  id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.Subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	if err := s.store.Save(ctx, claims.ID, s.ttl); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return token, nil
}

// Verify parses token and checks that its session has not been revoked.
func (s *Sessions) Verify(ctx context.Context, token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}

	live, err := s.store.Exists(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if !live {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Revoke ends the session behind token. Invalid tokens are ignored.
func (s *Sessions) Revoke(ctx context.Context, token string) error {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || claims.ID == "" {
		return nil
	}
	return s.store.Revoke(ctx, claims.ID)
}

// MemorySessionStore keeps session ids in process. Sessions do not survive
// a restart.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]time.Time), now: time.Now}
}

func (m *MemorySessionStore) Save(ctx context.Context, id string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for sid, expires := range m.sessions {
		if !now.Before(expires) {
			delete(m.sessions, sid)
		}
	}
	m.sessions[id] = now.Add(ttl)
	return nil
}

func (m *MemorySessionStore) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expires, ok := m.sessions[id]
	return ok && m.now().Before(expires), nil
}

func (m *MemorySessionStore) Revoke(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// RedisSessionStore keeps session ids as expiring redis keys so sessions are
// shared between replicas.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (r *RedisSessionStore) Save(ctx context.Context, id string, ttl time.Duration) error {
	return r.rdb.Set(ctx, sessionKey(id), "1", ttl).Err()
}

func (r *RedisSessionStore) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.rdb.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *RedisSessionStore) Revoke(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, sessionKey(id)).Err()
}

var (
	_ SessionStore = (*MemorySessionStore)(nil)
	_ SessionStore = (*RedisSessionStore)(nil)
)
