package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a wizard session ID is unknown or expired.
var ErrSessionNotFound = errors.New("wizard session not found")

// SessionStore persists in-progress wizards between HTTP requests.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Wizard, error)
	Put(ctx context.Context, id string, w *Wizard) error
	Delete(ctx context.Context, id string) error
}

// MemorySessionStore keeps wizards in process memory. Sessions expire lazily
// on read.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memorySession
	now      func() time.Time
}

type memorySession struct {
	wizard  *Wizard
	expires time.Time
}

// NewMemorySessionStore creates an in-memory session store.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Get(ctx context.Context, id string) (*Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || s.now().After(sess.expires) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	return sess.wizard, nil
}

func (s *MemorySessionStore) Put(ctx context.Context, id string, w *Wizard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memorySession{wizard: w, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// RedisSessionStore keeps JSON-marshaled wizards in Redis with a TTL, so the
// wizard survives API restarts and scales past one process.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "booking:wizard:" + id
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*Wizard, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("booking: session get: %w", err)
	}
	var w Wizard
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("booking: session decode: %w", err)
	}
	if w.Errors == nil {
		w.Errors = map[string]string{}
	}
	return &w, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, id string, w *Wizard) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("booking: session encode: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("booking: session put: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("booking: session delete: %w", err)
	}
	return nil
}
