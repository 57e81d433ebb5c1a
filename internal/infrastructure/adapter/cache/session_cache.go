package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/persistence"
)

// cachedSession is the serialized form of a session and its owner
type cachedSession struct {
	ID        string       `json:"id"`
	Token     string       `json:"token"`
	UserID    string       `json:"userId"`
	ExpiresAt time.Time    `json:"expiresAt"`
	CreatedAt time.Time    `json:"createdAt"`
	User      *entity.User `json:"user,omitempty"`
}

// SessionCache fronts a SessionRepository with an in-process bigcache for token lookups.
// A deactivated user keeps a cached session until the entry's TTL lapses.
// Every invalidation bumps generation; a load that started under an older
// generation is returned but never stored.
type SessionCache struct {
	next   persistence.SessionRepository
	cache  *bigcache.BigCache
	logger coreport.Logger

	mu         sync.Mutex
	generation uint64
}

// NewSessionCache wraps next with a cache whose entries live for ttl
func NewSessionCache(ctx context.Context, next persistence.SessionRepository, ttl time.Duration, logger coreport.Logger) (*SessionCache, error) {
	config := bigcache.DefaultConfig(ttl)
	config.Shards = 64
	config.MaxEntriesInWindow = 10_000
	config.MaxEntrySize = 512
	config.HardMaxCacheSize = 64
	config.CleanWindow = ttl
	config.Verbose = false

	cache, err := bigcache.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	return &SessionCache{
		next:   next,
		cache:  cache,
		logger: logger,
	}, nil
}

func (c *SessionCache) Create(ctx context.Context, session *entity.Session) error {
	return c.next.Create(ctx, session)
}

// FindByToken serves from the cache, loading and storing on a miss
func (c *SessionCache) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	if raw, err := c.cache.Get(token); err == nil {
		var cached cachedSession
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached.toEntity(), nil
		}
		c.evict(token)
	} else if !errors.Is(err, bigcache.ErrEntryNotFound) {
		c.logger.Warn("Session cache read failed", map[string]any{"error": err.Error()})
	}

	c.mu.Lock()
	loadedAt := c.generation
	c.mu.Unlock()

	session, err := c.next.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(fromEntity(session))
	if err == nil {
		c.mu.Lock()
		if c.generation == loadedAt {
			err = c.cache.Set(token, raw)
		}
		c.mu.Unlock()
	}
	if err != nil {
		c.logger.Warn("Session cache write failed", map[string]any{"error": err.Error()})
	}
	return session, nil
}

// Delete removes the row first so a load starting after the bump cannot see it
func (c *SessionCache) Delete(ctx context.Context, token string) error {
	err := c.next.Delete(ctx, token)
	c.invalidate(func() { c.evict(token) })
	return err
}

// DeleteAllForUser drops the whole cache since entries are keyed by token only
func (c *SessionCache) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	n, err := c.next.DeleteAllForUser(ctx, userID)
	c.invalidate(c.reset)
	return n, err
}

func (c *SessionCache) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := c.next.DeleteExpired(ctx, now)
	if n > 0 {
		c.invalidate(c.reset)
	}
	return n, err
}

// Len reports the number of cached sessions
func (c *SessionCache) Len() int {
	return c.cache.Len()
}

func (c *SessionCache) Close() error {
	return c.cache.Close()
}

func (c *SessionCache) invalidate(drop func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	drop()
}

func (c *SessionCache) evict(token string) {
	if err := c.cache.Delete(token); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		c.logger.Warn("Session cache eviction failed", map[string]any{"error": err.Error()})
	}
}

func (c *SessionCache) reset() {
	if err := c.cache.Reset(); err != nil {
		c.logger.Warn("Session cache reset failed", map[string]any{"error": err.Error()})
	}
}

func fromEntity(s *entity.Session) cachedSession {
	return cachedSession{
		ID:        s.ID,
		Token:     s.Token,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
		User:      s.User,
	}
}

func (c cachedSession) toEntity() *entity.Session {
	return &entity.Session{
		ID:        c.ID,
		Token:     c.Token,
		UserID:    c.UserID,
		ExpiresAt: c.ExpiresAt,
		CreatedAt: c.CreatedAt,
		User:      c.User,
	}
}
