package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"volunteerhub/internal/domain"
)

// MatchCache caches auto-match results per event. All operations are best
// effort: a nil cache or an unreachable redis never fails the caller.
type MatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultMatchTTL is how long ranked candidates stay cached. Profiles and
// participations change rarely enough that a short TTL keeps results fresh.
const DefaultMatchTTL = 30 * time.Second

// NewMatchCache connects to redis at the given URL ("redis://..." or
// "rediss://..."). Returns nil when url is empty, which callers must treat
// as "no cache".
func NewMatchCache(url string, ttl time.Duration) (*MatchCache, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultMatchTTL
	}
	return &MatchCache{client: redis.NewClient(opts), ttl: ttl}, nil
}

func matchKey(eventID string) string {
	return "volunteerhub:match:" + eventID
}

// Get returns cached candidates for the event, or (nil, false).
func (c *MatchCache) Get(ctx context.Context, eventID string) ([]*domain.MatchCandidate, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, matchKey(eventID)).Bytes()
	if err != nil {
		return nil, false
	}
	var candidates []*domain.MatchCandidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, false
	}
	return candidates, true
}

// Set stores candidates for the event with the configured TTL.
func (c *MatchCache) Set(ctx context.Context, eventID string, candidates []*domain.MatchCandidate) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(candidates)
	if err != nil {
		return
	}
	c.client.Set(ctx, matchKey(eventID), raw, c.ttl)
}

// Invalidate drops the cached candidates for the event. Called after an
// assignment or participation changes the exclusion set.
func (c *MatchCache) Invalidate(ctx context.Context, eventID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, matchKey(eventID))
}

// Close releases the underlying client.
func (c *MatchCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
