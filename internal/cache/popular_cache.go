package cache

import (
	"sync"
	"time"

	"github.com/dagmal/deal-service/internal/domain"
)

// PopularCache holds a snapshot of the active deals used for popularity
// ranking. Callers rank the snapshot at request time.
type PopularCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	deals     []domain.Deal
	updatedAt time.Time
}

func NewPopularCache(ttl time.Duration) *PopularCache {
	return &PopularCache{ttl: ttl}
}

// Get returns a copy of the snapshot if it is no older than the TTL at now.
func (c *PopularCache) Get(now time.Time) ([]domain.Deal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.updatedAt.IsZero() || now.Sub(c.updatedAt) > c.ttl {
		return nil, false
	}
	return append([]domain.Deal(nil), c.deals...), true
}

// Set stores the deals loaded at at.
func (c *PopularCache) Set(deals []domain.Deal, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deals = append([]domain.Deal(nil), deals...)
	c.updatedAt = at
}

func (c *PopularCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deals = nil
	c.updatedAt = time.Time{}
}

func (c *PopularCache) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}
