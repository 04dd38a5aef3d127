package validate

import (
	"sync"
	"time"

	"github.com/dwellingconnect/society-sync/internal/models"
)

// feedCache is a single-slot cache of the projected register. The
// first call after cold start or TTL expiry pays the full fetch and
// parse cost; everything else within the TTL is served from memory.
type feedCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	members   []models.SheetMember
	fetchedAt time.Time
}

func newFeedCache(ttl time.Duration) *feedCache {
	return &feedCache{
		ttl: ttl,
		now: time.Now,
	}
}

// get returns the cached projection if it is still fresh.
func (c *feedCache) get() ([]models.SheetMember, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.members == nil || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.members, true
}

// set replaces the cached projection.
func (c *feedCache) set(members []models.SheetMember) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.members = members
	c.fetchedAt = c.now()
}
