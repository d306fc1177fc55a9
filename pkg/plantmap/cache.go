package plantmap

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"molinolab.org/plant-mapping-service/pkg/common"
	"molinolab.org/plant-mapping-service/pkg/models"
)

// ReadCache serves snapshots to readers with bounded staleness: a cached
// snapshot is reused until ttl elapses, then the next Get refreshes it from
// the store. Expiry is computed lazily at access time; there is no sweeper
// and no invalidation signal from writers.
type ReadCache struct {
	store StoreAdapter
	ttl   time.Duration
	clock func() time.Time

	mu        sync.Mutex
	snap      *models.Snapshot
	fetchedAt time.Time
}

func NewReadCache(store StoreAdapter, ttl time.Duration, clock func() time.Time) *ReadCache {
	if clock == nil {
		clock = time.Now
	}
	return &ReadCache{
		store: store,
		ttl:   ttl,
		clock: clock,
	}
}

// Get returns the cached snapshot while it is fresh, otherwise refreshes from
// the store. A load failure propagates and leaves the cache untouched.
func (c *ReadCache) Get() (*models.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	if c.snap != nil && now.Sub(c.fetchedAt) < c.ttl {
		return c.snap, nil
	}

	snap, err := c.store.Load()
	if err != nil {
		return nil, err
	}

	common.GetLoggerWith(
		common.LoggerNamePlantmapCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryCache),
	).Debug("Refreshed snapshot cache", zap.Int("associations", len(snap.Associations)))

	c.snap = snap
	c.fetchedAt = now
	return c.snap, nil
}
