package plantmap_test

import (
	"bufio"
	"encoding/json"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"molinolab.org/plant-mapping-service/pkg/plantmap"
	"molinolab.org/plant-mapping-service/pkg/store"
	_ "molinolab.org/plant-mapping-service/pkg/testing"
)

// fakeClock is a settable clock shared by the service and its cache so tests
// can steer timestamps and cache expiry deterministically.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// GetPlantMapWithTempFileStore builds a PlantMap over a file adapter in a
// fresh temp dir. ttl=0 makes every read hit the store, which keeps tests
// that do not target cache behavior from seeing stale snapshots.
func GetPlantMapWithTempFileStore(t *testing.T, ttl time.Duration, clock *fakeClock) (*plantmap.PlantMap, *store.FileAdapter) {
	adapter := store.NewFileAdapter(filepath.Join(t.TempDir(), "device-plant-mapping.json"))

	var clockFn func() time.Time
	if clock != nil {
		clockFn = clock.Now
	}

	pm := &plantmap.PlantMap{
		Store: adapter,
		Cache: plantmap.NewReadCache(adapter, ttl, clockFn),
		Clock: clockFn,
	}
	pm.WithServices(plantmap.ServiceOpts{
		Association: pm.GetIAssociation(),
	})
	return pm, adapter
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
