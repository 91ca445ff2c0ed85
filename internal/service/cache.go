package service

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/alexanderramin/gantt/internal/app"
)

// viewKey identifies one memoized timeline view. Two requests with equal keys
// always produce the same response.
type viewKey struct {
	Version     int64
	Granularity string
	From, To    string
	Keyword     string
	Today       string
	Expanded    string
	ExpandAll   bool
	Clamp       bool
	Strict      bool
}

func (k viewKey) String() string {
	return fmt.Sprintf("%d|%s|%s|%s|%s|%s|%s|%t|%t|%t",
		k.Version, k.Granularity, k.From, k.To, k.Keyword, k.Today, k.Expanded, k.ExpandAll, k.Clamp, k.Strict)
}

func expandedKey(ids []string) string {
	return strings.Join(ids, ",")
}

// viewCache memoizes timeline responses per data version. Concurrent misses
// for the same key share a single build. Entries for older versions are
// dropped as soon as a newer version is stored. Cached responses are shared
// and must be treated as read-only; callers stamp GeneratedAt on a copy.
type viewCache struct {
	mu      sync.Mutex
	limit   int
	entries map[string]*app.TimelineResponse
	order   []string
	version int64
	group   singleflight.Group
}

// newViewCache returns nil when limit is not positive; a nil cache builds on
// every call.
func newViewCache(limit int) *viewCache {
	if limit <= 0 {
		return nil
	}
	return &viewCache{limit: limit, entries: make(map[string]*app.TimelineResponse)}
}

// get returns the cached response for key or builds it. hit reports whether
// the response came from the cache or a concurrent build.
func (c *viewCache) get(key viewKey, build func() (*app.TimelineResponse, error)) (resp *app.TimelineResponse, hit bool, err error) {
	if c == nil {
		resp, err = build()
		return resp, false, err
	}

	k := key.String()
	c.mu.Lock()
	if r, ok := c.entries[k]; ok {
		c.mu.Unlock()
		return r, true, nil
	}
	c.mu.Unlock()

	v, err, shared := c.group.Do(k, func() (any, error) {
		r, err := build()
		if err != nil {
			return nil, err
		}
		// A write may land between the version lookup and the load; such a
		// view is returned but not stored under the stale key.
		if r.DataVersion == key.Version {
			c.store(key.Version, k, r)
		}
		return r, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*app.TimelineResponse), shared, nil
}

func (c *viewCache) store(version int64, k string, r *app.TimelineResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if version < c.version {
		return
	}
	if version > c.version {
		c.version = version
		c.entries = make(map[string]*app.TimelineResponse)
		c.order = c.order[:0]
	}
	if _, ok := c.entries[k]; !ok {
		c.order = append(c.order, k)
	}
	c.entries[k] = r
	for len(c.order) > c.limit {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
}

// Len returns the number of cached views.
func (c *viewCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
