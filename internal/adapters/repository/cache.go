package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/ufcradar/internal/domain/registry"
	"github.com/okian/ufcradar/pkg/logger"
	"github.com/okian/ufcradar/pkg/metrics"
)

// memo builds a value once and hands the same pointer to every caller until reset.
// Concurrent first callers block on the builder. Failed builds are not kept.
type memo[T any] struct {
	mu    sync.Mutex
	value *T
}

func (m *memo[T]) get(build func() (*T, error)) (v *T, hit bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.value != nil {
		return m.value, true, nil
	}
	v, err = build()
	if err != nil {
		return nil, false, err
	}
	m.value = v
	return v, false, nil
}

func (m *memo[T]) peek() *T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

func (m *memo[T]) reset() {
	m.mu.Lock()
	m.value = nil
	m.mu.Unlock()
}

// SourceStatus describes the memoized state of one source.
type SourceStatus struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Loaded   bool      `json:"loaded"`
	Present  bool      `json:"present"`
	Rows     int       `json:"rows"`
	Skipped  int       `json:"skipped"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
	LoadMs   int64     `json:"load_ms"`
}

// Cache is a read-through cache of source indices, one memo per source.
type Cache struct {
	src Sources
	log logger.Logger

	events   memo[eventIndex]
	results  memo[resultIndex]
	stats    memo[statIndex]
	fighters memo[fighterIndex]
}

// NewCache creates an empty cache over src. Nothing is read until first use.
func NewCache(src Sources, opts ...Option) *Cache {
	c := &Cache{
		src: src,
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sources returns the configured file paths.
func (c *Cache) Sources() Sources { return c.src }

// Dataset returns the events, results and stats indices, building any that
// are not memoized yet.
func (c *Cache) Dataset(ctx context.Context) (*Dataset, error) {
	ev, err := lookup(ctx, c, SourceEvents, &c.events, func() (*eventIndex, error) { return loadEvents(c.src.Events) })
	if err != nil {
		return nil, err
	}
	res, err := lookup(ctx, c, SourceResults, &c.results, func() (*resultIndex, error) { return loadResults(c.src.Results) })
	if err != nil {
		return nil, err
	}
	st, err := lookup(ctx, c, SourceStats, &c.stats, func() (*statIndex, error) { return loadStats(c.src.Stats) })
	if err != nil {
		return nil, err
	}
	return &Dataset{events: ev, results: res, stats: st}, nil
}

// Registry returns the fighter registry. Without a fighters source the
// registry is empty.
func (c *Cache) Registry(ctx context.Context) (*registry.Registry, error) {
	fi, err := lookup(ctx, c, SourceFighters, &c.fighters, func() (*fighterIndex, error) {
		if c.src.Fighters == "" {
			return &fighterIndex{reg: registry.New(nil)}, nil
		}
		return loadFighters(c.src.Fighters)
	})
	if err != nil {
		return nil, err
	}
	return fi.reg, nil
}

// Invalidate drops every memoized source. Datasets already handed out stay usable.
func (c *Cache) Invalidate(ctx context.Context) {
	c.events.reset()
	c.results.reset()
	c.stats.reset()
	c.fighters.reset()
	metrics.RecordCacheInvalidation()
	c.log.Info(ctx, "dataset cache invalidated")
}

// Status reports every source without triggering a load.
func (c *Cache) Status() []SourceStatus {
	var ev, res, st, fi *loadInfo
	if v := c.events.peek(); v != nil {
		ev = &v.loadInfo
	}
	if v := c.results.peek(); v != nil {
		res = &v.loadInfo
	}
	if v := c.stats.peek(); v != nil {
		st = &v.loadInfo
	}
	if v := c.fighters.peek(); v != nil {
		fi = &v.loadInfo
	}
	return []SourceStatus{
		status(SourceEvents, c.src.Events, ev),
		status(SourceResults, c.src.Results, res),
		status(SourceStats, c.src.Stats, st),
		status(SourceFighters, c.src.Fighters, fi),
	}
}

func lookup[T any](ctx context.Context, c *Cache, source string, m *memo[T], build func() (*T, error)) (*T, error) {
	v, hit, err := m.get(build)
	metrics.RecordCacheLookup(source, hit)
	if err != nil {
		c.log.Error(ctx, "failed to load source", logger.String("source", source), logger.Error(err))
		return nil, err
	}
	if !hit {
		c.log.Info(ctx, "source loaded", logger.String("source", source))
	}
	return v, nil
}

func status(name, path string, info *loadInfo) SourceStatus {
	s := SourceStatus{Name: name, Path: path}
	if info == nil {
		return s
	}
	s.Loaded = true
	s.Present = info.Present
	s.Rows = info.Rows
	s.Skipped = info.Skipped
	s.LoadedAt = info.LoadedAt
	s.LoadMs = info.Took.Milliseconds()
	return s
}
