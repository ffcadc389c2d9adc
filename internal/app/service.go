// Package service provides the radar query façade used by the HTTP API and
// the CLI.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/okian/ufcradar/internal/adapters/repository"
	"github.com/okian/ufcradar/internal/domain/fights"
	"github.com/okian/ufcradar/internal/domain/radar"
	"github.com/okian/ufcradar/internal/domain/registry"
	"github.com/okian/ufcradar/pkg/logger"
	"github.com/okian/ufcradar/pkg/metrics"
)

// Default query window configuration.
const (
	defaultWindow = 5

	// noWindowCap disables the maximum window check.
	noWindowCap = 0
)

// Query outcomes recorded in metrics.
const (
	outcomeOK          = "ok"
	outcomeInvalid     = "invalid_request"
	outcomeNotFound    = "not_found"
	outcomeUnavailable = "unavailable"
)

// Store is the cached view of the CSV sources.
type Store interface {
	Dataset(ctx context.Context) (*repository.Dataset, error)
	Registry(ctx context.Context) (*registry.Registry, error)
	Invalidate(ctx context.Context)
	Status() []repository.SourceStatus
}

// Query asks for the radar of one fighter. A nil Last selects the default window.
type Query struct {
	Fighter string
	Last    *int
}

// Radar is the answer to a Query.
type Radar struct {
	Fighter          string        `json:"fighter"`
	Last             int           `json:"last"`
	FightsCount      int           `json:"fights_count"`
	DurationTotalSec int           `json:"duration_total_sec"`
	Metrics          radar.Metrics `json:"metrics"`
	Scaled           radar.Metrics `json:"scaled"`
}

// Service answers radar queries over a Store.
type Service struct {
	mu sync.RWMutex

	store Store

	// Configuration
	defaultWindow int
	maxWindow     int
	warm          bool

	// State
	started bool

	logger logger.Logger
}

// New constructs a Service reading from store.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:         store,
		defaultWindow: defaultWindow,
		maxWindow:     noWindowCap,
		logger:        nil, // replaced on Start when not set
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxWindow != noWindowCap && s.defaultWindow > s.maxWindow {
		s.defaultWindow = s.maxWindow
	}
	return s
}

// Start prepares the service. With warm-up enabled every source is loaded
// before Start returns; a load failure is logged, not fatal.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting radar service...")
	if s.warm {
		s.warmUp(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "radar service started",
		logger.Int("defaultWindow", s.defaultWindow),
		logger.Int("maxWindow", s.maxWindow),
		logger.Bool("warm", s.warm),
	)
	return nil
}

// Stop marks the service stopped. Cached indices are kept.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "radar service stopped")
}

func (s *Service) warmUp(ctx context.Context) {
	start := time.Now()
	ds, err := s.store.Dataset(ctx)
	if err != nil {
		s.logger.Warn(ctx, "cache warm-up failed", logger.Error(err))
		return
	}
	if _, err := s.store.Registry(ctx); err != nil {
		s.logger.Warn(ctx, "registry warm-up failed", logger.Error(err))
	}
	s.logger.Info(ctx, "cache warmed",
		logger.Duration("took", time.Since(start)),
		logger.Any("missing", ds.Missing()),
	)
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Discard()
	}
	return l
}

// Radar computes the metrics of the fighter's most recent fights.
//
// A window larger than the fighter's history returns the whole history.
// Errors, checked in order: ErrInvalidRequest for an empty fighter, a
// negative window or one above a configured maximum; ErrServiceUnavailable
// when a source is missing or unreadable; ErrNotFound when the fighter has
// no fights.
func (s *Service) Radar(ctx context.Context, q Query) (Radar, error) {
	start := time.Now()
	outcome := outcomeOK
	defer func() {
		metrics.RecordRadarQuery(outcome)
		metrics.RecordRadarQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	fighter := strings.TrimSpace(q.Fighter)
	if fighter == "" {
		outcome = outcomeInvalid
		return Radar{}, fmt.Errorf("%w: fighter is required", ErrInvalidRequest)
	}
	last := s.defaultWindow
	if q.Last != nil {
		last = *q.Last
	}
	if last < 0 {
		outcome = outcomeInvalid
		return Radar{}, fmt.Errorf("%w: last must not be negative", ErrInvalidRequest)
	}
	if s.maxWindow != noWindowCap && last > s.maxWindow {
		outcome = outcomeInvalid
		return Radar{}, fmt.Errorf("%w: last must not exceed %d", ErrInvalidRequest, s.maxWindow)
	}

	ds, err := s.store.Dataset(ctx)
	if err != nil {
		outcome = outcomeUnavailable
		return Radar{}, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	if missing := ds.Missing(); len(missing) > 0 {
		outcome = outcomeUnavailable
		s.log().Warn(ctx, "radar query with missing sources", logger.Any("missing", missing))
		return Radar{}, fmt.Errorf("%w: missing %s", ErrServiceUnavailable, strings.Join(missing, ", "))
	}

	agg, found := fights.NewAggregator(ds,
		fights.WithFallbackObserver(metrics.RecordFieldFallback),
	).Aggregate(fighter, last)
	if !found {
		outcome = outcomeNotFound
		return Radar{}, fmt.Errorf("%w: %q", ErrNotFound, fighter)
	}

	m := radar.Compute(agg)
	metrics.RecordRadarFights(agg.Fights)
	s.log().Debug(ctx, "radar computed",
		logger.String("fighter", fighter),
		logger.Int("last", last),
		logger.Int("fights", agg.Fights),
		logger.Int("durationSec", agg.DurationSeconds),
	)

	return Radar{
		Fighter:          fighter,
		Last:             last,
		FightsCount:      agg.Fights,
		DurationTotalSec: agg.DurationSeconds,
		Metrics:          m.Rounded(),
		Scaled:           m.Scaled(),
	}, nil
}

// IsKnownFighter reports whether name is in the fighter registry.
func (s *Service) IsKnownFighter(ctx context.Context, name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	reg, err := s.store.Registry(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	return reg.IsKnown(name), nil
}

// UnknownFighters returns the names that are not in the registry.
func (s *Service) UnknownFighters(ctx context.Context, names []string) ([]string, error) {
	reg, err := s.store.Registry(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	return reg.Unknown(names), nil
}

// Invalidate drops every cached source so the next query reloads from disk.
func (s *Service) Invalidate(ctx context.Context) {
	s.store.Invalidate(ctx)
	s.log().Info(ctx, "radar cache invalidated")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":       s.started,
		"defaultWindow": s.defaultWindow,
		"maxWindow":     s.maxWindow,
		"sources":       s.store.Status(),
	}
}
