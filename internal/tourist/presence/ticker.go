package presence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tourshield/internal/platform/metrics"
	id "tourshield/pkg/domain"
)

// ActivityStore supplies last-activity timestamps for all tracked tourists.
type ActivityStore interface {
	ListLastActive(ctx context.Context) (map[id.UserID]time.Time, error)
}

const defaultTickInterval = time.Minute

// Ticker recomputes the presence of every tracked tourist on a fixed
// interval. It owns no per-tourist state beyond the latest computed snapshot;
// the snapshot is replaced wholesale each tick so a stale classification
// never outlives one interval. Lifecycle is scoped: Start runs until its
// context is cancelled, which guarantees teardown even on abnormal exit paths
// because cancellation flows from the caller's errgroup.
type Ticker struct {
	store     ActivityStore
	interval  time.Duration
	threshold time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time

	mu       sync.RWMutex
	snapshot map[id.UserID]bool
}

type TickerOption func(*Ticker)

// WithTickInterval overrides the recompute interval when greater than zero.
func WithTickInterval(d time.Duration) TickerOption {
	return func(t *Ticker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithThreshold overrides the online threshold when greater than zero.
func WithThreshold(d time.Duration) TickerOption {
	return func(t *Ticker) {
		if d > 0 {
			t.threshold = d
		}
	}
}

func WithTickerLogger(logger *slog.Logger) TickerOption {
	return func(t *Ticker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

func WithTickerMetrics(m *metrics.Metrics) TickerOption {
	return func(t *Ticker) {
		t.metrics = m
	}
}

// WithTickerClock overrides the time source. Intended for tests.
func WithTickerClock(now func() time.Time) TickerOption {
	return func(t *Ticker) {
		t.now = now
	}
}

func NewTicker(store ActivityStore, opts ...TickerOption) *Ticker {
	t := &Ticker{
		store:     store,
		interval:  defaultTickInterval,
		threshold: DefaultThreshold,
		logger:    slog.Default(),
		now:       time.Now,
		snapshot:  make(map[id.UserID]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start recomputes presence immediately and then on every tick until ctx is
// cancelled.
func (t *Ticker) Start(ctx context.Context) error {
	if err := t.Recompute(ctx); err != nil {
		t.logger.ErrorContext(ctx, "initial presence recompute failed", "error", err)
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := t.Recompute(ctx); err != nil {
				t.logger.ErrorContext(ctx, "presence recompute failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Recompute rebuilds the presence snapshot from the store.
func (t *Ticker) Recompute(ctx context.Context) error {
	lastActive, err := t.store.ListLastActive(ctx)
	if err != nil {
		return err
	}

	now := t.now()
	next := make(map[id.UserID]bool, len(lastActive))
	online := 0
	for userID, at := range lastActive {
		isOnline := IsOnline(now, at, t.threshold)
		next[userID] = isOnline
		if isOnline {
			online++
		}
	}

	t.mu.Lock()
	t.snapshot = next
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.SetTouristsOnline(online)
	}
	return nil
}

// Online reports the latest computed presence for a tourist. Tourists with no
// recorded activity are offline.
func (t *Ticker) Online(userID id.UserID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshot[userID]
}

// OnlineCount returns how many tourists were online at the last tick.
func (t *Ticker) OnlineCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	count := 0
	for _, online := range t.snapshot {
		if online {
			count++
		}
	}
	return count
}
