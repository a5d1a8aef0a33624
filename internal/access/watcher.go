package access

import (
	"context"
	"log/slog"
	"time"

	"tourshield/internal/auth/models"
	"tourshield/internal/platform/metrics"
)

// Navigator performs the actual navigation once the guard decides a redirect
// is needed. Implementations must be safe to call from the watcher goroutine.
type Navigator interface {
	Navigate(ctx context.Context, route Route, replace bool) error
}

// Snapshot is one published (session, profile) pair from the identity source.
type Snapshot struct {
	Session Session
	Profile *Profile
}

const defaultWaitTimeout = 10 * time.Second

// Watcher subscribes to identity snapshots and acts on guard decisions.
// It owns the impure half of the gate: Evaluate computes the decision, the
// watcher performs navigation exactly once per distinct decision. It is the
// push-driven twin of Middleware, which adapts the same Evaluate core to
// request/response HTTP traffic; clients that hold a live session stream
// drive a Watcher instead of polling.
//
// Ordering: Publish is latest-wins, so a decision computed from a stale
// snapshot is never acted on after a newer snapshot has arrived. A Wait
// caused by an authenticated viewer with no profile is bounded: if it does
// not resolve within the wait timeout the watcher falls back to login.
type Watcher struct {
	nav          Navigator
	requiredRole models.Role
	updates      chan Snapshot
	waitTimeout  time.Duration
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

type WatcherOption func(*Watcher)

// WithWaitTimeout bounds how long an inconsistent identity may hold the view
// in Wait before falling back to login. Zero or negative values are ignored.
func WithWaitTimeout(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.waitTimeout = d
		}
	}
}

func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func WithWatcherMetrics(m *metrics.Metrics) WatcherOption {
	return func(w *Watcher) {
		w.metrics = m
	}
}

// NewWatcher constructs a watcher gating a view that requires requiredRole.
// A zero requiredRole gates on authentication only.
func NewWatcher(nav Navigator, requiredRole models.Role, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		nav:          nav,
		requiredRole: requiredRole,
		updates:      make(chan Snapshot, 1),
		waitTimeout:  defaultWaitTimeout,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Publish hands the watcher a new identity snapshot. It never blocks: if a
// snapshot is already pending it is replaced, so the run loop always observes
// the newest published state (last-write-wins).
func (w *Watcher) Publish(snap Snapshot) {
	for {
		select {
		case w.updates <- snap:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}

// Run processes snapshots until ctx is cancelled. Cancellation drops any
// pending navigation: a redirect decided before teardown is never executed
// after it.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		last      Decision
		acted     bool
		waitTimer *time.Timer
		waitC     <-chan time.Time
	)

	stopWaitTimer := func() {
		if waitTimer != nil {
			waitTimer.Stop()
			waitTimer = nil
			waitC = nil
		}
	}
	defer stopWaitTimer()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case snap := <-w.updates:
			decision := Evaluate(snap.Session, snap.Profile, w.requiredRole)

			// Only an authenticated-but-profileless Wait is bounded.
			// An unresolved session has no timeout.
			if decision.Kind == DecisionWait && snap.Session.Authenticated() {
				if waitTimer == nil {
					waitTimer = time.NewTimer(w.waitTimeout)
					waitC = waitTimer.C
				}
			} else {
				stopWaitTimer()
			}

			if acted && decision == last {
				continue
			}
			last = decision
			acted = true
			w.act(ctx, decision)

		case <-waitC:
			stopWaitTimer()
			w.logger.WarnContext(ctx, "identity did not resolve in time, falling back to login",
				"timeout", w.waitTimeout,
			)
			decision := RedirectTo(RouteLogin)
			if acted && decision == last {
				continue
			}
			last = decision
			acted = true
			w.act(ctx, decision)
		}
	}
}

func (w *Watcher) act(ctx context.Context, decision Decision) {
	if w.metrics != nil {
		w.metrics.IncrementGuardDecision(string(decision.Kind))
	}
	if decision.Kind != DecisionRedirect {
		return
	}
	if err := w.nav.Navigate(ctx, decision.Target, true); err != nil {
		w.logger.ErrorContext(ctx, "navigation failed",
			"route", decision.Target.String(),
			"error", err,
		)
	}
}
