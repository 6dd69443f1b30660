package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// ErrUnavailable is returned by Monitor while the backing cache is failing
// health checks. Callers should treat it as a bypass, not a failure.
var ErrUnavailable = errors.New("cache unavailable")

// Monitor wraps a Cache and stops sending traffic to it while periodic
// health checks fail, so a Redis outage costs nothing per request.
type Monitor struct {
	cache    Cache
	interval time.Duration
	timeout  time.Duration
	healthy  atomic.Bool
}

// NewMonitor creates a health monitor. The wrapped cache is assumed healthy
// until the first check says otherwise.
func NewMonitor(c Cache, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}

	m := &Monitor{
		cache:    c,
		interval: interval,
		timeout:  2 * time.Second,
	}
	m.healthy.Store(true)
	return m
}

// Start begins the health check loop in a goroutine
func (m *Monitor) Start(ctx context.Context) {
	go m.run(ctx)
}

func (m *Monitor) run(ctx context.Context) {
	slog.Info("cache monitor started", "interval", m.interval)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("cache monitor stopped")
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// check runs one health check and logs state transitions
func (m *Monitor) check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.cache.HealthCheck(ctx)
	was := m.healthy.Swap(err == nil)

	switch {
	case err != nil && was:
		slog.Warn("response cache unhealthy, bypassing", "error", err)
	case err == nil && !was:
		slog.Info("response cache recovered")
	default:
		slog.Debug("cache health check", "healthy", err == nil)
	}
}

// Healthy reports the result of the last health check
func (m *Monitor) Healthy() bool {
	return m.healthy.Load()
}

// Get reads through to the wrapped cache, or returns ErrUnavailable
func (m *Monitor) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !m.healthy.Load() {
		return nil, false, ErrUnavailable
	}
	return m.cache.Get(ctx, key)
}

// Set writes through to the wrapped cache, or returns ErrUnavailable
func (m *Monitor) Set(ctx context.Context, key string, value []byte) error {
	if !m.healthy.Load() {
		return ErrUnavailable
	}
	return m.cache.Set(ctx, key, value)
}

// HealthCheck always asks the wrapped cache, regardless of the last result
func (m *Monitor) HealthCheck(ctx context.Context) error {
	return m.cache.HealthCheck(ctx)
}
