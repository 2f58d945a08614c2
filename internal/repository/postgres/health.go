package postgres

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
)

// Health owns the database readiness state. A background probe pings the
// database on an interval with a bounded per-attempt timeout and flips an
// atomic flag; request handling reads the flag instead of dialing. All
// readiness state lives here, not in package-level variables.
type Health struct {
	db      *sqlx.DB
	ready   atomic.Bool
	timeout time.Duration
}

// NewHealth creates a Health probe for db. timeout bounds each ping attempt.
func NewHealth(db *sqlx.DB, timeout time.Duration) *Health {
	return &Health{db: db, timeout: timeout}
}

// Ready reports the last observed connectivity state.
func (h *Health) Ready() bool {
	return h.ready.Load()
}

// Ping performs a live connectivity check bounded by the configured timeout.
func (h *Health) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.db.PingContext(ctx)
}

// Start launches the probe loop. It runs until ctx is cancelled and never
// terminates the process on failure; while the database is down, requests
// are rejected with a not-ready signal instead of hanging.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	go func() {
		h.probe(ctx)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.probe(ctx)
			}
		}
	}()
}

func (h *Health) probe(ctx context.Context) {
	err := h.Ping(ctx)
	was := h.ready.Swap(err == nil)
	switch {
	case err != nil && was:
		log.Printf("database connection lost: %v (retrying)", err)
	case err == nil && !was:
		log.Printf("database connected")
	}
}
