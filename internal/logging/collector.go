package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Collector is a slog.Handler that counts warning and error records on
// their way through to the wrapped handler. The pipeline uses it to report
// how many sequences were dropped and how many compatibility warnings were
// raised during a build.
type Collector struct {
	next   slog.Handler
	counts *counts
}

type counts struct {
	errors   atomic.Int64
	warnings atomic.Int64
}

// NewCollector wraps next with record counting.
func NewCollector(next slog.Handler) *Collector {
	return &Collector{next: next, counts: &counts{}}
}

// Enabled implements slog.Handler.
func (c *Collector) Enabled(ctx context.Context, level slog.Level) bool {
	// Always enabled so counts stay accurate even below the output level.
	return true
}

// Handle implements slog.Handler.
func (c *Collector) Handle(ctx context.Context, r slog.Record) error {
	switch {
	case r.Level >= slog.LevelError:
		c.counts.errors.Add(1)
	case r.Level >= slog.LevelWarn:
		c.counts.warnings.Add(1)
	}
	if !c.next.Enabled(ctx, r.Level) {
		return nil
	}
	return c.next.Handle(ctx, r)
}

// WithAttrs implements slog.Handler. The counters are shared with the clone.
func (c *Collector) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Collector{next: c.next.WithAttrs(attrs), counts: c.counts}
}

// WithGroup implements slog.Handler.
func (c *Collector) WithGroup(name string) slog.Handler {
	return &Collector{next: c.next.WithGroup(name), counts: c.counts}
}

// Errors returns the number of error records seen.
func (c *Collector) Errors() int64 {
	return c.counts.errors.Load()
}

// Warnings returns the number of warning records seen.
func (c *Collector) Warnings() int64 {
	return c.counts.warnings.Load()
}
