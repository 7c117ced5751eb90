package live

import (
	"context"
	"log/slog"
	"time"
)

// Watcher is a change source, such as a store's Watch method.
type Watcher interface {
	Watch(ctx context.Context, fn func(collection string)) error
}

// Backoff bounds the delay between change feed reconnects.
type Backoff struct {
	Min, Max time.Duration
}

// DefaultBackoff is used by the server.
var DefaultBackoff = Backoff{Min: time.Second, Max: 30 * time.Second}

// Follow feeds changes from w into the hub until ctx is done. When the watch
// fails it is restarted with exponential backoff, and every collection is
// refreshed so subscribers catch up on anything missed while disconnected.
func Follow(ctx context.Context, w Watcher, hub *Hub, collections []string, b Backoff) {
	delay := b.Min
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			for _, collection := range collections {
				hub.Notify(ctx, collection)
			}
		}

		started := time.Now()
		err := w.Watch(ctx, func(collection string) {
			hub.Notify(ctx, collection)
		})
		if ctx.Err() != nil {
			return
		}
		if time.Since(started) > b.Max {
			delay = b.Min
		}
		if err == nil {
			// a clean return without cancellation is still a dropped feed
			slog.Warn("Change feed ended, restarting", "retry_in", delay)
		} else {
			slog.Error("Change feed failed, restarting", "error", err, "retry_in", delay)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay = min(delay*2, b.Max)
	}
}
