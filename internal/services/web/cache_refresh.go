package web

import (
	"context"
	"fmt"
	"log"
	"time"
)

// cacheRefreshInterval is how often the worker sweeps for stale pages.
const cacheRefreshInterval = 30 * time.Second

// cacheRefreshBatch caps how many stale paths one sweep re-renders.
const cacheRefreshBatch = 20

// startCacheRefreshWorker runs the stale-page sweep until the returned
// cancel fires. The done channel closes once the loop exits.
func startCacheRefreshWorker(h *handler) (context.CancelFunc, chan struct{}) {
	if h == nil || h.cacheStore == nil {
		return nil, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		h.runCacheRefreshLoop(ctx, cacheRefreshInterval)
	}()

	return cancel, done
}

func (h *handler) runCacheRefreshLoop(ctx context.Context, interval time.Duration) {
	if h == nil || h.cacheStore == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if interval <= 0 {
		interval = cacheRefreshInterval
	}

	if err := h.refreshStalePages(ctx); err != nil {
		log.Printf("cache refresh sweep failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.refreshStalePages(ctx); err != nil {
				log.Printf("cache refresh sweep failed: %v", err)
			}
		}
	}
}

// refreshStalePages re-renders every stale or due cached path and purges
// entries past their hard expiry. One failing path does not stop the sweep.
func (h *handler) refreshStalePages(ctx context.Context) error {
	if h == nil || h.cacheStore == nil {
		return nil
	}
	now := h.now()

	if deleted, err := h.cacheStore.DeleteExpired(ctx, now); err != nil {
		return fmt.Errorf("purge expired pages: %w", err)
	} else if deleted > 0 {
		log.Printf("purged %d expired cached pages", deleted)
	}

	paths, err := h.cacheStore.ListStalePaths(ctx, now, cacheRefreshBatch)
	if err != nil {
		return fmt.Errorf("list stale paths: %w", err)
	}
	for _, path := range paths {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := h.refreshPath(ctx, path); err != nil {
			log.Printf("refresh cached page %q: %v", path, err)
		}
	}
	return nil
}
