package storage

import (
	"context"
	"time"
)

// PageEntry stores one rendered page and its freshness metadata.
//
// Cached pages are always derived and can be discarded/rebuilt from CMS
// reads.
type PageEntry struct {
	Path            string
	Scope           string
	Tags            []string
	HTML            []byte
	Stale           bool
	RefreshedAt     time.Time
	RevalidateAfter time.Time
	ExpiresAt       time.Time
}

// Page scopes, one per page family. Revalidation fans out across scopes.
const (
	ScopeHome  = "home"
	ScopeTools = "tools"
	ScopeTool  = "tool"
	ScopeBlog  = "blog"
	ScopePost  = "post"
	ScopeTag   = "tag"
)

// Store is the contract for rendered-page cache persistence.
type Store interface {
	Close() error
	GetPage(ctx context.Context, path string) (PageEntry, bool, error)
	PutPage(ctx context.Context, entry PageEntry) error
	DeletePage(ctx context.Context, path string) error
	MarkPathStale(ctx context.Context, path string, checkedAt time.Time) error
	MarkScopeStale(ctx context.Context, scope string, checkedAt time.Time) error
	MarkTagStale(ctx context.Context, tag string, checkedAt time.Time) error
	ListStalePaths(ctx context.Context, now time.Time, limit int) ([]string, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
