package web

import (
	"context"
	"log"
	"net/http"
	"time"

	apperrors "github.com/azure-flow/AI-Guide/internal/services/web/platform/errors"
	"github.com/azure-flow/AI-Guide/internal/services/web/platform/httpx"
	webstorage "github.com/azure-flow/AI-Guide/internal/services/web/storage"
)

// defaultRevalidateTTL is how long a cached page is served without a
// background refresh.
const defaultRevalidateTTL = 5 * time.Minute

// defaultCacheExpiry is the hard lifetime of a cached page. Entries past it
// are purged instead of served stale.
const defaultCacheExpiry = 24 * time.Hour

// backgroundRefreshTimeout bounds one background re-render.
const backgroundRefreshTimeout = 30 * time.Second

// cacheStateHeader reports the cache decision on every page response.
const cacheStateHeader = "X-Cache"

// servePage serves a page through the cache: a fresh entry is returned as
// is, a stale or due entry is returned immediately while a background
// refresh re-renders it, and a miss renders synchronously.
func (h *handler) servePage(w http.ResponseWriter, r *http.Request, cachePath string) {
	ctx := httpx.RequestContext(r)
	now := h.now()

	if h.cacheStore != nil {
		entry, ok, err := h.cacheStore.GetPage(ctx, cachePath)
		if err != nil {
			log.Printf("page cache lookup %q: %v", cachePath, err)
		} else if ok {
			fresh := !entry.Stale && (entry.RevalidateAfter.IsZero() || now.Before(entry.RevalidateAfter))
			if fresh {
				h.writePage(w, r, http.StatusOK, entry.HTML, "HIT")
				return
			}
			h.writePage(w, r, http.StatusOK, entry.HTML, "STALE")
			h.refreshAsync(cachePath)
			return
		}
	}

	page, err := h.renderPath(ctx, cachePath)
	if err != nil {
		h.writeErrorPage(w, r, err)
		return
	}
	if page.status == http.StatusOK {
		h.storePage(ctx, cachePath, page, now)
	}
	h.writePage(w, r, page.status, page.html, "MISS")
}

// storePage persists a freshly rendered page. Failures are logged; the page
// was already rendered so the response does not depend on the cache.
func (h *handler) storePage(ctx context.Context, cachePath string, page renderedPage, now time.Time) {
	if h.cacheStore == nil {
		return
	}
	err := h.cacheStore.PutPage(ctx, webstorage.PageEntry{
		Path:            cachePath,
		Scope:           page.scope,
		Tags:            page.tags,
		HTML:            page.html,
		RefreshedAt:     now,
		RevalidateAfter: now.Add(h.revalidateTTL),
		ExpiresAt:       now.Add(h.cacheExpiry),
	})
	if err != nil {
		log.Printf("page cache store %q: %v", cachePath, err)
	}
}

// refreshAsync re-renders one cached path in the background. Concurrent
// requests for the same stale path collapse into a single refresh.
func (h *handler) refreshAsync(cachePath string) {
	go func() {
		_, _, _ = h.refreshGroup.Do(cachePath, func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), backgroundRefreshTimeout)
			defer cancel()
			if err := h.refreshPath(ctx, cachePath); err != nil {
				log.Printf("background refresh %q: %v", cachePath, err)
			}
			return nil, nil
		})
	}()
}

// refreshPath re-renders one cached path and updates the cache. A page that
// now resolves to 404 is evicted so the stale copy stops being served.
func (h *handler) refreshPath(ctx context.Context, cachePath string) error {
	if h.cacheStore == nil {
		return nil
	}
	page, err := h.renderPath(ctx, cachePath)
	if err != nil {
		return err
	}
	switch page.status {
	case http.StatusOK:
		h.storePage(ctx, cachePath, page, h.now())
	case http.StatusNotFound:
		if err := h.cacheStore.DeletePage(ctx, cachePath); err != nil {
			return err
		}
	}
	return nil
}

func (h *handler) writePage(w http.ResponseWriter, r *http.Request, status int, html []byte, cacheState string) {
	w.Header().Set(cacheStateHeader, cacheState)
	w.Header().Set("Content-Language", contentLanguage(r))
	if err := httpx.WriteHTML(w, status, html); err != nil {
		log.Printf("write page response: %v", err)
	}
}

func (h *handler) writeErrorPage(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status < http.StatusInternalServerError && status != http.StatusNotFound {
		status = http.StatusInternalServerError
	}
	log.Printf("render page %s: %v", r.URL.Path, err)
	page, renderErr := h.renderErrorDocument(httpx.RequestContext(r), status)
	if renderErr != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	h.writePage(w, r, page.status, page.html, "MISS")
}

func (h *handler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	page, err := h.renderErrorDocument(httpx.RequestContext(r), http.StatusNotFound)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.writePage(w, r, page.status, page.html, "MISS")
}
