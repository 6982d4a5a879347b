package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/azure-flow/AI-Guide/internal/cms"
	"github.com/azure-flow/AI-Guide/internal/services/web/platform/httpx"
	"github.com/azure-flow/AI-Guide/internal/services/web/platform/requestlang"
	"github.com/azure-flow/AI-Guide/internal/services/web/routepath"
	webstorage "github.com/azure-flow/AI-Guide/internal/services/web/storage"
)

// contentSource is the slice of the CMS client the page handlers consume.
// Declared here so tests can substitute a fake.
type contentSource interface {
	HomeContent(ctx context.Context) (cms.HomeContent, error)
	Tools(ctx context.Context, query cms.ToolQuery) (cms.ToolsPage, error)
	ToolBySlug(ctx context.Context, slug string) (*cms.Tool, error)
	LatestPosts(ctx context.Context, limit int) ([]cms.Post, error)
	PostBySlug(ctx context.Context, slug string) (*cms.Post, error)
	Tags(ctx context.Context, limit int) ([]cms.Tag, error)
	TagBySlug(ctx context.Context, slug string) (*cms.Tag, error)
}

type handler struct {
	source           contentSource
	cacheStore       webstorage.Store
	revalidateSecret string
	revalidateTTL    time.Duration
	cacheExpiry      time.Duration
	now              func() time.Time
	refreshGroup     singleflight.Group
}

type handlerOptions struct {
	source           contentSource
	cacheStore       webstorage.Store
	revalidateSecret string
	revalidateTTL    time.Duration
	cacheExpiry      time.Duration
	now              func() time.Time
}

func newHandler(opts handlerOptions) *handler {
	if opts.revalidateTTL <= 0 {
		opts.revalidateTTL = defaultRevalidateTTL
	}
	if opts.cacheExpiry <= 0 {
		opts.cacheExpiry = defaultCacheExpiry
	}
	if opts.now == nil {
		opts.now = func() time.Time { return time.Now().UTC() }
	}
	return &handler{
		source:           opts.source,
		cacheStore:       opts.cacheStore,
		revalidateSecret: strings.TrimSpace(opts.revalidateSecret),
		revalidateTTL:    opts.revalidateTTL,
		cacheExpiry:      opts.cacheExpiry,
		now:              opts.now,
	}
}

// routes builds the HTTP handler for the site.
func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/static/", staticHandler())

	mux.HandleFunc(routepath.Health, h.handleHealth)
	mux.HandleFunc(routepath.Revalidate, h.handleRevalidate)

	mux.HandleFunc(routepath.Tools, h.handleTools)
	mux.HandleFunc(routepath.ToolsPrefix, h.handleToolDetail)
	mux.HandleFunc(routepath.Blog, h.handleBlog)
	mux.HandleFunc(routepath.BlogPrefix, h.handlePostDetail)
	mux.HandleFunc(routepath.TagsPrefix, h.handleTagDetail)

	mux.HandleFunc(routepath.Root, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routepath.Root {
			h.renderNotFound(w, r)
			return
		}
		h.handleHome(w, r)
	})

	return httpx.Chain(mux, httpx.RequestID(), httpx.RecoverPanic())
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleHome(w http.ResponseWriter, r *http.Request) {
	if !pageMethodAllowed(w, r) {
		return
	}
	h.servePage(w, r, routepath.Root)
}

func (h *handler) handleTools(w http.ResponseWriter, r *http.Request) {
	if !pageMethodAllowed(w, r) {
		return
	}
	query := r.URL.Query()
	h.servePage(w, r, toolsCachePath(query.Get("tag"), query.Get("q"), query.Get("after")))
}

func (h *handler) handleToolDetail(w http.ResponseWriter, r *http.Request) {
	if !pageMethodAllowed(w, r) {
		return
	}
	slug := pathSlug(r.URL.Path, routepath.ToolsPrefix)
	if slug == "" {
		http.Redirect(w, r, routepath.Tools, http.StatusMovedPermanently)
		return
	}
	h.servePage(w, r, routepath.Tool(slug))
}

func (h *handler) handleBlog(w http.ResponseWriter, r *http.Request) {
	if !pageMethodAllowed(w, r) {
		return
	}
	h.servePage(w, r, routepath.Blog)
}

func (h *handler) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	if !pageMethodAllowed(w, r) {
		return
	}
	slug := pathSlug(r.URL.Path, routepath.BlogPrefix)
	if slug == "" {
		http.Redirect(w, r, routepath.Blog, http.StatusMovedPermanently)
		return
	}
	h.servePage(w, r, routepath.Post(slug))
}

func (h *handler) handleTagDetail(w http.ResponseWriter, r *http.Request) {
	if !pageMethodAllowed(w, r) {
		return
	}
	slug := pathSlug(r.URL.Path, routepath.TagsPrefix)
	if slug == "" {
		h.renderNotFound(w, r)
		return
	}
	h.servePage(w, r, routepath.Tag(slug))
}

// pageMethodAllowed rejects non-read methods on page routes.
func pageMethodAllowed(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	w.WriteHeader(http.StatusMethodNotAllowed)
	return false
}

// pathSlug extracts the trailing slug from a prefixed route. Nested paths
// are not part of the URL scheme and resolve to no slug.
func pathSlug(path, prefix string) string {
	slug := strings.TrimPrefix(path, prefix)
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "/") {
		return ""
	}
	return slug
}

// contentLanguage advertises the negotiated UI language without forking the
// cached markup, which is shared across visitors.
func contentLanguage(r *http.Request) string {
	return requestlang.Resolve(r)
}
