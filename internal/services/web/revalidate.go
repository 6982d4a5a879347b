package web

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/azure-flow/AI-Guide/internal/services/web/platform/httpx"
	"github.com/azure-flow/AI-Guide/internal/services/web/routepath"
	webstorage "github.com/azure-flow/AI-Guide/internal/services/web/storage"
)

// revalidateRequest is the webhook payload the CMS sends after publishing.
// The GET form carries only secret and path; the POST form describes the
// changed entry so listings and tag pages go stale with it.
type revalidateRequest struct {
	Secret     string   `json:"secret"`
	Path       string   `json:"path"`
	Slug       string   `json:"slug"`
	PostType   string   `json:"postType"`
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
}

type revalidateResponse struct {
	Revalidated bool     `json:"revalidated"`
	Paths       []string `json:"paths,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Message     string   `json:"message,omitempty"`
}

// handleRevalidate marks cached pages stale for a published CMS change.
// Cached HTML is never deleted here; the refresh worker re-renders stale
// paths so visitors keep getting a page while the new copy builds.
func (h *handler) handleRevalidate(w http.ResponseWriter, r *http.Request) {
	var req revalidateRequest
	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		req.Secret = query.Get("secret")
		req.Path = query.Get("path")
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = httpx.WriteJSON(w, http.StatusBadRequest, revalidateResponse{Message: "invalid payload"})
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if !h.secretMatches(req.Secret) {
		_ = httpx.WriteJSON(w, http.StatusUnauthorized, revalidateResponse{Message: "invalid secret"})
		return
	}
	if h.cacheStore == nil {
		_ = httpx.WriteJSON(w, http.StatusOK, revalidateResponse{Revalidated: false, Message: "cache disabled"})
		return
	}

	paths, scopes, tags := revalidationTargets(req)
	ctx := httpx.RequestContext(r)
	now := h.now()

	for _, path := range paths {
		if err := h.cacheStore.MarkPathStale(ctx, path, now); err != nil {
			log.Printf("revalidate path %q: %v", path, err)
			_ = httpx.WriteJSON(w, http.StatusInternalServerError, revalidateResponse{Message: "revalidation failed"})
			return
		}
	}
	for _, scope := range scopes {
		if err := h.cacheStore.MarkScopeStale(ctx, scope, now); err != nil {
			log.Printf("revalidate scope %q: %v", scope, err)
			_ = httpx.WriteJSON(w, http.StatusInternalServerError, revalidateResponse{Message: "revalidation failed"})
			return
		}
	}
	for _, tag := range tags {
		if err := h.cacheStore.MarkTagStale(ctx, tag, now); err != nil {
			log.Printf("revalidate tag %q: %v", tag, err)
			_ = httpx.WriteJSON(w, http.StatusInternalServerError, revalidateResponse{Message: "revalidation failed"})
			return
		}
	}

	_ = httpx.WriteJSON(w, http.StatusOK, revalidateResponse{
		Revalidated: true,
		Paths:       paths,
		Tags:        tags,
	})
}

// secretMatches compares the presented secret in constant time. An
// unconfigured secret disables the webhook entirely.
func (h *handler) secretMatches(presented string) bool {
	if h.revalidateSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(h.revalidateSecret)) == 1
}

// revalidationTargets expands one CMS change into the cached paths, scopes,
// and tags that depend on it. The homepage aggregates featured tools and
// latest posts, so any change marks it stale.
func revalidationTargets(req revalidateRequest) (paths, scopes, tags []string) {
	pathSet := map[string]struct{}{}
	scopeSet := map[string]struct{}{}
	tagSet := map[string]struct{}{}

	if path := strings.TrimSpace(req.Path); path != "" && strings.HasPrefix(path, "/") {
		pathSet[path] = struct{}{}
	}

	slug := strings.TrimSpace(req.Slug)
	if slug != "" {
		switch normalizePostType(req.PostType) {
		case "tool":
			pathSet[routepath.Tool(slug)] = struct{}{}
			scopeSet[webstorage.ScopeTools] = struct{}{}
		case "post":
			pathSet[routepath.Post(slug)] = struct{}{}
			scopeSet[webstorage.ScopeBlog] = struct{}{}
		default:
			// Without a post type the slug could name either entry kind.
			pathSet[routepath.Tool(slug)] = struct{}{}
			pathSet[routepath.Post(slug)] = struct{}{}
			scopeSet[webstorage.ScopeTools] = struct{}{}
			scopeSet[webstorage.ScopeBlog] = struct{}{}
		}
	}

	for _, tag := range req.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tagSet[tag] = struct{}{}
		pathSet[routepath.Tag(tag)] = struct{}{}
	}
	if len(req.Categories) > 0 {
		// Categories only shape the directory listing.
		scopeSet[webstorage.ScopeTools] = struct{}{}
	}

	if len(pathSet) > 0 || len(scopeSet) > 0 || len(tagSet) > 0 {
		scopeSet[webstorage.ScopeHome] = struct{}{}
	}

	return sortedKeys(pathSet), sortedKeys(scopeSet), sortedKeys(tagSet)
}

func normalizePostType(postType string) string {
	switch strings.ToLower(strings.TrimSpace(postType)) {
	case "tool", "tools", "ai_tool":
		return "tool"
	case "post", "posts", "blog":
		return "post"
	}
	return ""
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
