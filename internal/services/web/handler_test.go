package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/azure-flow/AI-Guide/internal/cms"
	webstorage "github.com/azure-flow/AI-Guide/internal/services/web/storage"
)

// fakeSource serves canned CMS content to the page handlers.
type fakeSource struct {
	home      cms.HomeContent
	homeErr   error
	toolsPage cms.ToolsPage
	toolsErr  error
	tool      *cms.Tool
	toolErr   error
	posts     []cms.Post
	postsErr  error
	post      *cms.Post
	postErr   error
	tags      []cms.Tag
	tag       *cms.Tag
	tagErr    error

	mu         sync.Mutex
	toolsCalls []cms.ToolQuery
}

func (f *fakeSource) HomeContent(_ context.Context) (cms.HomeContent, error) {
	return f.home, f.homeErr
}

func (f *fakeSource) Tools(_ context.Context, query cms.ToolQuery) (cms.ToolsPage, error) {
	f.mu.Lock()
	f.toolsCalls = append(f.toolsCalls, query)
	f.mu.Unlock()
	return f.toolsPage, f.toolsErr
}

func (f *fakeSource) ToolBySlug(_ context.Context, _ string) (*cms.Tool, error) {
	return f.tool, f.toolErr
}

func (f *fakeSource) LatestPosts(_ context.Context, _ int) ([]cms.Post, error) {
	return f.posts, f.postsErr
}

func (f *fakeSource) PostBySlug(_ context.Context, _ string) (*cms.Post, error) {
	return f.post, f.postErr
}

func (f *fakeSource) Tags(_ context.Context, _ int) ([]cms.Tag, error) {
	return f.tags, nil
}

func (f *fakeSource) TagBySlug(_ context.Context, _ string) (*cms.Tag, error) {
	return f.tag, f.tagErr
}

// fakeStore keeps cached pages in memory and records stale marks.
type fakeStore struct {
	mu          sync.Mutex
	pages       map[string]webstorage.PageEntry
	failPuts    bool
	failMarks   bool
	stalePaths  []string
	staleScopes []string
	staleTags   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{pages: map[string]webstorage.PageEntry{}}
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) GetPage(_ context.Context, path string) (webstorage.PageEntry, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.pages[path]
	return entry, ok, nil
}

func (f *fakeStore) PutPage(_ context.Context, entry webstorage.PageEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPuts {
		return errors.New("put failed")
	}
	f.pages[entry.Path] = entry
	return nil
}

func (f *fakeStore) DeletePage(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pages, path)
	return nil
}

func (f *fakeStore) MarkPathStale(_ context.Context, path string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMarks {
		return errors.New("mark failed")
	}
	f.stalePaths = append(f.stalePaths, path)
	if entry, ok := f.pages[path]; ok {
		entry.Stale = true
		f.pages[path] = entry
	}
	return nil
}

func (f *fakeStore) MarkScopeStale(_ context.Context, scope string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMarks {
		return errors.New("mark failed")
	}
	f.staleScopes = append(f.staleScopes, scope)
	return nil
}

func (f *fakeStore) MarkTagStale(_ context.Context, tag string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMarks {
		return errors.New("mark failed")
	}
	f.staleTags = append(f.staleTags, tag)
	return nil
}

func (f *fakeStore) ListStalePaths(_ context.Context, _ time.Time, _ int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.stalePaths...), nil
}

func (f *fakeStore) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeStore) entry(t *testing.T, path string) webstorage.PageEntry {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.pages[path]
	if !ok {
		t.Fatalf("expected cached entry for %q", path)
	}
	return entry
}

func newTestHandler(source contentSource, store webstorage.Store) *handler {
	return newHandler(handlerOptions{
		source:           source,
		cacheStore:       store,
		revalidateSecret: "hook-secret",
		now:              func() time.Time { return time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC) },
	})
}

func doRequest(h *handler, method, target string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.routes().ServeHTTP(rec, req)
	return rec
}

func TestHomePageRendersSectionsOnMiss(t *testing.T) {
	source := &fakeSource{
		home: cms.HomeContent{
			FeaturedTools: []cms.Tool{{Slug: "scribbler", Name: "Scribbler", Summary: "Drafts copy."}},
			LatestPosts:   []cms.Post{{Slug: "hello", Title: "Hello", Date: "2026-07-01T08:30:00"}},
			PopularTags:   []cms.Tag{{Slug: "writing", Name: "Writing", Count: 4}},
		},
	}
	store := newFakeStore()
	rec := doRequest(newTestHandler(source, store), http.MethodGet, "/", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Fatalf("X-Cache = %q, want %q", got, "MISS")
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Scribbler") {
		t.Fatal("expected featured tool in homepage")
	}
	if !strings.Contains(body, "Hello") {
		t.Fatal("expected latest post in homepage")
	}
	if !strings.Contains(body, "Writing") {
		t.Fatal("expected popular tag in homepage")
	}

	entry := store.entry(t, "/")
	if entry.Scope != webstorage.ScopeHome {
		t.Fatalf("cached scope = %q, want %q", entry.Scope, webstorage.ScopeHome)
	}
}

func TestHomePageDegradesWhenCMSUnavailable(t *testing.T) {
	source := &fakeSource{homeErr: cms.ErrUnavailable}
	rec := doRequest(newTestHandler(source, newFakeStore()), http.MethodGet, "/", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Browse all tools") {
		t.Fatal("expected hero section despite CMS outage")
	}
}

func TestFreshCachedPageServedWithoutRender(t *testing.T) {
	source := &fakeSource{}
	store := newFakeStore()
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	store.pages["/"] = webstorage.PageEntry{
		Path:            "/",
		Scope:           webstorage.ScopeHome,
		HTML:            []byte("<html>cached home</html>"),
		RefreshedAt:     now.Add(-time.Minute),
		RevalidateAfter: now.Add(time.Hour),
	}

	rec := doRequest(newTestHandler(source, store), http.MethodGet, "/", "")

	if got := rec.Header().Get("X-Cache"); got != "HIT" {
		t.Fatalf("X-Cache = %q, want %q", got, "HIT")
	}
	if rec.Body.String() != "<html>cached home</html>" {
		t.Fatalf("body = %q, want cached markup", rec.Body.String())
	}
	source.mu.Lock()
	calls := len(source.toolsCalls)
	source.mu.Unlock()
	if calls != 0 {
		t.Fatalf("toolsCalls = %d, want none for a cache hit", calls)
	}
}

func TestStaleCachedPageServedImmediately(t *testing.T) {
	source := &fakeSource{}
	store := newFakeStore()
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	store.pages["/blog"] = webstorage.PageEntry{
		Path:            "/blog",
		Scope:           webstorage.ScopeBlog,
		HTML:            []byte("<html>stale blog</html>"),
		Stale:           true,
		RefreshedAt:     now.Add(-time.Hour),
		RevalidateAfter: now.Add(-time.Minute),
	}

	rec := doRequest(newTestHandler(source, store), http.MethodGet, "/blog", "")

	if got := rec.Header().Get("X-Cache"); got != "STALE" {
		t.Fatalf("X-Cache = %q, want %q", got, "STALE")
	}
	if rec.Body.String() != "<html>stale blog</html>" {
		t.Fatalf("body = %q, want stale markup", rec.Body.String())
	}
}

func TestToolDetailMissingReturns404(t *testing.T) {
	source := &fakeSource{}
	store := newFakeStore()
	rec := doRequest(newTestHandler(source, store), http.MethodGet, "/tools/missing", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "404") {
		t.Fatal("expected 404 error page body")
	}
	store.mu.Lock()
	_, cached := store.pages["/tools/missing"]
	store.mu.Unlock()
	if cached {
		t.Fatal("404 responses must not be cached")
	}
}

func TestToolDetailRendersParsedSections(t *testing.T) {
	source := &fakeSource{
		tool: &cms.Tool{
			Slug:           "scribbler",
			Name:           "Scribbler",
			Summary:        "Drafts marketing copy.",
			Rating:         4.5,
			PricingText:    "Starter $19/mo@Drafting\nPro $49/mo@Everything",
			KeyFindingsRaw: "Fast onboarding@Live in minutes",
			WhoIsItForRaw:  "Marketers@Ship more landing pages",
			Tags:           []cms.Tag{{Slug: "writing", Name: "Writing"}},
		},
	}
	store := newFakeStore()
	rec := doRequest(newTestHandler(source, store), http.MethodGet, "/tools/scribbler", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{"Starter", "$19/mo", "Fast onboarding", "Marketers"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}

	entry := store.entry(t, "/tools/scribbler")
	if len(entry.Tags) != 1 || entry.Tags[0] != "writing" {
		t.Fatalf("cached tags = %+v, want [writing]", entry.Tags)
	}
}

func TestToolDetailCMSFailureReturns5xx(t *testing.T) {
	source := &fakeSource{toolErr: cms.ErrUnavailable}
	rec := doRequest(newTestHandler(source, newFakeStore()), http.MethodGet, "/tools/scribbler", "")

	if rec.Code < http.StatusInternalServerError {
		t.Fatalf("status = %d, want server error", rec.Code)
	}
}

func TestToolsListingForwardsFilters(t *testing.T) {
	source := &fakeSource{}
	store := newFakeStore()
	rec := doRequest(newTestHandler(source, store), http.MethodGet, "/tools?tag=writing&q=draft", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	source.mu.Lock()
	defer source.mu.Unlock()
	if len(source.toolsCalls) != 1 {
		t.Fatalf("toolsCalls = %d, want 1", len(source.toolsCalls))
	}
	call := source.toolsCalls[0]
	if call.TagSlug != "writing" {
		t.Fatalf("TagSlug = %q, want %q", call.TagSlug, "writing")
	}
	if call.Search != "draft" {
		t.Fatalf("Search = %q, want %q", call.Search, "draft")
	}
}

func TestPostDetailRendersContent(t *testing.T) {
	source := &fakeSource{
		post: &cms.Post{
			Slug:    "launch",
			Title:   "Launch notes",
			Content: "<p>We shipped.</p>",
			Date:    "2026-07-15T09:00:00",
			Tags:    []cms.Tag{{Slug: "news"}},
		},
	}
	store := newFakeStore()
	rec := doRequest(newTestHandler(source, store), http.MethodGet, "/blog/launch", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "We shipped.") {
		t.Fatal("expected post body in response")
	}
	entry := store.entry(t, "/blog/launch")
	if entry.Scope != webstorage.ScopePost {
		t.Fatalf("cached scope = %q, want %q", entry.Scope, webstorage.ScopePost)
	}
}

func TestTagPageMissingTagReturns404(t *testing.T) {
	rec := doRequest(newTestHandler(&fakeSource{}, newFakeStore()), http.MethodGet, "/tags/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestUnknownPathReturns404Page(t *testing.T) {
	rec := doRequest(newTestHandler(&fakeSource{}, newFakeStore()), http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "404") {
		t.Fatal("expected 404 error page body")
	}
}

func TestPageRoutesRejectWrites(t *testing.T) {
	rec := doRequest(newTestHandler(&fakeSource{}, newFakeStore()), http.MethodPost, "/tools", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHealthEndpoint(t *testing.T) {
	rec := doRequest(newTestHandler(&fakeSource{}, newFakeStore()), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("body = %q, want ok status", rec.Body.String())
	}
}

func TestToolsCachePathCanonicalizesQuery(t *testing.T) {
	if got := toolsCachePath("", "", ""); got != "/tools" {
		t.Fatalf("toolsCachePath() = %q, want %q", got, "/tools")
	}
	if got := toolsCachePath(" writing ", "draft", ""); got != "/tools?q=draft&tag=writing" {
		t.Fatalf("toolsCachePath() = %q, want %q", got, "/tools?q=draft&tag=writing")
	}
}

func TestPathSlug(t *testing.T) {
	if got := pathSlug("/tools/scribbler", "/tools/"); got != "scribbler" {
		t.Fatalf("pathSlug() = %q, want %q", got, "scribbler")
	}
	if got := pathSlug("/tools/a/b", "/tools/"); got != "" {
		t.Fatalf("pathSlug() = %q, want empty for nested path", got)
	}
	if got := pathSlug("/tools/", "/tools/"); got != "" {
		t.Fatalf("pathSlug() = %q, want empty", got)
	}
}

var _ contentSource = (*fakeSource)(nil)
var _ webstorage.Store = (*fakeStore)(nil)
