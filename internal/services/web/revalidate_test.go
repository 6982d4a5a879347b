package web

import (
	"encoding/json"
	"net/http"
	"testing"

	webstorage "github.com/azure-flow/AI-Guide/internal/services/web/storage"
)

func decodeRevalidateResponse(t *testing.T, body []byte) revalidateResponse {
	t.Helper()
	var resp revalidateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestRevalidateRejectsInvalidSecret(t *testing.T) {
	store := newFakeStore()
	rec := doRequest(newTestHandler(&fakeSource{}, store), http.MethodGet, "/api/revalidate?secret=wrong&path=/tools", "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	resp := decodeRevalidateResponse(t, rec.Body.Bytes())
	if resp.Revalidated {
		t.Fatal("expected revalidated=false")
	}
	store.mu.Lock()
	marked := len(store.stalePaths)
	store.mu.Unlock()
	if marked != 0 {
		t.Fatalf("stalePaths = %d, want none", marked)
	}
}

func TestRevalidateRejectsWhenSecretUnconfigured(t *testing.T) {
	h := newHandler(handlerOptions{source: &fakeSource{}, cacheStore: newFakeStore()})
	rec := doRequest(h, http.MethodGet, "/api/revalidate?secret=&path=/tools", "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRevalidateGetMarksPathStale(t *testing.T) {
	store := newFakeStore()
	rec := doRequest(newTestHandler(&fakeSource{}, store), http.MethodGet, "/api/revalidate?secret=hook-secret&path=/tools/scribbler", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	resp := decodeRevalidateResponse(t, rec.Body.Bytes())
	if !resp.Revalidated {
		t.Fatal("expected revalidated=true")
	}
	if len(resp.Paths) != 1 || resp.Paths[0] != "/tools/scribbler" {
		t.Fatalf("Paths = %v, want [/tools/scribbler]", resp.Paths)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.stalePaths) != 1 || store.stalePaths[0] != "/tools/scribbler" {
		t.Fatalf("stalePaths = %v, want [/tools/scribbler]", store.stalePaths)
	}
	if len(store.staleScopes) != 1 || store.staleScopes[0] != webstorage.ScopeHome {
		t.Fatalf("staleScopes = %v, want [home]", store.staleScopes)
	}
}

func TestRevalidatePostFansOutToolChange(t *testing.T) {
	store := newFakeStore()
	payload := `{"secret":"hook-secret","slug":"scribbler","postType":"tool","tags":["writing","drafting"]}`
	rec := doRequest(newTestHandler(&fakeSource{}, store), http.MethodPost, "/api/revalidate", payload)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	resp := decodeRevalidateResponse(t, rec.Body.Bytes())
	if !resp.Revalidated {
		t.Fatal("expected revalidated=true")
	}

	wantPaths := map[string]bool{
		"/tools/scribbler": true,
		"/tags/writing":    true,
		"/tags/drafting":   true,
	}
	if len(resp.Paths) != len(wantPaths) {
		t.Fatalf("Paths = %v, want %d entries", resp.Paths, len(wantPaths))
	}
	for _, path := range resp.Paths {
		if !wantPaths[path] {
			t.Fatalf("unexpected path %q in %v", path, resp.Paths)
		}
	}
	if len(resp.Tags) != 2 {
		t.Fatalf("Tags = %v, want 2 entries", resp.Tags)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	scopes := map[string]bool{}
	for _, scope := range store.staleScopes {
		scopes[scope] = true
	}
	if !scopes[webstorage.ScopeTools] || !scopes[webstorage.ScopeHome] {
		t.Fatalf("staleScopes = %v, want tools and home", store.staleScopes)
	}
	if len(store.staleTags) != 2 {
		t.Fatalf("staleTags = %v, want 2 entries", store.staleTags)
	}
}

func TestRevalidatePostChangeMarksBlogScope(t *testing.T) {
	store := newFakeStore()
	payload := `{"secret":"hook-secret","slug":"launch","postType":"post"}`
	rec := doRequest(newTestHandler(&fakeSource{}, store), http.MethodPost, "/api/revalidate", payload)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.stalePaths) != 1 || store.stalePaths[0] != "/blog/launch" {
		t.Fatalf("stalePaths = %v, want [/blog/launch]", store.stalePaths)
	}
	scopes := map[string]bool{}
	for _, scope := range store.staleScopes {
		scopes[scope] = true
	}
	if !scopes[webstorage.ScopeBlog] || !scopes[webstorage.ScopeHome] {
		t.Fatalf("staleScopes = %v, want blog and home", store.staleScopes)
	}
}

func TestRevalidateUnknownPostTypeMarksBothDetailPaths(t *testing.T) {
	store := newFakeStore()
	payload := `{"secret":"hook-secret","slug":"thing"}`
	rec := doRequest(newTestHandler(&fakeSource{}, store), http.MethodPost, "/api/revalidate", payload)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	paths := map[string]bool{}
	for _, path := range store.stalePaths {
		paths[path] = true
	}
	if !paths["/tools/thing"] || !paths["/blog/thing"] {
		t.Fatalf("stalePaths = %v, want both detail paths", store.stalePaths)
	}
}

func TestRevalidateMalformedJSONReturns400(t *testing.T) {
	rec := doRequest(newTestHandler(&fakeSource{}, newFakeStore()), http.MethodPost, "/api/revalidate", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRevalidateStoreFailureReturns500(t *testing.T) {
	store := newFakeStore()
	store.failMarks = true
	rec := doRequest(newTestHandler(&fakeSource{}, store), http.MethodGet, "/api/revalidate?secret=hook-secret&path=/tools", "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	resp := decodeRevalidateResponse(t, rec.Body.Bytes())
	if resp.Revalidated {
		t.Fatal("expected revalidated=false")
	}
}

func TestRevalidateRejectsUnsupportedMethod(t *testing.T) {
	rec := doRequest(newTestHandler(&fakeSource{}, newFakeStore()), http.MethodDelete, "/api/revalidate", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestRevalidationTargetsIgnoresRelativePaths(t *testing.T) {
	paths, scopes, tags := revalidationTargets(revalidateRequest{Path: "tools"})
	if len(paths) != 0 || len(scopes) != 0 || len(tags) != 0 {
		t.Fatalf("targets = %v %v %v, want none for a relative path", paths, scopes, tags)
	}
}
