package requestlang

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func requestWithAcceptLanguage(value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		r.Header.Set("Accept-Language", value)
	}
	return r
}

func TestResolveDefaultsToEnglish(t *testing.T) {
	if got := Resolve(requestWithAcceptLanguage("")); got != "en-US" {
		t.Fatalf("Resolve() = %q, want %q", got, "en-US")
	}
}

func TestResolveMatchesSupportedLanguage(t *testing.T) {
	if got := Resolve(requestWithAcceptLanguage("pt-BR,pt;q=0.9")); got != "pt-BR" {
		t.Fatalf("Resolve() = %q, want %q", got, "pt-BR")
	}
}

func TestResolveFallsBackForUnsupportedLanguage(t *testing.T) {
	if got := Resolve(requestWithAcceptLanguage("ja-JP")); got != "en-US" {
		t.Fatalf("Resolve() = %q, want %q", got, "en-US")
	}
}

func TestResolveMalformedHeaderFallsBack(t *testing.T) {
	if got := Resolve(requestWithAcceptLanguage(";;;")); got != "en-US" {
		t.Fatalf("Resolve() = %q, want %q", got, "en-US")
	}
}

func TestResolveNilRequest(t *testing.T) {
	if got := Resolve(nil); got != "en-US" {
		t.Fatalf("Resolve(nil) = %q, want %q", got, "en-US")
	}
}
