package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/azure-flow/AI-Guide/internal/cms"
)

func TestHTTPStatusMapsKinds(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindInvalidInput, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindNotFound, http.StatusNotFound},
		{KindUnknown, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(E(tc.kind, "boom")); got != tc.want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestHTTPStatusNilErrorIsOK(t *testing.T) {
	if got := HTTPStatus(nil); got != http.StatusOK {
		t.Fatalf("HTTPStatus(nil) = %d, want %d", got, http.StatusOK)
	}
}

func TestHTTPStatusWrappedTypedError(t *testing.T) {
	err := fmt.Errorf("load tool: %w", E(KindNotFound, "tool missing"))
	if got := HTTPStatus(err); got != http.StatusNotFound {
		t.Fatalf("HTTPStatus(wrapped) = %d, want %d", got, http.StatusNotFound)
	}
}

func TestHTTPStatusCMSUnavailable(t *testing.T) {
	err := fmt.Errorf("home content: %w", cms.ErrUnavailable)
	if got := HTTPStatus(err); got != http.StatusServiceUnavailable {
		t.Fatalf("HTTPStatus(cms unavailable) = %d, want %d", got, http.StatusServiceUnavailable)
	}
}

func TestHTTPStatusUnknownErrorIsServerError(t *testing.T) {
	if got := HTTPStatus(fmt.Errorf("boom")); got != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus(plain) = %d, want %d", got, http.StatusInternalServerError)
	}
}
