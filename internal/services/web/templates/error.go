package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/azure-flow/AI-Guide/internal/services/web/routepath"
)

// ErrorPageTitle returns the browser page title for error pages.
func ErrorPageTitle(statusCode int) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return "Page not found"
	}
	return "Something went wrong"
}

// ErrorPage renders the error fragment for 404 and 5xx responses.
func ErrorPage(statusCode int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		status := normalizeErrorStatus(statusCode)
		b := newHTMLWriter(w)
		b.raw(`<section class="error-page"><h1>`)
		b.itoa(status)
		b.raw(`</h1><p>`)
		if status == http.StatusNotFound {
			b.raw(`This page does not exist.`)
		} else {
			b.raw(`Something went wrong on our side. Please try again later.`)
		}
		b.raw(`</p><a class="error-home" href="`)
		b.raw(routepath.Root)
		b.raw(`">Back to the homepage</a></section>`)
		return b.err
	})
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
