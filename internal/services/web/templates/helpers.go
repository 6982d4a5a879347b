// Package templates renders site pages as templ components.
package templates

import (
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/azure-flow/AI-Guide/internal/platform/branding"
)

// ComposePageTitle appends the brand suffix to a page title, normalizing
// titles that already carry a hyphen-style suffix.
func ComposePageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return branding.AppName
	}
	suffix := " | " + branding.AppName
	if strings.HasSuffix(title, suffix) {
		return title
	}
	hyphenSuffix := " - " + branding.AppName
	if strings.HasSuffix(title, hyphenSuffix) {
		return strings.TrimSuffix(title, hyphenSuffix) + suffix
	}
	return title + suffix
}

// htmlWriter accumulates component output, short-circuiting after the first
// write error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func newHTMLWriter(w io.Writer) *htmlWriter {
	return &htmlWriter{w: w}
}

// raw writes trusted markup verbatim.
func (h *htmlWriter) raw(markup string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, markup)
}

// text writes untrusted content escaped for both element and attribute
// positions.
func (h *htmlWriter) text(content string) {
	h.raw(templ.EscapeString(content))
}

// url writes an untrusted URL, sanitized against script schemes and escaped
// for attribute position.
func (h *htmlWriter) url(value string) {
	h.raw(templ.EscapeString(string(templ.URL(value))))
}

// itoa writes an integer.
func (h *htmlWriter) itoa(value int) {
	h.raw(strconv.Itoa(value))
}

func ratingLabel(rating float64) string {
	if rating <= 0 {
		return ""
	}
	return strconv.FormatFloat(rating, 'f', 1, 64)
}
