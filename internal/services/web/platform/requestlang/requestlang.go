// Package requestlang resolves the page language for a request.
package requestlang

import (
	"net/http"

	"golang.org/x/text/language"
)

// supported lists the languages the site ships copy for, in priority order.
// The first entry is the fallback.
var supported = []language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

// Resolve returns the BCP 47 language for the request based on its
// Accept-Language header, falling back to en-US.
func Resolve(r *http.Request) string {
	if r == nil {
		return supported[0].String()
	}
	accept := r.Header.Get("Accept-Language")
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return supported[0].String()
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx].String()
}
