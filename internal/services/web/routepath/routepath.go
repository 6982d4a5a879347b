// Package routepath centralizes URL paths served by the web service.
package routepath

import "strings"

const (
	Root        = "/"
	Tools       = "/tools"
	ToolsPrefix = "/tools/"
	Blog        = "/blog"
	BlogPrefix  = "/blog/"
	TagsPrefix  = "/tags/"
	Revalidate  = "/api/revalidate"
	Health      = "/healthz"
)

// Tool returns the detail path for a tool slug.
func Tool(slug string) string {
	return ToolsPrefix + strings.TrimSpace(slug)
}

// Post returns the detail path for a blog post slug.
func Post(slug string) string {
	return BlogPrefix + strings.TrimSpace(slug)
}

// Tag returns the listing path for a tag slug.
func Tag(slug string) string {
	return TagsPrefix + strings.TrimSpace(slug)
}

// ToolsWithTag returns the directory path filtered by a tag slug.
func ToolsWithTag(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Tools
	}
	return Tools + "?tag=" + slug
}
