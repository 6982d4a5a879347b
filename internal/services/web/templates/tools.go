package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/azure-flow/AI-Guide/internal/content"
	"github.com/azure-flow/AI-Guide/internal/services/web/routepath"
)

// ToolsData carries one page of the tools directory.
type ToolsData struct {
	Tools       []content.ToolView
	Tags        []content.TagView
	ActiveTag   string
	Search      string
	NextCursor  string
	HasNextPage bool
}

// ToolsPage renders the directory listing fragment.
func ToolsPage(data ToolsData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		b := newHTMLWriter(w)
		b.raw(`<section class="tools-directory"><h1>AI tools directory</h1>`)

		b.raw(`<form class="tools-search" method="GET" action="`)
		b.raw(routepath.Tools)
		b.raw(`"><input type="search" name="q" placeholder="Search tools" value="`)
		b.text(data.Search)
		b.raw(`">`)
		if data.ActiveTag != "" {
			b.raw(`<input type="hidden" name="tag" value="`)
			b.text(data.ActiveTag)
			b.raw(`">`)
		}
		b.raw(`<button type="submit">Search</button></form>`)

		if len(data.Tags) > 0 {
			b.raw(`<ul class="tag-list tools-filter">`)
			for _, tag := range data.Tags {
				b.raw(`<li class="tag-chip`)
				if tag.Slug == data.ActiveTag {
					b.raw(` active`)
				}
				b.raw(`"><a href="`)
				b.raw(routepath.ToolsWithTag(tag.Slug))
				b.raw(`">`)
				b.text(tag.Name)
				b.raw(`</a></li>`)
			}
			b.raw(`</ul>`)
		}

		if len(data.Tools) == 0 {
			b.raw(`<p class="empty-state">No tools found.</p>`)
		} else {
			b.raw(`<div class="tool-grid">`)
			for _, tool := range data.Tools {
				writeToolCard(b, tool)
			}
			b.raw(`</div>`)
		}

		if data.HasNextPage && data.NextCursor != "" {
			b.raw(`<a class="load-more" href="`)
			b.raw(routepath.Tools)
			b.raw(`?after=`)
			b.text(data.NextCursor)
			if data.ActiveTag != "" {
				b.raw(`&amp;tag=`)
				b.text(data.ActiveTag)
			}
			if data.Search != "" {
				b.raw(`&amp;q=`)
				b.text(data.Search)
			}
			b.raw(`">Next page</a>`)
		}
		b.raw(`</section>`)
		return b.err
	})
}
