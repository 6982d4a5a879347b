package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/azure-flow/AI-Guide/internal/content"
)

// TagData carries a tag page: the term plus everything carrying it.
type TagData struct {
	Tag   content.TagView
	Tools []content.ToolView
	Posts []content.PostCard
}

// TagPage renders the listing fragment for one tag.
func TagPage(data TagData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		b := newHTMLWriter(w)
		b.raw(`<section class="tag-page"><h1>`)
		b.text(data.Tag.Name)
		b.raw(`</h1>`)
		if data.Tag.Count > 0 {
			b.raw(`<p class="tag-meta">`)
			b.itoa(data.Tag.Count)
			b.raw(` entries</p>`)
		}

		if len(data.Tools) > 0 {
			b.raw(`<h2>Tools</h2><div class="tool-grid">`)
			for _, tool := range data.Tools {
				writeToolCard(b, tool)
			}
			b.raw(`</div>`)
		}

		if len(data.Posts) > 0 {
			b.raw(`<h2>Posts</h2><div class="post-grid">`)
			for _, post := range data.Posts {
				writePostCard(b, post)
			}
			b.raw(`</div>`)
		}

		if len(data.Tools) == 0 && len(data.Posts) == 0 {
			b.raw(`<p class="empty-state">Nothing tagged yet.</p>`)
		}
		b.raw(`</section>`)
		return b.err
	})
}
