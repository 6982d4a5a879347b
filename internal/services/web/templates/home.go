package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/azure-flow/AI-Guide/internal/content"
	"github.com/azure-flow/AI-Guide/internal/platform/branding"
	"github.com/azure-flow/AI-Guide/internal/services/web/routepath"
)

// HomeData carries the homepage sections. Any section may be empty; the page
// renders whatever content the CMS returned.
type HomeData struct {
	FeaturedTools []content.ToolView
	LatestPosts   []content.PostCard
	PopularTags   []content.TagView
}

// HomePage renders the homepage fragment.
func HomePage(data HomeData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		b := newHTMLWriter(w)
		b.raw(`<section class="hero"><h1>`)
		b.text(branding.AppName)
		b.raw(`</h1><p class="hero-tagline">`)
		b.text(branding.Tagline)
		b.raw(`</p><a class="hero-cta" href="`)
		b.raw(routepath.Tools)
		b.raw(`">Browse all tools</a></section>`)

		if len(data.FeaturedTools) > 0 {
			b.raw(`<section class="featured-tools"><h2>Featured tools</h2>`)
			b.raw(`<div class="carousel" data-carousel data-drag-scroll><div class="carousel-track">`)
			for _, tool := range data.FeaturedTools {
				writeToolCard(b, tool)
			}
			b.raw(`</div><button class="carousel-prev" data-carousel-prev aria-label="Previous">&larr;</button><button class="carousel-next" data-carousel-next aria-label="Next">&rarr;</button></div></section>`)
		}

		if len(data.PopularTags) > 0 {
			b.raw(`<section class="popular-tags"><h2>Browse by tag</h2><ul class="tag-list">`)
			for _, tag := range data.PopularTags {
				writeTagChip(b, tag)
			}
			b.raw(`</ul></section>`)
		}

		if len(data.LatestPosts) > 0 {
			b.raw(`<section class="latest-posts"><h2>From the blog</h2><div class="post-grid">`)
			for _, post := range data.LatestPosts {
				writePostCard(b, post)
			}
			b.raw(`</div><a class="see-all" href="`)
			b.raw(routepath.Blog)
			b.raw(`">All posts</a></section>`)
		}
		return b.err
	})
}
