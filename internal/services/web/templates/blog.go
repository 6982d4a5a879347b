package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/azure-flow/AI-Guide/internal/content"
)

// BlogPage renders the blog index fragment.
func BlogPage(posts []content.PostCard) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		b := newHTMLWriter(w)
		b.raw(`<section class="blog-index"><h1>Blog</h1>`)
		if len(posts) == 0 {
			b.raw(`<p class="empty-state">No posts yet.</p>`)
		} else {
			b.raw(`<div class="post-grid">`)
			for _, post := range posts {
				writePostCard(b, post)
			}
			b.raw(`</div>`)
		}
		b.raw(`</section>`)
		return b.err
	})
}

// PostPage renders one blog post fragment.
func PostPage(post content.PostCard) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		b := newHTMLWriter(w)
		b.raw(`<article class="post-detail"><header><h1>`)
		b.text(post.Title)
		b.raw(`</h1><p class="post-meta">`)
		if post.DateLabel != "" {
			b.raw(`<time>`)
			b.text(post.DateLabel)
			b.raw(`</time>`)
		}
		if post.Author != "" {
			b.raw(`<span class="post-author"> by `)
			b.text(post.Author)
			b.raw(`</span>`)
		}
		b.raw(`</p>`)
		if post.ImageURL != "" {
			b.raw(`<img class="post-cover" src="`)
			b.url(post.ImageURL)
			b.raw(`" alt="`)
			b.text(post.ImageAlt)
			b.raw(`">`)
		}
		b.raw(`</header><div class="post-body">`)
		// CMS body HTML is editorial content and rendered as-is.
		b.raw(post.ContentHTML)
		b.raw(`</div>`)
		if len(post.Tags) > 0 {
			b.raw(`<footer><ul class="tag-list">`)
			for _, tag := range post.Tags {
				writeTagChip(b, tag)
			}
			b.raw(`</ul></footer>`)
		}
		b.raw(`</article>`)
		return b.err
	})
}
