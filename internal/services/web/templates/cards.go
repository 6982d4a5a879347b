package templates

import (
	"github.com/azure-flow/AI-Guide/internal/content"
	"github.com/azure-flow/AI-Guide/internal/services/web/routepath"
)

// writeToolCard renders one directory card for a tool.
func writeToolCard(b *htmlWriter, tool content.ToolView) {
	b.raw(`<article class="tool-card"><a class="tool-card-link" href="`)
	b.raw(routepath.Tool(tool.Slug))
	b.raw(`">`)
	if tool.LogoURL != "" {
		b.raw(`<img class="tool-logo" loading="lazy" src="`)
		b.url(tool.LogoURL)
		b.raw(`" alt="`)
		b.text(tool.LogoAlt)
		b.raw(`">`)
	}
	b.raw(`<h3>`)
	b.text(tool.Name)
	b.raw(`</h3>`)
	if label := ratingLabel(tool.Rating); label != "" {
		b.raw(`<span class="tool-rating" aria-label="Rating">★ `)
		b.text(label)
		b.raw(`</span>`)
	}
	b.raw(`<p class="tool-summary">`)
	b.text(tool.Summary)
	b.raw(`</p></a>`)
	if len(tool.Tags) > 0 {
		b.raw(`<ul class="tag-list">`)
		for _, tag := range tool.Tags {
			writeTagChip(b, tag)
		}
		b.raw(`</ul>`)
	}
	b.raw(`</article>`)
}

// writePostCard renders one blog listing card.
func writePostCard(b *htmlWriter, post content.PostCard) {
	b.raw(`<article class="post-card"><a class="post-card-link" href="`)
	b.raw(routepath.Post(post.Slug))
	b.raw(`">`)
	if post.ImageURL != "" {
		b.raw(`<img class="post-cover" loading="lazy" src="`)
		b.url(post.ImageURL)
		b.raw(`" alt="`)
		b.text(post.ImageAlt)
		b.raw(`">`)
	}
	b.raw(`<h3>`)
	b.text(post.Title)
	b.raw(`</h3><p class="post-excerpt">`)
	b.text(post.Excerpt)
	b.raw(`</p>`)
	if post.DateLabel != "" {
		b.raw(`<time class="post-date">`)
		b.text(post.DateLabel)
		b.raw(`</time>`)
	}
	b.raw(`</a></article>`)
}

// writeTagChip renders one tag link chip.
func writeTagChip(b *htmlWriter, tag content.TagView) {
	b.raw(`<li class="tag-chip"><a href="`)
	b.raw(routepath.Tag(tag.Slug))
	b.raw(`">`)
	b.text(tag.Name)
	if tag.Count > 0 {
		b.raw(`<span class="tag-count">`)
		b.itoa(tag.Count)
		b.raw(`</span>`)
	}
	b.raw(`</a></li>`)
}
