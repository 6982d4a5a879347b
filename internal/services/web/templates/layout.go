package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/azure-flow/AI-Guide/internal/platform/branding"
	"github.com/azure-flow/AI-Guide/internal/services/web/routepath"
)

// LayoutOptions carries the per-page document metadata.
type LayoutOptions struct {
	Title           string
	MetaDescription string
	Lang            string
	CurrentPath     string
}

type navItem struct {
	label string
	path  string
}

var navItems = []navItem{
	{label: "Tools", path: routepath.Tools},
	{label: "Blog", path: routepath.Blog},
}

// Layout renders the site document shell around the page fragment passed as
// the component's children.
func Layout(opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		lang := opts.Lang
		if lang == "" {
			lang = "en-US"
		}
		metaDesc := opts.MetaDescription
		if metaDesc == "" {
			metaDesc = branding.Tagline
		}

		b := newHTMLWriter(w)
		b.raw(`<!DOCTYPE html><html lang="`)
		b.text(lang)
		b.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		b.text(ComposePageTitle(opts.Title))
		b.raw(`</title><meta name="description" content="`)
		b.text(metaDesc)
		b.raw(`"><link rel="stylesheet" href="/static/site.css"><script src="/static/site.js" defer></script></head><body>`)
		b.raw(`<header class="site-header"><nav class="navbar"><a class="brand" href="`)
		b.raw(routepath.Root)
		b.raw(`">`)
		b.text(branding.AppName)
		b.raw(`</a><ul class="nav-links">`)
		for _, item := range navItems {
			b.raw(`<li><a`)
			if item.path == opts.CurrentPath {
				b.raw(` class="active"`)
			}
			b.raw(` href="`)
			b.raw(item.path)
			b.raw(`">`)
			b.text(item.label)
			b.raw(`</a></li>`)
		}
		b.raw(`</ul></nav></header><main class="site-main">`)
		if b.err != nil {
			return b.err
		}
		if children != nil {
			if err := children.Render(ctx, w); err != nil {
				return err
			}
		}
		b.raw(`</main><footer class="site-footer"><p>`)
		b.text(branding.Tagline)
		b.raw(`</p></footer></body></html>`)
		return b.err
	})
}
