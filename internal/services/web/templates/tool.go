package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/azure-flow/AI-Guide/internal/content"
)

// ToolDetailPage renders the detail fragment for one tool, including the
// tabbed pricing cards and the parsed key-finding and audience sections.
func ToolDetailPage(tool content.ToolView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		b := newHTMLWriter(w)
		b.raw(`<article class="tool-detail"><header class="tool-header">`)
		if tool.LogoURL != "" {
			b.raw(`<img class="tool-logo" src="`)
			b.url(tool.LogoURL)
			b.raw(`" alt="`)
			b.text(tool.LogoAlt)
			b.raw(`">`)
		}
		b.raw(`<h1>`)
		b.text(tool.Name)
		b.raw(`</h1>`)
		if label := ratingLabel(tool.Rating); label != "" {
			b.raw(`<span class="tool-rating" aria-label="Rating">★ `)
			b.text(label)
			b.raw(`</span>`)
		}
		b.raw(`<p class="tool-summary">`)
		b.text(tool.Summary)
		b.raw(`</p>`)
		if tool.WebsiteURL != "" {
			b.raw(`<a class="tool-website" rel="nofollow noopener" target="_blank" href="`)
			b.url(tool.WebsiteURL)
			b.raw(`">Visit website</a>`)
		}
		if len(tool.Tags) > 0 {
			b.raw(`<ul class="tag-list">`)
			for _, tag := range tool.Tags {
				writeTagChip(b, tag)
			}
			b.raw(`</ul>`)
		}
		b.raw(`</header>`)

		if tool.ContentHTML != "" {
			// CMS body HTML is editorial content and rendered as-is.
			b.raw(`<section class="tool-body">`)
			b.raw(tool.ContentHTML)
			b.raw(`</section>`)
		}

		writeKeyFindings(b, tool.KeyFindings)
		writePricing(b, tool.Pricing)
		writeAudiences(b, tool.Audiences)

		b.raw(`</article>`)
		return b.err
	})
}

func writeKeyFindings(b *htmlWriter, findings []content.KeyFinding) {
	if len(findings) == 0 {
		return
	}
	b.raw(`<section class="key-findings"><h2>Key findings</h2><ul>`)
	for _, finding := range findings {
		b.raw(`<li><strong>`)
		b.text(finding.Title)
		b.raw(`</strong>`)
		if len(finding.BulletPoints) > 0 {
			b.raw(`<ul>`)
			for _, point := range finding.BulletPoints {
				b.raw(`<li>`)
				b.text(point.Title)
				b.raw(`</li>`)
			}
			b.raw(`</ul>`)
		}
		b.raw(`</li>`)
	}
	b.raw(`</ul></section>`)
}

// writePricing renders pricing plans as tabbed cards. The first plan's tab
// starts selected; switching is client-side via the data-tab attributes.
func writePricing(b *htmlWriter, plans []content.PricingModel) {
	if len(plans) == 0 {
		return
	}
	b.raw(`<section class="pricing" data-tabs><h2>Pricing</h2><div class="tab-bar" role="tablist">`)
	for idx, plan := range plans {
		b.raw(`<button class="tab" role="tab" data-tab-target="pricing-panel-`)
		b.itoa(idx)
		b.raw(`" aria-selected="`)
		if idx == 0 {
			b.raw(`true`)
		} else {
			b.raw(`false`)
		}
		b.raw(`">`)
		b.text(plan.Name)
		b.raw(`</button>`)
	}
	b.raw(`</div>`)
	for idx, plan := range plans {
		b.raw(`<div class="tab-panel" role="tabpanel" id="pricing-panel-`)
		b.itoa(idx)
		b.raw(`"`)
		if idx != 0 {
			b.raw(` hidden`)
		}
		b.raw(`><h3>`)
		b.text(plan.Name)
		b.raw(`</h3>`)
		if plan.Price != "" {
			b.raw(`<p class="price">`)
			b.text(plan.Price)
			b.raw(`</p>`)
		}
		if len(plan.Features) > 0 {
			b.raw(`<ul class="plan-features">`)
			for _, feature := range plan.Features {
				b.raw(`<li>`)
				b.text(feature)
				b.raw(`</li>`)
			}
			b.raw(`</ul>`)
		}
		b.raw(`</div>`)
	}
	b.raw(`</section>`)
}

func writeAudiences(b *htmlWriter, audiences []content.Audience) {
	if len(audiences) == 0 {
		return
	}
	b.raw(`<section class="who-is-it-for"><h2>Who is it for</h2><div class="audience-grid">`)
	for _, audience := range audiences {
		b.raw(`<div class="audience-card"><h3>`)
		b.text(audience.Name)
		b.raw(`</h3>`)
		if len(audience.UseCases) > 0 {
			b.raw(`<ul>`)
			for _, useCase := range audience.UseCases {
				b.raw(`<li>`)
				b.text(useCase)
				b.raw(`</li>`)
			}
			b.raw(`</ul>`)
		}
		b.raw(`</div>`)
	}
	b.raw(`</div></section>`)
}
