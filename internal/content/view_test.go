package content

import (
	"testing"

	"github.com/azure-flow/AI-Guide/internal/cms"
)

func TestBuildToolViewParsesDelimitedFields(t *testing.T) {
	view := BuildToolView(cms.Tool{
		Slug:           "scribbler",
		Name:           "Scribbler",
		Summary:        "Writing assistant",
		WebsiteURL:     "https://scribbler.example.com",
		Logo:           cms.Image{URL: "https://cdn.example.com/logo.png", AltText: "Scribbler logo"},
		Rating:         4.5,
		PricingText:    "Pro@$29/mo@Unlimited drafts",
		KeyFindingsRaw: "Students@Use it for homework",
		WhoIsItForRaw:  "Marketers@Landing pages",
		Tags:           []cms.Tag{{Slug: "writing", Name: "Writing", Count: 4}},
	})

	if view.Name != "Scribbler" {
		t.Fatalf("Name = %q, want %q", view.Name, "Scribbler")
	}
	if len(view.Pricing) != 1 || view.Pricing[0].Price != "$29/mo" {
		t.Fatalf("Pricing = %+v, want one $29/mo plan", view.Pricing)
	}
	if len(view.KeyFindings) != 1 || view.KeyFindings[0].Title != "Students" {
		t.Fatalf("KeyFindings = %+v, want one Students finding", view.KeyFindings)
	}
	if len(view.Audiences) != 1 || view.Audiences[0].Name != "Marketers" {
		t.Fatalf("Audiences = %+v, want one Marketers audience", view.Audiences)
	}
	if len(view.Tags) != 1 || view.Tags[0].Slug != "writing" {
		t.Fatalf("Tags = %+v, want one writing tag", view.Tags)
	}
}

func TestBuildToolViewDefaultsForSparseEntry(t *testing.T) {
	view := BuildToolView(cms.Tool{
		Slug:    "prompt-forge",
		Content: "<p>Build prompts fast.</p>",
	})

	if view.Name != "Prompt Forge" {
		t.Fatalf("Name = %q, want name derived from slug", view.Name)
	}
	if view.Summary != "Build prompts fast." {
		t.Fatalf("Summary = %q, want excerpt from content", view.Summary)
	}
	if view.LogoAlt != "Prompt Forge" {
		t.Fatalf("LogoAlt = %q, want fallback to name", view.LogoAlt)
	}
	if len(view.Pricing) != 0 || len(view.KeyFindings) != 0 || len(view.Audiences) != 0 {
		t.Fatalf("expected empty parsed sections for sparse entry")
	}
}

func TestBuildToolViewsDropsUnusableEntries(t *testing.T) {
	views := BuildToolViews([]cms.Tool{
		{Slug: "scribbler", Name: "Scribbler"},
		{Slug: "", Name: "No Slug"},
	})
	if len(views) != 1 {
		t.Fatalf("len(views) = %d, want %d", len(views), 1)
	}
	if views[0].Slug != "scribbler" {
		t.Fatalf("views[0].Slug = %q, want %q", views[0].Slug, "scribbler")
	}
}

func TestBuildPostCardFormatsDateAndExcerpt(t *testing.T) {
	card := BuildPostCard(cms.Post{
		Slug:    "ai-writing-roundup",
		Title:   "AI Writing Roundup",
		Excerpt: "<p>The best writing assistants.</p>",
		Date:    "2026-08-01T10:00:00",
		Author:  "Dana",
	})

	if card.DateLabel != "Aug 1, 2026" {
		t.Fatalf("DateLabel = %q, want %q", card.DateLabel, "Aug 1, 2026")
	}
	if card.Excerpt != "The best writing assistants." {
		t.Fatalf("Excerpt = %q, want stripped excerpt", card.Excerpt)
	}
	if card.ImageAlt != "AI Writing Roundup" {
		t.Fatalf("ImageAlt = %q, want title fallback", card.ImageAlt)
	}
}

func TestBuildPostCardKeepsRawDateOnParseFailure(t *testing.T) {
	card := BuildPostCard(cms.Post{Slug: "post", Date: "yesterday"})
	if card.DateLabel != "yesterday" {
		t.Fatalf("DateLabel = %q, want raw value", card.DateLabel)
	}
}

func TestBuildPostCardFallsBackToContentExcerpt(t *testing.T) {
	card := BuildPostCard(cms.Post{
		Slug:    "post",
		Content: "<p>Body copy only.</p>",
	})
	if card.Excerpt != "Body copy only." {
		t.Fatalf("Excerpt = %q, want content fallback", card.Excerpt)
	}
}

func TestBuildTagViewsDerivesMissingNames(t *testing.T) {
	views := BuildTagViews([]cms.Tag{
		{Slug: "image-generation", Count: 9},
		{Slug: "", Name: "Orphan"},
	})
	if len(views) != 1 {
		t.Fatalf("len(views) = %d, want %d", len(views), 1)
	}
	if views[0].Name != "Image Generation" {
		t.Fatalf("Name = %q, want derived name", views[0].Name)
	}
}
