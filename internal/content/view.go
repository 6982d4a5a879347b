package content

import (
	"strings"
	"time"

	"github.com/azure-flow/AI-Guide/internal/cms"
)

// excerptRunes is the card/meta excerpt budget.
const excerptRunes = 160

// cmsDateLayout is the timestamp format the CMS emits for post dates.
const cmsDateLayout = "2006-01-02T15:04:05"

// TagView is a tag ready for rendering.
type TagView struct {
	Slug  string
	Name  string
	Count int
}

// ToolView is a tool detail/card view with all free-form fields parsed.
type ToolView struct {
	Slug        string
	Name        string
	Summary     string
	ContentHTML string
	WebsiteURL  string
	LogoURL     string
	LogoAlt     string
	Rating      float64
	Pricing     []PricingModel
	KeyFindings []KeyFinding
	Audiences   []Audience
	Tags        []TagView
	Featured    bool
}

// PostCard is a blog post ready for listing and detail rendering.
type PostCard struct {
	Slug        string
	Title       string
	Excerpt     string
	ContentHTML string
	DateLabel   string
	Author      string
	ImageURL    string
	ImageAlt    string
	Tags        []TagView
}

// BuildToolView shapes a CMS tool into its display form. Missing fields fall
// back to safe defaults so a sparse CMS entry still renders.
func BuildToolView(tool cms.Tool) ToolView {
	view := ToolView{
		Slug:        strings.TrimSpace(tool.Slug),
		Name:        strings.TrimSpace(tool.Name),
		Summary:     strings.TrimSpace(tool.Summary),
		ContentHTML: tool.Content,
		WebsiteURL:  strings.TrimSpace(tool.WebsiteURL),
		LogoURL:     strings.TrimSpace(tool.Logo.URL),
		LogoAlt:     strings.TrimSpace(tool.Logo.AltText),
		Rating:      tool.Rating,
		Pricing:     ParsePricingModels(tool.PricingText),
		KeyFindings: NormalizeKeyFindings(tool.KeyFindingsRaw),
		Audiences:   ParseWhoIsItFor(tool.WhoIsItForRaw),
		Tags:        BuildTagViews(tool.Tags),
		Featured:    tool.Featured,
	}
	if view.Name == "" {
		view.Name = nameFromSlug(view.Slug)
	}
	if view.Summary == "" {
		view.Summary = Excerpt(tool.Content, excerptRunes)
	}
	if view.LogoAlt == "" {
		view.LogoAlt = view.Name
	}
	return view
}

// BuildToolViews shapes a CMS tool list, dropping entries without a usable
// name or slug.
func BuildToolViews(tools []cms.Tool) []ToolView {
	views := make([]ToolView, 0, len(tools))
	for _, tool := range tools {
		view := BuildToolView(tool)
		if view.Slug == "" || view.Name == "" {
			continue
		}
		views = append(views, view)
	}
	return views
}

// BuildPostCard shapes a CMS post into its display form.
func BuildPostCard(post cms.Post) PostCard {
	card := PostCard{
		Slug:        strings.TrimSpace(post.Slug),
		Title:       strings.TrimSpace(post.Title),
		Excerpt:     Excerpt(post.Excerpt, excerptRunes),
		ContentHTML: post.Content,
		DateLabel:   formatPostDate(post.Date),
		Author:      strings.TrimSpace(post.Author),
		ImageURL:    strings.TrimSpace(post.FeaturedImage.URL),
		ImageAlt:    strings.TrimSpace(post.FeaturedImage.AltText),
		Tags:        BuildTagViews(post.Tags),
	}
	if card.Title == "" {
		card.Title = nameFromSlug(card.Slug)
	}
	if card.Excerpt == "" {
		card.Excerpt = Excerpt(post.Content, excerptRunes)
	}
	if card.ImageAlt == "" {
		card.ImageAlt = card.Title
	}
	return card
}

// BuildPostCards shapes a CMS post list, dropping entries without a slug.
func BuildPostCards(posts []cms.Post) []PostCard {
	cards := make([]PostCard, 0, len(posts))
	for _, post := range posts {
		card := BuildPostCard(post)
		if card.Slug == "" {
			continue
		}
		cards = append(cards, card)
	}
	return cards
}

// BuildTagViews shapes CMS tags, dropping unnamed entries.
func BuildTagViews(tags []cms.Tag) []TagView {
	views := make([]TagView, 0, len(tags))
	for _, tag := range tags {
		slug := strings.TrimSpace(tag.Slug)
		name := strings.TrimSpace(tag.Name)
		if slug == "" {
			continue
		}
		if name == "" {
			name = nameFromSlug(slug)
		}
		views = append(views, TagView{Slug: slug, Name: name, Count: tag.Count})
	}
	return views
}

// formatPostDate renders a CMS timestamp as a human date, falling back to
// the raw value when the CMS emits an unexpected format.
func formatPostDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := time.Parse(cmsDateLayout, raw)
	if err != nil {
		return raw
	}
	return parsed.Format("Jan 2, 2006")
}

// nameFromSlug derives a display name from a URL slug.
func nameFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for idx, word := range words {
		words[idx] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
