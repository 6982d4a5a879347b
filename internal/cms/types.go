package cms

// Image is a CMS media attachment reference.
type Image struct {
	URL     string `json:"sourceUrl"`
	AltText string `json:"altText"`
}

// Tag is a CMS taxonomy term used for tool and post tagging.
type Tag struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// Category is a CMS taxonomy term used for tool grouping.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Post is a CMS blog post flattened from the content API response.
type Post struct {
	ID            string
	Slug          string
	Title         string
	Excerpt       string
	Content       string
	Date          string
	Modified      string
	FeaturedImage Image
	Author        string
	Tags          []Tag
	Categories    []Category
}

// Tool is a CMS tool entry. The pricing, key-findings, and who-is-it-for
// fields carry free-form delimited text that internal/content parses into
// structured display data.
type Tool struct {
	ID             string
	Slug           string
	Name           string
	Summary        string
	Content        string
	WebsiteURL     string
	Logo           Image
	Rating         float64
	PricingText    string
	KeyFindingsRaw string
	WhoIsItForRaw  string
	Tags           []Tag
	Categories     []Category
	Featured       bool
}

// ToolQuery filters a directory listing request.
type ToolQuery struct {
	TagSlug      string
	CategorySlug string
	Search       string
	Limit        int
	After        string
}

// ToolsPage is one page of directory results with cursor pagination state.
type ToolsPage struct {
	Tools       []Tool
	EndCursor   string
	HasNextPage bool
}

// HomeContent aggregates the homepage sections into a single fetch.
type HomeContent struct {
	FeaturedTools []Tool
	LatestPosts   []Post
	PopularTags   []Tag
}
