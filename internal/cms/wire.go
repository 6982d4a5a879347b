package cms

// Wire types mirror the nested node/edge envelopes the GraphQL API returns.
// They exist only to flatten responses into the package DTOs.

type imageNode struct {
	Node Image `json:"node"`
}

type authorNode struct {
	Node struct {
		Name string `json:"name"`
	} `json:"node"`
}

type tagNodes struct {
	Nodes []Tag `json:"nodes"`
}

type categoryNodes struct {
	Nodes []Category `json:"nodes"`
}

type postWire struct {
	ID            string        `json:"id"`
	Slug          string        `json:"slug"`
	Title         string        `json:"title"`
	Excerpt       string        `json:"excerpt"`
	Content       string        `json:"content"`
	Date          string        `json:"date"`
	Modified      string        `json:"modified"`
	FeaturedImage imageNode     `json:"featuredImage"`
	Author        authorNode    `json:"author"`
	Tags          tagNodes      `json:"tags"`
	Categories    categoryNodes `json:"categories"`
}

func (w postWire) toPost() Post {
	return Post{
		ID:            w.ID,
		Slug:          w.Slug,
		Title:         w.Title,
		Excerpt:       w.Excerpt,
		Content:       w.Content,
		Date:          w.Date,
		Modified:      w.Modified,
		FeaturedImage: w.FeaturedImage.Node,
		Author:        w.Author.Node.Name,
		Tags:          w.Tags.Nodes,
		Categories:    w.Categories.Nodes,
	}
}

type toolWire struct {
	ID            string        `json:"id"`
	Slug          string        `json:"slug"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	FeaturedImage imageNode     `json:"featuredImage"`
	Tags          tagNodes      `json:"tags"`
	Categories    categoryNodes `json:"categories"`
	ToolFields    struct {
		Summary       string  `json:"summary"`
		WebsiteURL    string  `json:"websiteUrl"`
		Rating        float64 `json:"rating"`
		PricingModels string  `json:"pricingModels"`
		KeyFindings   string  `json:"keyFindings"`
		WhoIsItFor    string  `json:"whoIsItFor"`
		Featured      bool    `json:"featured"`
	} `json:"toolFields"`
}

func (w toolWire) toTool() Tool {
	return Tool{
		ID:             w.ID,
		Slug:           w.Slug,
		Name:           w.Title,
		Summary:        w.ToolFields.Summary,
		Content:        w.Content,
		WebsiteURL:     w.ToolFields.WebsiteURL,
		Logo:           w.FeaturedImage.Node,
		Rating:         w.ToolFields.Rating,
		PricingText:    w.ToolFields.PricingModels,
		KeyFindingsRaw: w.ToolFields.KeyFindings,
		WhoIsItForRaw:  w.ToolFields.WhoIsItFor,
		Tags:           w.Tags.Nodes,
		Categories:     w.Categories.Nodes,
		Featured:       w.ToolFields.Featured,
	}
}
