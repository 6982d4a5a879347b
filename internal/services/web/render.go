package web

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/azure-flow/AI-Guide/internal/cms"
	"github.com/azure-flow/AI-Guide/internal/content"
	"github.com/azure-flow/AI-Guide/internal/services/web/routepath"
	webstorage "github.com/azure-flow/AI-Guide/internal/services/web/storage"
	"github.com/azure-flow/AI-Guide/internal/services/web/templates"
)

// listingPageSize caps one page of directory results.
const listingPageSize = 24

// homePostLimit caps the blog section on the homepage.
const homePostLimit = 6

// blogIndexLimit caps the blog index listing.
const blogIndexLimit = 50

// tagListLimit caps the tag filter strip on the directory page.
const tagListLimit = 30

// renderedPage is a fully rendered document plus its cache metadata.
type renderedPage struct {
	status int
	scope  string
	tags   []string
	html   []byte
}

// renderPath renders the document a cache path identifies. The path is the
// cache key, so background refresh can rebuild any entry without a request.
func (h *handler) renderPath(ctx context.Context, cachePath string) (renderedPage, error) {
	parsed, err := url.Parse(cachePath)
	if err != nil {
		return renderedPage{}, fmt.Errorf("parse cache path %q: %w", cachePath, err)
	}
	path := parsed.Path
	query := parsed.Query()

	switch {
	case path == routepath.Root:
		return h.renderHome(ctx)
	case path == routepath.Tools:
		return h.renderTools(ctx, query.Get("tag"), query.Get("q"), query.Get("after"))
	case strings.HasPrefix(path, routepath.ToolsPrefix):
		return h.renderTool(ctx, pathSlug(path, routepath.ToolsPrefix))
	case path == routepath.Blog:
		return h.renderBlog(ctx)
	case strings.HasPrefix(path, routepath.BlogPrefix):
		return h.renderPost(ctx, pathSlug(path, routepath.BlogPrefix))
	case strings.HasPrefix(path, routepath.TagsPrefix):
		return h.renderTag(ctx, pathSlug(path, routepath.TagsPrefix))
	}
	return h.renderErrorDocument(ctx, http.StatusNotFound)
}

func (h *handler) renderHome(ctx context.Context) (renderedPage, error) {
	data := templates.HomeData{}
	home, err := h.source.HomeContent(ctx)
	if err != nil {
		// The homepage degrades to its static shell rather than failing.
		log.Printf("load home content: %v", err)
	} else {
		data.FeaturedTools = content.BuildToolViews(home.FeaturedTools)
		data.LatestPosts = content.BuildPostCards(limitPosts(home.LatestPosts, homePostLimit))
		data.PopularTags = content.BuildTagViews(home.PopularTags)
	}

	html, err := renderDocument(ctx, templates.LayoutOptions{
		CurrentPath: routepath.Root,
	}, templates.HomePage(data))
	if err != nil {
		return renderedPage{}, err
	}
	return renderedPage{status: http.StatusOK, scope: webstorage.ScopeHome, html: html}, nil
}

func (h *handler) renderTools(ctx context.Context, tag, search, after string) (renderedPage, error) {
	tag = strings.TrimSpace(tag)
	search = strings.TrimSpace(search)
	after = strings.TrimSpace(after)

	data := templates.ToolsData{
		ActiveTag: tag,
		Search:    search,
	}

	page, err := h.source.Tools(ctx, cms.ToolQuery{
		TagSlug: tag,
		Search:  search,
		Limit:   listingPageSize,
		After:   after,
	})
	if err != nil {
		log.Printf("load tools listing: %v", err)
	} else {
		data.Tools = content.BuildToolViews(page.Tools)
		data.NextCursor = page.EndCursor
		data.HasNextPage = page.HasNextPage
	}

	if tags, err := h.source.Tags(ctx, tagListLimit); err != nil {
		log.Printf("load tag filters: %v", err)
	} else {
		data.Tags = content.BuildTagViews(tags)
	}

	cacheTags := []string(nil)
	if tag != "" {
		cacheTags = []string{tag}
	}

	html, err := renderDocument(ctx, templates.LayoutOptions{
		Title:           "AI tools directory",
		CurrentPath:     routepath.Tools,
		MetaDescription: "Browse the full directory of AI tools by tag or keyword.",
	}, templates.ToolsPage(data))
	if err != nil {
		return renderedPage{}, err
	}
	return renderedPage{status: http.StatusOK, scope: webstorage.ScopeTools, tags: cacheTags, html: html}, nil
}

func (h *handler) renderTool(ctx context.Context, slug string) (renderedPage, error) {
	if slug == "" {
		return h.renderErrorDocument(ctx, http.StatusNotFound)
	}
	tool, err := h.source.ToolBySlug(ctx, slug)
	if err != nil {
		return renderedPage{}, fmt.Errorf("load tool %q: %w", slug, err)
	}
	if tool == nil {
		return h.renderErrorDocument(ctx, http.StatusNotFound)
	}

	view := content.BuildToolView(*tool)
	html, err := renderDocument(ctx, templates.LayoutOptions{
		Title:           view.Name,
		MetaDescription: view.Summary,
		CurrentPath:     routepath.Tools,
	}, templates.ToolDetailPage(view))
	if err != nil {
		return renderedPage{}, err
	}
	return renderedPage{
		status: http.StatusOK,
		scope:  webstorage.ScopeTool,
		tags:   tagSlugs(tool.Tags),
		html:   html,
	}, nil
}

func (h *handler) renderBlog(ctx context.Context) (renderedPage, error) {
	var cards []content.PostCard
	posts, err := h.source.LatestPosts(ctx, blogIndexLimit)
	if err != nil {
		log.Printf("load blog index: %v", err)
	} else {
		cards = content.BuildPostCards(posts)
	}

	html, err := renderDocument(ctx, templates.LayoutOptions{
		Title:       "Blog",
		CurrentPath: routepath.Blog,
	}, templates.BlogPage(cards))
	if err != nil {
		return renderedPage{}, err
	}
	return renderedPage{status: http.StatusOK, scope: webstorage.ScopeBlog, html: html}, nil
}

func (h *handler) renderPost(ctx context.Context, slug string) (renderedPage, error) {
	if slug == "" {
		return h.renderErrorDocument(ctx, http.StatusNotFound)
	}
	post, err := h.source.PostBySlug(ctx, slug)
	if err != nil {
		return renderedPage{}, fmt.Errorf("load post %q: %w", slug, err)
	}
	if post == nil {
		return h.renderErrorDocument(ctx, http.StatusNotFound)
	}

	card := content.BuildPostCard(*post)
	html, err := renderDocument(ctx, templates.LayoutOptions{
		Title:           card.Title,
		MetaDescription: card.Excerpt,
		CurrentPath:     routepath.Blog,
	}, templates.PostPage(card))
	if err != nil {
		return renderedPage{}, err
	}
	return renderedPage{
		status: http.StatusOK,
		scope:  webstorage.ScopePost,
		tags:   tagSlugs(post.Tags),
		html:   html,
	}, nil
}

func (h *handler) renderTag(ctx context.Context, slug string) (renderedPage, error) {
	if slug == "" {
		return h.renderErrorDocument(ctx, http.StatusNotFound)
	}
	tag, err := h.source.TagBySlug(ctx, slug)
	if err != nil {
		return renderedPage{}, fmt.Errorf("load tag %q: %w", slug, err)
	}
	if tag == nil {
		return h.renderErrorDocument(ctx, http.StatusNotFound)
	}

	data := templates.TagData{
		Tag: content.TagView{Slug: tag.Slug, Name: tag.Name, Count: tag.Count},
	}
	if data.Tag.Name == "" {
		data.Tag.Name = data.Tag.Slug
	}

	if page, err := h.source.Tools(ctx, cms.ToolQuery{TagSlug: slug, Limit: listingPageSize}); err != nil {
		log.Printf("load tools for tag %q: %v", slug, err)
	} else {
		data.Tools = content.BuildToolViews(page.Tools)
	}
	if posts, err := h.source.LatestPosts(ctx, homePostLimit); err != nil {
		log.Printf("load posts for tag %q: %v", slug, err)
	} else {
		data.Posts = content.BuildPostCards(postsWithTag(posts, slug))
	}

	html, err := renderDocument(ctx, templates.LayoutOptions{
		Title:           data.Tag.Name,
		MetaDescription: tag.Description,
	}, templates.TagPage(data))
	if err != nil {
		return renderedPage{}, err
	}
	return renderedPage{
		status: http.StatusOK,
		scope:  webstorage.ScopeTag,
		tags:   []string{slug},
		html:   html,
	}, nil
}

func (h *handler) renderErrorDocument(ctx context.Context, status int) (renderedPage, error) {
	html, err := renderDocument(ctx, templates.LayoutOptions{
		Title: templates.ErrorPageTitle(status),
	}, templates.ErrorPage(status))
	if err != nil {
		return renderedPage{}, err
	}
	return renderedPage{status: status, html: html}, nil
}

// renderDocument renders the layout shell around a page fragment.
func renderDocument(ctx context.Context, opts templates.LayoutOptions, fragment templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	ctx = templ.WithChildren(ctx, fragment)
	if err := templates.Layout(opts).Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// toolsCachePath canonicalizes the directory listing cache key so query
// permutations share one cached document.
func toolsCachePath(tag, search, after string) string {
	values := url.Values{}
	if tag = strings.TrimSpace(tag); tag != "" {
		values.Set("tag", tag)
	}
	if search = strings.TrimSpace(search); search != "" {
		values.Set("q", search)
	}
	if after = strings.TrimSpace(after); after != "" {
		values.Set("after", after)
	}
	if len(values) == 0 {
		return routepath.Tools
	}
	return routepath.Tools + "?" + values.Encode()
}

func tagSlugs(tags []cms.Tag) []string {
	slugs := make([]string, 0, len(tags))
	for _, tag := range tags {
		slug := strings.TrimSpace(tag.Slug)
		if slug == "" {
			continue
		}
		slugs = append(slugs, slug)
	}
	return slugs
}

func limitPosts(posts []cms.Post, limit int) []cms.Post {
	if limit <= 0 || len(posts) <= limit {
		return posts
	}
	return posts[:limit]
}

func postsWithTag(posts []cms.Post, slug string) []cms.Post {
	matched := make([]cms.Post, 0, len(posts))
	for _, post := range posts {
		for _, tag := range post.Tags {
			if tag.Slug == slug {
				matched = append(matched, post)
				break
			}
		}
	}
	return matched
}
