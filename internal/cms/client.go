// Package cms fetches site content from the headless CMS GraphQL API.
//
// All fetches are single-shot request/response with a fixed timeout and no
// retry policy. Call sites degrade to empty content when a fetch fails.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/azure-flow/AI-Guide/internal/platform/timeouts"
)

// defaultTimeout caps the total time for one CMS request.
const defaultTimeout = timeouts.CMSRequest

const tracerName = "github.com/azure-flow/AI-Guide/internal/cms"

// ErrUnavailable reports that the CMS endpoint could not serve the request.
var ErrUnavailable = errors.New("cms unavailable")

// Config defines the inputs for the CMS client.
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// Client is a GraphQL-over-HTTP client for the CMS content API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	tracer     trace.Tracer
}

// New builds a configured CMS client.
func New(config Config) (*Client, error) {
	endpoint := strings.TrimSpace(config.Endpoint)
	if endpoint == "" {
		return nil, errors.New("cms endpoint is required")
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer(tracerName),
	}, nil
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// do executes one GraphQL operation and decodes the data payload into out.
func (c *Client) do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	if c == nil || c.httpClient == nil {
		return errors.New("cms client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := c.tracer.Start(ctx, "cms."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("graphql.operation", operation)),
	)
	defer span.End()

	err := c.post(ctx, query, variables, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) post(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode graphql response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}
	if out == nil {
		return nil
	}
	if len(envelope.Data) == 0 {
		return errors.New("graphql response has no data")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}

// LatestPosts fetches the most recent blog posts.
func (c *Client) LatestPosts(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = 10
	}
	var data struct {
		Posts struct {
			Nodes []postWire `json:"nodes"`
		} `json:"posts"`
	}
	if err := c.do(ctx, "LatestPosts", queryLatestPosts, map[string]any{"first": limit}, &data); err != nil {
		return nil, fmt.Errorf("latest posts: %w", err)
	}
	posts := make([]Post, 0, len(data.Posts.Nodes))
	for _, node := range data.Posts.Nodes {
		posts = append(posts, node.toPost())
	}
	return posts, nil
}

// PostBySlug fetches one blog post. A nil post with a nil error means the
// slug does not exist.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, errors.New("post slug is required")
	}
	var data struct {
		Post *postWire `json:"post"`
	}
	if err := c.do(ctx, "PostBySlug", queryPostBySlug, map[string]any{"slug": slug}, &data); err != nil {
		return nil, fmt.Errorf("post by slug %q: %w", slug, err)
	}
	if data.Post == nil {
		return nil, nil
	}
	post := data.Post.toPost()
	return &post, nil
}

// Tools fetches one page of the tools directory.
func (c *Client) Tools(ctx context.Context, query ToolQuery) (ToolsPage, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 24
	}
	variables := map[string]any{"first": limit}
	if tag := strings.TrimSpace(query.TagSlug); tag != "" {
		variables["tag"] = tag
	}
	if category := strings.TrimSpace(query.CategorySlug); category != "" {
		variables["category"] = category
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		variables["search"] = search
	}
	if after := strings.TrimSpace(query.After); after != "" {
		variables["after"] = after
	}

	var data struct {
		Tools struct {
			Nodes    []toolWire `json:"nodes"`
			PageInfo struct {
				EndCursor   string `json:"endCursor"`
				HasNextPage bool   `json:"hasNextPage"`
			} `json:"pageInfo"`
		} `json:"tools"`
	}
	if err := c.do(ctx, "Tools", queryTools, variables, &data); err != nil {
		return ToolsPage{}, fmt.Errorf("tools: %w", err)
	}

	page := ToolsPage{
		Tools:       make([]Tool, 0, len(data.Tools.Nodes)),
		EndCursor:   data.Tools.PageInfo.EndCursor,
		HasNextPage: data.Tools.PageInfo.HasNextPage,
	}
	for _, node := range data.Tools.Nodes {
		page.Tools = append(page.Tools, node.toTool())
	}
	return page, nil
}

// ToolBySlug fetches one tool entry. A nil tool with a nil error means the
// slug does not exist.
func (c *Client) ToolBySlug(ctx context.Context, slug string) (*Tool, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, errors.New("tool slug is required")
	}
	var data struct {
		Tool *toolWire `json:"tool"`
	}
	if err := c.do(ctx, "ToolBySlug", queryToolBySlug, map[string]any{"slug": slug}, &data); err != nil {
		return nil, fmt.Errorf("tool by slug %q: %w", slug, err)
	}
	if data.Tool == nil {
		return nil, nil
	}
	tool := data.Tool.toTool()
	return &tool, nil
}

// Tags fetches taxonomy terms ordered by usage count.
func (c *Client) Tags(ctx context.Context, limit int) ([]Tag, error) {
	if limit <= 0 {
		limit = 50
	}
	var data struct {
		Tags struct {
			Nodes []Tag `json:"nodes"`
		} `json:"tags"`
	}
	if err := c.do(ctx, "Tags", queryTags, map[string]any{"first": limit}, &data); err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	return data.Tags.Nodes, nil
}

// TagBySlug fetches one taxonomy term. A nil tag with a nil error means the
// slug does not exist.
func (c *Client) TagBySlug(ctx context.Context, slug string) (*Tag, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, errors.New("tag slug is required")
	}
	var data struct {
		Tag *Tag `json:"tag"`
	}
	if err := c.do(ctx, "TagBySlug", queryTagBySlug, map[string]any{"slug": slug}, &data); err != nil {
		return nil, fmt.Errorf("tag by slug %q: %w", slug, err)
	}
	return data.Tag, nil
}

// HomeContent aggregates all homepage sections in a single fetch.
func (c *Client) HomeContent(ctx context.Context) (HomeContent, error) {
	var data struct {
		Featured struct {
			Nodes []toolWire `json:"nodes"`
		} `json:"featured"`
		Posts struct {
			Nodes []postWire `json:"nodes"`
		} `json:"posts"`
		Tags struct {
			Nodes []Tag `json:"nodes"`
		} `json:"tags"`
	}
	if err := c.do(ctx, "HomeContent", queryHomeContent, nil, &data); err != nil {
		return HomeContent{}, fmt.Errorf("home content: %w", err)
	}

	content := HomeContent{
		FeaturedTools: make([]Tool, 0, len(data.Featured.Nodes)),
		LatestPosts:   make([]Post, 0, len(data.Posts.Nodes)),
		PopularTags:   data.Tags.Nodes,
	}
	for _, node := range data.Featured.Nodes {
		content.FeaturedTools = append(content.FeaturedTools, node.toTool())
	}
	for _, node := range data.Posts.Nodes {
		content.LatestPosts = append(content.LatestPosts, node.toPost())
	}
	return content, nil
}
