package cms

// GraphQL documents for the WPGraphQL content API. Field selections are kept
// to what the pages actually render.

const postFields = `
  id
  slug
  title
  excerpt
  content
  date
  modified
  featuredImage { node { sourceUrl altText } }
  author { node { name } }
  tags { nodes { slug name description count } }
  categories { nodes { slug name } }
`

const toolFields = `
  id
  slug
  title
  content
  featuredImage { node { sourceUrl altText } }
  tags { nodes { slug name description count } }
  categories { nodes { slug name } }
  toolFields {
    summary
    websiteUrl
    rating
    pricingModels
    keyFindings
    whoIsItFor
    featured
  }
`

const queryLatestPosts = `
query LatestPosts($first: Int!) {
  posts(first: $first, where: { orderby: { field: DATE, order: DESC } }) {
    nodes {` + postFields + `}
  }
}`

const queryPostBySlug = `
query PostBySlug($slug: ID!) {
  post(id: $slug, idType: SLUG) {` + postFields + `}
}`

const queryTools = `
query Tools($first: Int!, $after: String, $tag: String, $category: String, $search: String) {
  tools(
    first: $first
    after: $after
    where: { tag: $tag, category: $category, search: $search, orderby: { field: TITLE, order: ASC } }
  ) {
    nodes {` + toolFields + `}
    pageInfo { endCursor hasNextPage }
  }
}`

const queryToolBySlug = `
query ToolBySlug($slug: ID!) {
  tool(id: $slug, idType: SLUG) {` + toolFields + `}
}`

const queryTags = `
query Tags($first: Int!) {
  tags(first: $first, where: { orderby: COUNT, order: DESC, hideEmpty: true }) {
    nodes { slug name description count }
  }
}`

const queryTagBySlug = `
query TagBySlug($slug: ID!) {
  tag(id: $slug, idType: SLUG) {
    slug
    name
    description
    count
  }
}`

const queryHomeContent = `
query HomeContent {
  featured: tools(first: 8, where: { featured: true }) {
    nodes {` + toolFields + `}
  }
  posts(first: 3, where: { orderby: { field: DATE, order: DESC } }) {
    nodes {` + postFields + `}
  }
  tags(first: 12, where: { orderby: COUNT, order: DESC, hideEmpty: true }) {
    nodes { slug name description count }
  }
}`
