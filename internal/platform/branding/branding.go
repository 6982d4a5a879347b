// Package branding centralizes product naming used across pages and metadata.
package branding

// AppName is the public product name used in page titles and chrome.
const AppName = "AI Guide"

// Tagline is the short product description used on the homepage and in
// default meta descriptions.
const Tagline = "Discover, compare, and choose the right AI tools"
