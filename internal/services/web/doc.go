// Package web hosts the public site: the tools directory, blog, and tag
// pages rendered from CMS content, backed by a SQLite page cache with
// stale-while-revalidate semantics and a webhook that marks cached pages
// stale when the CMS publishes changes.
package web
