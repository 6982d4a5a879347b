// Package sqlite implements the page cache store on SQLite.
package sqlite
