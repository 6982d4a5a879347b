// Package storage defines the persistence contract for the rendered-page
// cache backing incremental regeneration.
package storage
