// Package timeouts defines shared timeout constants so the durations stay
// discoverable and consistent across entry points.
package timeouts

import "time"

// CMSRequest caps the total time for one CMS content fetch.
const CMSRequest = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
