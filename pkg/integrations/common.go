package integrations

import (
	"net/url"
	"time"
)

// DefaultTimeout bounds a single upstream call when the caller passes zero.
const DefaultTimeout = 8 * time.Second

// PathEscape percent-encodes a string for use as one URL path segment.
// This is a convenience wrapper around [url.PathEscape].
func PathEscape(s string) string { return url.PathEscape(s) }
