// Package cache stores computed report results between requests.
package cache

import (
	"context"
	"time"
)

// DefaultTTL applies when a cache is created with a zero TTL.
const DefaultTTL = time.Minute

// ReportCache is a JSON value cache with prefix invalidation.
type ReportCache interface {
	// Get decodes the value at key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	// Invalidate drops every key starting with prefix.
	Invalidate(ctx context.Context, prefix string) error
}
