package storage

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Object describes one stored file as reported by a bucket listing.
type Object struct {
	Name        string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
}

// ListOptions bounds a bucket listing. Limit <= 0 lets the store choose.
type ListOptions struct {
	Prefix string
	Limit  int
	Offset int
}

// ObjectStore lists bucket contents and resolves public addresses.
type ObjectStore interface {
	// List returns objects in the store's listing order.
	List(ctx context.Context, bucket string, opts ListOptions) ([]Object, error)

	// PublicURL returns an address a browser can fetch name from.
	PublicURL(ctx context.Context, bucket, name string) (string, error)
}

// EscapePath escapes each segment of an object name, keeping the "/"
// separators of objects stored under folders.
func EscapePath(name string) string {
	segments := strings.Split(name, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
