package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/storage"
)

// Storage implements storage.ObjectStore over in-memory buckets. It keeps
// metadata only and lists objects in insertion order.
type Storage struct {
	mu      sync.RWMutex
	buckets map[string][]storage.Object
	baseURL string
}

// New creates an empty store whose public URLs are rooted at baseURL.
func New(baseURL string) *Storage {
	return &Storage{
		buckets: make(map[string][]storage.Object),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Put appends obj to bucket, replacing an existing object with the same name.
func (s *Storage) Put(bucket string, obj storage.Object) {
	s.mu.Lock()
	defer s.mu.Unlock()

	objs := s.buckets[bucket]
	for i := range objs {
		if objs[i].Name == obj.Name {
			objs[i] = obj
			return
		}
	}
	s.buckets[bucket] = append(objs, obj)
}

// List returns a copy of the bucket's objects after applying opts.
func (s *Storage) List(_ context.Context, bucket string, opts storage.ListOptions) ([]storage.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objs, ok := s.buckets[bucket]
	if !ok {
		return nil, fmt.Errorf("bucket not found: %s", bucket)
	}

	out := make([]storage.Object, 0, len(objs))
	for _, o := range objs {
		if strings.HasPrefix(o.Name, opts.Prefix) {
			out = append(out, o)
		}
	}
	if opts.Offset >= len(out) {
		return []storage.Object{}, nil
	}
	out = out[opts.Offset:]
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// PublicURL returns baseURL/bucket/name.
func (s *Storage) PublicURL(_ context.Context, bucket, name string) (string, error) {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, storage.EscapePath(name)), nil
}
