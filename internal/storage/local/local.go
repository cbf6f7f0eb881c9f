package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/storage"
	apperrors "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/errors"
)

// Storage implements storage.ObjectStore over a directory tree where each
// bucket is a subdirectory of root. It backs development setups where the
// gateway serves root as static files.
type Storage struct {
	root    string
	baseURL string
}

// New serves buckets under root with public URLs rooted at baseURL.
func New(root, baseURL string) *Storage {
	return &Storage{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// List returns the regular files in the bucket directory ordered by name.
func (s *Storage) List(ctx context.Context, bucket string, opts storage.ListOptions) ([]storage.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.ContainsAny(bucket, `/\`) || bucket == ".." {
		return nil, fmt.Errorf("invalid bucket name %q", bucket)
	}

	entries, err := os.ReadDir(filepath.Join(s.root, bucket))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("list bucket %s: %w", bucket, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("list bucket %s: %w", bucket, err)
	}

	objs := make([]storage.Object, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasPrefix(e.Name(), opts.Prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		objs = append(objs, storage.Object{
			Name:      e.Name(),
			Size:      info.Size(),
			UpdatedAt: info.ModTime().UTC(),
		})
	}

	if opts.Offset >= len(objs) {
		return []storage.Object{}, nil
	}
	objs = objs[opts.Offset:]
	if opts.Limit > 0 && len(objs) > opts.Limit {
		objs = objs[:opts.Limit]
	}
	return objs, nil
}

// PublicURL returns baseURL/bucket/name.
func (s *Storage) PublicURL(_ context.Context, bucket, name string) (string, error) {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, url.PathEscape(bucket), storage.EscapePath(name)), nil
}
