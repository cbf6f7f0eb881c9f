package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/storage"
)

// ObjectStore implements storage.ObjectStore on Supabase storage.
type ObjectStore struct {
	client *Client
}

// NewObjectStore creates a storage adapter sharing client's credentials.
func NewObjectStore(client *Client) *ObjectStore {
	return &ObjectStore{client: client}
}

type listRequest struct {
	Prefix string     `json:"prefix"`
	Limit  int        `json:"limit,omitempty"`
	Offset int        `json:"offset,omitempty"`
	SortBy listSortBy `json:"sortBy"`
}

type listSortBy struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

type listedObject struct {
	Name      string     `json:"name"`
	UpdatedAt *time.Time `json:"updated_at"`
	Metadata  *struct {
		Size     int64  `json:"size"`
		MimeType string `json:"mimetype"`
	} `json:"metadata"`
}

// List returns the bucket's objects sorted by name.
func (s *ObjectStore) List(ctx context.Context, bucket string, opts storage.ListOptions) ([]storage.Object, error) {
	body := listRequest{
		Prefix: opts.Prefix,
		Limit:  opts.Limit,
		Offset: opts.Offset,
		SortBy: listSortBy{Column: "name", Order: "asc"},
	}

	req, err := s.client.newRequest(ctx, http.MethodPost, "/storage/v1/object/list/"+url.PathEscape(bucket), nil, body)
	if err != nil {
		return nil, err
	}

	var listed []listedObject
	if err := s.client.do(ctx, req, &listed); err != nil {
		return nil, fmt.Errorf("list bucket %s: %w", bucket, err)
	}
	if listed == nil {
		return nil, nil
	}

	objs := make([]storage.Object, 0, len(listed))
	for _, l := range listed {
		o := storage.Object{Name: l.Name}
		if l.UpdatedAt != nil {
			o.UpdatedAt = *l.UpdatedAt
		}
		if l.Metadata != nil {
			o.Size = l.Metadata.Size
			o.ContentType = l.Metadata.MimeType
		}
		objs = append(objs, o)
	}
	return objs, nil
}

// PublicURL returns the object's address in a public bucket. It does not
// contact the server.
func (s *ObjectStore) PublicURL(_ context.Context, bucket, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty object name")
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.client.baseURL, url.PathEscape(bucket), storage.EscapePath(name)), nil
}
