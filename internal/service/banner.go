package service

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/domain"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/storage"
)

const (
	// BannerBucket is the storage bucket holding banner images.
	BannerBucket = "banners"
	// DefaultBannerLimit caps a listing when the caller gives no limit.
	DefaultBannerLimit = 20

	maxConcurrentResolves = 8
)

// BannerService lists banner images with resolved public URLs.
type BannerService struct {
	store    storage.ObjectStore
	logger   *slog.Logger
	inflight atomic.Int64
}

// NewBannerService creates a banner reader over store.
func NewBannerService(store storage.ObjectStore, logger *slog.Logger) *BannerService {
	return &BannerService{store: store, logger: logger}
}

// Loading reports whether any ListBanners call is in progress.
func (s *BannerService) Loading() bool {
	return s.inflight.Load() > 0
}

// ListBanners returns up to limit banners (DefaultBannerLimit when limit <= 0)
// in the bucket's listing order. Entries without a name are skipped, and an
// entry whose URL cannot be resolved is dropped. A failed listing yields an
// empty result, never an error.
func (s *BannerService) ListBanners(ctx context.Context, limit int) []domain.BannerAsset {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	if limit <= 0 {
		limit = DefaultBannerLimit
	}

	objs, err := s.store.List(ctx, BannerBucket, storage.ListOptions{Limit: limit})
	if err != nil {
		s.logger.WarnContext(ctx, "banner listing failed", slog.String("error", err.Error()))
		return []domain.BannerAsset{}
	}

	named := make([]storage.Object, 0, len(objs))
	for _, o := range objs {
		if o.Name != "" {
			named = append(named, o)
		}
	}
	if len(named) > limit {
		named = named[:limit]
	}

	urls := make([]string, len(named))
	var g errgroup.Group
	g.SetLimit(maxConcurrentResolves)
	for i, o := range named {
		g.Go(func() error {
			u, err := s.store.PublicURL(ctx, BannerBucket, o.Name)
			if err != nil {
				s.logger.WarnContext(ctx, "banner url resolution failed",
					slog.String("name", o.Name),
					slog.String("error", err.Error()),
				)
				return nil
			}
			urls[i] = u
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return []domain.BannerAsset{}
	}

	assets := make([]domain.BannerAsset, 0, len(named))
	for i, o := range named {
		if urls[i] == "" {
			continue
		}
		assets = append(assets, domain.BannerAsset{Name: o.Name, URL: urls[i]})
	}
	return assets
}
