package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/book"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/category"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/mantra"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/product"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
)

// Page and limit defaults, matching what the listing pages request.
const (
	DefaultPageLimit     = 12
	DefaultRecentBooks   = 10
	DefaultRecentMantras = 8
	DefaultCategoryBooks = 4

	// recentlyViewedMax bounds the per-client recently-viewed list.
	recentlyViewedMax = 6
)

// CatalogService is the single read-access point for the content
// catalog. Every read is wrapped in the cache under a key derived
// deterministically from the method and its arguments; key derivation
// is purely syntactic, so specialized reads never share an entry with
// the generic paginated fetch even when the filters coincide.
type CatalogService struct {
	books      ports.BookRepository
	mantras    ports.MantraRepository
	products   ports.ProductRepository
	categories ports.CategoryRepository
	cache      ports.Cache
	local      ports.LocalStore
	logger     *logrus.Logger

	ttl          time.Duration
	categoryTTL  time.Duration
	recentMaxAge time.Duration

	sf singleflight.Group
}

// CatalogConfig groups cache tuning for the catalog service.
type CatalogConfig struct {
	// TTL applies to every cached read unless overridden.
	TTL time.Duration
	// CategoryTTL covers the slow-moving categories list.
	CategoryTTL time.Duration
	// RecentMaxAge bounds how long recently-viewed tracking stays readable.
	RecentMaxAge time.Duration
}

// CatalogDeps groups the repositories and caches behind the service.
type CatalogDeps struct {
	Books      ports.BookRepository
	Mantras    ports.MantraRepository
	Products   ports.ProductRepository
	Categories ports.CategoryRepository
	Cache      ports.Cache
	Local      ports.LocalStore
}

func NewCatalogService(deps CatalogDeps, cfg *CatalogConfig, logger *logrus.Logger) *CatalogService {
	// Apply defaults
	ttl := 5 * time.Minute
	catTTL := 30 * time.Minute
	recentAge := 7 * 24 * time.Hour
	if cfg != nil {
		if cfg.TTL > 0 {
			ttl = cfg.TTL
		}
		if cfg.CategoryTTL > 0 {
			catTTL = cfg.CategoryTTL
		}
		if cfg.RecentMaxAge > 0 {
			recentAge = cfg.RecentMaxAge
		}
	}
	return &CatalogService{
		books:        deps.Books,
		mantras:      deps.Mantras,
		products:     deps.Products,
		categories:   deps.Categories,
		cache:        deps.Cache,
		local:        deps.Local,
		logger:       logger,
		ttl:          ttl,
		categoryTTL:  catTTL,
		recentMaxAge: recentAge,
	}
}

// cacheGet reads a typed value out of the cache. A value of the wrong
// type is treated as a miss.
func cacheGet[T any](c ports.Cache, key string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// listCached serves a list read from the cache, coalescing concurrent
// misses for the same key with singleflight. A failed load propagates
// to the caller and caches nothing; an empty result is cached like any
// other.
func listCached[T any](s *CatalogService, key string, ttl time.Duration, load func() ([]T, error)) ([]T, error) {
	if v, ok := cacheGet[[]T](s.cache, key); ok {
		return v, nil
	}
	res, err, _ := s.sf.Do(key, func() (any, error) {
		if v, ok := cacheGet[[]T](s.cache, key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Set(key, v, ttl)
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	v, ok := res.([]T)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return v, nil
}

// ListBooks returns one page of books, newest first. A page shorter
// than limit signals the last page; a full page only signals that more
// pages may exist.
func (s *CatalogService) ListBooks(ctx context.Context, limit, offset int) ([]*book.Book, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	key := fmt.Sprintf("books_%d_%d", limit, offset)
	return listCached(s, key, s.ttl, func() ([]*book.Book, error) {
		return s.books.List(ctx, limit, offset)
	})
}

// GetBookDetail returns one book or (nil, nil) when it does not exist.
// A missing row is never cached.
func (s *CatalogService) GetBookDetail(ctx context.Context, id uuid.UUID) (*book.BookDetail, error) {
	key := "book_detail_" + id.String()
	if v, ok := cacheGet[*book.BookDetail](s.cache, key); ok {
		return v, nil
	}
	d, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(key, d, s.ttl)
	}
	return d, nil
}

// RecentBooks returns the newest books up to limit (default 10).
func (s *CatalogService) RecentBooks(ctx context.Context, limit int) ([]*book.Book, error) {
	if limit <= 0 {
		limit = DefaultRecentBooks
	}
	key := fmt.Sprintf("recent_books_%d", limit)
	return listCached(s, key, s.ttl, func() ([]*book.Book, error) {
		return s.books.ListRecent(ctx, limit)
	})
}

// BooksByCategory returns the newest books in a category up to limit
// (default 4).
func (s *CatalogService) BooksByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]*book.Book, error) {
	if limit <= 0 {
		limit = DefaultCategoryBooks
	}
	key := fmt.Sprintf("books_category_%s_%d", categoryID, limit)
	return listCached(s, key, s.ttl, func() ([]*book.Book, error) {
		return s.books.ListByCategory(ctx, categoryID, limit)
	})
}

// ListMantras returns one page of mantras, optionally filtered.
func (s *CatalogService) ListMantras(ctx context.Context, filter *mantra.ListFilter) ([]*mantra.Mantra, error) {
	f := mantra.ListFilter{}
	if filter != nil {
		f = *filter
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	key := fmt.Sprintf("mantras_%d_%d", f.Limit, f.Offset)
	if f.Search != "" || f.Category != "" {
		// Length-prefix the filter values so underscores inside them
		// cannot produce the same key as a different filter pair.
		key = fmt.Sprintf("mantras_%d_%d_%d_%s_%d_%s",
			f.Limit, f.Offset, len(f.Search), f.Search, len(f.Category), f.Category)
	}
	return listCached(s, key, s.ttl, func() ([]*mantra.Mantra, error) {
		return s.mantras.List(ctx, &f)
	})
}

// GetMantraDetail returns one mantra or (nil, nil) when it does not exist.
func (s *CatalogService) GetMantraDetail(ctx context.Context, id uuid.UUID) (*mantra.MantraDetail, error) {
	key := "mantra_detail_" + id.String()
	if v, ok := cacheGet[*mantra.MantraDetail](s.cache, key); ok {
		return v, nil
	}
	d, err := s.mantras.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(key, d, s.ttl)
	}
	return d, nil
}

// RecentMantras returns the newest mantras up to limit (default 8).
func (s *CatalogService) RecentMantras(ctx context.Context, limit int) ([]*mantra.Mantra, error) {
	if limit <= 0 {
		limit = DefaultRecentMantras
	}
	key := fmt.Sprintf("recent_mantras_%d", limit)
	return listCached(s, key, s.ttl, func() ([]*mantra.Mantra, error) {
		return s.mantras.ListRecent(ctx, limit)
	})
}

// ListProducts returns one page of store products, newest first.
func (s *CatalogService) ListProducts(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	key := fmt.Sprintf("products_%d_%d", limit, offset)
	return listCached(s, key, s.ttl, func() ([]*product.Product, error) {
		return s.products.List(ctx, limit, offset)
	})
}

// ListCategories returns the flat category list ordered by name.
func (s *CatalogService) ListCategories(ctx context.Context) ([]*category.Category, error) {
	return listCached(s, "categories", s.categoryTTL, func() ([]*category.Category, error) {
		return s.categories.List(ctx)
	})
}

func recentlyViewedKey(clientID string) string {
	return "recent_books_client_" + clientID
}

// RecordBookView prepends bookID to the client's recently-viewed list,
// deduplicated and trimmed to the newest six. Best effort: a local
// store failure is logged and the view is lost, never the request.
func (s *CatalogService) RecordBookView(ctx context.Context, clientID string, bookID uuid.UUID) {
	if s.local == nil || clientID == "" {
		return
	}
	key := recentlyViewedKey(clientID)

	var ids []uuid.UUID
	if _, err := s.local.Get(ctx, key, s.recentMaxAge, &ids); err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("catalog: failed to read recently-viewed list")
	}

	updated := []uuid.UUID{bookID}
	for _, id := range ids {
		if id != bookID {
			updated = append(updated, id)
		}
		if len(updated) == recentlyViewedMax {
			break
		}
	}

	if err := s.local.Set(ctx, key, updated); err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("catalog: failed to store recently-viewed list")
	}
}

// RecentlyViewed resolves the client's tracked IDs to book details.
// Books that have since disappeared are skipped silently.
func (s *CatalogService) RecentlyViewed(ctx context.Context, clientID string) ([]*book.BookDetail, error) {
	books := []*book.BookDetail{}
	if s.local == nil || clientID == "" {
		return books, nil
	}

	var ids []uuid.UUID
	if _, err := s.local.Get(ctx, recentlyViewedKey(clientID), s.recentMaxAge, &ids); err != nil {
		return books, nil
	}

	for _, id := range ids {
		d, err := s.GetBookDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		if d != nil {
			books = append(books, d)
		}
	}
	return books, nil
}

var _ ports.CatalogService = (*CatalogService)(nil)
