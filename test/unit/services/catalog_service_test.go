package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	impl "github.com/sanatanigyan/granthalaya/internal/application/services"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/book"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/category"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/mantra"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/memcache"
	"github.com/sanatanigyan/granthalaya/test/mocks"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newCatalogService(deps impl.CatalogDeps) *impl.CatalogService {
	if deps.Cache == nil {
		deps.Cache = memcache.New(time.Minute)
	}
	return impl.NewCatalogService(deps, nil, testLogger())
}

func TestListBooksCachesPage(t *testing.T) {
	calls := 0
	repo := &mocks.BookRepositoryMock{
		ListFn: func(ctx context.Context, limit, offset int) ([]*book.Book, error) {
			calls++
			return []*book.Book{{ID: uuid.New(), Title: "Bhagavad Gita"}}, nil
		},
	}
	svc := newCatalogService(impl.CatalogDeps{Books: repo})

	for i := 0; i < 3; i++ {
		books, err := svc.ListBooks(context.Background(), 12, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(books) != 1 {
			t.Fatalf("expected one book, got %d", len(books))
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single repository call, got %d", calls)
	}
}

func TestListBooksDistinctPagesDistinctEntries(t *testing.T) {
	var seen [][2]int
	repo := &mocks.BookRepositoryMock{
		ListFn: func(ctx context.Context, limit, offset int) ([]*book.Book, error) {
			seen = append(seen, [2]int{limit, offset})
			return []*book.Book{}, nil
		},
	}
	svc := newCatalogService(impl.CatalogDeps{Books: repo})

	ctx := context.Background()
	if _, err := svc.ListBooks(ctx, 12, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListBooks(ctx, 12, 12); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListBooks(ctx, 6, 0); err != nil {
		t.Fatal(err)
	}

	if len(seen) != 3 {
		t.Fatalf("each limit/offset pair should load once, got calls %v", seen)
	}
}

func TestListBooksEmptyPageCached(t *testing.T) {
	calls := 0
	repo := &mocks.BookRepositoryMock{
		ListFn: func(ctx context.Context, limit, offset int) ([]*book.Book, error) {
			calls++
			return []*book.Book{}, nil
		},
	}
	svc := newCatalogService(impl.CatalogDeps{Books: repo})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		books, err := svc.ListBooks(ctx, 12, 120)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(books) != 0 {
			t.Fatalf("expected empty page")
		}
	}
	if calls != 1 {
		t.Fatalf("an empty result must be cached like any other, got %d calls", calls)
	}
}

func TestListBooksErrorNotCached(t *testing.T) {
	calls := 0
	repo := &mocks.BookRepositoryMock{
		ListFn: func(ctx context.Context, limit, offset int) ([]*book.Book, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("db down")
			}
			return []*book.Book{}, nil
		},
	}
	svc := newCatalogService(impl.CatalogDeps{Books: repo})

	ctx := context.Background()
	if _, err := svc.ListBooks(ctx, 12, 0); err == nil {
		t.Fatalf("expected error from first load")
	}
	if _, err := svc.ListBooks(ctx, 12, 0); err != nil {
		t.Fatalf("second load should retry and succeed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("a failed load must cache nothing, got %d calls", calls)
	}
}

func TestGetBookDetailMissingNotCached(t *testing.T) {
	calls := 0
	repo := &mocks.BookRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*book.BookDetail, error) {
			calls++
			return nil, ports.ErrNotFound
		},
	}
	svc := newCatalogService(impl.CatalogDeps{Books: repo})

	ctx := context.Background()
	id := uuid.New()
	for i := 0; i < 2; i++ {
		d, err := svc.GetBookDetail(ctx, id)
		if err != nil {
			t.Fatalf("a missing row is not an error, got %v", err)
		}
		if d != nil {
			t.Fatalf("expected nil detail for missing book")
		}
	}
	if calls != 2 {
		t.Fatalf("a missing row must not be cached, got %d calls", calls)
	}
}

func TestGetBookDetailCachesHit(t *testing.T) {
	calls := 0
	id := uuid.New()
	repo := &mocks.BookRepositoryMock{
		GetByIDFn: func(ctx context.Context, bookID uuid.UUID) (*book.BookDetail, error) {
			calls++
			d := &book.BookDetail{}
			d.ID = bookID
			d.Title = "Ramayana"
			return d, nil
		},
	}
	svc := newCatalogService(impl.CatalogDeps{Books: repo})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		d, err := svc.GetBookDetail(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d == nil || d.Title != "Ramayana" {
			t.Fatalf("unexpected detail %+v", d)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one repository call, got %d", calls)
	}
}

func TestListMantrasFilteredAndUnfilteredSeparate(t *testing.T) {
	var filters []*mantra.ListFilter
	repo := &mocks.MantraRepositoryMock{
		ListFn: func(ctx context.Context, filter *mantra.ListFilter) ([]*mantra.Mantra, error) {
			copied := *filter
			filters = append(filters, &copied)
			return []*mantra.Mantra{}, nil
		},
	}
	svc := newCatalogService(impl.CatalogDeps{Mantras: repo})

	ctx := context.Background()
	if _, err := svc.ListMantras(ctx, &mantra.ListFilter{Limit: 12}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListMantras(ctx, &mantra.ListFilter{Limit: 12, Search: "gayatri"}); err != nil {
		t.Fatal(err)
	}
	// Repeat both; each should come from its own cache entry now.
	if _, err := svc.ListMantras(ctx, &mantra.ListFilter{Limit: 12}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListMantras(ctx, &mantra.ListFilter{Limit: 12, Search: "gayatri"}); err != nil {
		t.Fatal(err)
	}

	if len(filters) != 2 {
		t.Fatalf("filtered and unfiltered reads must not share an entry, got %d loads", len(filters))
	}
}

func TestListMantrasUnderscoreFiltersDoNotCollide(t *testing.T) {
	var filters []*mantra.ListFilter
	repo := &mocks.MantraRepositoryMock{
		ListFn: func(ctx context.Context, filter *mantra.ListFilter) ([]*mantra.Mantra, error) {
			copied := *filter
			filters = append(filters, &copied)
			return []*mantra.Mantra{{ID: uuid.New(), Title: copied.Search}}, nil
		},
	}
	svc := newCatalogService(impl.CatalogDeps{Mantras: repo})

	ctx := context.Background()
	first, err := svc.ListMantras(ctx, &mantra.ListFilter{Limit: 12, Search: "om_shanti", Category: "vedic"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.ListMantras(ctx, &mantra.ListFilter{Limit: 12, Search: "om", Category: "shanti_vedic"})
	if err != nil {
		t.Fatal(err)
	}

	if len(filters) != 2 {
		t.Fatalf("distinct filter pairs must each hit the repository, got %d loads", len(filters))
	}
	if first[0].Title == second[0].Title {
		t.Fatalf("second filter pair was served the first pair's cached rows: %q", second[0].Title)
	}
}

func TestListCategoriesUsesLongTTL(t *testing.T) {
	calls := 0
	repo := &mocks.CategoryRepositoryMock{
		ListFn: func(ctx context.Context) ([]*category.Category, error) {
			calls++
			return []*category.Category{{ID: uuid.New(), Name: "Purana"}}, nil
		},
	}
	cache := memcache.NewWithClock(time.Minute, time.Now)
	svc := impl.NewCatalogService(impl.CatalogDeps{Categories: repo, Cache: cache}, &impl.CatalogConfig{
		TTL:         time.Minute,
		CategoryTTL: time.Hour,
	}, testLogger())

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		cats, err := svc.ListCategories(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cats) != 1 {
			t.Fatalf("expected one category")
		}
	}
	if calls != 1 {
		t.Fatalf("expected one repository call, got %d", calls)
	}
}

func TestRecordBookViewDedupesAndTrims(t *testing.T) {
	store := mocks.NewLocalStoreMock()
	svc := newCatalogService(impl.CatalogDeps{Local: store})

	ctx := context.Background()
	ids := make([]uuid.UUID, 8)
	for i := range ids {
		ids[i] = uuid.New()
		svc.RecordBookView(ctx, "client-1", ids[i])
	}
	// Re-view the oldest surviving book; it should move to the front
	// without duplicating.
	svc.RecordBookView(ctx, "client-1", ids[3])

	var got []uuid.UUID
	ok, err := store.Get(ctx, "recent_books_client_client-1", time.Hour, &got)
	if err != nil || !ok {
		t.Fatalf("expected stored list, ok=%v err=%v", ok, err)
	}
	if len(got) != 6 {
		t.Fatalf("expected list trimmed to 6, got %d", len(got))
	}
	if got[0] != ids[3] {
		t.Fatalf("expected most recent view first")
	}
	seen := map[uuid.UUID]bool{}
	for _, id := range got {
		if seen[id] {
			t.Fatalf("expected no duplicates, %s repeated", id)
		}
		seen[id] = true
	}
}

func TestRecentlyViewedSkipsVanishedBooks(t *testing.T) {
	store := mocks.NewLocalStoreMock()
	kept := uuid.New()
	gone := uuid.New()
	repo := &mocks.BookRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*book.BookDetail, error) {
			if id == gone {
				return nil, ports.ErrNotFound
			}
			d := &book.BookDetail{}
			d.ID = id
			return d, nil
		},
	}
	svc := newCatalogService(impl.CatalogDeps{Books: repo, Local: store})

	ctx := context.Background()
	svc.RecordBookView(ctx, "client-1", gone)
	svc.RecordBookView(ctx, "client-1", kept)

	books, err := svc.RecentlyViewed(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(books) != 1 || books[0].ID != kept {
		t.Fatalf("expected only the surviving book, got %d entries", len(books))
	}
}

func TestRecentlyViewedStaleListIsEmpty(t *testing.T) {
	store := mocks.NewLocalStoreMock()
	svc := impl.NewCatalogService(impl.CatalogDeps{
		Local: store,
		Cache: memcache.New(time.Minute),
	}, &impl.CatalogConfig{RecentMaxAge: time.Hour}, testLogger())

	ctx := context.Background()
	svc.RecordBookView(ctx, "client-1", uuid.New())
	store.Age("recent_books_client_client-1", 2*time.Hour)

	books, err := svc.RecentlyViewed(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("expected stale tracking to read as empty, got %d", len(books))
	}
}
