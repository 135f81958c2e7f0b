package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/book"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/category"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/mantra"
	"github.com/sanatanigyan/granthalaya/internal/core/domain/product"
)

// ErrNotFound marks a missing row. Repositories return it for point
// lookups; the catalog service maps it to a nil result without error.
var ErrNotFound = errors.New("not found")

// BookRepository defines the interface for book data operations
type BookRepository interface {
	List(ctx context.Context, limit, offset int) ([]*book.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*book.BookDetail, error)
	ListRecent(ctx context.Context, limit int) ([]*book.Book, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]*book.Book, error)
}

// MantraRepository defines the interface for mantra data operations
type MantraRepository interface {
	List(ctx context.Context, filter *mantra.ListFilter) ([]*mantra.Mantra, error)
	GetByID(ctx context.Context, id uuid.UUID) (*mantra.MantraDetail, error)
	ListRecent(ctx context.Context, limit int) ([]*mantra.Mantra, error)
}

// ProductRepository defines the interface for store product data operations
type ProductRepository interface {
	List(ctx context.Context, limit, offset int) ([]*product.Product, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	List(ctx context.Context) ([]*category.Category, error)
}

// CatalogService is the single read-access point for the content
// catalog. Every read passes through it so the cache is never silently
// bypassed. Detail lookups return (nil, nil) for a missing row; errors
// are reserved for genuine storage failures and propagate unchanged.
type CatalogService interface {
	ListBooks(ctx context.Context, limit, offset int) ([]*book.Book, error)
	GetBookDetail(ctx context.Context, id uuid.UUID) (*book.BookDetail, error)
	RecentBooks(ctx context.Context, limit int) ([]*book.Book, error)
	BooksByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]*book.Book, error)

	ListMantras(ctx context.Context, filter *mantra.ListFilter) ([]*mantra.Mantra, error)
	GetMantraDetail(ctx context.Context, id uuid.UUID) (*mantra.MantraDetail, error)
	RecentMantras(ctx context.Context, limit int) ([]*mantra.Mantra, error)

	ListProducts(ctx context.Context, limit, offset int) ([]*product.Product, error)
	ListCategories(ctx context.Context) ([]*category.Category, error)

	// RecordBookView tracks a client's recently-viewed books, best effort.
	RecordBookView(ctx context.Context, clientID string, bookID uuid.UUID)
	// RecentlyViewed resolves the client's tracked IDs to book details,
	// skipping books that have since disappeared.
	RecentlyViewed(ctx context.Context, clientID string) ([]*book.BookDetail, error)
}
