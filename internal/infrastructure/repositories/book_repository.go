package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/book"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/db"
)

// BookRepository implements the book repository interface
type BookRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewBookRepository creates a new book repository
func NewBookRepository(database *db.Database, logger *logrus.Logger) ports.BookRepository {
	return &BookRepository{
		db:     database,
		logger: logger,
	}
}

const bookSummaryColumns = `
	b.id, b.title, b.description, b.language, b.image_url, c.name, b.created_at`

// List returns one page of books, most recently created first.
func (r *BookRepository) List(ctx context.Context, limit, offset int) ([]*book.Book, error) {
	query := `
		SELECT` + bookSummaryColumns + `
		FROM books b
		JOIN categories c ON c.id = b.category_id
		ORDER BY b.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	return scanBookSummaries(rows)
}

// GetByID returns the full detail shape for one book.
func (r *BookRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.BookDetail, error) {
	var (
		d           book.BookDetail
		description sql.NullString
		author      sql.NullString
		imageURL    sql.NullString
		pdfLink     sql.NullString
		catDesc     sql.NullString
	)

	query := `
		SELECT b.id, b.title, b.description, b.author, b.language, b.image_url, b.pdf_link,
		       b.category_id, c.name, c.description, b.created_at
		FROM books b
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1`

	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Title, &description, &author, &d.Language, &imageURL, &pdfLink,
		&d.CategoryID, &d.Category.Name, &catDesc, &d.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	d.Description = strPtr(description)
	d.Author = strPtr(author)
	d.ImageURL = strPtr(imageURL)
	d.PDFLink = strPtr(pdfLink)
	d.Category.Description = strPtr(catDesc)

	return &d, nil
}

// ListRecent returns the newest books up to limit.
func (r *BookRepository) ListRecent(ctx context.Context, limit int) ([]*book.Book, error) {
	query := `
		SELECT` + bookSummaryColumns + `
		FROM books b
		JOIN categories c ON c.id = b.category_id
		ORDER BY b.created_at DESC
		LIMIT $1`

	rows, err := r.db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent books: %w", err)
	}
	defer rows.Close()

	return scanBookSummaries(rows)
}

// ListByCategory returns the newest books in a category up to limit.
// Filtering is by category ID; names are not guaranteed unique.
func (r *BookRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]*book.Book, error) {
	query := `
		SELECT` + bookSummaryColumns + `
		FROM books b
		JOIN categories c ON c.id = b.category_id
		WHERE b.category_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2`

	rows, err := r.db.DB.QueryContext(ctx, query, categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by category: %w", err)
	}
	defer rows.Close()

	return scanBookSummaries(rows)
}

func scanBookSummaries(rows *sql.Rows) ([]*book.Book, error) {
	books := []*book.Book{}
	for rows.Next() {
		var (
			b           book.Book
			description sql.NullString
			imageURL    sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Title, &description, &b.Language, &imageURL, &b.Category.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		b.Description = strPtr(description)
		b.ImageURL = strPtr(imageURL)
		books = append(books, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return books, nil
}
