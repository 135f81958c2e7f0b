package book

import (
	"time"

	"github.com/google/uuid"
)

// CategoryRef is the joined category shape carried on book summaries.
// It is resolved by the query join, never stored as its own entity.
type CategoryRef struct {
	Name string `json:"name"`
}

// CategoryDetailRef extends the joined category shape for detail pages.
type CategoryDetailRef struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Book is the summary shape used on listing pages.
type Book struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description,omitempty"`
	Language    string      `json:"language"`
	ImageURL    *string     `json:"image_url,omitempty"`
	Category    CategoryRef `json:"category"`
	CreatedAt   time.Time   `json:"created_at"`
}

// BookDetail is the full shape served on a book's own page.
type BookDetail struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	Author      *string           `json:"author,omitempty"`
	Language    string            `json:"language"`
	ImageURL    *string           `json:"image_url,omitempty"`
	PDFLink     *string           `json:"pdf_link,omitempty"`
	CategoryID  uuid.UUID         `json:"category_id"`
	Category    CategoryDetailRef `json:"category"`
	CreatedAt   time.Time         `json:"created_at"`
}
