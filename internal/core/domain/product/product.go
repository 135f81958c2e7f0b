package product

import (
	"time"

	"github.com/google/uuid"
)

// Product is a store item. All merchandising fields are optional.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Category    *string   `json:"category,omitempty"`
	InStock     *bool     `json:"in_stock,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
