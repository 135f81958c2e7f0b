package category

import "github.com/google/uuid"

// Category groups books. It is queried and cached as a flat list.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}
