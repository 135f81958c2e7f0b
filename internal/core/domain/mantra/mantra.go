package mantra

import (
	"time"

	"github.com/google/uuid"
)

// Mantra is the summary shape used on listing pages.
type Mantra struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Deity     string    `json:"deity"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// MantraDetail is the full shape served on a mantra's own page.
type MantraDetail struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Deity      string    `json:"deity"`
	Category   string    `json:"category"`
	MantraText string    `json:"mantra_text"`
	Meaning    *string   `json:"meaning,omitempty"`
	AudioURL   *string   `json:"audio_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListFilter narrows the paginated mantra listing. Zero values mean
// no filtering; Limit and Offset always apply.
type ListFilter struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}
