package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/mantra"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/db"
)

// MantraRepository implements the mantra repository interface
type MantraRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewMantraRepository creates a new mantra repository
func NewMantraRepository(database *db.Database, logger *logrus.Logger) ports.MantraRepository {
	return &MantraRepository{
		db:     database,
		logger: logger,
	}
}

// List returns one page of mantras, most recently created first,
// optionally narrowed by title search and category.
func (r *MantraRepository) List(ctx context.Context, filter *mantra.ListFilter) ([]*mantra.Mantra, error) {
	query := "SELECT id, title, deity, category, created_at FROM mantras"
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.Search != "" {
		conditions = append(conditions, "title ILIKE $"+strconv.Itoa(argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = $"+strconv.Itoa(argIndex))
		args = append(args, filter.Category)
		argIndex++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"
	query += " LIMIT $" + strconv.Itoa(argIndex)
	args = append(args, filter.Limit)
	argIndex++
	query += " OFFSET $" + strconv.Itoa(argIndex)
	args = append(args, filter.Offset)

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"query": query, "args": args}).Debug("db: executing mantra list query")
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list mantras: %w", err)
	}
	defer rows.Close()

	return scanMantraSummaries(rows)
}

// GetByID returns the full detail shape for one mantra.
func (r *MantraRepository) GetByID(ctx context.Context, id uuid.UUID) (*mantra.MantraDetail, error) {
	var (
		d        mantra.MantraDetail
		meaning  sql.NullString
		audioURL sql.NullString
	)

	query := `
		SELECT id, title, deity, category, mantra_text, meaning, audio_url, created_at
		FROM mantras
		WHERE id = $1`

	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Title, &d.Deity, &d.Category, &d.MantraText, &meaning, &audioURL, &d.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get mantra: %w", err)
	}

	d.Meaning = strPtr(meaning)
	d.AudioURL = strPtr(audioURL)

	return &d, nil
}

// ListRecent returns the newest mantras up to limit.
func (r *MantraRepository) ListRecent(ctx context.Context, limit int) ([]*mantra.Mantra, error) {
	query := `
		SELECT id, title, deity, category, created_at
		FROM mantras
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent mantras: %w", err)
	}
	defer rows.Close()

	return scanMantraSummaries(rows)
}

func scanMantraSummaries(rows *sql.Rows) ([]*mantra.Mantra, error) {
	mantras := []*mantra.Mantra{}
	for rows.Next() {
		var m mantra.Mantra
		if err := rows.Scan(&m.ID, &m.Title, &m.Deity, &m.Category, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mantra row: %w", err)
		}
		mantras = append(mantras, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mantra rows: %w", err)
	}
	return mantras, nil
}
