package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/category"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/db"
)

// CategoryRepository implements the category repository interface
type CategoryRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(database *db.Database, logger *logrus.Logger) ports.CategoryRepository {
	return &CategoryRepository{
		db:     database,
		logger: logger,
	}
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	query := `SELECT id, name, description FROM categories ORDER BY name`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*category.Category{}
	for rows.Next() {
		var (
			c           category.Category
			description sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		c.Description = strPtr(description)
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}
