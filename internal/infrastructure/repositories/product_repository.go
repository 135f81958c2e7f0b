package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/product"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/db"
)

// ProductRepository implements the product repository interface
type ProductRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(database *db.Database, logger *logrus.Logger) ports.ProductRepository {
	return &ProductRepository{
		db:     database,
		logger: logger,
	}
}

// List returns one page of products, most recently created first.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	query := `
		SELECT id, name, description, price, image_url, category, in_stock, created_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*product.Product{}
	for rows.Next() {
		var (
			p           product.Product
			description sql.NullString
			price       sql.NullFloat64
			imageURL    sql.NullString
			category    sql.NullString
			inStock     sql.NullBool
		)
		if err := rows.Scan(&p.ID, &p.Name, &description, &price, &imageURL, &category, &inStock, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		p.Description = strPtr(description)
		p.Price = floatPtr(price)
		p.ImageURL = strPtr(imageURL)
		p.Category = strPtr(category)
		p.InStock = boolPtr(inStock)
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}
