package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wellness-planner/internal/domain"
)

// ProductsTableDDL crea la tabla de catálogo que lee PgProductRepository.
const ProductsTableDDL = `
	CREATE TABLE IF NOT EXISTS products (
		id               TEXT PRIMARY KEY,
		position         INTEGER NOT NULL DEFAULT 0,
		name             TEXT NOT NULL,
		price            NUMERIC(10,2) NOT NULL DEFAULT 0,
		points           INTEGER,
		category         TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		benefits         TEXT[] NOT NULL DEFAULT '{}',
		key_ingredients  TEXT[] NOT NULL DEFAULT '{}',
		suggested_usage  TEXT NOT NULL DEFAULT '',
		expected_results TEXT NOT NULL DEFAULT '',
		image_url        TEXT NOT NULL DEFAULT '',
		video_url        TEXT,
		tags             TEXT[] NOT NULL DEFAULT '{}',
		active           BOOLEAN NOT NULL DEFAULT TRUE
	)
`

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type productQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgProductRepository lee el catálogo activo en el orden de presentación.
type PgProductRepository struct {
	db productQuerier
}

func NewPgProductRepository(pool *pgxpool.Pool) *PgProductRepository {
	return &PgProductRepository{db: pool}
}

func (r *PgProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const query = `
		SELECT id, name, price::float8, points, category, description, benefits, key_ingredients,
		       suggested_usage, expected_results, image_url, COALESCE(video_url, ''), tags
		FROM products
		WHERE active
		ORDER BY position ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var (
			p      domain.Product
			points *int32
		)
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&points,
			&p.Category,
			&p.Description,
			&p.Benefits,
			&p.KeyIngredients,
			&p.SuggestedUsage,
			&p.ExpectedResults,
			&p.ImageURL,
			&p.VideoURL,
			&p.Tags,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if points != nil {
			v := int(*points)
			p.Points = &v
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
