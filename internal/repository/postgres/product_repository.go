package postgres

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
)

const productColumns = `
	id, name, description, image_url,
	default_profit, default_deposit, is_active,
	created_at, updated_at`

type productRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sqlx.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *domain.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, image_url,
			default_profit, default_deposit, is_active
		) VALUES (
			:id, :name, :description, :image_url,
			:default_profit, :default_deposit, :is_active
		)`

	if _, err := r.db.NamedExec(query, product); err != nil {
		logger.Error("Failed to create product",
			logger.String("name", product.Name),
			logger.ErrorField(err),
		)
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByID(id string) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.Get(&product, `SELECT `+productColumns+` FROM products WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) Update(product *domain.Product) error {
	query := `
		UPDATE products SET
			name = :name, description = :description, image_url = :image_url,
			default_profit = :default_profit, default_deposit = :default_deposit,
			is_active = :is_active, updated_at = NOW()
		WHERE id = :id`

	res, err := r.db.NamedExec(query, product)
	if err != nil {
		logger.Error("Failed to update product",
			logger.String("product_id", product.ID),
			logger.ErrorField(err),
		)
		return fmt.Errorf("failed to update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete removes a product unless tasks still reference it.
func (r *productRepository) Delete(id string) error {
	query := `
		DELETE FROM products
		WHERE id = $1
		AND NOT EXISTS (SELECT 1 FROM user_tasks WHERE product_id = $1)`

	res, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := r.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id); err != nil {
			return fmt.Errorf("failed to check product existence: %w", err)
		}
		if exists {
			return domain.ErrProductInUse
		}
		return domain.ErrProductNotFound
	}

	logger.Info("Product deleted", logger.String("product_id", id))
	return nil
}

func (r *productRepository) List(limit, offset int) ([]*domain.Product, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM products`); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var products []*domain.Product
	if err := r.db.Select(&products, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (r *productRepository) ListActive() ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE
		ORDER BY name ASC`

	var products []*domain.Product
	if err := r.db.Select(&products, query); err != nil {
		logger.Error("Failed to list active products", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}
	return products, nil
}
