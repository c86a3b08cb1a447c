package domain

import (
	"time"
)

// Product is a catalog item tasks are bound to. DefaultProfit and
// DefaultDeposit seed new tasks; assignment may override both.
type Product struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
	ImageURL    *string `json:"image_url" db:"image_url"`

	DefaultProfit  float64 `json:"default_profit" db:"default_profit"`
	DefaultDeposit float64 `json:"default_deposit" db:"default_deposit"`

	IsActive bool `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProductRepository defines operations for product data access. Delete must
// refuse to remove a product still referenced by tasks.
type ProductRepository interface {
	Create(product *Product) error
	GetByID(id string) (*Product, error)
	Update(product *Product) error
	Delete(id string) error
	List(limit, offset int) ([]*Product, int, error)
	ListActive() ([]*Product, error)
}

// ProductUsecase defines business logic for catalog management. The active
// list is served through the cache; writes invalidate it.
type ProductUsecase interface {
	CreateProduct(product *Product) error
	GetProduct(id string) (*Product, error)
	UpdateProduct(id string, updates *Product) (*Product, error)
	DeleteProduct(id string) error
	ListProducts(page, limit int) ([]*Product, int, error)
	ListActiveProducts() ([]*Product, error)
}
