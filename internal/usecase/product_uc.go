package usecase

import (
	"fmt"
	"strings"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/utils"
)

type productUsecase struct {
	productRepo domain.ProductRepository
	cacheRepo   domain.CacheRepository
}

// NewProductUsecase creates the catalog management usecase.
func NewProductUsecase(
	productRepo domain.ProductRepository,
	cacheRepo domain.CacheRepository,
) domain.ProductUsecase {
	return &productUsecase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
	}
}

func (uc *productUsecase) invalidateCatalog() {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.InvalidateProducts(); err != nil {
		logger.Warn("Failed to invalidate product cache", logger.ErrorField(err))
	}
}

func (uc *productUsecase) CreateProduct(product *domain.Product) error {
	if product == nil {
		return fmt.Errorf("%w: product payload is required", domain.ErrValidation)
	}
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}
	if product.DefaultProfit < 0 || product.DefaultDeposit < 0 {
		return fmt.Errorf("%w: default amounts cannot be negative", domain.ErrValidation)
	}

	product.ID = utils.GenerateUUID()
	if err := uc.productRepo.Create(product); err != nil {
		return err
	}

	uc.invalidateCatalog()
	logger.Info("Product created",
		logger.String("product_id", product.ID),
		logger.String("name", product.Name),
	)
	return nil
}

func (uc *productUsecase) GetProduct(id string) (*domain.Product, error) {
	return uc.productRepo.GetByID(id)
}

func (uc *productUsecase) UpdateProduct(id string, updates *domain.Product) (*domain.Product, error) {
	if updates == nil {
		return nil, fmt.Errorf("%w: update payload is required", domain.ErrValidation)
	}

	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(updates.Name) != "" {
		product.Name = updates.Name
	}
	if updates.Description != nil {
		product.Description = updates.Description
	}
	if updates.ImageURL != nil {
		product.ImageURL = updates.ImageURL
	}
	if updates.DefaultProfit > 0 {
		product.DefaultProfit = updates.DefaultProfit
	}
	if updates.DefaultDeposit > 0 {
		product.DefaultDeposit = updates.DefaultDeposit
	}
	product.IsActive = updates.IsActive

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}

	uc.invalidateCatalog()
	return product, nil
}

func (uc *productUsecase) DeleteProduct(id string) error {
	if err := uc.productRepo.Delete(id); err != nil {
		return err
	}
	uc.invalidateCatalog()
	return nil
}

func (uc *productUsecase) ListProducts(page, limit int) ([]*domain.Product, int, error) {
	_, limit, offset := utils.NormalizePagination(page, limit)
	return uc.productRepo.List(limit, offset)
}

// ListActiveProducts serves the catalog through the cache, falling back to
// the database on a miss.
func (uc *productUsecase) ListActiveProducts() ([]*domain.Product, error) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetActiveProducts()
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	products, err := uc.productRepo.ListActive()
	if err != nil {
		return nil, err
	}

	if uc.cacheRepo != nil && len(products) > 0 {
		if err := uc.cacheRepo.CacheActiveProducts(products); err != nil {
			logger.Warn("Failed to cache active products", logger.ErrorField(err))
		}
	}
	return products, nil
}
