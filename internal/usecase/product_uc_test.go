package usecase

import (
	"errors"
	"testing"

	"github.com/adityarizkyr/reviora/internal/domain"
)

func TestCreateProduct(t *testing.T) {
	productRepo := &fakeProductRepo{}
	cache := &fakeCacheRepo{}
	uc := NewProductUsecase(productRepo, cache)

	if err := uc.CreateProduct(nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("nil payload: err = %v, want ErrValidation", err)
	}
	if err := uc.CreateProduct(&domain.Product{Name: "  "}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank name: err = %v, want ErrValidation", err)
	}
	if err := uc.CreateProduct(&domain.Product{Name: "Phone", DefaultProfit: -1}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("negative profit: err = %v, want ErrValidation", err)
	}

	product := &domain.Product{Name: "Phone", DefaultProfit: 5, IsActive: true}
	if err := uc.CreateProduct(product); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.ID == "" {
		t.Error("no ID assigned")
	}
	if len(productRepo.products) != 1 {
		t.Errorf("products persisted = %d", len(productRepo.products))
	}
	if cache.invalidations != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.invalidations)
	}
}

func TestUpdateProductMergesFields(t *testing.T) {
	desc := "Old description"
	productRepo := &fakeProductRepo{products: []*domain.Product{
		{ID: "p1", Name: "Phone", Description: &desc, DefaultProfit: 5, IsActive: true},
	}}
	uc := NewProductUsecase(productRepo, &fakeCacheRepo{})

	updated, err := uc.UpdateProduct("p1", &domain.Product{DefaultProfit: 8, IsActive: false})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Name != "Phone" {
		t.Errorf("blank name clobbered existing: %q", updated.Name)
	}
	if updated.DefaultProfit != 8 {
		t.Errorf("DefaultProfit = %v, want 8", updated.DefaultProfit)
	}
	if updated.IsActive {
		t.Error("IsActive not applied")
	}

	if _, err := uc.UpdateProduct("ghost", &domain.Product{}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("unknown product: err = %v, want ErrProductNotFound", err)
	}
}

func TestListActiveProductsUsesCache(t *testing.T) {
	productRepo := &fakeProductRepo{products: []*domain.Product{
		{ID: "p1", Name: "Phone", IsActive: true},
		{ID: "p2", Name: "Retired", IsActive: false},
	}}
	cache := &fakeCacheRepo{}
	uc := NewProductUsecase(productRepo, cache)

	products, err := uc.ListActiveProducts()
	if err != nil {
		t.Fatalf("ListActiveProducts: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("products = %+v", products)
	}
	if cache.productWrites != 1 {
		t.Errorf("cache writes = %d, want 1", cache.productWrites)
	}

	if _, err := uc.ListActiveProducts(); err != nil {
		t.Fatalf("ListActiveProducts: %v", err)
	}
	if cache.productWrites != 1 {
		t.Errorf("cache writes = %d after cached read, want 1", cache.productWrites)
	}
}

func TestDeleteProductInvalidatesCache(t *testing.T) {
	productRepo := &fakeProductRepo{products: []*domain.Product{{ID: "p1", Name: "Phone"}}}
	cache := &fakeCacheRepo{}
	uc := NewProductUsecase(productRepo, cache)

	if err := uc.DeleteProduct("p1"); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if len(productRepo.products) != 0 {
		t.Error("product not removed")
	}
	if cache.invalidations != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.invalidations)
	}
}
