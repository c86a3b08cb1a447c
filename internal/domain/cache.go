package domain

// CacheRepository defines the read-through cache for hot catalog data: the
// active-product list consumed by the assignment engine and the VIP ladder
// consumed by the eligibility calculator.
type CacheRepository interface {
	CacheActiveProducts(products []*Product) error
	GetActiveProducts() ([]*Product, error)
	InvalidateProducts() error

	CacheVipLevels(levels []*VipLevel) error
	GetVipLevels() ([]*VipLevel, error)
	InvalidateVipLevels() error
}
