package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/utils"
	"github.com/adityarizkyr/reviora/pkg/xresponse"
)

// ProductHandler handles catalog management endpoints
type ProductHandler struct {
	productUC domain.ProductUsecase
}

// NewProductHandler creates a new product handler
func NewProductHandler(productUC domain.ProductUsecase) *ProductHandler {
	return &ProductHandler{productUC: productUC}
}

// ProductRequest represents the create/update payload
type ProductRequest struct {
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	ImageURL       *string `json:"image_url,omitempty"`
	DefaultProfit  float64 `json:"default_profit"`
	DefaultDeposit float64 `json:"default_deposit"`
	IsActive       bool    `json:"is_active"`
}

func (r *ProductRequest) toDomain() *domain.Product {
	return &domain.Product{
		Name:           r.Name,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		DefaultProfit:  r.DefaultProfit,
		DefaultDeposit: r.DefaultDeposit,
		IsActive:       r.IsActive,
	}
}

// CreateProduct adds a catalog item
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	product := req.toDomain()
	if err := h.productUC.CreateProduct(product); err != nil {
		respondError(c, err, "product")
		return
	}

	xresponse.Created(c, "Product created", product)
}

// GetProduct returns one catalog item
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productUC.GetProduct(c.Param("id"))
	if err != nil {
		respondError(c, err, "product")
		return
	}
	xresponse.Success(c, "Product retrieved", product)
}

// ListProducts returns the paginated catalog
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	products, total, err := h.productUC.ListProducts(page, limit)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	page, limit, _ = utils.NormalizePagination(page, limit)
	xresponse.Paginated(c, "Products retrieved", products, page, limit, total)
}

// UpdateProduct edits a catalog item
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	product, err := h.productUC.UpdateProduct(c.Param("id"), req.toDomain())
	if err != nil {
		respondError(c, err, "product")
		return
	}

	xresponse.Success(c, "Product updated", product)
}

// DeleteProduct removes a catalog item unless tasks reference it
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productUC.DeleteProduct(c.Param("id")); err != nil {
		respondError(c, err, "product")
		return
	}
	xresponse.Success(c, "Product deleted", nil)
}
