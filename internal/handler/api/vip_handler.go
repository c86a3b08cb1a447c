package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/xresponse"
)

// VipHandler handles VIP ladder management endpoints
type VipHandler struct {
	vipUC domain.VipUsecase
}

// NewVipHandler creates a new VIP handler
func NewVipHandler(vipUC domain.VipUsecase) *VipHandler {
	return &VipHandler{vipUC: vipUC}
}

// VipLevelRequest represents the create/update payload
type VipLevelRequest struct {
	Level          int     `json:"level"`
	Name           string  `json:"name"`
	MinBalance     float64 `json:"min_balance"`
	ProfitPerOrder float64 `json:"profit_per_order"`
	AppsPerSet     int     `json:"apps_per_set"`
	IsActive       bool    `json:"is_active"`
}

func (r *VipLevelRequest) toDomain() *domain.VipLevel {
	return &domain.VipLevel{
		Level:          r.Level,
		Name:           r.Name,
		MinBalance:     r.MinBalance,
		ProfitPerOrder: r.ProfitPerOrder,
		AppsPerSet:     r.AppsPerSet,
		IsActive:       r.IsActive,
	}
}

// ListLevels returns the VIP ladder
func (h *VipHandler) ListLevels(c *gin.Context) {
	levels, err := h.vipUC.ListLevels()
	if err != nil {
		respondError(c, err, "vip")
		return
	}
	xresponse.Success(c, "VIP levels retrieved", levels)
}

// CreateLevel adds a tier to the ladder
func (h *VipHandler) CreateLevel(c *gin.Context) {
	var req VipLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	level := req.toDomain()
	if err := h.vipUC.CreateLevel(level); err != nil {
		respondError(c, err, "vip")
		return
	}

	xresponse.Created(c, "VIP level created", level)
}

// UpdateLevel edits a tier
func (h *VipHandler) UpdateLevel(c *gin.Context) {
	levelNum, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		xresponse.BadRequest(c, "Level must be a number")
		return
	}

	var req VipLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	level := req.toDomain()
	level.Level = levelNum
	if err := h.vipUC.UpdateLevel(level); err != nil {
		respondError(c, err, "vip")
		return
	}

	xresponse.Success(c, "VIP level updated", level)
}

// DeleteLevel removes a tier
func (h *VipHandler) DeleteLevel(c *gin.Context) {
	levelNum, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		xresponse.BadRequest(c, "Level must be a number")
		return
	}

	if err := h.vipUC.DeleteLevel(levelNum); err != nil {
		respondError(c, err, "vip")
		return
	}

	xresponse.Success(c, "VIP level deleted", nil)
}
