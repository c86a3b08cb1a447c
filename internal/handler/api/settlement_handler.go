package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/utils"
	"github.com/adityarizkyr/reviora/pkg/xresponse"
)

// SettlementHandler handles deposit and withdrawal endpoints
type SettlementHandler struct {
	settlementUC  domain.SettlementUsecase
	roleGuard     *RoleGuard
	walletAddress string
}

// NewSettlementHandler creates a new settlement handler. The wallet address
// is the platform's static deposit target, echoed on deposit creation.
func NewSettlementHandler(settlementUC domain.SettlementUsecase, walletAddress string) *SettlementHandler {
	return &SettlementHandler{
		settlementUC:  settlementUC,
		roleGuard:     NewRoleGuard(),
		walletAddress: walletAddress,
	}
}

// CreateDepositRequest represents the deposit claim payload
type CreateDepositRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	TxHash string  `json:"tx_hash" binding:"required"`
}

// ResolveRequest represents the admin resolution payload for deposits and
// withdrawals
type ResolveRequest struct {
	ID        string  `json:"id" binding:"required"`
	Status    string  `json:"status" binding:"required"`
	AdminNote *string `json:"admin_note,omitempty"`
}

// RequestWithdrawalRequest represents the payout request payload
type RequestWithdrawalRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// CreateDeposit records a pending deposit claim
func (h *SettlementHandler) CreateDeposit(c *gin.Context) {
	userID, _, exists := h.roleGuard.GetCurrentUser(c)
	if !exists {
		xresponse.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	deposit, err := h.settlementUC.CreateDeposit(userID, req.Amount, req.TxHash)
	if err != nil {
		respondError(c, err, "settlement")
		return
	}

	xresponse.Created(c, "Deposit claimed", gin.H{
		"deposit":        deposit,
		"wallet_address": h.walletAddress,
	})
}

// ListDeposits returns the caller's deposit history
func (h *SettlementHandler) ListDeposits(c *gin.Context) {
	userID, _, exists := h.roleGuard.GetCurrentUser(c)
	if !exists {
		xresponse.Unauthorized(c, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	deposits, total, err := h.settlementUC.ListUserDeposits(userID, page, limit)
	if err != nil {
		respondError(c, err, "settlement")
		return
	}

	page, limit, _ = utils.NormalizePagination(page, limit)
	xresponse.Paginated(c, "Deposits retrieved", deposits, page, limit, total)
}

// VerifyDeposit resolves a pending deposit as an admin
func (h *SettlementHandler) VerifyDeposit(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	deposit, err := h.settlementUC.VerifyDeposit(req.ID, req.Status, req.AdminNote)
	if err != nil {
		respondError(c, err, "settlement")
		return
	}

	xresponse.Success(c, "Deposit resolved", deposit)
}

// RequestWithdrawal debits the profit balance and records a payout request
func (h *SettlementHandler) RequestWithdrawal(c *gin.Context) {
	userID, _, exists := h.roleGuard.GetCurrentUser(c)
	if !exists {
		xresponse.Unauthorized(c, "Authentication required")
		return
	}

	var req RequestWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	withdrawal, err := h.settlementUC.RequestWithdrawal(userID, req.Amount)
	if err != nil {
		respondError(c, err, "settlement")
		return
	}

	xresponse.Created(c, "Withdrawal requested", withdrawal)
}

// ListWithdrawals returns the caller's withdrawal history
func (h *SettlementHandler) ListWithdrawals(c *gin.Context) {
	userID, _, exists := h.roleGuard.GetCurrentUser(c)
	if !exists {
		xresponse.Unauthorized(c, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	withdrawals, total, err := h.settlementUC.ListUserWithdrawals(userID, page, limit)
	if err != nil {
		respondError(c, err, "settlement")
		return
	}

	page, limit, _ = utils.NormalizePagination(page, limit)
	xresponse.Paginated(c, "Withdrawals retrieved", withdrawals, page, limit, total)
}

// ProcessWithdrawal resolves a pending withdrawal as an admin
func (h *SettlementHandler) ProcessWithdrawal(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	withdrawal, err := h.settlementUC.ProcessWithdrawal(req.ID, req.Status, req.AdminNote)
	if err != nil {
		respondError(c, err, "settlement")
		return
	}

	xresponse.Success(c, "Withdrawal processed", withdrawal)
}
