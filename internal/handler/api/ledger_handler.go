package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/utils"
	"github.com/adityarizkyr/reviora/pkg/xresponse"
)

// LedgerHandler exposes the append-only balance ledger
type LedgerHandler struct {
	ledgerUC  domain.LedgerUsecase
	roleGuard *RoleGuard
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerUC domain.LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{
		ledgerUC:  ledgerUC,
		roleGuard: NewRoleGuard(),
	}
}

// ListEntries returns the caller's paginated ledger entries
func (h *LedgerHandler) ListEntries(c *gin.Context) {
	userID, _, exists := h.roleGuard.GetCurrentUser(c)
	if !exists {
		xresponse.Unauthorized(c, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, total, err := h.ledgerUC.ListUserEntries(userID, page, limit)
	if err != nil {
		respondError(c, err, "ledger")
		return
	}

	page, limit, _ = utils.NormalizePagination(page, limit)
	xresponse.Paginated(c, "Ledger entries retrieved", entries, page, limit, total)
}
