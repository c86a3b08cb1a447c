package usecase

import (
	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/utils"
)

type ledgerUsecase struct {
	ledgerRepo domain.LedgerRepository
}

// NewLedgerUsecase creates the ledger read usecase.
func NewLedgerUsecase(ledgerRepo domain.LedgerRepository) domain.LedgerUsecase {
	return &ledgerUsecase{ledgerRepo: ledgerRepo}
}

func (uc *ledgerUsecase) ListUserEntries(userID string, page, limit int) ([]*domain.LedgerEntry, int, error) {
	_, limit, offset := utils.NormalizePagination(page, limit)
	return uc.ledgerRepo.ListByUser(userID, limit, offset)
}
