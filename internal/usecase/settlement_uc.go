package usecase

import (
	"fmt"
	"strings"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/metrics"
	"github.com/adityarizkyr/reviora/pkg/utils"
)

type settlementUsecase struct {
	depositRepo    domain.DepositRepository
	withdrawalRepo domain.WithdrawalRepository
	userRepo       domain.UserRepository
	vipUC          domain.VipUsecase

	withdrawalMinimum float64
}

// NewSettlementUsecase creates the deposit and withdrawal usecase.
func NewSettlementUsecase(
	depositRepo domain.DepositRepository,
	withdrawalRepo domain.WithdrawalRepository,
	userRepo domain.UserRepository,
	vipUC domain.VipUsecase,
	withdrawalMinimum float64,
) domain.SettlementUsecase {
	return &settlementUsecase{
		depositRepo:       depositRepo,
		withdrawalRepo:    withdrawalRepo,
		userRepo:          userRepo,
		vipUC:             vipUC,
		withdrawalMinimum: withdrawalMinimum,
	}
}

func (uc *settlementUsecase) CreateDeposit(userID string, amount float64, txHash string) (*domain.Deposit, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", domain.ErrValidation)
	}
	if strings.TrimSpace(txHash) == "" {
		return nil, fmt.Errorf("%w: transaction hash is required", domain.ErrValidation)
	}

	if _, err := uc.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	deposit := &domain.Deposit{
		ID:     utils.GenerateUUID(),
		UserID: userID,
		Amount: utils.RoundMoney(amount),
		TxHash: strings.TrimSpace(txHash),
		Status: domain.DepositStatusPending,
	}
	if err := uc.depositRepo.Create(deposit); err != nil {
		return nil, err
	}

	logger.Info("Deposit claimed",
		logger.String("deposit_id", deposit.ID),
		logger.String("user_id", userID),
		logger.Float64("amount", deposit.Amount),
	)
	return uc.depositRepo.GetByID(deposit.ID)
}

// VerifyDeposit resolves a pending deposit. A verified deposit may make the
// user eligible for a higher VIP tier; the check only persists a
// notification, it never upgrades.
func (uc *settlementUsecase) VerifyDeposit(depositID, status string, adminNote *string) (*domain.Deposit, error) {
	if status != domain.DepositStatusVerified && status != domain.DepositStatusRejected {
		return nil, fmt.Errorf("%w: deposit resolution must be %q or %q", domain.ErrValidation,
			domain.DepositStatusVerified, domain.DepositStatusRejected)
	}

	deposit, err := uc.depositRepo.Verify(depositID, status, adminNote)
	if err != nil {
		return nil, err
	}

	metrics.RecordDepositResolved(status)

	if status == domain.DepositStatusVerified && uc.vipUC != nil {
		if _, err := uc.vipUC.CheckUpgrade(deposit.UserID); err != nil {
			logger.Warn("VIP upgrade check failed after deposit",
				logger.String("user_id", deposit.UserID),
				logger.ErrorField(err),
			)
		}
	}
	return deposit, nil
}

func (uc *settlementUsecase) ListUserDeposits(userID string, page, limit int) ([]*domain.Deposit, int, error) {
	_, limit, offset := utils.NormalizePagination(page, limit)
	return uc.depositRepo.ListByUser(userID, limit, offset)
}

// RequestWithdrawal debits the profit balance and records the payout request.
// The address is snapshotted from the user at request time.
func (uc *settlementUsecase) RequestWithdrawal(userID string, amount float64) (*domain.Withdrawal, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user.WithdrawalAddress == nil || strings.TrimSpace(*user.WithdrawalAddress) == "" {
		return nil, domain.ErrNoWithdrawalAddress
	}
	if amount < uc.withdrawalMinimum {
		return nil, domain.ErrBelowWithdrawalMinimum
	}

	withdrawal := &domain.Withdrawal{
		ID:      utils.GenerateUUID(),
		UserID:  userID,
		Amount:  utils.RoundMoney(amount),
		Address: *user.WithdrawalAddress,
		Status:  domain.WithdrawalStatusPending,
	}
	if err := uc.withdrawalRepo.CreateWithDebit(withdrawal); err != nil {
		return nil, err
	}
	return uc.withdrawalRepo.GetByID(withdrawal.ID)
}

func (uc *settlementUsecase) ProcessWithdrawal(withdrawalID, status string, adminNote *string) (*domain.Withdrawal, error) {
	if status != domain.WithdrawalStatusCompleted && status != domain.WithdrawalStatusRejected {
		return nil, fmt.Errorf("%w: withdrawal resolution must be %q or %q", domain.ErrValidation,
			domain.WithdrawalStatusCompleted, domain.WithdrawalStatusRejected)
	}

	withdrawal, err := uc.withdrawalRepo.Process(withdrawalID, status, adminNote)
	if err != nil {
		return nil, err
	}

	metrics.RecordWithdrawalProcessed(status)
	return withdrawal, nil
}

func (uc *settlementUsecase) ListUserWithdrawals(userID string, page, limit int) ([]*domain.Withdrawal, int, error) {
	_, limit, offset := utils.NormalizePagination(page, limit)
	return uc.withdrawalRepo.ListByUser(userID, limit, offset)
}
