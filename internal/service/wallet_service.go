package service

import (
	"context"
	"fmt"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/repository/specification"
	"rental-marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// WalletEntry describes one balance movement. (Type, ReferenceId) identifies
// it: applying the same entry twice changes nothing.
type WalletEntry struct {
	UserId      uuid.UUID
	Type        entity.WalletTransactionType
	Amount      int64 // always positive; the type decides the direction
	ReferenceId uuid.UUID
	Description string
}

type IWalletService interface {
	// Credit and Debit run inside the caller's unit of work so the balance
	// moves together with the state change that caused it.
	Credit(ctx context.Context, uow unitofwork.UnitOfWork, entry WalletEntry) (bool, error)
	Debit(ctx context.Context, uow unitofwork.UnitOfWork, entry WalletEntry) (bool, error)
	GetWallet(ctx context.Context, userId uuid.UUID, limit int) (*dto.WalletResponse, error)
	ReconcileBalance(ctx context.Context, userId uuid.UUID, repair bool) (*dto.WalletReconcileResponse, error)
}

type walletService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewWalletService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IWalletService {
	return &walletService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

// Credit writes the ledger row first; the balance only moves if the row is new.
func (s *walletService) Credit(ctx context.Context, uow unitofwork.UnitOfWork, entry WalletEntry) (bool, error) {
	if entry.Amount <= 0 {
		return false, apperror.Validation("credit amount must be positive")
	}

	tx := &entity.WalletTransaction{
		UserId:      entry.UserId,
		Type:        entry.Type,
		Amount:      entry.Amount,
		ReferenceId: entry.ReferenceId,
		Description: entry.Description,
	}
	inserted, err := uow.WalletTransactionRepository().Insert(ctx, tx)
	if err != nil {
		return false, fmt.Errorf("insert ledger row: %w", err)
	}
	if !inserted {
		s.logger.Info("WALLET", "Credit already applied", map[string]interface{}{
			"user_id":      entry.UserId,
			"type":         entry.Type,
			"reference_id": entry.ReferenceId,
		})
		return false, nil
	}

	balance, err := uow.UserRepository().IncrementWallet(ctx, entry.UserId, entry.Amount)
	if err != nil {
		return false, fmt.Errorf("increment wallet: %w", err)
	}
	if err := uow.WalletTransactionRepository().SetBalanceAfter(ctx, tx.Id, balance); err != nil {
		return false, err
	}

	s.logger.Info("WALLET", "Wallet credited", map[string]interface{}{
		"user_id":      entry.UserId,
		"type":         entry.Type,
		"amount":       entry.Amount,
		"reference_id": entry.ReferenceId,
		"balance":      balance,
	})
	return true, nil
}

// Debit fails with Conflict when the balance does not cover the amount. The
// caller must roll back, which also drops the ledger row.
func (s *walletService) Debit(ctx context.Context, uow unitofwork.UnitOfWork, entry WalletEntry) (bool, error) {
	if entry.Amount <= 0 {
		return false, apperror.Validation("debit amount must be positive")
	}

	tx := &entity.WalletTransaction{
		UserId:      entry.UserId,
		Type:        entry.Type,
		Amount:      -entry.Amount,
		ReferenceId: entry.ReferenceId,
		Description: entry.Description,
	}
	inserted, err := uow.WalletTransactionRepository().Insert(ctx, tx)
	if err != nil {
		return false, fmt.Errorf("insert ledger row: %w", err)
	}
	if !inserted {
		return false, nil
	}

	balance, ok, err := uow.UserRepository().DebitWalletIfSufficient(ctx, entry.UserId, entry.Amount)
	if err != nil {
		return false, fmt.Errorf("debit wallet: %w", err)
	}
	if !ok {
		return false, apperror.Conflict("insufficient wallet balance")
	}
	if err := uow.WalletTransactionRepository().SetBalanceAfter(ctx, tx.Id, balance); err != nil {
		return false, err
	}

	s.logger.Info("WALLET", "Wallet debited", map[string]interface{}{
		"user_id":      entry.UserId,
		"type":         entry.Type,
		"amount":       entry.Amount,
		"reference_id": entry.ReferenceId,
		"balance":      balance,
	})
	return true, nil
}

func (s *walletService) GetWallet(ctx context.Context, userId uuid.UUID, limit int) (*dto.WalletResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	txs, err := uow.WalletTransactionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.NewestFirst{},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.WalletResponse{
		UserId:       user.Id,
		Balance:      user.WalletBalance,
		Transactions: make([]*dto.WalletTransactionResponse, 0, len(txs)),
	}
	for _, tx := range txs {
		res.Transactions = append(res.Transactions, toWalletTransactionResponse(tx))
	}
	return res, nil
}

// ReconcileBalance compares the stored balance with the ledger sum. With
// repair set, the stored balance is overwritten by the ledger's.
func (s *walletService) ReconcileBalance(ctx context.Context, userId uuid.UUID, repair bool) (*dto.WalletReconcileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	ledger, err := uow.WalletTransactionRepository().SumByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := &dto.WalletReconcileResponse{
		UserId:        userId,
		StoredBalance: user.WalletBalance,
		LedgerBalance: ledger,
		Drift:         user.WalletBalance - ledger,
	}
	if res.Drift == 0 {
		return res, nil
	}

	s.logger.Error("WALLET", "Wallet balance drifted from ledger", map[string]interface{}{
		"user_id": userId,
		"stored":  user.WalletBalance,
		"ledger":  ledger,
	})
	if !repair {
		return res, nil
	}

	if err := uow.UserRepository().SetWalletBalance(ctx, userId, ledger); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	res.Repaired = true
	return res, nil
}
