package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ozanselte/bankcore/pkg/domain/ledger"
	"github.com/ozanselte/bankcore/pkg/domain/money"
	"github.com/ozanselte/bankcore/pkg/repository"
)

// LedgerService derives account balances from the operation log.
// No cached balance field is ever trusted.
type LedgerService struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewLedgerService creates a LedgerService.
func NewLedgerService(uow repository.UnitOfWork, logger *slog.Logger) *LedgerService {
	return &LedgerService{
		uow:    uow,
		logger: logger.With("service", "ledger"),
	}
}

// Balance returns the current derived balance of the account in the
// smallest currency unit. Unknown accounts surface as account.ErrNotFound.
func (s *LedgerService) Balance(ctx context.Context, accountID uuid.UUID) (money.Amount, error) {
	var balance money.Amount
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		ops, err := operations.ListByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		balance = ledger.Balance(accountID, ops)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// ListOperations returns the account's full operation history, oldest
// first.
func (s *LedgerService) ListOperations(ctx context.Context, accountID uuid.UUID) ([]ledger.Operation, error) {
	var ops []ledger.Operation
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		ops, err = operations.ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ops, nil
}
