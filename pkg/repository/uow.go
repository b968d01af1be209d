package repository

import (
	"context"
	"reflect"
)

// UnitOfWork defines the contract for transactional work and type-safe
// repository access.
//
// All repositories obtained from the UnitOfWork passed to Do share the
// same database transaction. The settlement engine relies on this: the
// funds-availability read, the order status transitions and the ledger
// appends of one accept call either all commit or all roll back, which
// also closes the read-check-write overdraft window between two
// concurrent settlements touching the same account (the implementation
// runs Do at serializable isolation).
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// The provided function receives a UnitOfWork bound to that
	// transaction. If the function returns an error, the transaction is
	// rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current transaction/session.
	GetRepository(repoType reflect.Type) (any, error)

	// Type-safe convenience accessors.
	OperationRepository() (OperationRepository, error)
	AccountRepository() (AccountRepository, error)
	StockOrderRepository() (StockOrderRepository, error)
	SettingRepository() (SettingRepository, error)
	CreditRepository() (CreditRepository, error)
}
