// Package repository defines the persistence contracts the engine
// depends on. Implementations live under infra/repository; services
// reach them only through the UnitOfWork so every read and write in a
// settlement shares one transaction.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ozanselte/bankcore/pkg/domain/account"
	"github.com/ozanselte/bankcore/pkg/domain/credit"
	"github.com/ozanselte/bankcore/pkg/domain/ledger"
	"github.com/ozanselte/bankcore/pkg/domain/setting"
	"github.com/ozanselte/bankcore/pkg/domain/stockorder"
	"github.com/ozanselte/bankcore/pkg/dto"
)

// OperationRepository persists the append-only operation log.
type OperationRepository interface {
	// Create appends one operation. Malformed account references surface
	// as ledger.ErrInvalidAccount.
	Create(ctx context.Context, create dto.OperationCreate) (*ledger.Operation, error)

	// ListByAccount returns every operation debiting or crediting the
	// account, oldest first. Unknown accounts surface as
	// account.ErrNotFound.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Operation, error)
}

// AccountRepository persists accounts. Balances are never stored here;
// they are derived from the operation log.
type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	Create(ctx context.Context, create dto.AccountCreate) (*account.Account, error)

	// ListSavings returns every savings account, for interest settlement.
	ListSavings(ctx context.Context) ([]account.Account, error)
}

// StockOrderRepository persists stock orders and their status transitions.
type StockOrderRepository interface {
	// Get returns the order or stockorder.ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*stockorder.StockOrder, error)

	Create(ctx context.Context, create dto.StockOrderCreate) (*stockorder.StockOrder, error)

	// UpdateStatus persists a status transition. A row that vanished
	// concurrently surfaces as stockorder.ErrNotFound.
	UpdateStatus(ctx context.Context, id uuid.UUID, status stockorder.Status) (*stockorder.StockOrder, error)
}

// SettingRepository holds the keyed configuration store.
type SettingRepository interface {
	// GetByCode returns the setting or setting.ErrNotFound. Required
	// settings are never defaulted by callers.
	GetByCode(ctx context.Context, code setting.Code) (*setting.Setting, error)

	Upsert(ctx context.Context, upsert dto.SettingUpsert) error
}

// CreditRepository persists bank credits and their repayment schedules.
type CreditRepository interface {
	Create(ctx context.Context, create dto.CreditCreate) (*credit.BankCredit, error)

	// ListDue returns credits with a payment claimable at asOf.
	ListDue(ctx context.Context, asOf time.Time) ([]credit.BankCredit, error)

	// Advance records one claimed payment.
	Advance(ctx context.Context, id uuid.UUID, advance dto.CreditAdvance) error
}
