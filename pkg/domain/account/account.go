// Package account defines the Account entity. An account never stores
// its balance; the balance is derived from the operation log at read
// time (see the ledger package).
package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ozanselte/bankcore/pkg/currency"
	"github.com/ozanselte/bankcore/pkg/domain/common"
)

var (
	// ErrNotFound is returned when an account cannot be found.
	ErrNotFound = errors.New("account not found")

	// ErrNotOwner is returned when a user acts on an account they do not own.
	ErrNotOwner = errors.New("not owner")
)

// Account represents a user's bank account.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	IsSavings bool
	Currency  currency.Code
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Builder provides a fluent API for constructing Account instances,
// both for new accounts and for hydration from a data store.
type Builder struct {
	id        uuid.UUID
	userID    uuid.UUID
	name      string
	isSavings bool
	currency  currency.Code
	createdAt time.Time
	updatedAt time.Time
}

// New creates a Builder with sensible defaults.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		currency:  currency.DefaultCurrency,
		createdAt: time.Now().UTC(),
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owning user. This is a mandatory field.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithName sets the display name of the account.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithSavings marks the account as a savings account, making it
// eligible for periodic interest settlement.
func (b *Builder) WithSavings(isSavings bool) *Builder {
	b.isSavings = isSavings
	return b
}

// WithCurrency sets the account currency. Defaults to the system default.
func (b *Builder) WithCurrency(code currency.Code) *Builder {
	b.currency = code
	return b
}

// WithCreatedAt sets the creation timestamp, for hydration from a store.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, for hydration from a store.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if !currency.IsValidFormat(string(b.currency)) {
		return nil, common.ErrInvalidCurrencyCode
	}
	if !currency.IsSupported(b.currency) {
		return nil, currency.ErrUnsupportedCurrency
	}
	if b.userID == uuid.Nil {
		return nil, errors.New("userID is required")
	}
	return &Account{
		ID:        b.id,
		UserID:    b.userID,
		Name:      b.name,
		IsSavings: b.isSavings,
		Currency:  b.currency,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	}, nil
}

// OwnedBy reports whether the account belongs to the given user.
func (a *Account) OwnedBy(userID uuid.UUID) bool {
	return a.UserID == userID
}
