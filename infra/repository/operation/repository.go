// Package operation implements the operation repository on GORM.
package operation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	accountmodel "github.com/ozanselte/bankcore/infra/repository/account"
	"github.com/ozanselte/bankcore/pkg/currency"
	"github.com/ozanselte/bankcore/pkg/domain/account"
	"github.com/ozanselte/bankcore/pkg/domain/ledger"
	"github.com/ozanselte/bankcore/pkg/domain/money"
	"github.com/ozanselte/bankcore/pkg/dto"
	"github.com/ozanselte/bankcore/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates an operation repository bound to the given session.
func New(db *gorm.DB) repository.OperationRepository {
	return &repo{db: db}
}

// Create appends one operation row.
func (r *repo) Create(ctx context.Context, create dto.OperationCreate) (*ledger.Operation, error) {
	row := Operation{
		ID:        create.ID,
		Kind:      create.Kind,
		Amount:    create.Amount,
		Currency:  create.Currency,
		FromID:    create.FromID,
		ToID:      create.ToID,
		Name:      create.Name,
		CreatedAt: create.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ledger.ErrInvalidAccount
		}
		return nil, err
	}
	return mapRowToDomain(&row)
}

// ListByAccount returns the account's operations oldest first. The
// account itself must exist; an unknown id is account.ErrNotFound.
func (r *repo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Operation, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&accountmodel.Account{}).
		Where("id = ?", accountID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, account.ErrNotFound
	}

	var rows []Operation
	if err := r.db.WithContext(ctx).
		Where("from_id = ? OR to_id = ?", accountID, accountID).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	ops := make([]ledger.Operation, 0, len(rows))
	for i := range rows {
		op, err := mapRowToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		ops = append(ops, *op)
	}
	return ops, nil
}

func mapRowToDomain(row *Operation) (*ledger.Operation, error) {
	amount, err := money.NewFromSmallestUnit(row.Amount, currency.Code(row.Currency))
	if err != nil {
		return nil, err
	}
	return &ledger.Operation{
		ID:        row.ID,
		Kind:      ledger.Kind(row.Kind),
		Amount:    amount,
		FromID:    row.FromID,
		ToID:      row.ToID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}, nil
}
