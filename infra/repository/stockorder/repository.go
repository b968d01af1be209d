// Package stockorder implements the stock order repository on GORM.
package stockorder

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ozanselte/bankcore/pkg/currency"
	"github.com/ozanselte/bankcore/pkg/domain/money"
	domain "github.com/ozanselte/bankcore/pkg/domain/stockorder"
	"github.com/ozanselte/bankcore/pkg/dto"
	"github.com/ozanselte/bankcore/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates a stock order repository bound to the given session.
func New(db *gorm.DB) repository.StockOrderRepository {
	return &repo{db: db}
}

// Get implements repository.StockOrderRepository.
func (r *repo) Get(ctx context.Context, id uuid.UUID) (*domain.StockOrder, error) {
	var row StockOrder
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapRowToDomain(&row)
}

// Create implements repository.StockOrderRepository.
func (r *repo) Create(ctx context.Context, create dto.StockOrderCreate) (*domain.StockOrder, error) {
	row := StockOrder{
		ID:        create.ID,
		UserID:    create.UserID,
		AccountID: create.AccountID,
		StockID:   create.StockID,
		Side:      create.Side,
		Amount:    create.Amount,
		Currency:  create.Currency,
		Status:    string(domain.StatusPending),
	}
	if row.Currency == "" {
		row.Currency = string(currency.DefaultCurrency)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return mapRowToDomain(&row)
}

// UpdateStatus implements repository.StockOrderRepository. A row that
// vanished concurrently surfaces as domain.ErrNotFound so the whole
// settlement transaction rolls back.
func (r *repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.StockOrder, error) {
	res := r.db.WithContext(ctx).
		Model(&StockOrder{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.Get(ctx, id)
}

func mapRowToDomain(row *StockOrder) (*domain.StockOrder, error) {
	amount, err := money.NewFromSmallestUnit(row.Amount, currency.Code(row.Currency))
	if err != nil {
		return nil, err
	}
	return &domain.StockOrder{
		ID:        row.ID,
		UserID:    row.UserID,
		AccountID: row.AccountID,
		StockID:   row.StockID,
		Side:      domain.Side(row.Side),
		Amount:    amount,
		Status:    domain.Status(row.Status),
		CreatedAt: row.CreatedAt,
	}, nil
}
