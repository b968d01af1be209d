// Package account implements the account repository on GORM.
package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ozanselte/bankcore/pkg/currency"
	domain "github.com/ozanselte/bankcore/pkg/domain/account"
	"github.com/ozanselte/bankcore/pkg/dto"
	"github.com/ozanselte/bankcore/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates an account repository bound to the given session.
func New(db *gorm.DB) repository.AccountRepository {
	return &repo{db: db}
}

// Get implements repository.AccountRepository.
func (r *repo) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var row Account
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapRowToDomain(&row)
}

// Create implements repository.AccountRepository.
func (r *repo) Create(ctx context.Context, create dto.AccountCreate) (*domain.Account, error) {
	row := Account{
		ID:        create.ID,
		UserID:    create.UserID,
		Name:      create.Name,
		IsSavings: create.IsSavings,
		Currency:  create.Currency,
	}
	if row.Currency == "" {
		row.Currency = string(currency.DefaultCurrency)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return mapRowToDomain(&row)
}

// ListSavings implements repository.AccountRepository.
func (r *repo) ListSavings(ctx context.Context) ([]domain.Account, error) {
	var rows []Account
	if err := r.db.WithContext(ctx).
		Where("is_savings = ?", true).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(rows))
	for i := range rows {
		acc, err := mapRowToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	return accounts, nil
}

func mapRowToDomain(row *Account) (*domain.Account, error) {
	return domain.New().
		WithID(row.ID).
		WithUserID(row.UserID).
		WithName(row.Name).
		WithSavings(row.IsSavings).
		WithCurrency(currency.Code(row.Currency)).
		WithCreatedAt(row.CreatedAt).
		WithUpdatedAt(row.UpdatedAt).
		Build()
}
