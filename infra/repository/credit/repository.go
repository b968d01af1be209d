// Package credit implements the bank credit repository on GORM.
package credit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ozanselte/bankcore/pkg/currency"
	domain "github.com/ozanselte/bankcore/pkg/domain/credit"
	"github.com/ozanselte/bankcore/pkg/domain/money"
	"github.com/ozanselte/bankcore/pkg/dto"
	"github.com/ozanselte/bankcore/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates a bank credit repository bound to the given session.
func New(db *gorm.DB) repository.CreditRepository {
	return &repo{db: db}
}

// Create implements repository.CreditRepository.
func (r *repo) Create(ctx context.Context, create dto.CreditCreate) (*domain.BankCredit, error) {
	row := BankCredit{
		ID:                create.ID,
		AccountID:         create.AccountID,
		Principal:         create.Principal,
		MonthlyAmount:     create.MonthlyAmount,
		Currency:          create.Currency,
		RemainingPayments: create.RemainingPayments,
		NextPaymentAt:     create.NextPaymentAt,
	}
	if row.Currency == "" {
		row.Currency = string(currency.DefaultCurrency)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return mapRowToDomain(&row)
}

// ListDue implements repository.CreditRepository.
func (r *repo) ListDue(ctx context.Context, asOf time.Time) ([]domain.BankCredit, error) {
	var rows []BankCredit
	if err := r.db.WithContext(ctx).
		Where("remaining_payments > 0 AND next_payment_at <= ?", asOf).
		Order("next_payment_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	credits := make([]domain.BankCredit, 0, len(rows))
	for i := range rows {
		c, err := mapRowToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		credits = append(credits, *c)
	}
	return credits, nil
}

// Advance implements repository.CreditRepository.
func (r *repo) Advance(ctx context.Context, id uuid.UUID, advance dto.CreditAdvance) error {
	res := r.db.WithContext(ctx).
		Model(&BankCredit{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"remaining_payments": advance.RemainingPayments,
			"next_payment_at":    advance.NextPaymentAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapRowToDomain(row *BankCredit) (*domain.BankCredit, error) {
	principal, err := money.NewFromSmallestUnit(row.Principal, currency.Code(row.Currency))
	if err != nil {
		return nil, err
	}
	monthly, err := money.NewFromSmallestUnit(row.MonthlyAmount, currency.Code(row.Currency))
	if err != nil {
		return nil, err
	}
	return &domain.BankCredit{
		ID:                row.ID,
		AccountID:         row.AccountID,
		Principal:         principal,
		MonthlyAmount:     monthly,
		RemainingPayments: row.RemainingPayments,
		NextPaymentAt:     row.NextPaymentAt,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}, nil
}
