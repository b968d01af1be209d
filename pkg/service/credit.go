package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ozanselte/bankcore/pkg/domain/credit"
	"github.com/ozanselte/bankcore/pkg/domain/events"
	"github.com/ozanselte/bankcore/pkg/domain/ledger"
	"github.com/ozanselte/bankcore/pkg/domain/money"
	"github.com/ozanselte/bankcore/pkg/domain/setting"
	"github.com/ozanselte/bankcore/pkg/dto"
	"github.com/ozanselte/bankcore/pkg/eventbus"
	"github.com/ozanselte/bankcore/pkg/repository"
)

// CreditService disburses bank credits and claims their due monthly
// payments through the same append-only ledger discipline as pair
// settlement.
type CreditService struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// NewCreditService creates a CreditService.
func NewCreditService(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *CreditService {
	return &CreditService{
		uow:    uow,
		bus:    bus,
		logger: logger.With("service", "credit"),
	}
}

// Open disburses a credit: it records the repayment schedule and
// appends the CREDIT operation crediting the account, atomically.
func (s *CreditService) Open(
	ctx context.Context,
	accountID uuid.UUID,
	principal, monthly money.Money,
	payments int,
) (*credit.BankCredit, error) {
	now := time.Now().UTC()
	c, err := credit.New(accountID, principal, monthly, payments, now)
	if err != nil {
		return nil, err
	}
	op, err := ledger.NewCredit(accountID, principal, "bank credit disbursement")
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		credits, err := uow.CreditRepository()
		if err != nil {
			return err
		}
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		if _, err := credits.Create(ctx, dto.CreditCreate{
			ID:                c.ID,
			AccountID:         c.AccountID,
			Principal:         c.Principal.Amount(),
			MonthlyAmount:     c.MonthlyAmount.Amount(),
			Currency:          string(c.Principal.Currency()),
			RemainingPayments: c.RemainingPayments,
			NextPaymentAt:     c.NextPaymentAt,
		}); err != nil {
			return err
		}
		_, err = operations.Create(ctx, operationCreate(op))
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bank credit opened",
		"credit_id", c.ID, "account_id", accountID, "principal", principal.Amount())
	if s.bus != nil {
		if emitErr := s.bus.Emit(ctx, events.CreditOpened{
			CreditID:   c.ID,
			AccountID:  accountID,
			Principal:  principal.Amount(),
			OccurredAt: now,
		}); emitErr != nil {
			s.logger.Error("failed to emit credit opened event", "error", emitErr)
		}
	}
	return c, nil
}

// ChargeDuePayments claims every monthly payment due at now, plus the
// bank's monthly service fee. A missing or non-numeric
// BANK_CREDIT_MONTHLY_FEE is fatal for the whole sweep. Each credit is
// settled in its own transaction; one failing is logged and skipped,
// never aborting the rest of the batch.
func (s *CreditService) ChargeDuePayments(ctx context.Context, now time.Time) (SweepResult, error) {
	var result SweepResult

	fee, err := s.monthlyFee(ctx)
	if err != nil {
		s.logger.Error("credit monthly fee unavailable, aborting sweep", "error", err)
		return result, err
	}

	var due []credit.BankCredit
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		credits, err := uow.CreditRepository()
		if err != nil {
			return err
		}
		due, err = credits.ListDue(ctx, now)
		return err
	})
	if err != nil {
		return result, err
	}

	for _, c := range due {
		if err := s.chargeOne(ctx, c, fee, now); err != nil {
			result.Failed++
			s.logger.Error("credit payment failed",
				"credit_id", c.ID, "account_id", c.AccountID, "error", err)
			continue
		}
		result.Applied++
	}

	s.logger.Info("credit sweep finished",
		"due", len(due), "applied", result.Applied, "failed", result.Failed)
	return result, nil
}

// chargeOne appends the CREDIT_PAYMENT operation, the monthly service
// fee and the schedule advance in one transaction.
func (s *CreditService) chargeOne(ctx context.Context, c credit.BankCredit, fee int64, now time.Time) error {
	if err := c.AdvanceSchedule(now); err != nil {
		return err
	}
	drafts := make([]*ledger.Operation, 0, 2)
	op, err := ledger.NewCreditPayment(c.AccountID, c.MonthlyAmount, "bank credit monthly payment")
	if err != nil {
		return err
	}
	drafts = append(drafts, op)
	// A zero fee is a valid configuration and appends no operation.
	if fee > 0 {
		feeAmount, err := money.NewFromSmallestUnit(fee, c.MonthlyAmount.Currency())
		if err != nil {
			return err
		}
		feeOp, err := ledger.NewFee(c.AccountID, feeAmount, "bank credit monthly fee")
		if err != nil {
			return err
		}
		drafts = append(drafts, feeOp)
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		credits, err := uow.CreditRepository()
		if err != nil {
			return err
		}
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		for _, draft := range drafts {
			if _, err := operations.Create(ctx, operationCreate(draft)); err != nil {
				return err
			}
		}
		return credits.Advance(ctx, c.ID, dto.CreditAdvance{
			RemainingPayments: c.RemainingPayments,
			NextPaymentAt:     c.NextPaymentAt,
		})
	})
	if err != nil {
		return err
	}

	if s.bus != nil {
		if emitErr := s.bus.Emit(ctx, events.CreditCharged{
			CreditID:   c.ID,
			AccountID:  c.AccountID,
			Amount:     c.MonthlyAmount.Amount(),
			Remaining:  c.RemainingPayments,
			OccurredAt: now,
		}); emitErr != nil {
			s.logger.Error("failed to emit credit charged event", "error", emitErr)
		}
	}
	return nil
}

// monthlyFee resolves the bank's per-payment service fee. Missing or
// non-numeric settings are fatal; the sweep never assumes a default fee.
func (s *CreditService) monthlyFee(ctx context.Context) (int64, error) {
	var fee int64
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		settings, err := uow.SettingRepository()
		if err != nil {
			return err
		}
		st, err := settings.GetByCode(ctx, setting.CodeCreditMonthlyFee)
		if err != nil {
			return err
		}
		if fee, err = st.Amount(); err != nil {
			return fmt.Errorf("setting %s: %w", setting.CodeCreditMonthlyFee, err)
		}
		return nil
	})
	return fee, err
}
