package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ozanselte/bankcore/pkg/domain/account"
	"github.com/ozanselte/bankcore/pkg/domain/events"
	"github.com/ozanselte/bankcore/pkg/domain/ledger"
	"github.com/ozanselte/bankcore/pkg/domain/money"
	"github.com/ozanselte/bankcore/pkg/domain/setting"
	"github.com/ozanselte/bankcore/pkg/eventbus"
	"github.com/ozanselte/bankcore/pkg/repository"
)

// interestWorkers bounds concurrent per-account settlement in one sweep.
const interestWorkers = 8

// SweepResult summarizes one periodic settlement pass.
type SweepResult struct {
	Applied int
	Skipped int
	Failed  int
}

// InterestService applies savings interest to eligible accounts on each
// scheduler tick. One account failing must not abort the rest of the
// sweep; each failure is logged individually.
type InterestService struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// NewInterestService creates an InterestService.
func NewInterestService(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *InterestService {
	return &InterestService{
		uow:    uow,
		bus:    bus,
		logger: logger.With("service", "interest"),
	}
}

// ApplySavingsInterest credits every savings account with
// rate × derived balance, truncated to the smallest currency unit.
// A missing or non-numeric SAVINGS_RATE is fatal for the whole sweep;
// individual account failures are tolerated and reported in the result.
func (s *InterestService) ApplySavingsInterest(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	rate, err := s.savingsRate(ctx)
	if err != nil {
		s.logger.Error("savings rate unavailable, aborting sweep", "error", err)
		return result, err
	}

	var accounts []account.Account
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err = repo.ListSavings(ctx)
		return err
	})
	if err != nil {
		return result, err
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(interestWorkers)
	for _, acc := range accounts {
		acc := acc
		g.Go(func() error {
			applied, err := s.applyOne(gctx, acc, rate)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failed++
				s.logger.Error("interest settlement failed for account",
					"account_id", acc.ID, "error", err)
			case applied == 0:
				result.Skipped++
			default:
				result.Applied++
			}
			// Per-account failures never cancel the sweep.
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info("interest sweep finished",
		"applied", result.Applied, "skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

// applyOne derives the account balance and appends the INTEREST
// operation in one transaction, returning the credited amount.
func (s *InterestService) applyOne(
	ctx context.Context,
	acc account.Account,
	rate decimal.Decimal,
) (money.Amount, error) {
	var credited money.Amount
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		operations, err := uow.OperationRepository()
		if err != nil {
			return err
		}
		ops, err := operations.ListByAccount(ctx, acc.ID)
		if err != nil {
			return err
		}

		balance := ledger.Balance(acc.ID, ops)
		interest := rate.Mul(decimal.NewFromInt(balance)).IntPart()
		if interest <= 0 {
			return nil
		}

		amount, err := money.NewFromSmallestUnit(interest, acc.Currency)
		if err != nil {
			return err
		}
		op, err := ledger.NewInterest(acc.ID, amount, "savings interest")
		if err != nil {
			return err
		}
		if _, err := operations.Create(ctx, operationCreate(op)); err != nil {
			return err
		}
		credited = interest
		return nil
	})
	if err != nil || credited == 0 {
		return 0, err
	}

	if s.bus != nil {
		if emitErr := s.bus.Emit(ctx, events.InterestApplied{
			AccountID:  acc.ID,
			Amount:     credited,
			OccurredAt: time.Now().UTC(),
		}); emitErr != nil {
			s.logger.Error("failed to emit interest event", "account_id", acc.ID, "error", emitErr)
		}
	}
	return credited, nil
}

func (s *InterestService) savingsRate(ctx context.Context) (decimal.Decimal, error) {
	var rate decimal.Decimal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		settings, err := uow.SettingRepository()
		if err != nil {
			return err
		}
		st, err := settings.GetByCode(ctx, setting.CodeSavingsRate)
		if err != nil {
			return err
		}
		rate, err = st.Decimal()
		return err
	})
	return rate, err
}
