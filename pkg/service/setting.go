package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/ozanselte/bankcore/pkg/domain/setting"
	"github.com/ozanselte/bankcore/pkg/dto"
	"github.com/ozanselte/bankcore/pkg/repository"
)

// SettingService administers the keyed configuration store. Settings
// are mutated only through the validated Upsert path.
type SettingService struct {
	uow      repository.UnitOfWork
	validate *validator.Validate
	logger   *slog.Logger
}

// NewSettingService creates a SettingService.
func NewSettingService(uow repository.UnitOfWork, logger *slog.Logger) *SettingService {
	return &SettingService{
		uow:      uow,
		validate: validator.New(),
		logger:   logger.With("service", "setting"),
	}
}

// Upsert creates or replaces one setting. The code must belong to the
// known enum and numeric settings must coerce, so a bad value is caught
// here instead of at settlement time.
func (s *SettingService) Upsert(ctx context.Context, upsert dto.SettingUpsert) error {
	if err := s.validate.Struct(upsert); err != nil {
		return fmt.Errorf("invalid setting upsert: %w", err)
	}
	code := setting.Code(upsert.Code)
	if !code.IsKnown() {
		return fmt.Errorf("%w: %s", setting.ErrUnknownCode, upsert.Code)
	}
	if _, err := (&setting.Setting{Code: code, Value: upsert.Value}).Decimal(); err != nil {
		return fmt.Errorf("setting %s: %w", code, err)
	}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		settings, err := uow.SettingRepository()
		if err != nil {
			return err
		}
		return settings.Upsert(ctx, upsert)
	})
	if err != nil {
		return err
	}
	s.logger.Info("setting upserted", "code", code)
	return nil
}

// Get resolves a setting and returns its coerced decimal value.
func (s *SettingService) Get(ctx context.Context, code setting.Code) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		settings, err := uow.SettingRepository()
		if err != nil {
			return err
		}
		st, err := settings.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		value, err = st.Decimal()
		return err
	})
	return value, err
}
