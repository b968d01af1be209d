// Package setting implements the setting repository on GORM.
package setting

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/ozanselte/bankcore/pkg/domain/setting"
	"github.com/ozanselte/bankcore/pkg/dto"
	"github.com/ozanselte/bankcore/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates a setting repository bound to the given session.
func New(db *gorm.DB) repository.SettingRepository {
	return &repo{db: db}
}

// GetByCode implements repository.SettingRepository.
func (r *repo) GetByCode(ctx context.Context, code domain.Code) (*domain.Setting, error) {
	var row Setting
	if err := r.db.WithContext(ctx).First(&row, "code = ?", string(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.Setting{
		Code:      domain.Code(row.Code),
		Value:     row.Value,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// Upsert implements repository.SettingRepository.
func (r *repo) Upsert(ctx context.Context, upsert dto.SettingUpsert) error {
	row := Setting{Code: upsert.Code, Value: upsert.Value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}
