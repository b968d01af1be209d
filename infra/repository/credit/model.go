package credit

import (
	"time"

	"github.com/google/uuid"
)

// BankCredit is the persisted credit repayment schedule.
type BankCredit struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Principal         int64     `gorm:"not null"`
	MonthlyAmount     int64     `gorm:"not null"`
	Currency          string    `gorm:"type:varchar(3);not null;default:'USD'"`
	RemainingPayments int       `gorm:"not null"`
	NextPaymentAt     time.Time `gorm:"not null;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for the BankCredit model.
func (BankCredit) TableName() string {
	return "bank_credits"
}
