package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is the persisted account row. It carries no balance column:
// balances are derived from the operation log at read time.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(128)"`
	IsSavings bool      `gorm:"not null;default:false;index"`
	Currency  string    `gorm:"type:varchar(3);not null;default:'USD'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
