package stockorder

import (
	"time"

	"github.com/google/uuid"
)

// StockOrder is the persisted stock order row.
type StockOrder struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	StockID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Side      string    `gorm:"type:varchar(8);not null"`
	Amount    int64     `gorm:"not null"`
	Currency  string    `gorm:"type:varchar(3);not null;default:'USD'"`
	Status    string    `gorm:"type:varchar(16);not null;default:'PENDING';index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the StockOrder model.
func (StockOrder) TableName() string {
	return "stock_orders"
}
