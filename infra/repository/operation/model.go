package operation

import (
	"time"

	"github.com/google/uuid"
)

// Operation is the persisted ledger entry. Rows are append-only: the
// repository exposes no update or delete.
type Operation struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	Kind      string     `gorm:"type:varchar(32);not null;index"`
	Amount    int64      `gorm:"not null"`
	Currency  string     `gorm:"type:varchar(3);not null;default:'USD'"`
	FromID    *uuid.UUID `gorm:"type:uuid;index"`
	ToID      *uuid.UUID `gorm:"type:uuid;index"`
	Name      string     `gorm:"type:varchar(128)"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Operation model.
func (Operation) TableName() string {
	return "operations"
}
