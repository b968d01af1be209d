package dto

import (
	"time"

	"github.com/google/uuid"
)

// OperationCreate is the write shape for appending one ledger operation.
// The ledger is append-only: there is no update or delete DTO.
type OperationCreate struct {
	ID        uuid.UUID
	Kind      string
	Amount    int64 // smallest currency unit
	Currency  string
	FromID    *uuid.UUID
	ToID      *uuid.UUID
	Name      string
	CreatedAt time.Time
}
