package dto

import "github.com/google/uuid"

// StockOrderCreate is the write shape for placing a stock order.
type StockOrderCreate struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	AccountID uuid.UUID
	StockID   uuid.UUID
	Side      string
	Amount    int64 // settlement notional, smallest currency unit
	Currency  string
}
