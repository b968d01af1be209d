package dto

import "github.com/google/uuid"

// AccountCreate is the write shape for opening an account.
type AccountCreate struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	IsSavings bool
	Currency  string
}
