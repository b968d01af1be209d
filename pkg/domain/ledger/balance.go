package ledger

import (
	"github.com/google/uuid"
	"github.com/ozanselte/bankcore/pkg/domain/money"
)

// Balance derives the current balance of an account by folding its
// operation history: every operation crediting the account adds its
// amount, every operation debiting it subtracts. All kinds participate
// identically. An empty history yields zero.
//
// The fold is pure: it performs no I/O and trusts no cached balance.
// The repository owns retrieval and reports unknown accounts itself.
func Balance(accountID uuid.UUID, ops []Operation) money.Amount {
	var balance money.Amount
	for _, op := range ops {
		if op.ToID != nil && *op.ToID == accountID {
			balance += op.Amount.Amount()
		}
		if op.FromID != nil && *op.FromID == accountID {
			balance -= op.Amount.Amount()
		}
	}
	return balance
}
