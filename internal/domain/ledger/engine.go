// Package ledger implements the stock mutation arithmetic shared by all
// document services.
//
// The functions here are pure: callers load (and lock) the stock rows, the
// engine computes the new balance, callers persist the result. All arithmetic
// is fixed-point (types.Quantity); binary floats never enter the ledger.
//
// Forward debits are guarded against insufficiency. Reversals are not: a
// reversal restores a previously-applied effect during edit or delete and must
// never be blocked by a transient intermediate state.
package ledger

import (
	"millstock/internal/core/id"
	"millstock/internal/core/types"

	"millstock/internal/core/apperror"
)

// ApplyCredit increases the balance. Credits never fail feasibility.
func ApplyCredit(balance, amount types.Quantity) types.Quantity {
	return balance.Add(amount)
}

// ApplyDebit decreases the balance, failing with an InsufficientStock error
// when amount exceeds the available balance. On failure the returned balance
// equals the input balance.
func ApplyDebit(productID id.ID, balance, amount types.Quantity) (types.Quantity, error) {
	if amount > balance {
		return balance, apperror.NewInsufficientStock(
			productID.String(),
			amount.String(),
			balance.String(),
		)
	}
	return balance.Sub(amount), nil
}

// ReverseCredit undoes a previously applied credit. It is intentionally
// unchecked: the result may be negative when other operations consumed the
// reinstated quantity in the meantime. Callers decide how to surface that
// (see stock.Service, which logs a reconciliation warning).
func ReverseCredit(balance, amount types.Quantity) types.Quantity {
	return balance.Sub(amount)
}

// ReverseDebit undoes a previously applied debit by crediting the quantity
// back. A prior debit is always reversible.
func ReverseDebit(balance, amount types.Quantity) types.Quantity {
	return balance.Add(amount)
}
