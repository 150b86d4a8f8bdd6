package ledger

import (
	"testing"

	"millstock/internal/core/apperror"
	"millstock/internal/core/id"
	"millstock/internal/core/types"
)

func qty(s string) types.Quantity {
	return types.MustQuantity(s)
}

func TestApplyCredit(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		amount  string
		want    string
	}{
		{"simple", "100.00", "30.00", "130.00"},
		{"from zero", "0.00", "12.50", "12.50"},
		{"fractional", "0.10", "0.20", "0.30"},
		{"onto negative", "-5.00", "10.00", "5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyCredit(qty(tt.balance), qty(tt.amount))
			if got != qty(tt.want) {
				t.Errorf("ApplyCredit(%s, %s) = %s, want %s", tt.balance, tt.amount, got, tt.want)
			}
		})
	}
}

func TestApplyDebit(t *testing.T) {
	productID := id.New()

	t.Run("sufficient", func(t *testing.T) {
		got, err := ApplyDebit(productID, qty("100.00"), qty("30.00"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != qty("70.00") {
			t.Errorf("got %s, want 70.00", got)
		}
	})

	t.Run("exact balance", func(t *testing.T) {
		got, err := ApplyDebit(productID, qty("30.00"), qty("30.00"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsZero() {
			t.Errorf("got %s, want 0.00", got)
		}
	})

	t.Run("insufficient", func(t *testing.T) {
		got, err := ApplyDebit(productID, qty("70.00"), qty("100.00"))
		if err == nil {
			t.Fatal("expected InsufficientStock error")
		}
		if !apperror.IsInsufficientStock(err) {
			t.Fatalf("expected INSUFFICIENT_STOCK code, got %v", err)
		}
		// Balance must be unchanged on failure.
		if got != qty("70.00") {
			t.Errorf("balance changed on failed debit: got %s", got)
		}

		appErr, _ := apperror.AsAppError(err)
		if appErr.Details["requested"] != "100.00" {
			t.Errorf("requested detail = %v, want 100.00", appErr.Details["requested"])
		}
		if appErr.Details["available"] != "70.00" {
			t.Errorf("available detail = %v, want 70.00", appErr.Details["available"])
		}
	})
}

func TestReversalLaws(t *testing.T) {
	// apply(x); reverse(x) must restore the prior balance exactly.
	start := qty("42.37")
	amount := qty("13.55")

	credited := ApplyCredit(start, amount)
	if got := ReverseCredit(credited, amount); got != start {
		t.Errorf("credit then reverse = %s, want %s", got, start)
	}

	debited, err := ApplyDebit(id.New(), start, amount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ReverseDebit(debited, amount); got != start {
		t.Errorf("debit then reverse = %s, want %s", got, start)
	}
}

func TestReverseCreditUnchecked(t *testing.T) {
	// Reversals are deliberately not validated: the result may go negative.
	got := ReverseCredit(qty("5.00"), qty("8.00"))
	if got != qty("-3.00") {
		t.Errorf("got %s, want -3.00", got)
	}
}
