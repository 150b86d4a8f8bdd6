package types

import (
	"encoding/json"
	"testing"
)

func TestQuantityParsing(t *testing.T) {
	tests := []struct {
		in      string
		want    Quantity
		wantErr bool
	}{
		{"100", Quantity(10000), false},
		{"100.5", Quantity(10050), false},
		{"100.50", Quantity(10050), false},
		{"0.01", Quantity(1), false},
		{"-3.25", Quantity(-325), false},
		{"+7", Quantity(700), false},
		{".5", Quantity(50), false},
		{"12.345", Quantity(1234), false}, // extra digits truncated
		{"", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := NewQuantityFromString(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewQuantityFromString(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewQuantityFromString(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NewQuantityFromString(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestQuantityString(t *testing.T) {
	tests := []struct {
		q    Quantity
		want string
	}{
		{Quantity(10000), "100.00"},
		{Quantity(10050), "100.50"},
		{Quantity(1), "0.01"},
		{Quantity(-325), "-3.25"},
		{Quantity(0), "0.00"},
	}
	for _, tt := range tests {
		if got := tt.q.String(); got != tt.want {
			t.Errorf("Quantity(%d).String() = %q, want %q", tt.q, got, tt.want)
		}
	}
}

func TestQuantityJSON(t *testing.T) {
	type payload struct {
		Qty Quantity `json:"qty"`
	}

	// Number form
	var p payload
	if err := json.Unmarshal([]byte(`{"qty": 42.75}`), &p); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if p.Qty != Quantity(4275) {
		t.Errorf("got %d, want 4275", p.Qty)
	}

	// String form
	if err := json.Unmarshal([]byte(`{"qty": "13.10"}`), &p); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if p.Qty != Quantity(1310) {
		t.Errorf("got %d, want 1310", p.Qty)
	}

	// Marshals as plain number
	out, err := json.Marshal(payload{Qty: MustQuantity("9.50")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"qty":9.50}` {
		t.Errorf("marshal = %s", out)
	}
}

func TestQuantityDecimal(t *testing.T) {
	q := MustQuantity("12.34")
	if got := q.Decimal().String(); got != "12.34" {
		t.Errorf("Decimal() = %s, want 12.34", got)
	}

	// Exact money math: 3 * 0.10 must be 0.30, not 0.30000000000000004.
	price := MustMoney("0.10")
	total := price.Mul(MustQuantity("3").Decimal())
	if !total.Equal(MustMoney("0.30")) {
		t.Errorf("total = %s, want 0.30", total)
	}
}

func TestQuantityArithmetic(t *testing.T) {
	a := MustQuantity("10.00")
	b := MustQuantity("3.50")

	if got := a.Sub(b); got != MustQuantity("6.50") {
		t.Errorf("Sub = %s", got)
	}
	if got := a.Add(b.Neg()); got != MustQuantity("6.50") {
		t.Errorf("Add(Neg) = %s", got)
	}
	if got := MustQuantity("-4.20").Abs(); got != MustQuantity("4.20") {
		t.Errorf("Abs = %s", got)
	}
	if !MustQuantity("-0.01").IsNegative() {
		t.Error("IsNegative failed")
	}
}
