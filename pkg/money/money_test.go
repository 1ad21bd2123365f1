package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	d, err := Parse("150.505")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "150.51" {
		t.Errorf("expected 150.51, got %s", d.String())
	}

	d, err = Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("expected zero for empty string, got %s", d.String())
	}

	if _, err := Parse("abc"); err == nil {
		t.Error("expected error for non-numeric input")
	}
}

func TestMul(t *testing.T) {
	unit := decimal.RequireFromString("19.99")
	got := Mul(unit, 3)
	if got.String() != "59.97" {
		t.Errorf("expected 59.97, got %s", got.String())
	}
}

func TestPercent(t *testing.T) {
	// 20% of 333.33 is 66.666, which rounds to 66.67
	got := Percent(decimal.RequireFromString("333.33"), 20)
	if got.String() != "66.67" {
		t.Errorf("expected 66.67, got %s", got.String())
	}
}

func TestMin(t *testing.T) {
	a := decimal.RequireFromString("10.00")
	b := decimal.RequireFromString("7.50")
	if !Min(a, b).Equal(b) {
		t.Errorf("expected 7.50, got %s", Min(a, b).String())
	}
	if !Min(b, a).Equal(b) {
		t.Errorf("expected 7.50, got %s", Min(b, a).String())
	}
}

func TestIsNegative(t *testing.T) {
	if IsNegative(decimal.RequireFromString("0.00")) {
		t.Error("zero should not be negative")
	}
	if !IsNegative(decimal.RequireFromString("-0.01")) {
		t.Error("-0.01 should be negative")
	}
}
