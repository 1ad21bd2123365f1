package ledger

import (
	"testing"
	"time"
)

func TestWhereBuilderEmpty(t *testing.T) {
	var b whereBuilder
	if b.Where() != "" {
		t.Errorf("expected empty where, got %q", b.Where())
	}
	if len(b.Args()) != 0 {
		t.Errorf("expected no args, got %d", len(b.Args()))
	}
}

func TestWhereBuilderNumbersPlaceholders(t *testing.T) {
	var b whereBuilder
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b.Add("created_at >= $%d", from)
	b.Add("created_at < $%d", from.AddDate(0, 1, 0))
	b.Add("cashier_id = $%d", "emp-7")

	want := " WHERE created_at >= $1 AND created_at < $2 AND cashier_id = $3"
	if b.Where() != want {
		t.Errorf("expected %q, got %q", want, b.Where())
	}
	if len(b.Args()) != 3 {
		t.Errorf("expected 3 args, got %d", len(b.Args()))
	}
	if b.Args()[2] != "emp-7" {
		t.Errorf("expected cashier arg last, got %v", b.Args()[2])
	}
}
