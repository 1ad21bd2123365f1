package db

import (
	"context"
	"testing"
)

func TestTxFromContextEmpty(t *testing.T) {
	if tx := TxFromContext(context.Background()); tx != nil {
		t.Errorf("expected nil transaction from empty context, got %v", tx)
	}
}

func TestWithTxNilPool(t *testing.T) {
	_, _, err := WithTx(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for nil pool")
	}
	if err.Error() != "no database connection in context" {
		t.Errorf("unexpected error message: %v", err)
	}
}
