package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ledgerDomain "github.com/Parthsuii/fintech/internal/domain/ledger"
)

func TestAccountRepository_CreditCreatesLazily(t *testing.T) {
	db := openTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByOwnerID(ctx, "creator-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("account should not exist yet: %v", err)
	}

	if err := repo.Credit(ctx, "creator-1", decimal.RequireFromString("700.00")); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	acc, err := repo.GetByOwnerID(ctx, "creator-1")
	if err != nil {
		t.Fatalf("GetByOwnerID: %v", err)
	}
	if !acc.Balance.Equal(decimal.RequireFromString("700.00")) {
		t.Fatalf("balance = %s, want 700.00", acc.Balance)
	}
}

func TestAccountRepository_CreditAccumulates(t *testing.T) {
	db := openTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	for _, amt := range []string{"300.00", "0.01", "99.99"} {
		if err := repo.Credit(ctx, ledgerDomain.BucketOwnerID, decimal.RequireFromString(amt)); err != nil {
			t.Fatalf("Credit %s: %v", amt, err)
		}
	}

	acc, err := repo.GetByOwnerID(ctx, ledgerDomain.BucketOwnerID)
	if err != nil {
		t.Fatalf("GetByOwnerID: %v", err)
	}
	if !acc.Balance.Equal(decimal.RequireFromString("400.00")) {
		t.Fatalf("balance = %s, want 400.00", acc.Balance)
	}
}
