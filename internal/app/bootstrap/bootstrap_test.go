package bootstrap

import (
	"context"
	"testing"

	"demoday/contexts/finance/treasury-service/adapters/memory"
	"demoday/internal/platform/config"
)

func TestSeedTreasuryAccountCreatesFundedAccount(t *testing.T) {
	store := memory.NewStore("", 0)
	cfg := config.Config{TreasuryAccount: "prize-pool", TreasuryBalance: 5000}

	if err := seedTreasuryAccount(context.Background(), store, store, cfg); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	account, err := store.GetAccount(context.Background(), "prize-pool")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if account.Balance != 5000 {
		t.Fatalf("expected balance 5000, got %d", account.Balance)
	}
}

func TestSeedTreasuryAccountKeepsExistingBalance(t *testing.T) {
	store := memory.NewStore("prize-pool", 700)
	cfg := config.Config{TreasuryAccount: "prize-pool", TreasuryBalance: 5000}

	if err := seedTreasuryAccount(context.Background(), store, store, cfg); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	account, err := store.GetAccount(context.Background(), "prize-pool")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if account.Balance != 700 {
		t.Fatalf("restart must not refund the account, got balance %d", account.Balance)
	}
}

func TestSeedTreasuryAccountSkipsBlankAccount(t *testing.T) {
	store := memory.NewStore("", 0)
	cfg := config.Config{TreasuryAccount: "  ", TreasuryBalance: 5000}

	if err := seedTreasuryAccount(context.Background(), store, store, cfg); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if _, err := store.GetAccount(context.Background(), ""); err == nil {
		t.Fatalf("expected no account for blank name")
	}
}
