package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestionbanque/bankcore/internal/domain"
	"github.com/gestionbanque/bankcore/internal/usecase"
	"github.com/gestionbanque/bankcore/internal/usecase/mocks"
)

func newAccountUseCase(repo *mocks.MockAccountRepository, cache usecase.Cache) *usecase.AccountUseCase {
	return usecase.NewAccountUseCase(repo, mocks.NewMockLockManager(), mocks.NewMockIDGenerator(), cache)
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateAccountInput
		wantErr error
	}{
		{
			name: "successful creation",
			input: usecase.CreateAccountInput{
				AccountNumber:  "FR-001",
				HolderName:     "Awa Diop",
				OpeningBalance: decimal.NewFromInt(100),
			},
		},
		{
			name: "zero opening balance",
			input: usecase.CreateAccountInput{
				AccountNumber:  "FR-002",
				HolderName:     "Moussa Ndiaye",
				OpeningBalance: decimal.Zero,
			},
		},
		{
			name: "empty account number",
			input: usecase.CreateAccountInput{
				AccountNumber:  "",
				HolderName:     "Awa Diop",
				OpeningBalance: decimal.Zero,
			},
			wantErr: domain.ErrInvalidAccountNumber,
		},
		{
			name: "empty holder name",
			input: usecase.CreateAccountInput{
				AccountNumber:  "FR-003",
				HolderName:     "",
				OpeningBalance: decimal.Zero,
			},
			wantErr: domain.ErrInvalidHolderName,
		},
		{
			name: "negative opening balance",
			input: usecase.CreateAccountInput{
				AccountNumber:  "FR-004",
				HolderName:     "Awa Diop",
				OpeningBalance: decimal.NewFromInt(-10),
			},
			wantErr: domain.ErrNegativeOpeningBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newAccountUseCase(mocks.NewMockAccountRepository(), nil)

			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if account.ID == "" {
				t.Error("expected generated id")
			}

			if !account.Balance.Equal(tt.input.OpeningBalance) {
				t.Errorf("balance = %s, want %s", account.Balance, tt.input.OpeningBalance)
			}

			if !account.OpeningBalance.Equal(tt.input.OpeningBalance) {
				t.Errorf("opening balance = %s, want %s", account.OpeningBalance, tt.input.OpeningBalance)
			}
		})
	}
}

func TestAccountUseCase_CreateAccount_DuplicateNumber(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	uc := newAccountUseCase(repo, nil)

	input := usecase.CreateAccountInput{
		AccountNumber:  "FR-001",
		HolderName:     "Awa Diop",
		OpeningBalance: decimal.NewFromInt(50),
	}

	if _, err := uc.CreateAccount(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input.HolderName = "Someone Else"
	if _, err := uc.CreateAccount(context.Background(), input); !errors.Is(err, domain.ErrDuplicateAccountNumber) {
		t.Fatalf("expected ErrDuplicateAccountNumber, got %v", err)
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	uc := newAccountUseCase(repo, nil)

	created, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		AccountNumber:  "FR-001",
		HolderName:     "Awa Diop",
		OpeningBalance: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := uc.GetAccount(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.AccountNumber != "FR-001" {
		t.Errorf("account number = %s, want FR-001", got.AccountNumber)
	}

	if _, err := uc.GetAccount(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_GetBalance(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	cache := mocks.NewMockCache()
	uc := newAccountUseCase(repo, cache)

	created, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		AccountNumber:  "FR-001",
		HolderName:     "Awa Diop",
		OpeningBalance: decimal.NewFromInt(250),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	balance, err := uc.GetBalance(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.NewFromInt(250)) {
		t.Errorf("balance = %s, want 250", balance)
	}

	if !cache.Contains(usecase.BalanceCacheKey(created.ID)) {
		t.Error("expected balance to be cached after read")
	}

	// A warm cache must short-circuit the repository.
	repo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Account, error) {
		t.Fatal("repository must not be hit on cache hit")
		return nil, nil
	}

	balance, err = uc.GetBalance(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.NewFromInt(250)) {
		t.Errorf("cached balance = %s, want 250", balance)
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	uc := newAccountUseCase(repo, nil)

	for _, number := range []string{"FR-001", "FR-002", "FR-003"} {
		if _, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
			AccountNumber:  number,
			HolderName:     "Holder " + number,
			OpeningBalance: decimal.Zero,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	accounts, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Page: 0, Size: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(accounts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(accounts))
	}

	if _, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Page: -1, Size: 10}); !errors.Is(err, domain.ErrInvalidPageRequest) {
		t.Fatalf("expected ErrInvalidPageRequest for negative page, got %v", err)
	}

	if _, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Page: 0, Size: -1}); !errors.Is(err, domain.ErrInvalidPageRequest) {
		t.Fatalf("expected ErrInvalidPageRequest for negative size, got %v", err)
	}
}

func TestAccountUseCase_DeleteAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	cache := mocks.NewMockCache()
	uc := newAccountUseCase(repo, cache)

	created, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		AccountNumber:  "FR-001",
		HolderName:     "Awa Diop",
		OpeningBalance: decimal.Zero,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache.Set(context.Background(), usecase.BalanceCacheKey(created.ID), "0", time.Minute)

	if err := uc.DeleteAccount(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.Contains(usecase.BalanceCacheKey(created.ID)) {
		t.Error("expected cached balance to be invalidated on delete")
	}

	if err := uc.DeleteAccount(context.Background(), created.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_DeleteAccount_RejectedWithHistory(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	repo.DeleteFunc = func(ctx context.Context, id string) error {
		return domain.ErrAccountHasTransactions
	}

	uc := newAccountUseCase(repo, nil)

	if err := uc.DeleteAccount(context.Background(), "acc-1"); !errors.Is(err, domain.ErrAccountHasTransactions) {
		t.Fatalf("expected ErrAccountHasTransactions, got %v", err)
	}
}
