package service

import (
	"context"
	"fmt"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/kv"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
)

type SignupInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type PasswordChangeInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// LoadAccounts returns every registered account in signup order.
func LoadAccounts(ctx context.Context, store kv.Store) ([]model.Account, error) {
	var accounts []model.Account
	if _, err := kv.GetJSON(ctx, store, kv.UsersKey, &accounts); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return accounts, nil
}

func saveAccounts(ctx context.Context, store kv.Store, accounts []model.Account) error {
	if err := kv.SetJSON(ctx, store, kv.UsersKey, accounts); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

// indexByEmail compares emails case-insensitively.
func indexByEmail(accounts []model.Account, email string) int {
	want := normalizeEmail(email)
	for i, a := range accounts {
		if normalizeEmail(a.Email) == want {
			return i
		}
	}
	return -1
}

func indexByID(accounts []model.Account, id string) int {
	for i, a := range accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// replaceAccount swaps in acct by id and persists the list.
func replaceAccount(ctx context.Context, store kv.Store, acct model.Account) error {
	accounts, err := LoadAccounts(ctx, store)
	if err != nil {
		return err
	}
	i := indexByID(accounts, acct.ID)
	if i < 0 {
		return fmt.Errorf("account %s: %w", acct.ID, ErrNotFound)
	}
	accounts[i] = acct
	return saveAccounts(ctx, store, accounts)
}
