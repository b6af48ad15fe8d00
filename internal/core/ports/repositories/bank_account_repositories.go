package repositories

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/models"
)

// BankAccountReader defines read operations for bank accounts.
type BankAccountReader interface {
	// FindBankAccountByID retrieves an active account by ID.
	FindBankAccountByID(ctx context.Context, accountID string) (*models.BankAccount, error)

	// ListBankAccounts retrieves active accounts; userID filters by owner
	// when non-empty.
	ListBankAccounts(ctx context.Context, userID string) ([]models.BankAccount, error)
}

// BankAccountWriter defines write operations for bank accounts.
type BankAccountWriter interface {
	// SaveBankAccount persists a new account.
	SaveBankAccount(ctx context.Context, account models.BankAccount) error

	// UpdateBankAccount updates account fields.
	UpdateBankAccount(ctx context.Context, account models.BankAccount) error

	// DeactivateBankAccount soft-deletes an account.
	DeactivateBankAccount(ctx context.Context, accountID, updaterUserID string) error
}

// BankAccountRepositoryFacade combines bank account repository interfaces.
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
}
