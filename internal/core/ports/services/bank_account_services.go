package services

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
)

// BankAccountReaderSvc defines read operations for bank accounts
type BankAccountReaderSvc interface {
	// GetBankAccountByID retrieves an account by its identifier.
	GetBankAccountByID(ctx context.Context, bankAccountID string) (*models.BankAccount, error)

	// ListBankAccounts retrieves the active accounts of a user.
	ListBankAccounts(ctx context.Context, userID string) ([]models.BankAccount, error)
}

// BankAccountWriterSvc defines write operations for bank accounts
type BankAccountWriterSvc interface {
	// CreateBankAccount persists a new account after country-specific
	// validation of the field subset and its confirmation copies.
	CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest, creatorUserID string) (*models.BankAccount, error)

	// UpdateBankAccount applies a partial update to an account.
	UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest, updaterUserID string) (*models.BankAccount, error)

	// DeactivateBankAccount soft-deletes an account. Deactivating an already
	// inactive account is a validation error.
	DeactivateBankAccount(ctx context.Context, bankAccountID string, updaterUserID string) error
}

// BankAccountSvcFacade combines all bank account-related service interfaces
type BankAccountSvcFacade interface {
	BankAccountReaderSvc
	BankAccountWriterSvc
}
