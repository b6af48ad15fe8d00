package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
)

// bankAccountService provides business logic for payout/funding accounts.
// The country decides which field subset is validated: account number and
// optional CCI for Peru, PIX key and CPF for Brazil.
type bankAccountService struct {
	accountRepo portsrepo.BankAccountRepositoryFacade
}

// NewBankAccountService creates a new bank account service.
func NewBankAccountService(accountRepo portsrepo.BankAccountRepositoryFacade) portssvc.BankAccountSvcFacade {
	return &bankAccountService{accountRepo: accountRepo}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

func (s *bankAccountService) CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest, creatorUserID string) (*models.BankAccount, error) {
	now := time.Now()
	account := models.BankAccount{
		BankAccountID: uuid.NewString(),
		UserID:        userID,
		Country:       req.Country,
		BankName:      req.BankName,
		HolderNames:   req.HolderNames,
		HolderSurname: req.HolderSurname,
		DocumentNum:   req.DocumentNum,
		AccountType:   req.AccountType,

		BusinessName:     req.BusinessName,
		RUCNumber:        req.RUCNumber,
		LegalRepName:     req.LegalRepName,
		LegalRepDocument: req.LegalRepDocument,

		AccountNumber: req.AccountNumber,
		CCINumber:     req.CCINumber,

		PixKey:     req.PixKey,
		PixKeyType: req.PixKeyType,
		CPF:        req.CPF,

		ThirdParty:   req.ThirdParty,
		CurrencyCode: req.CurrencyCode,
		IsActive:     true,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := validateCountryFields(&account, req.ConfirmAccountNumber, req.ConfirmCCINumber, req.ConfirmPixKey); err != nil {
		return nil, err
	}
	if err := validateBusinessFields(&account); err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveBankAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create bank account in service: %w", err)
	}

	return &account, nil
}

func (s *bankAccountService) GetBankAccountByID(ctx context.Context, bankAccountID string) (*models.BankAccount, error) {
	account, err := s.accountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank account by ID in service: %w", err)
	}
	return account, nil
}

func (s *bankAccountService) ListBankAccounts(ctx context.Context, userID string) ([]models.BankAccount, error) {
	accounts, err := s.accountRepo.ListBankAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts in service: %w", err)
	}
	if accounts == nil {
		return []models.BankAccount{}, nil
	}
	return accounts, nil
}

func (s *bankAccountService) UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest, updaterUserID string) (*models.BankAccount, error) {
	account, err := s.accountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bank account for update: %w", err)
	}

	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.HolderNames != nil {
		account.HolderNames = *req.HolderNames
	}
	if req.HolderSurname != nil {
		account.HolderSurname = *req.HolderSurname
	}
	if req.DocumentNum != nil {
		account.DocumentNum = *req.DocumentNum
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
	}
	if req.BusinessName != nil {
		account.BusinessName = *req.BusinessName
	}
	if req.RUCNumber != nil {
		account.RUCNumber = *req.RUCNumber
	}
	if req.LegalRepName != nil {
		account.LegalRepName = *req.LegalRepName
	}
	if req.LegalRepDocument != nil {
		account.LegalRepDocument = *req.LegalRepDocument
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	if req.CCINumber != nil {
		account.CCINumber = *req.CCINumber
	}
	if req.PixKey != nil {
		account.PixKey = *req.PixKey
	}
	if req.PixKeyType != nil {
		account.PixKeyType = *req.PixKeyType
	}
	if req.CPF != nil {
		account.CPF = *req.CPF
	}
	if req.ThirdParty != nil {
		account.ThirdParty = *req.ThirdParty
	}
	if req.CurrencyCode != nil {
		account.CurrencyCode = *req.CurrencyCode
	}

	confirmAccount := account.AccountNumber
	if req.ConfirmAccountNumber != nil {
		confirmAccount = *req.ConfirmAccountNumber
	}
	confirmCCI := account.CCINumber
	if req.ConfirmCCINumber != nil {
		confirmCCI = *req.ConfirmCCINumber
	}
	confirmPix := account.PixKey
	if req.ConfirmPixKey != nil {
		confirmPix = *req.ConfirmPixKey
	}

	if err := validateCountryFields(account, confirmAccount, confirmCCI, confirmPix); err != nil {
		return nil, err
	}
	if err := validateBusinessFields(account); err != nil {
		return nil, err
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateBankAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update bank account in service: %w", err)
	}

	return account, nil
}

func (s *bankAccountService) DeactivateBankAccount(ctx context.Context, bankAccountID string, updaterUserID string) error {
	account, err := s.accountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return fmt.Errorf("failed to load bank account for deactivation: %w", err)
	}
	if !account.IsActive {
		return apperrors.NewValidationError("bank account is already deactivated")
	}
	if err := s.accountRepo.DeactivateBankAccount(ctx, bankAccountID, updaterUserID); err != nil {
		return fmt.Errorf("failed to deactivate bank account in service: %w", err)
	}
	return nil
}

// validateCountryFields enforces the per-country field subset and the
// confirmation copies. Brazil accounts drop the Peru-only fields.
func validateCountryFields(account *models.BankAccount, confirmAccountNumber, confirmCCI, confirmPix string) error {
	switch account.Country {
	case models.CountryPeru:
		if account.AccountNumber == "" {
			return apperrors.NewValidationError("account number is required for Peru accounts")
		}
		if account.AccountNumber != confirmAccountNumber {
			return apperrors.NewValidationError("account number confirmation does not match")
		}
		if account.CCINumber != "" && account.CCINumber != confirmCCI {
			return apperrors.NewValidationError("CCI number confirmation does not match")
		}
		account.PixKey = ""
		account.PixKeyType = ""
		account.CPF = ""
	case models.CountryBrazil:
		if account.CPF == "" {
			return apperrors.NewValidationError("CPF is required for Brazil accounts")
		}
		if account.PixKey == "" {
			return apperrors.NewValidationError("PIX key is required for Brazil accounts")
		}
		if account.PixKey != confirmPix {
			return apperrors.NewValidationError("PIX key confirmation does not match")
		}
		account.AccountNumber = ""
		account.CCINumber = ""
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unsupported country '%s'", account.Country))
	}
	return nil
}

func validateBusinessFields(account *models.BankAccount) error {
	if account.AccountType != models.AccountBusiness {
		return nil
	}
	if account.BusinessName == "" {
		return apperrors.NewValidationError("business name is required for business accounts")
	}
	if account.RUCNumber == "" && account.Country == models.CountryPeru {
		return apperrors.NewValidationError("RUC number is required for Peru business accounts")
	}
	return nil
}
