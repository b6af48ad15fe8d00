package dto

import (
	"time"

	"github.com/brtdigital/remesa-backend/internal/models"
)

// CreateBankAccountRequest defines the data needed to register an account.
// Confirmation fields must match their counterpart; which fields are required
// depends on Country and is enforced by the service.
type CreateBankAccountRequest struct {
	Country       string                 `json:"country" binding:"required,oneof=PE BR"`
	BankName      string                 `json:"bankName" binding:"required"`
	HolderNames   string                 `json:"holderNames" binding:"required"`
	HolderSurname string                 `json:"holderSurnames"`
	DocumentNum   string                 `json:"documentNumber"`
	AccountType   models.BankAccountType `json:"accountType" binding:"required,oneof=personal business"`

	BusinessName     string `json:"businessName"`
	RUCNumber        string `json:"rucNumber"`
	LegalRepName     string `json:"legalRepresentativeName"`
	LegalRepDocument string `json:"legalRepresentativeDocument"`

	AccountNumber        string `json:"accountNumber"`
	ConfirmAccountNumber string `json:"confirmAccountNumber"`
	CCINumber            string `json:"cciNumber"`
	ConfirmCCINumber     string `json:"confirmCCINumber"`

	PixKey        string `json:"pixKey"`
	ConfirmPixKey string `json:"confirmPixKey"`
	PixKeyType    string `json:"pixKeyType"`
	CPF           string `json:"cpf"`

	ThirdParty   bool   `json:"thirdParty"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,uppercase"`
}

// UpdateBankAccountRequest allows partial updates of an account.
type UpdateBankAccountRequest struct {
	BankName      *string                 `json:"bankName"`
	HolderNames   *string                 `json:"holderNames"`
	HolderSurname *string                 `json:"holderSurnames"`
	DocumentNum   *string                 `json:"documentNumber"`
	AccountType   *models.BankAccountType `json:"accountType"`

	BusinessName     *string `json:"businessName"`
	RUCNumber        *string `json:"rucNumber"`
	LegalRepName     *string `json:"legalRepresentativeName"`
	LegalRepDocument *string `json:"legalRepresentativeDocument"`

	AccountNumber        *string `json:"accountNumber"`
	ConfirmAccountNumber *string `json:"confirmAccountNumber"`
	CCINumber            *string `json:"cciNumber"`
	ConfirmCCINumber     *string `json:"confirmCCINumber"`

	PixKey        *string `json:"pixKey"`
	ConfirmPixKey *string `json:"confirmPixKey"`
	PixKeyType    *string `json:"pixKeyType"`
	CPF           *string `json:"cpf"`

	ThirdParty   *bool   `json:"thirdParty"`
	CurrencyCode *string `json:"currencyCode"`
}

// BankAccountResponse defines the data returned for an account.
type BankAccountResponse struct {
	BankAccountID string                 `json:"bankAccountID"`
	UserID        string                 `json:"userID"`
	Country       string                 `json:"country"`
	BankName      string                 `json:"bankName"`
	HolderNames   string                 `json:"holderNames"`
	HolderSurname string                 `json:"holderSurnames"`
	DocumentNum   string                 `json:"documentNumber"`
	AccountType   models.BankAccountType `json:"accountType"`

	BusinessName     string `json:"businessName,omitempty"`
	RUCNumber        string `json:"rucNumber,omitempty"`
	LegalRepName     string `json:"legalRepresentativeName,omitempty"`
	LegalRepDocument string `json:"legalRepresentativeDocument,omitempty"`

	AccountNumber string `json:"accountNumber,omitempty"`
	CCINumber     string `json:"cciNumber,omitempty"`

	PixKey     string `json:"pixKey,omitempty"`
	PixKeyType string `json:"pixKeyType,omitempty"`
	CPF        string `json:"cpf,omitempty"`

	ThirdParty   bool      `json:"thirdParty"`
	CurrencyCode string    `json:"currencyCode"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToBankAccountResponse converts a models.BankAccount to BankAccountResponse DTO
func ToBankAccountResponse(a *models.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:    a.BankAccountID,
		UserID:           a.UserID,
		Country:          a.Country,
		BankName:         a.BankName,
		HolderNames:      a.HolderNames,
		HolderSurname:    a.HolderSurname,
		DocumentNum:      a.DocumentNum,
		AccountType:      a.AccountType,
		BusinessName:     a.BusinessName,
		RUCNumber:        a.RUCNumber,
		LegalRepName:     a.LegalRepName,
		LegalRepDocument: a.LegalRepDocument,
		AccountNumber:    a.AccountNumber,
		CCINumber:        a.CCINumber,
		PixKey:           a.PixKey,
		PixKeyType:       a.PixKeyType,
		CPF:              a.CPF,
		ThirdParty:       a.ThirdParty,
		CurrencyCode:     a.CurrencyCode,
		IsActive:         a.IsActive,
		CreatedAt:        a.CreatedAt,
	}
}

// ToListBankAccountResponse converts a slice of models.BankAccount to DTOs.
func ToListBankAccountResponse(accounts []models.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToBankAccountResponse(&accounts[i])
	}
	return res
}
