package models

// Country codes supported by the bank account directory.
const (
	CountryPeru   = "PE"
	CountryBrazil = "BR"
)

// AccountType distinguishes personal from business payout accounts.
type BankAccountType string

const (
	AccountPersonal BankAccountType = "personal"
	AccountBusiness BankAccountType = "business"
)

// BankAccount is a per-user payout/funding account. The country determines
// which field subset is authoritative: account number + CCI for Peru,
// PIX key + CPF for Brazil.
type BankAccount struct {
	BankAccountID string          `json:"bankAccountID" db:"bank_account_id"`
	UserID        string          `json:"userID" db:"user_id"`
	Country       string          `json:"country" db:"country"` // PE or BR
	BankName      string          `json:"bankName" db:"bank_name"`
	HolderNames   string          `json:"holderNames" db:"holder_names"`
	HolderSurname string          `json:"holderSurnames" db:"holder_surnames"`
	DocumentNum   string          `json:"documentNumber" db:"document_number"`
	AccountType   BankAccountType `json:"accountType" db:"account_type"`

	// Business accounts only.
	BusinessName       string `json:"businessName" db:"business_name"`
	RUCNumber          string `json:"rucNumber" db:"ruc_number"`
	LegalRepName       string `json:"legalRepresentativeName" db:"legal_rep_name"`
	LegalRepDocument   string `json:"legalRepresentativeDocument" db:"legal_rep_document"`

	// Peru fields.
	AccountNumber string `json:"accountNumber" db:"account_number"`
	CCINumber     string `json:"cciNumber" db:"cci_number"`

	// Brazil fields.
	PixKey     string `json:"pixKey" db:"pix_key"`
	PixKeyType string `json:"pixKeyType" db:"pix_key_type"`
	CPF        string `json:"cpf" db:"cpf"`

	ThirdParty   bool   `json:"thirdParty" db:"third_party"`
	CurrencyCode string `json:"currencyCode" db:"currency_code"`
	IsActive     bool   `json:"isActive" db:"is_active"`
	AuditFields
}
