package models

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode" db:"currency_code"` // Primary Key (e.g., "USD")
	Name         string `json:"name" db:"name"`                  // e.g., "Dolar"
	Symbol       string `json:"symbol" db:"symbol"`              // e.g., "$"
	IsActive     bool   `json:"isActive" db:"is_active"`
	AuditFields
}
