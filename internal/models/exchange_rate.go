package models

import (
	"github.com/shopspring/decimal"
)

// ExchangeRate stores the directional conversion rate for an ordered currency
// pair. Exactly one row exists per (base, target); the opposite direction is a
// separate row and is never derived by inversion.
type ExchangeRate struct {
	ExchangeRateID     string          `json:"exchangeRateID" db:"exchange_rate_id"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode" db:"base_currency_code"`
	TargetCurrencyCode string          `json:"targetCurrencyCode" db:"target_currency_code"`
	Rate               decimal.Decimal `json:"rate" db:"rate"` // > 0
	AuditFields
}
