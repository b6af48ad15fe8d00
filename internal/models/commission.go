package models

import (
	"github.com/shopspring/decimal"
)

// AmountRange is a global amount tier [MinAmount, MaxAmount], inclusive on
// both ends. The (min, max) pair is unique across all rows.
type AmountRange struct {
	RangeID   string          `json:"rangeID" db:"range_id"`
	MinAmount decimal.Decimal `json:"minAmount" db:"min_amount"`
	MaxAmount decimal.Decimal `json:"maxAmount" db:"max_amount"`
	AuditFields
}

// Contains reports whether amount falls inside the tier, boundaries included.
func (r AmountRange) Contains(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(r.MinAmount) && amount.LessThanOrEqual(r.MaxAmount)
}

// Width is the span of the tier, used for the narrowest-range tie-break.
func (r AmountRange) Width() decimal.Decimal {
	return r.MaxAmount.Sub(r.MinAmount)
}

// Commission maps (base currency, target currency, range) to the percentage
// charged in the base→target direction and the percentage charged when the
// same tier is consumed in the mirrored target→base direction. Ranges are
// expressed in the base currency's units.
type Commission struct {
	CommissionID         string          `json:"commissionID" db:"commission_id"`
	BaseCurrencyCode     string          `json:"baseCurrencyCode" db:"base_currency_code"`
	TargetCurrencyCode   string          `json:"targetCurrencyCode" db:"target_currency_code"`
	RangeID              string          `json:"rangeID" db:"range_id"`
	Range                AmountRange     `json:"range" db:"-"`
	CommissionPercentage decimal.Decimal `json:"commissionPercentage" db:"commission_percentage"` // 0-100
	ReverseCommission    decimal.Decimal `json:"reverseCommission" db:"reverse_commission"`       // 0-100
	AuditFields
}
