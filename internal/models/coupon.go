package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponType distinguishes coupons matched by code from coupons matched
// automatically by currency pair.
type CouponType string

const (
	CouponManual    CouponType = "manual"
	CouponAutomatic CouponType = "automatic"
)

// Coupon is a time- and usage-bounded discount applied to a transaction's
// commission, taxes and total at creation time.
type Coupon struct {
	CouponID           string          `json:"couponID" db:"coupon_id"`
	Code               string          `json:"code" db:"code"` // empty means no code (automatic coupons)
	Description        string          `json:"description" db:"description"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage" db:"discount_percentage"` // 0-100
	StartDate          time.Time       `json:"startDate" db:"start_date"`
	EndDate            time.Time       `json:"endDate" db:"end_date"`
	SourceCurrencyCode string          `json:"sourceCurrencyCode" db:"source_currency_code"`
	TargetCurrencyCode string          `json:"targetCurrencyCode" db:"target_currency_code"`
	MaxUses            *int64          `json:"maxUses" db:"max_uses"` // nil means unlimited
	TimesUsed          int64           `json:"timesUsed" db:"times_used"`
	MinimumAmount      decimal.Decimal `json:"minimumAmount" db:"minimum_amount"`
	Type               CouponType      `json:"type" db:"type"`
	IsActive           bool            `json:"isActive" db:"is_active"`
	AuditFields
}

// ApplyDiscount returns amount reduced by the coupon's percentage, rounded
// to two decimal places.
func (c Coupon) ApplyDiscount(amount decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(c.DiscountPercentage.Div(decimal.NewFromInt(100)))
	return amount.Mul(factor).Round(2)
}

// IsApplicable reports whether the coupon can discount a transaction of the
// given amount and currency pair at the given instant. The usage cap is
// checked here as a pre-filter only; RecordUse enforces it atomically.
func (c Coupon) IsApplicable(sourceCurrency, targetCurrency string, amount decimal.Decimal, now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if now.Before(c.StartDate) || now.After(c.EndDate) {
		return false
	}
	if c.SourceCurrencyCode != sourceCurrency || c.TargetCurrencyCode != targetCurrency {
		return false
	}
	if amount.LessThan(c.MinimumAmount) {
		return false
	}
	if c.MaxUses != nil && c.TimesUsed >= *c.MaxUses {
		return false
	}
	return true
}
