package dto

import (
	"time"

	"github.com/brtdigital/remesa-backend/internal/models"
	"github.com/shopspring/decimal"
)

// CouponListFilter narrows coupon listings. Zero values mean "any".
type CouponListFilter struct {
	Type               models.CouponType `form:"type"`
	SourceCurrencyCode string            `form:"sourceCurrencyCode"`
	TargetCurrencyCode string            `form:"targetCurrencyCode"`
}

// CreateCouponRequest defines the data needed to create a coupon.
// Code is required for manual coupons; automatic coupons ignore it.
type CreateCouponRequest struct {
	Code               string          `json:"code"`
	Description        string          `json:"description"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage" binding:"required"`
	StartDate          time.Time       `json:"startDate" binding:"required"`
	EndDate            time.Time       `json:"endDate" binding:"required"`
	SourceCurrencyCode string          `json:"sourceCurrencyCode" binding:"required,len=3,uppercase"`
	TargetCurrencyCode string          `json:"targetCurrencyCode" binding:"required,len=3,uppercase"`
	MaxUses            *int64          `json:"maxUses"`
	MinimumAmount      decimal.Decimal `json:"minimumAmount"`
	IsActive           *bool           `json:"isActive"`
}

// UpdateCouponRequest allows partial updates of a coupon. TimesUsed is
// deliberately absent, it only moves through RecordUse.
type UpdateCouponRequest struct {
	Code               *string          `json:"code"`
	Description        *string          `json:"description"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage"`
	StartDate          *time.Time       `json:"startDate"`
	EndDate            *time.Time       `json:"endDate"`
	SourceCurrencyCode *string          `json:"sourceCurrencyCode"`
	TargetCurrencyCode *string          `json:"targetCurrencyCode"`
	MaxUses            *int64           `json:"maxUses"`
	MinimumAmount      *decimal.Decimal `json:"minimumAmount"`
	IsActive           *bool            `json:"isActive"`
}

// CouponResponse defines the data returned for a coupon.
type CouponResponse struct {
	CouponID           string            `json:"couponID"`
	Code               string            `json:"code,omitempty"`
	Description        string            `json:"description"`
	DiscountPercentage decimal.Decimal   `json:"discountPercentage"`
	StartDate          time.Time         `json:"startDate"`
	EndDate            time.Time         `json:"endDate"`
	SourceCurrencyCode string            `json:"sourceCurrencyCode"`
	TargetCurrencyCode string            `json:"targetCurrencyCode"`
	MaxUses            *int64            `json:"maxUses"`
	TimesUsed          int64             `json:"timesUsed"`
	MinimumAmount      decimal.Decimal   `json:"minimumAmount"`
	Type               models.CouponType `json:"type"`
	IsActive           bool              `json:"isActive"`
	CreatedAt          time.Time         `json:"createdAt"`
	LastUpdatedAt      time.Time         `json:"lastUpdatedAt"`
}

// ToCouponResponse converts a models.Coupon to CouponResponse DTO
func ToCouponResponse(c *models.Coupon) CouponResponse {
	return CouponResponse{
		CouponID:           c.CouponID,
		Code:               c.Code,
		Description:        c.Description,
		DiscountPercentage: c.DiscountPercentage,
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		SourceCurrencyCode: c.SourceCurrencyCode,
		TargetCurrencyCode: c.TargetCurrencyCode,
		MaxUses:            c.MaxUses,
		TimesUsed:          c.TimesUsed,
		MinimumAmount:      c.MinimumAmount,
		Type:               c.Type,
		IsActive:           c.IsActive,
		CreatedAt:          c.CreatedAt,
		LastUpdatedAt:      c.LastUpdatedAt,
	}
}

// ToListCouponResponse converts a slice of models.Coupon to DTOs.
func ToListCouponResponse(coupons []models.Coupon) []CouponResponse {
	res := make([]CouponResponse, len(coupons))
	for i := range coupons {
		res[i] = ToCouponResponse(&coupons[i])
	}
	return res
}
