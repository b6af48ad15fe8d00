package dto

import (
	"time"

	"github.com/brtdigital/remesa-backend/internal/models"
	"github.com/shopspring/decimal"
)

// CreateCommissionRequest defines the data needed to create a schedule row.
type CreateCommissionRequest struct {
	BaseCurrencyCode     string          `json:"baseCurrencyCode" binding:"required,len=3,uppercase"`
	TargetCurrencyCode   string          `json:"targetCurrencyCode" binding:"required,len=3,uppercase"`
	RangeID              string          `json:"rangeID" binding:"required"`
	CommissionPercentage decimal.Decimal `json:"commissionPercentage" binding:"required"`
	ReverseCommission    decimal.Decimal `json:"reverseCommission" binding:"required"`
}

// UpdateCommissionRequest allows partial updates of a schedule row.
type UpdateCommissionRequest struct {
	RangeID              *string          `json:"rangeID"`
	CommissionPercentage *decimal.Decimal `json:"commissionPercentage"`
	ReverseCommission    *decimal.Decimal `json:"reverseCommission"`
}

// CommissionResponse defines the data returned for a schedule row.
type CommissionResponse struct {
	CommissionID         string          `json:"commissionID"`
	BaseCurrencyCode     string          `json:"baseCurrencyCode"`
	TargetCurrencyCode   string          `json:"targetCurrencyCode"`
	RangeDetails         RangeResponse   `json:"rangeDetails"`
	CommissionPercentage decimal.Decimal `json:"commissionPercentage"`
	ReverseCommission    decimal.Decimal `json:"reverseCommission"`
	CreatedAt            time.Time       `json:"createdAt"`
	CreatedBy            string          `json:"createdBy"`
	LastUpdatedAt        time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy        string          `json:"lastUpdatedBy"`
}

// ToCommissionResponse converts a models.Commission to CommissionResponse DTO
func ToCommissionResponse(c *models.Commission) CommissionResponse {
	return CommissionResponse{
		CommissionID:         c.CommissionID,
		BaseCurrencyCode:     c.BaseCurrencyCode,
		TargetCurrencyCode:   c.TargetCurrencyCode,
		RangeDetails:         ToRangeResponse(&c.Range),
		CommissionPercentage: c.CommissionPercentage,
		ReverseCommission:    c.ReverseCommission,
		CreatedAt:            c.CreatedAt,
		CreatedBy:            c.CreatedBy,
		LastUpdatedAt:        c.LastUpdatedAt,
		LastUpdatedBy:        c.LastUpdatedBy,
	}
}

// ToListCommissionResponse converts a slice of models.Commission to DTOs.
func ToListCommissionResponse(commissions []models.Commission) []CommissionResponse {
	res := make([]CommissionResponse, len(commissions))
	for i := range commissions {
		res[i] = ToCommissionResponse(&commissions[i])
	}
	return res
}

// TierRate is one tier of a grouped-by-pair rate listing.
type TierRate struct {
	Min  decimal.Decimal `json:"min"`
	Max  decimal.Decimal `json:"max"`
	Rate decimal.Decimal `json:"rate"`
}

// PairRangeSummary carries the lowest and highest tier configured for a pair.
// A pair with a single tier reports it as both.
type PairRangeSummary struct {
	BaseCurrencyCode   string   `json:"baseCurrencyCode"`
	TargetCurrencyCode string   `json:"targetCurrencyCode"`
	LowestRange        TierRate `json:"lowestRange"`
	HighestRange       TierRate `json:"highestRange"`
}

// ResolvedCommission is the outcome of a commission resolution.
type ResolvedCommission struct {
	Percentage decimal.Decimal `json:"percentage"`
	RangeID    string          `json:"rangeID"`
}
