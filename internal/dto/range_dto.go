package dto

import (
	"time"

	"github.com/brtdigital/remesa-backend/internal/models"
	"github.com/shopspring/decimal"
)

// CreateRangeRequest defines the data needed to create an amount tier.
type CreateRangeRequest struct {
	MinAmount decimal.Decimal `json:"minAmount" binding:"required"`
	MaxAmount decimal.Decimal `json:"maxAmount" binding:"required"`
}

// RangeResponse defines the data returned for an amount tier.
type RangeResponse struct {
	RangeID       string          `json:"rangeID"`
	MinAmount     decimal.Decimal `json:"minAmount"`
	MaxAmount     decimal.Decimal `json:"maxAmount"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToRangeResponse converts a models.AmountRange to RangeResponse DTO
func ToRangeResponse(r *models.AmountRange) RangeResponse {
	return RangeResponse{
		RangeID:       r.RangeID,
		MinAmount:     r.MinAmount,
		MaxAmount:     r.MaxAmount,
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
		LastUpdatedAt: r.LastUpdatedAt,
		LastUpdatedBy: r.LastUpdatedBy,
	}
}

// ToListRangeResponse converts a slice of models.AmountRange to DTOs.
func ToListRangeResponse(ranges []models.AmountRange) []RangeResponse {
	res := make([]RangeResponse, len(ranges))
	for i := range ranges {
		res[i] = ToRangeResponse(&ranges[i])
	}
	return res
}
