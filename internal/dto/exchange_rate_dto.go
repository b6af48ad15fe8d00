package dto

import (
	"fmt"
	"time"

	"github.com/brtdigital/remesa-backend/internal/models"
	"github.com/shopspring/decimal"
)

// UpsertExchangeRateRequest defines the structure for setting a pair's rate.
type UpsertExchangeRateRequest struct {
	BaseCurrencyCode   string          `json:"baseCurrencyCode" binding:"required,len=3,uppercase"`
	TargetCurrencyCode string          `json:"targetCurrencyCode" binding:"required,len=3,uppercase"`
	Rate               decimal.Decimal `json:"rate" binding:"required"`
}

// UpdateExchangeRateRequest updates the rate of an existing pair row.
type UpdateExchangeRateRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID     string          `json:"exchangeRateID"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy      string          `json:"lastUpdatedBy"`
}

// ToExchangeRateResponse converts a models.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *models.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:     rate.ExchangeRateID,
		BaseCurrencyCode:   rate.BaseCurrencyCode,
		TargetCurrencyCode: rate.TargetCurrencyCode,
		Rate:               rate.Rate,
		CreatedAt:          rate.CreatedAt,
		CreatedBy:          rate.CreatedBy,
		LastUpdatedAt:      rate.LastUpdatedAt,
		LastUpdatedBy:      rate.LastUpdatedBy,
	}
}

// ToListExchangeRateResponse converts a slice of models.ExchangeRate to DTOs.
func ToListExchangeRateResponse(rates []models.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// ToRateMap flattens rate rows into a "USD-PEN": rate map for the app
// pricing endpoint.
func ToRateMap(rates []models.ExchangeRate) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(rates))
	for _, r := range rates {
		m[fmt.Sprintf("%s-%s", r.BaseCurrencyCode, r.TargetCurrencyCode)] = r.Rate
	}
	return m
}
