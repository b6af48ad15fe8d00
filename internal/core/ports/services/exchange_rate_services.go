package services

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetRate retrieves the rate for an ordered pair. The lookup is strictly
	// directional; a stored BCT rate says nothing about TCB.
	GetRate(ctx context.Context, baseCode, targetCode string) (decimal.Decimal, error)

	// GetExchangeRateByID retrieves a rate row by its identifier.
	GetExchangeRateByID(ctx context.Context, exchangeRateID string) (*models.ExchangeRate, error)

	// GetExchangeRateByPair retrieves the full rate row for an ordered pair.
	GetExchangeRateByPair(ctx context.Context, baseCode, targetCode string) (*models.ExchangeRate, error)

	// ListExchangeRates retrieves every stored rate row.
	ListExchangeRates(ctx context.Context) ([]models.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// SetRate creates or replaces the rate for an ordered pair.
	SetRate(ctx context.Context, req dto.UpsertExchangeRateRequest, updaterUserID string) (*models.ExchangeRate, error)

	// UpdateExchangeRate applies a partial update to an existing rate row.
	UpdateExchangeRate(ctx context.Context, exchangeRateID string, req dto.UpdateExchangeRateRequest, updaterUserID string) (*models.ExchangeRate, error)

	// DeleteExchangeRate removes a rate row.
	DeleteExchangeRate(ctx context.Context, exchangeRateID string) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
