package repositories

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/models"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRateByPair retrieves the rate for the ordered (base, target) pair.
	// There is no inverse fallback: a missing pair is ErrNotFound.
	FindRateByPair(ctx context.Context, baseCode, targetCode string) (*models.ExchangeRate, error)

	// FindExchangeRateByID retrieves a rate row by its surrogate ID.
	FindExchangeRateByID(ctx context.Context, rateID string) (*models.ExchangeRate, error)

	// ListExchangeRates retrieves all rate rows.
	ListExchangeRates(ctx context.Context) ([]models.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// UpsertExchangeRate inserts the pair's row or replaces its rate,
	// recording the audit trail on every mutation.
	UpsertExchangeRate(ctx context.Context, rate models.ExchangeRate) (*models.ExchangeRate, error)

	// DeleteExchangeRate removes a rate row by ID.
	DeleteExchangeRate(ctx context.Context, rateID string) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
