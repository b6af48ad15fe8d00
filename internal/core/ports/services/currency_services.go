package services

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error)

	// ListCurrencies retrieves currencies, all of them or active only.
	ListCurrencies(ctx context.Context, activeOnly bool) ([]models.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*models.Currency, error)

	// UpdateCurrency applies a partial update to an existing currency.
	UpdateCurrency(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRequest, updaterUserID string) (*models.Currency, error)

	// DeactivateCurrency soft-deletes a currency.
	DeactivateCurrency(ctx context.Context, currencyCode string, updaterUserID string) error
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
