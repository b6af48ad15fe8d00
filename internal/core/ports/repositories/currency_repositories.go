package repositories

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/models"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error)

	// ListCurrencies retrieves currencies; activeOnly filters out deactivated ones.
	ListCurrencies(ctx context.Context, activeOnly bool) ([]models.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency models.Currency) error

	// UpdateCurrency updates name, symbol and active flag. The code is immutable.
	UpdateCurrency(ctx context.Context, currency models.Currency) error

	// DeactivateCurrency toggles is_active off instead of deleting.
	DeactivateCurrency(ctx context.Context, currencyCode, updaterUserID string) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
