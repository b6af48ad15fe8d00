package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
)

// exchangeRateService provides business logic for exchange rates. Lookups
// are strictly directional: a stored USD->PEN rate never answers a PEN->USD
// query, each direction is quoted and stored on its own.
type exchangeRateService struct {
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:    rateRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) SetRate(ctx context.Context, req dto.UpsertExchangeRateRequest, updaterUserID string) (*models.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("exchange rate must be positive")
	}
	if req.BaseCurrencyCode == req.TargetCurrencyCode {
		return nil, apperrors.NewValidationError("base and target currency codes cannot be the same")
	}

	for _, code := range []string{req.BaseCurrencyCode, req.TargetCurrencyCode} {
		if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError(fmt.Sprintf("currency code '%s' not found", code))
			}
			return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
		}
	}

	now := time.Now()
	rate := models.ExchangeRate{
		ExchangeRateID:     uuid.NewString(),
		BaseCurrencyCode:   req.BaseCurrencyCode,
		TargetCurrencyCode: req.TargetCurrencyCode,
		Rate:               req.Rate,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}

	saved, err := s.rateRepo.UpsertExchangeRate(ctx, rate)
	if err != nil {
		return nil, fmt.Errorf("failed to set exchange rate in service: %w", err)
	}

	return saved, nil
}

func (s *exchangeRateService) GetRate(ctx context.Context, baseCode, targetCode string) (decimal.Decimal, error) {
	rate, err := s.GetExchangeRateByPair(ctx, baseCode, targetCode)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return rate.Rate, nil
}

func (s *exchangeRateService) GetExchangeRateByPair(ctx context.Context, baseCode, targetCode string) (*models.ExchangeRate, error) {
	baseCode = strings.ToUpper(baseCode)
	targetCode = strings.ToUpper(targetCode)
	if len(baseCode) != 3 || len(targetCode) != 3 {
		return nil, apperrors.NewValidationError("currency codes must be 3 letters")
	}

	rate, err := s.rateRepo.FindRateByPair(ctx, baseCode, targetCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

func (s *exchangeRateService) GetExchangeRateByID(ctx context.Context, exchangeRateID string) (*models.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, exchangeRateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate by ID in service: %w", err)
	}
	return rate, nil
}

func (s *exchangeRateService) ListExchangeRates(ctx context.Context) ([]models.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []models.ExchangeRate{}, nil
	}
	return rates, nil
}

func (s *exchangeRateService) UpdateExchangeRate(ctx context.Context, exchangeRateID string, req dto.UpdateExchangeRateRequest, updaterUserID string) (*models.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("exchange rate must be positive")
	}

	rate, err := s.rateRepo.FindExchangeRateByID(ctx, exchangeRateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exchange rate for update: %w", err)
	}

	rate.Rate = req.Rate
	rate.LastUpdatedAt = time.Now()
	rate.LastUpdatedBy = updaterUserID

	saved, err := s.rateRepo.UpsertExchangeRate(ctx, *rate)
	if err != nil {
		return nil, fmt.Errorf("failed to update exchange rate in service: %w", err)
	}
	return saved, nil
}

func (s *exchangeRateService) DeleteExchangeRate(ctx context.Context, exchangeRateID string) error {
	if err := s.rateRepo.DeleteExchangeRate(ctx, exchangeRateID); err != nil {
		return fmt.Errorf("failed to delete exchange rate in service: %w", err)
	}
	return nil
}
