package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
)

// rangeService provides business logic for amount tiers.
type rangeService struct {
	rangeRepo portsrepo.RangeRepositoryFacade
}

// NewRangeService creates a new range service.
func NewRangeService(rangeRepo portsrepo.RangeRepositoryFacade) portssvc.RangeSvcFacade {
	return &rangeService{rangeRepo: rangeRepo}
}

var _ portssvc.RangeSvcFacade = (*rangeService)(nil)

func validateRangeBounds(minAmount, maxAmount decimal.Decimal) error {
	if minAmount.LessThan(decimal.Zero) {
		return apperrors.NewValidationError("min amount cannot be negative")
	}
	if maxAmount.LessThanOrEqual(minAmount) {
		return apperrors.NewValidationError("max amount must be greater than min amount")
	}
	return nil
}

func (s *rangeService) CreateRange(ctx context.Context, req dto.CreateRangeRequest, creatorUserID string) (*models.AmountRange, error) {
	if err := validateRangeBounds(req.MinAmount, req.MaxAmount); err != nil {
		return nil, err
	}

	now := time.Now()
	r := models.AmountRange{
		RangeID:   uuid.NewString(),
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rangeRepo.SaveRange(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create range in service: %w", err)
	}

	return &r, nil
}

func (s *rangeService) GetRangeByID(ctx context.Context, rangeID string) (*models.AmountRange, error) {
	r, err := s.rangeRepo.FindRangeByID(ctx, rangeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get range by ID in service: %w", err)
	}
	return r, nil
}

func (s *rangeService) ListRanges(ctx context.Context) ([]models.AmountRange, error) {
	ranges, err := s.rangeRepo.ListRanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranges in service: %w", err)
	}
	if ranges == nil {
		return []models.AmountRange{}, nil
	}
	return ranges, nil
}

func (s *rangeService) UpdateRange(ctx context.Context, rangeID string, req dto.CreateRangeRequest, updaterUserID string) (*models.AmountRange, error) {
	if err := validateRangeBounds(req.MinAmount, req.MaxAmount); err != nil {
		return nil, err
	}

	r, err := s.rangeRepo.FindRangeByID(ctx, rangeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load range for update: %w", err)
	}

	r.MinAmount = req.MinAmount
	r.MaxAmount = req.MaxAmount
	r.LastUpdatedAt = time.Now()
	r.LastUpdatedBy = updaterUserID

	if err := s.rangeRepo.UpdateRange(ctx, *r); err != nil {
		return nil, fmt.Errorf("failed to update range in service: %w", err)
	}

	return r, nil
}

func (s *rangeService) DeleteRange(ctx context.Context, rangeID string) error {
	if err := s.rangeRepo.DeleteRange(ctx, rangeID); err != nil {
		return fmt.Errorf("failed to delete range in service: %w", err)
	}
	return nil
}
