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

// couponService provides business logic for discount coupons.
type couponService struct {
	couponRepo portsrepo.CouponRepositoryFacade
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo portsrepo.CouponRepositoryFacade) portssvc.CouponSvcFacade {
	return &couponService{couponRepo: couponRepo}
}

var _ portssvc.CouponSvcFacade = (*couponService)(nil)

// normalizeCouponCode trims and upper-cases a code; empty stays empty so
// automatic coupons persist without one.
func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateCouponFields(discount decimal.Decimal, start, end time.Time, minimum decimal.Decimal, maxUses *int64) error {
	if discount.LessThanOrEqual(decimal.Zero) || discount.GreaterThan(hundred) {
		return apperrors.NewValidationError("discount percentage must be between 0 and 100")
	}
	if !end.After(start) {
		return apperrors.NewValidationError("end date must be after start date")
	}
	if minimum.LessThan(decimal.Zero) {
		return apperrors.NewValidationError("minimum amount cannot be negative")
	}
	if maxUses != nil && *maxUses <= 0 {
		return apperrors.NewValidationError("max uses must be positive when set")
	}
	return nil
}

func (s *couponService) CreateCoupon(ctx context.Context, req dto.CreateCouponRequest, couponType models.CouponType, creatorUserID string) (*models.Coupon, error) {
	if err := validateCouponFields(req.DiscountPercentage, req.StartDate, req.EndDate, req.MinimumAmount, req.MaxUses); err != nil {
		return nil, err
	}

	code := normalizeCouponCode(req.Code)
	if couponType == models.CouponManual && code == "" {
		return nil, apperrors.NewValidationError("manual coupons require a code")
	}
	if couponType == models.CouponAutomatic {
		code = ""
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := time.Now()
	coupon := models.Coupon{
		CouponID:           uuid.NewString(),
		Code:               code,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		SourceCurrencyCode: req.SourceCurrencyCode,
		TargetCurrencyCode: req.TargetCurrencyCode,
		MaxUses:            req.MaxUses,
		MinimumAmount:      req.MinimumAmount,
		Type:               couponType,
		IsActive:           active,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.couponRepo.SaveCoupon(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon in service: %w", err)
	}

	return &coupon, nil
}

func (s *couponService) GetCouponByID(ctx context.Context, couponID string, couponType models.CouponType) (*models.Coupon, error) {
	coupon, err := s.couponRepo.FindCouponByID(ctx, couponID, couponType)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon by ID in service: %w", err)
	}
	return coupon, nil
}

func (s *couponService) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	coupon, err := s.couponRepo.FindCouponByCode(ctx, normalizeCouponCode(code), models.CouponManual)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon by code in service: %w", err)
	}
	return coupon, nil
}

func (s *couponService) ListCoupons(ctx context.Context, filter dto.CouponListFilter) ([]models.Coupon, error) {
	coupons, err := s.couponRepo.ListCoupons(ctx, portsrepo.CouponFilter{
		Type:           filter.Type,
		SourceCurrency: filter.SourceCurrencyCode,
		TargetCurrency: filter.TargetCurrencyCode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons in service: %w", err)
	}
	if coupons == nil {
		return []models.Coupon{}, nil
	}
	return coupons, nil
}

// FindApplicable resolves the coupon for a transfer. A named code must exist
// and pass every applicability check; the automatic path quietly returns nil
// when nothing matches.
func (s *couponService) FindApplicable(ctx context.Context, code, sourceCode, targetCode string, amount decimal.Decimal, now time.Time) (*models.Coupon, error) {
	if code != "" {
		coupon, err := s.couponRepo.FindCouponByCode(ctx, normalizeCouponCode(code), models.CouponManual)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("coupon '%s' not found", code))
			}
			return nil, fmt.Errorf("failed to look up coupon code: %w", err)
		}
		if !coupon.IsApplicable(sourceCode, targetCode, amount, now) {
			return nil, apperrors.NewUnprocessableError(fmt.Sprintf("coupon '%s' is not applicable to this transaction", code))
		}
		return coupon, nil
	}

	candidates, err := s.couponRepo.FindAutomaticByPair(ctx, sourceCode, targetCode)
	if err != nil {
		return nil, fmt.Errorf("failed to search automatic coupons: %w", err)
	}
	for i := range candidates {
		if candidates[i].IsApplicable(sourceCode, targetCode, amount, now) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

func (s *couponService) UpdateCoupon(ctx context.Context, couponID string, req dto.UpdateCouponRequest, couponType models.CouponType, updaterUserID string) (*models.Coupon, error) {
	coupon, err := s.couponRepo.FindCouponByID(ctx, couponID, couponType)
	if err != nil {
		return nil, fmt.Errorf("failed to load coupon for update: %w", err)
	}

	if req.Code != nil {
		code := normalizeCouponCode(*req.Code)
		if couponType == models.CouponManual && code == "" {
			return nil, apperrors.NewValidationError("manual coupons require a code")
		}
		if couponType == models.CouponManual {
			coupon.Code = code
		}
	}
	if req.Description != nil {
		coupon.Description = *req.Description
	}
	if req.DiscountPercentage != nil {
		coupon.DiscountPercentage = *req.DiscountPercentage
	}
	if req.StartDate != nil {
		coupon.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		coupon.EndDate = *req.EndDate
	}
	if req.SourceCurrencyCode != nil {
		coupon.SourceCurrencyCode = *req.SourceCurrencyCode
	}
	if req.TargetCurrencyCode != nil {
		coupon.TargetCurrencyCode = *req.TargetCurrencyCode
	}
	if req.MaxUses != nil {
		coupon.MaxUses = req.MaxUses
	}
	if req.MinimumAmount != nil {
		coupon.MinimumAmount = *req.MinimumAmount
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := validateCouponFields(coupon.DiscountPercentage, coupon.StartDate, coupon.EndDate, coupon.MinimumAmount, coupon.MaxUses); err != nil {
		return nil, err
	}

	coupon.LastUpdatedAt = time.Now()
	coupon.LastUpdatedBy = updaterUserID

	if err := s.couponRepo.UpdateCoupon(ctx, *coupon); err != nil {
		return nil, fmt.Errorf("failed to update coupon in service: %w", err)
	}

	return coupon, nil
}

func (s *couponService) DeleteCoupon(ctx context.Context, couponID string, couponType models.CouponType) error {
	// Scope the delete to the type so the manual routes cannot remove an
	// automatic coupon by ID and vice versa.
	if _, err := s.couponRepo.FindCouponByID(ctx, couponID, couponType); err != nil {
		return fmt.Errorf("failed to load coupon for delete: %w", err)
	}
	if err := s.couponRepo.DeleteCoupon(ctx, couponID); err != nil {
		return fmt.Errorf("failed to delete coupon in service: %w", err)
	}
	return nil
}

func (s *couponService) RecordUse(ctx context.Context, couponID string) error {
	if err := s.couponRepo.RecordUse(ctx, couponID); err != nil {
		return err
	}
	return nil
}
