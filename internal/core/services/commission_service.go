package services

import (
	"context"
	"errors"
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

var hundred = decimal.NewFromInt(100)

// commissionService provides the tiered commission schedule and its
// resolution engine.
type commissionService struct {
	commissionRepo portsrepo.CommissionRepositoryFacade
	rangeRepo      portsrepo.RangeRepositoryFacade
}

// NewCommissionService creates a new commission service.
func NewCommissionService(commissionRepo portsrepo.CommissionRepositoryFacade, rangeRepo portsrepo.RangeRepositoryFacade) portssvc.CommissionSvcFacade {
	return &commissionService{
		commissionRepo: commissionRepo,
		rangeRepo:      rangeRepo,
	}
}

var _ portssvc.CommissionSvcFacade = (*commissionService)(nil)

func validatePercentage(name string, pct decimal.Decimal) error {
	if pct.LessThan(decimal.Zero) || pct.GreaterThan(hundred) {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be between 0 and 100", name))
	}
	return nil
}

func (s *commissionService) ResolveCommission(ctx context.Context, baseCode, targetCode string, amount decimal.Decimal) (*dto.ResolvedCommission, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("amount must be positive")
	}

	c, err := s.commissionRepo.ResolveForAmount(ctx, baseCode, targetCode, amount)
	if err != nil {
		return nil, err
	}

	return &dto.ResolvedCommission{
		Percentage: c.CommissionPercentage,
		RangeID:    c.RangeID,
	}, nil
}

// ResolveReverseCommission answers "what does the mirrored direction charge":
// it resolves against the row stored under (target, base) and returns that
// row's reverse percentage. The amount is interpreted in the stored row's
// base currency units.
func (s *commissionService) ResolveReverseCommission(ctx context.Context, baseCode, targetCode string, amount decimal.Decimal) (*dto.ResolvedCommission, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("amount must be positive")
	}

	c, err := s.commissionRepo.ResolveForAmount(ctx, targetCode, baseCode, amount)
	if err != nil {
		return nil, err
	}

	return &dto.ResolvedCommission{
		Percentage: c.ReverseCommission,
		RangeID:    c.RangeID,
	}, nil
}

func (s *commissionService) GetCommissionByID(ctx context.Context, commissionID string) (*models.Commission, error) {
	c, err := s.commissionRepo.FindCommissionByID(ctx, commissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get commission by ID in service: %w", err)
	}
	return c, nil
}

func (s *commissionService) GetCommissionByPairAndRange(ctx context.Context, baseCode, targetCode string, minAmount, maxAmount decimal.Decimal) (*models.Commission, error) {
	c, err := s.commissionRepo.FindCommissionByPairAndRange(ctx, baseCode, targetCode, minAmount, maxAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to get commission by pair and range in service: %w", err)
	}
	return c, nil
}

func (s *commissionService) ListCommissions(ctx context.Context) ([]models.Commission, error) {
	commissions, err := s.commissionRepo.ListCommissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions in service: %w", err)
	}
	if commissions == nil {
		return []models.Commission{}, nil
	}
	return commissions, nil
}

func (s *commissionService) ListGroupedByPair(ctx context.Context) (map[string][]dto.TierRate, error) {
	commissions, err := s.commissionRepo.ListCommissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions for grouping: %w", err)
	}

	grouped := make(map[string][]dto.TierRate)
	for _, c := range commissions {
		key := c.BaseCurrencyCode + "-" + c.TargetCurrencyCode
		grouped[key] = append(grouped[key], dto.TierRate{
			Min:  c.Range.MinAmount,
			Max:  c.Range.MaxAmount,
			Rate: c.CommissionPercentage,
		})
	}
	return grouped, nil
}

// ListReverseGroupedByPair keys each row by the mirrored pair, so a stored
// USD-PEN row advertises its reverse percentage under "PEN-USD".
func (s *commissionService) ListReverseGroupedByPair(ctx context.Context) (map[string][]dto.TierRate, error) {
	commissions, err := s.commissionRepo.ListCommissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions for reverse grouping: %w", err)
	}

	grouped := make(map[string][]dto.TierRate)
	for _, c := range commissions {
		key := c.TargetCurrencyCode + "-" + c.BaseCurrencyCode
		grouped[key] = append(grouped[key], dto.TierRate{
			Min:  c.Range.MinAmount,
			Max:  c.Range.MaxAmount,
			Rate: c.ReverseCommission,
		})
	}
	return grouped, nil
}

func (s *commissionService) ListRangeSummary(ctx context.Context) ([]dto.PairRangeSummary, error) {
	commissions, err := s.commissionRepo.ListCommissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions for range summary: %w", err)
	}

	// ListCommissions orders by pair then ascending min_amount, so the first
	// row seen per pair is the lowest tier and the last is the highest.
	order := make([]string, 0)
	byPair := make(map[string]*dto.PairRangeSummary)
	for _, c := range commissions {
		key := c.BaseCurrencyCode + "-" + c.TargetCurrencyCode
		tier := dto.TierRate{
			Min:  c.Range.MinAmount,
			Max:  c.Range.MaxAmount,
			Rate: c.CommissionPercentage,
		}
		summary, ok := byPair[key]
		if !ok {
			byPair[key] = &dto.PairRangeSummary{
				BaseCurrencyCode:   c.BaseCurrencyCode,
				TargetCurrencyCode: c.TargetCurrencyCode,
				LowestRange:        tier,
				HighestRange:       tier,
			}
			order = append(order, key)
			continue
		}
		summary.HighestRange = tier
	}

	summaries := make([]dto.PairRangeSummary, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, *byPair[key])
	}
	return summaries, nil
}

func (s *commissionService) CreateCommission(ctx context.Context, req dto.CreateCommissionRequest, creatorUserID string) (*models.Commission, error) {
	if req.BaseCurrencyCode == req.TargetCurrencyCode {
		return nil, apperrors.NewValidationError("base and target currency codes cannot be the same")
	}
	if err := validatePercentage("commission percentage", req.CommissionPercentage); err != nil {
		return nil, err
	}
	if err := validatePercentage("reverse commission", req.ReverseCommission); err != nil {
		return nil, err
	}

	r, err := s.rangeRepo.FindRangeByID(ctx, req.RangeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("range '%s' not found", req.RangeID))
		}
		return nil, fmt.Errorf("failed to validate range for commission: %w", err)
	}

	if err := s.rejectOverlap(ctx, req.BaseCurrencyCode, req.TargetCurrencyCode, r.MinAmount, r.MaxAmount, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	c := models.Commission{
		CommissionID:         uuid.NewString(),
		BaseCurrencyCode:     req.BaseCurrencyCode,
		TargetCurrencyCode:   req.TargetCurrencyCode,
		RangeID:              req.RangeID,
		Range:                *r,
		CommissionPercentage: req.CommissionPercentage,
		ReverseCommission:    req.ReverseCommission,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.commissionRepo.SaveCommission(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create commission in service: %w", err)
	}

	return &c, nil
}

func (s *commissionService) UpdateCommission(ctx context.Context, commissionID string, req dto.UpdateCommissionRequest, updaterUserID string) (*models.Commission, error) {
	c, err := s.commissionRepo.FindCommissionByID(ctx, commissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load commission for update: %w", err)
	}

	if req.CommissionPercentage != nil {
		if err := validatePercentage("commission percentage", *req.CommissionPercentage); err != nil {
			return nil, err
		}
		c.CommissionPercentage = *req.CommissionPercentage
	}
	if req.ReverseCommission != nil {
		if err := validatePercentage("reverse commission", *req.ReverseCommission); err != nil {
			return nil, err
		}
		c.ReverseCommission = *req.ReverseCommission
	}
	if req.RangeID != nil && *req.RangeID != c.RangeID {
		r, err := s.rangeRepo.FindRangeByID(ctx, *req.RangeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError(fmt.Sprintf("range '%s' not found", *req.RangeID))
			}
			return nil, fmt.Errorf("failed to validate range for commission update: %w", err)
		}
		if err := s.rejectOverlap(ctx, c.BaseCurrencyCode, c.TargetCurrencyCode, r.MinAmount, r.MaxAmount, c.CommissionID); err != nil {
			return nil, err
		}
		c.RangeID = r.RangeID
		c.Range = *r
	}

	c.LastUpdatedAt = time.Now()
	c.LastUpdatedBy = updaterUserID

	if err := s.commissionRepo.UpdateCommission(ctx, *c); err != nil {
		return nil, fmt.Errorf("failed to update commission in service: %w", err)
	}

	return c, nil
}

func (s *commissionService) DeleteCommission(ctx context.Context, commissionID string) error {
	if err := s.commissionRepo.DeleteCommission(ctx, commissionID); err != nil {
		return fmt.Errorf("failed to delete commission in service: %w", err)
	}
	return nil
}

// rejectOverlap refuses a tier whose bounds intersect an existing tier of
// the same pair. Resolution still breaks ties deterministically for rows
// that predate this check.
func (s *commissionService) rejectOverlap(ctx context.Context, baseCode, targetCode string, minAmount, maxAmount decimal.Decimal, excludeID string) error {
	overlapping, err := s.commissionRepo.ListOverlapping(ctx, baseCode, targetCode, minAmount, maxAmount, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check commission overlap: %w", err)
	}
	if len(overlapping) > 0 {
		existing := overlapping[0]
		return apperrors.NewConflictError(fmt.Sprintf(
			"range %s-%s overlaps existing tier %s-%s for pair %s-%s",
			minAmount, maxAmount,
			existing.Range.MinAmount, existing.Range.MaxAmount,
			baseCode, targetCode,
		))
	}
	return nil
}
