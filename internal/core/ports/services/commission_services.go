package services

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
	"github.com/shopspring/decimal"
)

// RangeReaderSvc defines read operations for amount ranges
type RangeReaderSvc interface {
	// GetRangeByID retrieves a range by its identifier.
	GetRangeByID(ctx context.Context, rangeID string) (*models.AmountRange, error)

	// ListRanges retrieves all configured ranges.
	ListRanges(ctx context.Context) ([]models.AmountRange, error)
}

// RangeWriterSvc defines write operations for amount ranges
type RangeWriterSvc interface {
	// CreateRange persists a new range. A duplicate (min,max) pair is a
	// conflict that names the offending values.
	CreateRange(ctx context.Context, req dto.CreateRangeRequest, creatorUserID string) (*models.AmountRange, error)

	// UpdateRange replaces the bounds of an existing range.
	UpdateRange(ctx context.Context, rangeID string, req dto.CreateRangeRequest, updaterUserID string) (*models.AmountRange, error)

	// DeleteRange removes a range.
	DeleteRange(ctx context.Context, rangeID string) error
}

// RangeSvcFacade combines all range-related service interfaces
type RangeSvcFacade interface {
	RangeReaderSvc
	RangeWriterSvc
}

// CommissionReaderSvc defines read and resolution operations for the
// commission schedule.
type CommissionReaderSvc interface {
	// ResolveCommission picks the tier covering amount for the ordered pair.
	// Unknown pair is NotFound; a known pair whose tiers don't cover the
	// amount is Unprocessable.
	ResolveCommission(ctx context.Context, baseCode, targetCode string, amount decimal.Decimal) (*dto.ResolvedCommission, error)

	// ResolveReverseCommission resolves against the mirrored pair's row and
	// returns its reverse percentage.
	ResolveReverseCommission(ctx context.Context, baseCode, targetCode string, amount decimal.Decimal) (*dto.ResolvedCommission, error)

	// GetCommissionByID retrieves a schedule row by its identifier.
	GetCommissionByID(ctx context.Context, commissionID string) (*models.Commission, error)

	// GetCommissionByPairAndRange retrieves the row keyed by pair and bounds.
	GetCommissionByPairAndRange(ctx context.Context, baseCode, targetCode string, minAmount, maxAmount decimal.Decimal) (*models.Commission, error)

	// ListCommissions retrieves every schedule row with range details.
	ListCommissions(ctx context.Context) ([]models.Commission, error)

	// ListGroupedByPair returns tiers keyed "USD-PEN", ascending by min.
	ListGroupedByPair(ctx context.Context) (map[string][]dto.TierRate, error)

	// ListReverseGroupedByPair returns reverse tiers keyed by the mirrored
	// pair, e.g. a USD-PEN row contributes to "PEN-USD".
	ListReverseGroupedByPair(ctx context.Context) (map[string][]dto.TierRate, error)

	// ListRangeSummary returns the lowest and highest tier per pair.
	ListRangeSummary(ctx context.Context) ([]dto.PairRangeSummary, error)
}

// CommissionWriterSvc defines write operations for the commission schedule
type CommissionWriterSvc interface {
	// CreateCommission persists a new schedule row. A range overlapping an
	// existing tier of the same pair is a conflict.
	CreateCommission(ctx context.Context, req dto.CreateCommissionRequest, creatorUserID string) (*models.Commission, error)

	// UpdateCommission applies a partial update to a schedule row.
	UpdateCommission(ctx context.Context, commissionID string, req dto.UpdateCommissionRequest, updaterUserID string) (*models.Commission, error)

	// DeleteCommission removes a schedule row.
	DeleteCommission(ctx context.Context, commissionID string) error
}

// CommissionSvcFacade combines all commission-related service interfaces
type CommissionSvcFacade interface {
	CommissionReaderSvc
	CommissionWriterSvc
}
