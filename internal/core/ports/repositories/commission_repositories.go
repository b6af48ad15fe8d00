package repositories

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/models"
	"github.com/shopspring/decimal"
)

// RangeReader defines read operations for amount tiers.
type RangeReader interface {
	// FindRangeByID retrieves a tier by ID.
	FindRangeByID(ctx context.Context, rangeID string) (*models.AmountRange, error)

	// ListRanges retrieves all tiers ordered by min_amount.
	ListRanges(ctx context.Context) ([]models.AmountRange, error)
}

// RangeWriter defines write operations for amount tiers.
type RangeWriter interface {
	// SaveRange persists a new tier. A duplicate (min, max) pair returns
	// ErrDuplicate naming the offending values.
	SaveRange(ctx context.Context, r models.AmountRange) error

	// UpdateRange replaces min/max of an existing tier.
	UpdateRange(ctx context.Context, r models.AmountRange) error

	// DeleteRange removes a tier; commissions referencing it cascade.
	DeleteRange(ctx context.Context, rangeID string) error
}

// RangeRepositoryFacade combines tier repository interfaces.
type RangeRepositoryFacade interface {
	RangeReader
	RangeWriter
}

// CommissionReader defines read operations for the commission schedule.
type CommissionReader interface {
	// FindCommissionByID retrieves a schedule row with its tier loaded.
	FindCommissionByID(ctx context.Context, commissionID string) (*models.Commission, error)

	// FindCommissionByPairAndRange retrieves the row keyed on
	// (base, target, min, max).
	FindCommissionByPairAndRange(ctx context.Context, baseCode, targetCode string, minAmount, maxAmount decimal.Decimal) (*models.Commission, error)

	// ResolveForAmount finds the schedule row for (base, target) whose tier
	// contains amount. Overlapping tiers resolve deterministically: the
	// narrowest tier wins, then the lowest min_amount. An unknown pair
	// returns ErrNotFound; a known pair with no tier covering the amount
	// returns ErrUnprocessable.
	ResolveForAmount(ctx context.Context, baseCode, targetCode string, amount decimal.Decimal) (*models.Commission, error)

	// ListCommissions retrieves all schedule rows with tiers, ordered by
	// pair then ascending min_amount.
	ListCommissions(ctx context.Context) ([]models.Commission, error)

	// ListOverlapping returns the schedule rows for (base, target) whose tier
	// overlaps [minAmount, maxAmount], excluding excludeID when non-empty.
	ListOverlapping(ctx context.Context, baseCode, targetCode string, minAmount, maxAmount decimal.Decimal, excludeID string) ([]models.Commission, error)
}

// CommissionWriter defines write operations for the commission schedule.
type CommissionWriter interface {
	// SaveCommission persists a new schedule row; a duplicate
	// (base, target, range) triplet returns ErrDuplicate.
	SaveCommission(ctx context.Context, c models.Commission) error

	// UpdateCommission updates the percentages and/or tier of a row.
	UpdateCommission(ctx context.Context, c models.Commission) error

	// DeleteCommission removes a schedule row.
	DeleteCommission(ctx context.Context, commissionID string) error
}

// CommissionRepositoryFacade combines schedule repository interfaces.
type CommissionRepositoryFacade interface {
	CommissionReader
	CommissionWriter
}
