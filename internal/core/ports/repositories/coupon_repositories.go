package repositories

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/models"
)

// CouponFilter narrows coupon listings.
type CouponFilter struct {
	Type           models.CouponType
	SourceCurrency string // optional code filter
	TargetCurrency string
}

// CouponReader defines read operations for coupons.
type CouponReader interface {
	// FindCouponByID retrieves a coupon of the given type by ID.
	FindCouponByID(ctx context.Context, couponID string, couponType models.CouponType) (*models.Coupon, error)

	// FindCouponByCode retrieves a coupon of the given type by its code.
	FindCouponByCode(ctx context.Context, code string, couponType models.CouponType) (*models.Coupon, error)

	// ListCoupons retrieves coupons matching the filter, newest first.
	ListCoupons(ctx context.Context, filter CouponFilter) ([]models.Coupon, error)

	// FindAutomaticByPair retrieves active automatic coupons for the currency
	// pair, newest first. Validity-window and amount checks are the caller's.
	FindAutomaticByPair(ctx context.Context, sourceCode, targetCode string) ([]models.Coupon, error)
}

// CouponWriter defines write operations for coupons.
type CouponWriter interface {
	// SaveCoupon persists a new coupon; a duplicate code returns ErrDuplicate.
	SaveCoupon(ctx context.Context, coupon models.Coupon) error

	// UpdateCoupon updates coupon fields. times_used is never written here.
	UpdateCoupon(ctx context.Context, coupon models.Coupon) error

	// DeleteCoupon removes a coupon.
	DeleteCoupon(ctx context.Context, couponID string) error

	// RecordUse atomically increments times_used, failing with ErrConflict
	// when the increment would exceed max_uses. Exactly max_uses callers can
	// ever succeed, regardless of interleaving.
	RecordUse(ctx context.Context, couponID string) error
}

// CouponRepositoryFacade combines coupon repository interfaces.
type CouponRepositoryFacade interface {
	CouponReader
	CouponWriter
}
