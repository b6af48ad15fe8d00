package services

import (
	"context"
	"time"

	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
	"github.com/shopspring/decimal"
)

// CouponReaderSvc defines read operations for coupons
type CouponReaderSvc interface {
	// GetCouponByID retrieves a coupon of the given type.
	GetCouponByID(ctx context.Context, couponID string, couponType models.CouponType) (*models.Coupon, error)

	// GetCouponByCode retrieves a manual coupon by its code.
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)

	// ListCoupons retrieves coupons matching the filter.
	ListCoupons(ctx context.Context, filter dto.CouponListFilter) ([]models.Coupon, error)

	// FindApplicable returns the coupon to apply to a transfer, or nil when
	// none applies. A manual code that exists but fails an applicability
	// check is an error; an automatic search that finds nothing is not.
	FindApplicable(ctx context.Context, code, sourceCode, targetCode string, amount decimal.Decimal, now time.Time) (*models.Coupon, error)
}

// CouponWriterSvc defines write operations for coupons
type CouponWriterSvc interface {
	// CreateCoupon persists a new coupon of the given type.
	CreateCoupon(ctx context.Context, req dto.CreateCouponRequest, couponType models.CouponType, creatorUserID string) (*models.Coupon, error)

	// UpdateCoupon applies a partial update to a coupon of the given type.
	UpdateCoupon(ctx context.Context, couponID string, req dto.UpdateCouponRequest, couponType models.CouponType, updaterUserID string) (*models.Coupon, error)

	// DeleteCoupon removes a coupon of the given type.
	DeleteCoupon(ctx context.Context, couponID string, couponType models.CouponType) error

	// RecordUse consumes one use of a capped coupon. At most max_uses calls
	// succeed; later callers get a conflict.
	RecordUse(ctx context.Context, couponID string) error
}

// CouponSvcFacade combines all coupon-related service interfaces
type CouponSvcFacade interface {
	CouponReaderSvc
	CouponWriterSvc
}
