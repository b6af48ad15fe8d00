package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	"github.com/brtdigital/remesa-backend/internal/models"
)

type PgxCouponRepository struct {
	BaseRepository
}

// newPgxCouponRepository creates a new repository for coupons.
func newPgxCouponRepository(pool *pgxpool.Pool) portsrepo.CouponRepositoryFacade {
	return &PgxCouponRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CouponRepositoryFacade = (*PgxCouponRepository)(nil)

// code is stored NULL when empty so the unique index ignores codeless
// automatic coupons.
const couponColumns = `coupon_id, COALESCE(code, ''), description, discount_percentage, start_date, end_date,
	source_currency_code, target_currency_code, max_uses, times_used, minimum_amount, type, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCoupon(row pgx.Row) (*models.Coupon, error) {
	var c models.Coupon
	err := row.Scan(
		&c.CouponID,
		&c.Code,
		&c.Description,
		&c.DiscountPercentage,
		&c.StartDate,
		&c.EndDate,
		&c.SourceCurrencyCode,
		&c.TargetCurrencyCode,
		&c.MaxUses,
		&c.TimesUsed,
		&c.MinimumAmount,
		&c.Type,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCoupons(rows pgx.Rows) ([]models.Coupon, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Coupon, error) {
		c, err := scanCoupon(row)
		if err != nil {
			return models.Coupon{}, err
		}
		return *c, nil
	})
}

// SaveCoupon persists a new coupon.
func (r *PgxCouponRepository) SaveCoupon(ctx context.Context, coupon models.Coupon) error {
	query := `
		INSERT INTO coupons (coupon_id, code, description, discount_percentage, start_date, end_date,
			source_currency_code, target_currency_code, max_uses, times_used, minimum_amount, type, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		coupon.CouponID,
		coupon.Code,
		coupon.Description,
		coupon.DiscountPercentage,
		coupon.StartDate,
		coupon.EndDate,
		coupon.SourceCurrencyCode,
		coupon.TargetCurrencyCode,
		coupon.MaxUses,
		coupon.TimesUsed,
		coupon.MinimumAmount,
		coupon.Type,
		coupon.IsActive,
		coupon.CreatedAt,
		coupon.CreatedBy,
		coupon.LastUpdatedAt,
		coupon.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: coupon code %s already exists", apperrors.ErrDuplicate, coupon.Code)
		}
		return fmt.Errorf("failed to save coupon %s: %w", coupon.CouponID, err)
	}
	return nil
}

// FindCouponByID retrieves a coupon of the given type by ID.
func (r *PgxCouponRepository) FindCouponByID(ctx context.Context, couponID string, couponType models.CouponType) (*models.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE coupon_id = $1 AND type = $2;`
	c, err := scanCoupon(r.Pool.QueryRow(ctx, query, couponID, couponType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s coupon %s", apperrors.ErrNotFound, couponType, couponID)
		}
		return nil, fmt.Errorf("failed to find coupon %s: %w", couponID, err)
	}
	return c, nil
}

// FindCouponByCode retrieves a coupon of the given type by its code.
func (r *PgxCouponRepository) FindCouponByCode(ctx context.Context, code string, couponType models.CouponType) (*models.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1 AND type = $2;`
	c, err := scanCoupon(r.Pool.QueryRow(ctx, query, code, couponType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: coupon with code %s", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find coupon by code %s: %w", code, err)
	}
	return c, nil
}

// ListCoupons retrieves coupons matching the filter, newest first.
func (r *PgxCouponRepository) ListCoupons(ctx context.Context, filter portsrepo.CouponFilter) ([]models.Coupon, error) {
	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = '' OR source_currency_code = $2)
		  AND ($3 = '' OR target_currency_code = $3)
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, string(filter.Type), filter.SourceCurrency, filter.TargetCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	coupons, err := collectCoupons(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan coupons: %w", err)
	}
	return coupons, nil
}

// FindAutomaticByPair retrieves active automatic coupons for the pair,
// newest first.
func (r *PgxCouponRepository) FindAutomaticByPair(ctx context.Context, sourceCode, targetCode string) ([]models.Coupon, error) {
	query := `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE type = $1 AND is_active = true
		  AND source_currency_code = $2 AND target_currency_code = $3
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, models.CouponAutomatic, sourceCode, targetCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query automatic coupons: %w", err)
	}
	defer rows.Close()

	coupons, err := collectCoupons(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan automatic coupons: %w", err)
	}
	return coupons, nil
}

// UpdateCoupon updates coupon fields. times_used only moves via RecordUse.
func (r *PgxCouponRepository) UpdateCoupon(ctx context.Context, coupon models.Coupon) error {
	query := `
		UPDATE coupons
		SET code = NULLIF($2, ''), description = $3, discount_percentage = $4, start_date = $5, end_date = $6,
			source_currency_code = $7, target_currency_code = $8, max_uses = $9, minimum_amount = $10,
			is_active = $11, last_updated_at = $12, last_updated_by = $13
		WHERE coupon_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		coupon.CouponID,
		coupon.Code,
		coupon.Description,
		coupon.DiscountPercentage,
		coupon.StartDate,
		coupon.EndDate,
		coupon.SourceCurrencyCode,
		coupon.TargetCurrencyCode,
		coupon.MaxUses,
		coupon.MinimumAmount,
		coupon.IsActive,
		coupon.LastUpdatedAt,
		coupon.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: coupon code %s already exists", apperrors.ErrDuplicate, coupon.Code)
		}
		return fmt.Errorf("failed to update coupon %s: %w", coupon.CouponID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: coupon %s", apperrors.ErrNotFound, coupon.CouponID)
	}
	return nil
}

// DeleteCoupon removes a coupon.
func (r *PgxCouponRepository) DeleteCoupon(ctx context.Context, couponID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM coupons WHERE coupon_id = $1;`, couponID)
	if err != nil {
		return fmt.Errorf("failed to delete coupon %s: %w", couponID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: coupon %s", apperrors.ErrNotFound, couponID)
	}
	return nil
}

// RecordUse consumes one use of the coupon. The conditional update is the
// cap: once times_used reaches max_uses no concurrent caller can increment
// past it, so exactly max_uses uses ever succeed.
func (r *PgxCouponRepository) RecordUse(ctx context.Context, couponID string) error {
	query := `
		UPDATE coupons
		SET times_used = times_used + 1, last_updated_at = $2
		WHERE coupon_id = $1
		  AND is_active = true
		  AND (max_uses IS NULL OR times_used < max_uses);
	`
	tag, err := r.Pool.Exec(ctx, query, couponID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record coupon use %s: %w", couponID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM coupons WHERE coupon_id = $1);`, couponID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check coupon %s: %w", couponID, err)
	}
	if !exists {
		return fmt.Errorf("%w: coupon %s", apperrors.ErrNotFound, couponID)
	}
	return fmt.Errorf("%w: cupón agotado", apperrors.ErrConflict)
}
