package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	"github.com/brtdigital/remesa-backend/internal/models"
)

type PgxCommissionRepository struct {
	BaseRepository
}

// newPgxCommissionRepository creates a new repository for the commission
// schedule.
func newPgxCommissionRepository(pool *pgxpool.Pool) portsrepo.CommissionRepositoryFacade {
	return &PgxCommissionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CommissionRepositoryFacade = (*PgxCommissionRepository)(nil)

// commissionSelect joins each schedule row with its tier so callers always
// get the bounds loaded.
const commissionSelect = `
	SELECT c.commission_id, c.base_currency_code, c.target_currency_code,
	       c.commission_percentage, c.reverse_commission,
	       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by,
	       r.range_id, r.min_amount, r.max_amount,
	       r.created_at, r.created_by, r.last_updated_at, r.last_updated_by
	FROM commissions c
	JOIN ranges r ON r.range_id = c.range_id`

func scanCommission(row pgx.Row) (*models.Commission, error) {
	var c models.Commission
	err := row.Scan(
		&c.CommissionID,
		&c.BaseCurrencyCode,
		&c.TargetCurrencyCode,
		&c.CommissionPercentage,
		&c.ReverseCommission,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
		&c.Range.RangeID,
		&c.Range.MinAmount,
		&c.Range.MaxAmount,
		&c.Range.CreatedAt,
		&c.Range.CreatedBy,
		&c.Range.LastUpdatedAt,
		&c.Range.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	c.RangeID = c.Range.RangeID
	return &c, nil
}

func collectCommissions(rows pgx.Rows) ([]models.Commission, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Commission, error) {
		c, err := scanCommission(row)
		if err != nil {
			return models.Commission{}, err
		}
		return *c, nil
	})
}

// SaveCommission persists a new schedule row.
func (r *PgxCommissionRepository) SaveCommission(ctx context.Context, c models.Commission) error {
	query := `
		INSERT INTO commissions (commission_id, base_currency_code, target_currency_code, range_id,
			commission_percentage, reverse_commission, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		c.CommissionID,
		c.BaseCurrencyCode,
		c.TargetCurrencyCode,
		c.RangeID,
		c.CommissionPercentage,
		c.ReverseCommission,
		c.CreatedAt,
		c.CreatedBy,
		c.LastUpdatedAt,
		c.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: commission for %s-%s with range %s already exists",
				apperrors.ErrDuplicate, c.BaseCurrencyCode, c.TargetCurrencyCode, c.RangeID)
		}
		return fmt.Errorf("failed to save commission %s: %w", c.CommissionID, err)
	}
	return nil
}

// FindCommissionByID retrieves a schedule row with its tier loaded.
func (r *PgxCommissionRepository) FindCommissionByID(ctx context.Context, commissionID string) (*models.Commission, error) {
	query := commissionSelect + ` WHERE c.commission_id = $1;`
	c, err := scanCommission(r.Pool.QueryRow(ctx, query, commissionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: commission %s", apperrors.ErrNotFound, commissionID)
		}
		return nil, fmt.Errorf("failed to find commission %s: %w", commissionID, err)
	}
	return c, nil
}

// FindCommissionByPairAndRange retrieves the row keyed on pair and bounds.
func (r *PgxCommissionRepository) FindCommissionByPairAndRange(ctx context.Context, baseCode, targetCode string, minAmount, maxAmount decimal.Decimal) (*models.Commission, error) {
	query := commissionSelect + `
	WHERE c.base_currency_code = $1 AND c.target_currency_code = $2
	  AND r.min_amount = $3 AND r.max_amount = $4;`
	c, err := scanCommission(r.Pool.QueryRow(ctx, query, baseCode, targetCode, minAmount, maxAmount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: commission for %s-%s range %s-%s",
				apperrors.ErrNotFound, baseCode, targetCode, minAmount, maxAmount)
		}
		return nil, fmt.Errorf("failed to find commission for %s-%s: %w", baseCode, targetCode, err)
	}
	return c, nil
}

// ResolveForAmount picks the schedule row covering the amount. When tiers
// overlap the narrowest wins, then the lowest min_amount, so resolution is
// deterministic regardless of insertion order.
func (r *PgxCommissionRepository) ResolveForAmount(ctx context.Context, baseCode, targetCode string, amount decimal.Decimal) (*models.Commission, error) {
	query := commissionSelect + `
	WHERE c.base_currency_code = $1 AND c.target_currency_code = $2
	  AND $3 >= r.min_amount AND $3 <= r.max_amount
	ORDER BY (r.max_amount - r.min_amount) ASC, r.min_amount ASC
	LIMIT 1;`
	c, err := scanCommission(r.Pool.QueryRow(ctx, query, baseCode, targetCode, amount))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to resolve commission for %s-%s: %w", baseCode, targetCode, err)
	}

	// Distinguish an unknown pair from an uncovered amount.
	var pairExists bool
	existsQuery := `SELECT EXISTS (SELECT 1 FROM commissions WHERE base_currency_code = $1 AND target_currency_code = $2);`
	if err := r.Pool.QueryRow(ctx, existsQuery, baseCode, targetCode).Scan(&pairExists); err != nil {
		return nil, fmt.Errorf("failed to check commission pair %s-%s: %w", baseCode, targetCode, err)
	}
	if !pairExists {
		return nil, fmt.Errorf("%w: no commission schedule for pair %s-%s", apperrors.ErrNotFound, baseCode, targetCode)
	}
	return nil, fmt.Errorf("%w: no commission tier covers amount %s for pair %s-%s",
		apperrors.ErrUnprocessable, amount, baseCode, targetCode)
}

// ListCommissions retrieves all schedule rows ordered by pair then tier.
func (r *PgxCommissionRepository) ListCommissions(ctx context.Context) ([]models.Commission, error) {
	query := commissionSelect + `
	ORDER BY c.base_currency_code, c.target_currency_code, r.min_amount;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query commissions: %w", err)
	}
	defer rows.Close()

	commissions, err := collectCommissions(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan commissions: %w", err)
	}
	return commissions, nil
}

// ListOverlapping returns the pair's rows whose tier intersects the bounds.
func (r *PgxCommissionRepository) ListOverlapping(ctx context.Context, baseCode, targetCode string, minAmount, maxAmount decimal.Decimal, excludeID string) ([]models.Commission, error) {
	query := commissionSelect + `
	WHERE c.base_currency_code = $1 AND c.target_currency_code = $2
	  AND r.min_amount <= $4 AND r.max_amount >= $3
	  AND ($5 = '' OR c.commission_id <> $5)
	ORDER BY r.min_amount;`
	rows, err := r.Pool.Query(ctx, query, baseCode, targetCode, minAmount, maxAmount, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping commissions: %w", err)
	}
	defer rows.Close()

	commissions, err := collectCommissions(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan overlapping commissions: %w", err)
	}
	return commissions, nil
}

// UpdateCommission updates the percentages and/or tier of a row.
func (r *PgxCommissionRepository) UpdateCommission(ctx context.Context, c models.Commission) error {
	query := `
		UPDATE commissions
		SET range_id = $2, commission_percentage = $3, reverse_commission = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE commission_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		c.CommissionID,
		c.RangeID,
		c.CommissionPercentage,
		c.ReverseCommission,
		c.LastUpdatedAt,
		c.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: commission for %s-%s with range %s already exists",
				apperrors.ErrDuplicate, c.BaseCurrencyCode, c.TargetCurrencyCode, c.RangeID)
		}
		return fmt.Errorf("failed to update commission %s: %w", c.CommissionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: commission %s", apperrors.ErrNotFound, c.CommissionID)
	}
	return nil
}

// DeleteCommission removes a schedule row.
func (r *PgxCommissionRepository) DeleteCommission(ctx context.Context, commissionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM commissions WHERE commission_id = $1;`, commissionID)
	if err != nil {
		return fmt.Errorf("failed to delete commission %s: %w", commissionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: commission %s", apperrors.ErrNotFound, commissionID)
	}
	return nil
}
