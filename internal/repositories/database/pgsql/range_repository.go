package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	"github.com/brtdigital/remesa-backend/internal/models"
)

type PgxRangeRepository struct {
	BaseRepository
}

// newPgxRangeRepository creates a new repository for amount tiers.
func newPgxRangeRepository(pool *pgxpool.Pool) portsrepo.RangeRepositoryFacade {
	return &PgxRangeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RangeRepositoryFacade = (*PgxRangeRepository)(nil)

const rangeColumns = `range_id, min_amount, max_amount, created_at, created_by, last_updated_at, last_updated_by`

func scanRange(row pgx.Row) (*models.AmountRange, error) {
	var r models.AmountRange
	err := row.Scan(
		&r.RangeID,
		&r.MinAmount,
		&r.MaxAmount,
		&r.CreatedAt,
		&r.CreatedBy,
		&r.LastUpdatedAt,
		&r.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SaveRange persists a new tier. The duplicate message names the offending
// bounds because the admin UI shows it verbatim.
func (r *PgxRangeRepository) SaveRange(ctx context.Context, tier models.AmountRange) error {
	query := `
		INSERT INTO ranges (` + rangeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		tier.RangeID,
		tier.MinAmount,
		tier.MaxAmount,
		tier.CreatedAt,
		tier.CreatedBy,
		tier.LastUpdatedAt,
		tier.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: ya existe un rango con monto mínimo %s y monto máximo %s",
				apperrors.ErrDuplicate, tier.MinAmount, tier.MaxAmount)
		}
		return fmt.Errorf("failed to save range %s: %w", tier.RangeID, err)
	}
	return nil
}

// FindRangeByID retrieves a tier by ID.
func (r *PgxRangeRepository) FindRangeByID(ctx context.Context, rangeID string) (*models.AmountRange, error) {
	query := `SELECT ` + rangeColumns + ` FROM ranges WHERE range_id = $1;`
	tier, err := scanRange(r.Pool.QueryRow(ctx, query, rangeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: range %s", apperrors.ErrNotFound, rangeID)
		}
		return nil, fmt.Errorf("failed to find range %s: %w", rangeID, err)
	}
	return tier, nil
}

// ListRanges retrieves all tiers ordered by min_amount.
func (r *PgxRangeRepository) ListRanges(ctx context.Context) ([]models.AmountRange, error) {
	query := `SELECT ` + rangeColumns + ` FROM ranges ORDER BY min_amount, max_amount;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranges: %w", err)
	}
	defer rows.Close()

	tiers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AmountRange, error) {
		tier, err := scanRange(row)
		if err != nil {
			return models.AmountRange{}, err
		}
		return *tier, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ranges: %w", err)
	}
	return tiers, nil
}

// UpdateRange replaces min/max of an existing tier.
func (r *PgxRangeRepository) UpdateRange(ctx context.Context, tier models.AmountRange) error {
	query := `
		UPDATE ranges
		SET min_amount = $2, max_amount = $3, last_updated_at = $4, last_updated_by = $5
		WHERE range_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		tier.RangeID,
		tier.MinAmount,
		tier.MaxAmount,
		tier.LastUpdatedAt,
		tier.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: ya existe un rango con monto mínimo %s y monto máximo %s",
				apperrors.ErrDuplicate, tier.MinAmount, tier.MaxAmount)
		}
		return fmt.Errorf("failed to update range %s: %w", tier.RangeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: range %s", apperrors.ErrNotFound, tier.RangeID)
	}
	return nil
}

// DeleteRange removes a tier; commissions referencing it cascade.
func (r *PgxRangeRepository) DeleteRange(ctx context.Context, rangeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ranges WHERE range_id = $1;`, rangeID)
	if err != nil {
		return fmt.Errorf("failed to delete range %s: %w", rangeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: range %s", apperrors.ErrNotFound, rangeID)
	}
	return nil
}
