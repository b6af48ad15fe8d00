package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	"github.com/brtdigital/remesa-backend/internal/models"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, base_currency_code, target_currency_code, rate, created_at, created_by, last_updated_at, last_updated_by`

func scanExchangeRate(row pgx.Row) (*models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := row.Scan(
		&rate.ExchangeRateID,
		&rate.BaseCurrencyCode,
		&rate.TargetCurrencyCode,
		&rate.Rate,
		&rate.CreatedAt,
		&rate.CreatedBy,
		&rate.LastUpdatedAt,
		&rate.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// UpsertExchangeRate inserts the pair's row or replaces its rate. One row
// per ordered pair; the mirrored direction is a separate row.
func (r *PgxExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate models.ExchangeRate) (*models.ExchangeRate, error) {
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (base_currency_code, target_currency_code) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + exchangeRateColumns + `;
	`
	saved, err := scanExchangeRate(r.Pool.QueryRow(ctx, query,
		rate.ExchangeRateID,
		rate.BaseCurrencyCode,
		rate.TargetCurrencyCode,
		rate.Rate,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert exchange rate %s-%s: %w", rate.BaseCurrencyCode, rate.TargetCurrencyCode, err)
	}
	return saved, nil
}

// FindRateByPair retrieves the row for an ordered pair. No inverse fallback.
func (r *PgxExchangeRateRepository) FindRateByPair(ctx context.Context, baseCode, targetCode string) (*models.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE base_currency_code = $1 AND target_currency_code = $2;
	`
	rate, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, baseCode, targetCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no exchange rate for %s-%s", apperrors.ErrNotFound, baseCode, targetCode)
		}
		return nil, fmt.Errorf("failed to find exchange rate %s-%s: %w", baseCode, targetCode, err)
	}
	return rate, nil
}

// FindExchangeRateByID retrieves a rate row by its surrogate ID.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*models.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE exchange_rate_id = $1;
	`
	rate, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: exchange rate %s", apperrors.ErrNotFound, rateID)
		}
		return nil, fmt.Errorf("failed to find exchange rate %s: %w", rateID, err)
	}
	return rate, nil
}

// ListExchangeRates retrieves all rate rows ordered by pair.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]models.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		ORDER BY base_currency_code, target_currency_code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		rate, err := scanExchangeRate(row)
		if err != nil {
			return models.ExchangeRate{}, err
		}
		return *rate, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}
	return rates, nil
}

// DeleteExchangeRate removes a rate row by ID.
func (r *PgxExchangeRateRepository) DeleteExchangeRate(ctx context.Context, rateID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM exchange_rates WHERE exchange_rate_id = $1;`, rateID)
	if err != nil {
		return fmt.Errorf("failed to delete exchange rate %s: %w", rateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: exchange rate %s", apperrors.ErrNotFound, rateID)
	}
	return nil
}
