package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	"github.com/brtdigital/remesa-backend/internal/models"
	"github.com/brtdigital/remesa-backend/internal/utils"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the transfer
// ledger.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `id, user_id, seller_id, transaction_id, origin_account_id, destination_account_id,
	source_amount, source_currency_code, destination_amount, destination_currency_code,
	commission, taxes, total_send,
	cupon_commission, cupon_taxes, cupon_total_send, cupon_source_amount, cupon_destination_amount,
	exchange_rate, payment_method, status, payment_voucher, admin_voucher, coupon_id, reason_cancel,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.SellerID,
		&t.TransactionID,
		&t.OriginAccountID,
		&t.DestinationAccountID,
		&t.SourceAmount,
		&t.SourceCurrencyCode,
		&t.DestinationAmount,
		&t.DestinationCurrencyCode,
		&t.Commission,
		&t.Taxes,
		&t.TotalSend,
		&t.CuponCommission,
		&t.CuponTaxes,
		&t.CuponTotalSend,
		&t.CuponSourceAmount,
		&t.CuponDestinationAmount,
		&t.ExchangeRate,
		&t.PaymentMethod,
		&t.Status,
		&t.PaymentVoucher,
		&t.AdminVoucher,
		&t.CouponID,
		&t.ReasonCancel,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTransaction persists the transfer as one atomic unit. The upsert on
// the day's counter row takes a row lock, so concurrent same-day creations
// serialise here: each one sees a distinct sequence number and a consistent
// view of the last assigned seller.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	day := txn.CreatedAt
	if day.IsZero() {
		day = time.Now()
	}

	var seq int64
	seqQuery := `
		INSERT INTO daily_sequences (day, counter)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET counter = daily_sequences.counter + 1
		RETURNING counter;
	`
	if err := tx.QueryRow(ctx, seqQuery, day.Format("2006-01-02")).Scan(&seq); err != nil {
		return fmt.Errorf("failed to allocate daily sequence: %w", err)
	}

	var sourceName, destName string
	nameQuery := `SELECT name FROM currencies WHERE currency_code = $1;`
	if err := tx.QueryRow(ctx, nameQuery, txn.SourceCurrencyCode).Scan(&sourceName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, txn.SourceCurrencyCode)
		}
		return fmt.Errorf("failed to load source currency name: %w", err)
	}
	if err := tx.QueryRow(ctx, nameQuery, txn.DestinationCurrencyCode).Scan(&destName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, txn.DestinationCurrencyCode)
		}
		return fmt.Errorf("failed to load destination currency name: %w", err)
	}

	txn.TransactionID = utils.ComposeTransactionID(sourceName, destName, day, seq)

	if txn.SellerID == nil {
		sellerID, err := r.pickSeller(ctx, tx)
		if err != nil {
			return err
		}
		if sellerID != "" {
			txn.SellerID = &sellerID
		}
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}

	insertQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29);
	`
	_, err = tx.Exec(ctx, insertQuery,
		txn.ID,
		txn.UserID,
		txn.SellerID,
		txn.TransactionID,
		txn.OriginAccountID,
		txn.DestinationAccountID,
		txn.SourceAmount,
		txn.SourceCurrencyCode,
		txn.DestinationAmount,
		txn.DestinationCurrencyCode,
		txn.Commission,
		txn.Taxes,
		txn.TotalSend,
		txn.CuponCommission,
		txn.CuponTaxes,
		txn.CuponTotalSend,
		txn.CuponSourceAmount,
		txn.CuponDestinationAmount,
		txn.ExchangeRate,
		txn.PaymentMethod,
		txn.Status,
		txn.PaymentVoucher,
		txn.AdminVoucher,
		txn.CouponID,
		txn.ReasonCancel,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction ID %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// pickSeller applies the rotation: the eligible user after the last assigned
// seller in user-ID order, wrapping around; a random eligible user when no
// prior assignment exists or the prior seller left the pool. Runs inside the
// creation transaction, which the daily counter lock already serialises.
func (r *PgxTransactionRepository) pickSeller(ctx context.Context, tx pgx.Tx) (string, error) {
	eligibleQuery := `
		SELECT user_id, email, first_name, last_name, role, is_active
		FROM users
		WHERE is_active = true AND role IN ('sales', 'staff')
		ORDER BY user_id;
	`
	rows, err := tx.Query(ctx, eligibleQuery)
	if err != nil {
		return "", fmt.Errorf("failed to query eligible sellers: %w", err)
	}
	defer rows.Close()

	eligible, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.User, error) {
		var u models.User
		err := row.Scan(&u.UserID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.IsActive)
		return u, err
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan eligible sellers: %w", err)
	}
	if len(eligible) == 0 {
		return "", nil
	}

	var lastSellerID string
	lastQuery := `
		SELECT seller_id FROM transactions
		WHERE seller_id IS NOT NULL
		ORDER BY created_at DESC
		LIMIT 1;
	`
	err = tx.QueryRow(ctx, lastQuery).Scan(&lastSellerID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("failed to query last assigned seller: %w", err)
	}

	return utils.NextSellerID(eligible, lastSellerID), nil
}

// FindTransactionByID retrieves a transaction by surrogate ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", id, err)
	}
	return txn, nil
}

// ListTransactionsByUser retrieves a user's transactions, newest first.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListTransactions retrieves transactions matching the filter, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		txn, err := scanTransaction(row)
		if err != nil {
			return models.Transaction{}, err
		}
		return *txn, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return txns, nil
}

// UpdateStatus sets the lifecycle status; the cancel reason is only written
// for cancellations. The WHERE clause re-checks the status the caller
// observed, so a transition raced by another writer affects zero rows
// instead of clobbering the newer state.
func (r *PgxTransactionRepository) UpdateStatus(ctx context.Context, id string, fromStatus, status models.TransactionStatus, reason, updaterUserID string) error {
	query := `
		UPDATE transactions
		SET status = $3,
			reason_cancel = CASE WHEN $3 = 'cancelled' THEN $4 ELSE reason_cancel END,
			last_updated_at = $5, last_updated_by = $6
		WHERE id = $1 AND status = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, id, fromStatus, status, reason, time.Now(), updaterUserID)
	if err != nil {
		return fmt.Errorf("failed to update transaction status %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return r.explainMissedWrite(ctx, id, fmt.Errorf("%w: transaction %s was updated concurrently", apperrors.ErrConflict, id))
	}
	return nil
}

// AttachAdminVoucher records the voucher path and forces completed. Cancelled
// rows are excluded in the WHERE clause: a cancellation landing between the
// service's read and this write must win, never be flipped to completed.
func (r *PgxTransactionRepository) AttachAdminVoucher(ctx context.Context, id, voucherPath, updaterUserID string) error {
	query := `
		UPDATE transactions
		SET admin_voucher = $2, status = 'completed', last_updated_at = $3, last_updated_by = $4
		WHERE id = $1 AND status <> 'cancelled';
	`
	tag, err := r.Pool.Exec(ctx, query, id, voucherPath, time.Now(), updaterUserID)
	if err != nil {
		return fmt.Errorf("failed to attach admin voucher to %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return r.explainMissedWrite(ctx, id, fmt.Errorf("%w: transaction %s is cancelled", apperrors.ErrUnprocessable, id))
	}
	return nil
}

// explainMissedWrite disambiguates a zero-row guarded UPDATE: the row either
// does not exist (not found) or exists in a state the guard excluded, in
// which case the caller's error describes the refusal.
func (r *PgxTransactionRepository) explainMissedWrite(ctx context.Context, id string, refusal error) error {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1);`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check transaction %s after missed write: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, id)
	}
	return refusal
}
