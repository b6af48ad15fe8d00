package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	"github.com/brtdigital/remesa-backend/internal/models"
)

type PgxBankAccountRepository struct {
	BaseRepository
}

// newPgxBankAccountRepository creates a new repository for bank accounts.
func newPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

const bankAccountColumns = `bank_account_id, user_id, country, bank_name, holder_names, holder_surnames,
	document_number, account_type, business_name, ruc_number, legal_rep_name, legal_rep_document,
	account_number, cci_number, pix_key, pix_key_type, cpf, third_party, currency_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBankAccount(row pgx.Row) (*models.BankAccount, error) {
	var a models.BankAccount
	err := row.Scan(
		&a.BankAccountID,
		&a.UserID,
		&a.Country,
		&a.BankName,
		&a.HolderNames,
		&a.HolderSurname,
		&a.DocumentNum,
		&a.AccountType,
		&a.BusinessName,
		&a.RUCNumber,
		&a.LegalRepName,
		&a.LegalRepDocument,
		&a.AccountNumber,
		&a.CCINumber,
		&a.PixKey,
		&a.PixKeyType,
		&a.CPF,
		&a.ThirdParty,
		&a.CurrencyCode,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveBankAccount persists a new account.
func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account models.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.BankAccountID,
		account.UserID,
		account.Country,
		account.BankName,
		account.HolderNames,
		account.HolderSurname,
		account.DocumentNum,
		account.AccountType,
		account.BusinessName,
		account.RUCNumber,
		account.LegalRepName,
		account.LegalRepDocument,
		account.AccountNumber,
		account.CCINumber,
		account.PixKey,
		account.PixKeyType,
		account.CPF,
		account.ThirdParty,
		account.CurrencyCode,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bank account %s: %w", account.BankAccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves an account by ID.
func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, accountID string) (*models.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`
	account, err := scanBankAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find bank account %s: %w", accountID, err)
	}
	return account, nil
}

// ListBankAccounts retrieves active accounts; userID filters by owner when
// non-empty.
func (r *PgxBankAccountRepository) ListBankAccounts(ctx context.Context, userID string) ([]models.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE is_active = true AND ($1 = '' OR user_id = $1)
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.BankAccount, error) {
		account, err := scanBankAccount(row)
		if err != nil {
			return models.BankAccount{}, err
		}
		return *account, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan bank accounts: %w", err)
	}
	return accounts, nil
}

// UpdateBankAccount updates account fields.
func (r *PgxBankAccountRepository) UpdateBankAccount(ctx context.Context, account models.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET country = $2, bank_name = $3, holder_names = $4, holder_surnames = $5, document_number = $6,
			account_type = $7, business_name = $8, ruc_number = $9, legal_rep_name = $10, legal_rep_document = $11,
			account_number = $12, cci_number = $13, pix_key = $14, pix_key_type = $15, cpf = $16,
			third_party = $17, currency_code = $18, last_updated_at = $19, last_updated_by = $20
		WHERE bank_account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.BankAccountID,
		account.Country,
		account.BankName,
		account.HolderNames,
		account.HolderSurname,
		account.DocumentNum,
		account.AccountType,
		account.BusinessName,
		account.RUCNumber,
		account.LegalRepName,
		account.LegalRepDocument,
		account.AccountNumber,
		account.CCINumber,
		account.PixKey,
		account.PixKeyType,
		account.CPF,
		account.ThirdParty,
		account.CurrencyCode,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update bank account %s: %w", account.BankAccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, account.BankAccountID)
	}
	return nil
}

// DeactivateBankAccount soft-deletes an account.
func (r *PgxBankAccountRepository) DeactivateBankAccount(ctx context.Context, accountID, updaterUserID string) error {
	query := `
		UPDATE bank_accounts
		SET is_active = false, last_updated_at = $2, last_updated_by = $3
		WHERE bank_account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, time.Now(), updaterUserID)
	if err != nil {
		return fmt.Errorf("failed to deactivate bank account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}
