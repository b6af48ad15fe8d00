package repositories

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/models"
)

// TransactionListFilter narrows the staff transaction listing.
type TransactionListFilter struct {
	Status models.TransactionStatus // optional
}

// TransactionReader defines read operations for the ledger.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by surrogate ID.
	FindTransactionByID(ctx context.Context, id string) (*models.Transaction, error)

	// ListTransactionsByUser retrieves a user's transactions, newest first.
	ListTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error)

	// ListTransactions retrieves all transactions matching the filter,
	// newest first.
	ListTransactions(ctx context.Context, filter TransactionListFilter) ([]models.Transaction, error)
}

// TransactionWriter defines write operations for the ledger.
type TransactionWriter interface {
	// CreateTransaction persists the transaction as a single atomic unit:
	// it allocates the day's next sequence number under a row lock, composes
	// the business transaction ID, assigns a seller via round-robin when
	// txn.SellerID is nil, and inserts the row. The lock on the day's counter
	// row serialises concurrent same-day creations. A transaction_id
	// collision (which the counter should preclude) returns ErrDuplicate so
	// the caller can retry with a re-derived sequence.
	// TransactionID and SellerID are filled in on return.
	CreateTransaction(ctx context.Context, txn *models.Transaction) error

	// UpdateStatus sets the lifecycle status, guarded on the status the
	// caller observed: the write only lands while the row still holds
	// fromStatus, so a concurrent transition cannot be silently overwritten.
	// Returns ErrConflict when the row moved on in the meantime. The reason
	// is persisted for cancellations. Legality of the transition is the
	// service's concern.
	UpdateStatus(ctx context.Context, id string, fromStatus, status models.TransactionStatus, reason, updaterUserID string) error

	// AttachAdminVoucher records the admin voucher path and forces the
	// status to completed. Refuses cancelled rows with ErrUnprocessable so
	// a cancellation racing the attach can never be undone.
	AttachAdminVoucher(ctx context.Context, id, voucherPath, updaterUserID string) error
}

// TransactionRepositoryFacade combines ledger repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
