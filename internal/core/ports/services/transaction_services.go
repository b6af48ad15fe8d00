package services

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
)

// TransactionReaderSvc defines read operations for transfers
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transfer by its identifier.
	GetTransactionByID(ctx context.Context, transactionID string) (*models.Transaction, error)

	// GetTransactionDetail retrieves a transfer with its related accounts,
	// currency and seller embedded.
	GetTransactionDetail(ctx context.Context, transactionID string) (*dto.TransactionDetailResponse, error)

	// ListTransactionsByUser retrieves a user's transfer history.
	ListTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error)

	// ListTransactions retrieves transfers for staff, optionally by status.
	ListTransactions(ctx context.Context, filter dto.TransactionListFilter) ([]models.Transaction, error)
}

// TransactionWriterSvc defines write operations for transfers
type TransactionWriterSvc interface {
	// CreateTransaction computes the monetary breakdown, applies any coupon,
	// generates the business identifier, assigns a seller and persists the
	// transfer as one atomic unit.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*models.Transaction, error)

	// UpdateStatus moves a transfer to the next lifecycle state. Illegal
	// transitions are rejected.
	UpdateStatus(ctx context.Context, transactionID string, req dto.UpdateTransactionStatusRequest, updaterUserID string) (*models.Transaction, error)

	// AttachAdminVoucher stores the staff voucher and completes the transfer.
	// A cancelled transfer rejects the upload.
	AttachAdminVoucher(ctx context.Context, transactionID string, voucherPath string, updaterUserID string) (*models.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
