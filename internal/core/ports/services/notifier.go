package services

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/models"
)

// Notifier sends transfer lifecycle emails. Implementations must be safe for
// concurrent use; callers treat delivery as best-effort and never let a
// failure affect the originating operation.
type Notifier interface {
	// SendTransactionReceived notifies the client that the transfer was
	// registered.
	SendTransactionReceived(ctx context.Context, recipient string, recipientName string, txn *models.Transaction) error

	// SendTransactionCompleted notifies the client that the transfer was
	// paid out.
	SendTransactionCompleted(ctx context.Context, recipient string, recipientName string, txn *models.Transaction) error
}
