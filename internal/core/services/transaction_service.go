package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brtdigital/remesa-backend/internal/apperrors"
	portsrepo "github.com/brtdigital/remesa-backend/internal/core/ports/repositories"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/middleware"
	"github.com/brtdigital/remesa-backend/internal/models"
)

// createRetryAttempts bounds the internal retry on a transaction_id
// collision. The daily counter should make collisions impossible; the retry
// covers counter resets and manual data fixes.
const createRetryAttempts = 3

// transactionService provides the transfer creation pipeline and lifecycle
// management.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
	rateSvc     portssvc.ExchangeRateSvcFacade
	commSvc     portssvc.CommissionSvcFacade
	couponSvc   portssvc.CouponSvcFacade
	accountSvc  portssvc.BankAccountSvcFacade
	userSvc     portssvc.UserSvcFacade
	notifier    portssvc.Notifier
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	currencySvc portssvc.CurrencySvcFacade,
	rateSvc portssvc.ExchangeRateSvcFacade,
	commSvc portssvc.CommissionSvcFacade,
	couponSvc portssvc.CouponSvcFacade,
	accountSvc portssvc.BankAccountSvcFacade,
	userSvc portssvc.UserSvcFacade,
	notifier portssvc.Notifier,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		currencySvc: currencySvc,
		rateSvc:     rateSvc,
		commSvc:     commSvc,
		couponSvc:   couponSvc,
		accountSvc:  accountSvc,
		userSvc:     userSvc,
		notifier:    notifier,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction computes the monetary breakdown, applies any coupon and
// persists the transfer. The business identifier, daily sequence and seller
// assignment happen inside the repository's database transaction; a
// transaction_id collision is retried here a bounded number of times.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.SourceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("source amount must be positive")
	}
	if req.SourceCurrencyCode == req.DestinationCurrencyCode {
		return nil, apperrors.NewValidationError("source and destination currencies cannot be the same")
	}
	if req.OriginAccountID == req.DestinationAccountID {
		return nil, apperrors.NewValidationError("origin and destination accounts cannot be the same")
	}
	if req.Taxes.LessThan(decimal.Zero) {
		return nil, apperrors.NewValidationError("taxes cannot be negative")
	}

	if _, err := s.accountSvc.GetBankAccountByID(ctx, req.OriginAccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("origin account '%s' not found", req.OriginAccountID))
		}
		return nil, fmt.Errorf("failed to validate origin account: %w", err)
	}
	if _, err := s.accountSvc.GetBankAccountByID(ctx, req.DestinationAccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("destination account '%s' not found", req.DestinationAccountID))
		}
		return nil, fmt.Errorf("failed to validate destination account: %w", err)
	}

	resolved, err := s.commSvc.ResolveCommission(ctx, req.SourceCurrencyCode, req.DestinationCurrencyCode, req.SourceAmount)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateSvc.GetRate(ctx, req.SourceCurrencyCode, req.DestinationCurrencyCode)
	if err != nil {
		return nil, err
	}

	destinationAmount := req.SourceAmount.Mul(rate).Round(2)
	commission := req.SourceAmount.Mul(resolved.Percentage).Div(hundred).Round(2)
	taxes := req.Taxes.Round(2)
	totalSend := req.SourceAmount.Add(commission).Add(taxes)

	now := time.Now()
	txn := models.Transaction{
		UserID:                  userID,
		SellerID:                req.SellerID,
		OriginAccountID:         req.OriginAccountID,
		DestinationAccountID:    req.DestinationAccountID,
		SourceAmount:            req.SourceAmount,
		SourceCurrencyCode:      req.SourceCurrencyCode,
		DestinationAmount:       destinationAmount,
		DestinationCurrencyCode: req.DestinationCurrencyCode,
		Commission:              commission,
		Taxes:                   taxes,
		TotalSend:               totalSend,
		ExchangeRate:            rate,
		PaymentMethod:           req.PaymentMethod,
		Status:                  models.StatusPending,
		PaymentVoucher:          req.PaymentVoucher,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Discounted mirrors default to the undiscounted figures; a coupon only
	// ever rewrites the mirrors.
	txn.CuponCommission = commission
	txn.CuponTaxes = taxes
	txn.CuponTotalSend = totalSend
	txn.CuponSourceAmount = req.SourceAmount
	txn.CuponDestinationAmount = destinationAmount

	coupon, err := s.couponSvc.FindApplicable(ctx, req.CouponCode, req.SourceCurrencyCode, req.DestinationCurrencyCode, req.SourceAmount, now)
	if err != nil {
		return nil, err
	}
	if coupon != nil {
		txn.CouponID = &coupon.CouponID
		txn.CuponCommission = coupon.ApplyDiscount(commission)
		txn.CuponTaxes = coupon.ApplyDiscount(taxes)
		txn.CuponTotalSend = coupon.ApplyDiscount(totalSend)

		// Consume the use before inserting so the cap can never be exceeded.
		// A failed insert afterwards wastes one use, which is acceptable.
		if err := s.couponSvc.RecordUse(ctx, coupon.CouponID); err != nil {
			return nil, err
		}
	}

	for attempt := 1; ; attempt++ {
		err = s.txnRepo.CreateTransaction(ctx, &txn)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrDuplicate) || attempt >= createRetryAttempts {
			return nil, fmt.Errorf("failed to create transaction in service: %w", err)
		}
		logger.WarnContext(ctx, "transaction ID collision, retrying",
			slog.Int("attempt", attempt),
			slog.String("user_id", userID))
	}

	s.notifyAsync(ctx, &txn, s.notifier.SendTransactionReceived)

	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction by ID in service: %w", err)
	}
	return txn, nil
}

func (s *transactionService) GetTransactionDetail(ctx context.Context, transactionID string) (*dto.TransactionDetailResponse, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction detail in service: %w", err)
	}

	detail := &dto.TransactionDetailResponse{
		TransactionResponse: dto.ToTransactionResponse(txn),
	}

	if origin, err := s.accountSvc.GetBankAccountByID(ctx, txn.OriginAccountID); err == nil {
		resp := dto.ToBankAccountResponse(origin)
		detail.OriginAccount = &resp
	}
	if dest, err := s.accountSvc.GetBankAccountByID(ctx, txn.DestinationAccountID); err == nil {
		resp := dto.ToBankAccountResponse(dest)
		detail.DestinationAccount = &resp
	}
	if currency, err := s.currencySvc.GetCurrencyByCode(ctx, txn.SourceCurrencyCode); err == nil {
		resp := dto.ToCurrencyResponse(currency)
		detail.SourceCurrency = &resp
	}
	if txn.SellerID != nil {
		if seller, err := s.userSvc.GetUserByID(ctx, *txn.SellerID); err == nil {
			resp := dto.ToUserResponse(seller)
			detail.Seller = &resp
		}
	}

	return detail, nil
}

func (s *transactionService) ListTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	txns, err := s.txnRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user transactions in service: %w", err)
	}
	if txns == nil {
		return []models.Transaction{}, nil
	}
	return txns, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, filter dto.TransactionListFilter) ([]models.Transaction, error) {
	if filter.Status != "" && !models.IsValidStatus(filter.Status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status '%s'", filter.Status))
	}
	txns, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionListFilter{Status: filter.Status})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}
	if txns == nil {
		return []models.Transaction{}, nil
	}
	return txns, nil
}

func (s *transactionService) UpdateStatus(ctx context.Context, transactionID string, req dto.UpdateTransactionStatusRequest, updaterUserID string) (*models.Transaction, error) {
	if !models.IsValidStatus(req.Status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status '%s'", req.Status))
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction for status update: %w", err)
	}

	if !txn.Status.CanTransitionTo(req.Status) {
		return nil, apperrors.NewUnprocessableError(fmt.Sprintf(
			"cannot move transaction from '%s' to '%s'", txn.Status, req.Status))
	}
	if req.Status == models.StatusCancelled && req.Reason == "" {
		return nil, apperrors.NewValidationError("a reason is required to cancel a transaction")
	}

	// Pass the status we just read so the repository can refuse the write
	// if another request transitioned the row in the meantime.
	if err := s.txnRepo.UpdateStatus(ctx, transactionID, txn.Status, req.Status, req.Reason, updaterUserID); err != nil {
		return nil, fmt.Errorf("failed to update transaction status in service: %w", err)
	}

	txn.Status = req.Status
	if req.Status == models.StatusCancelled {
		txn.ReasonCancel = req.Reason
	}
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = updaterUserID

	return txn, nil
}

// AttachAdminVoucher stores the payout voucher and forces the transfer to
// completed. Only a cancelled transfer refuses the upload.
func (s *transactionService) AttachAdminVoucher(ctx context.Context, transactionID string, voucherPath string, updaterUserID string) (*models.Transaction, error) {
	if voucherPath == "" {
		return nil, apperrors.NewValidationError("voucher path is required")
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction for voucher upload: %w", err)
	}
	if txn.Status == models.StatusCancelled {
		return nil, apperrors.NewUnprocessableError("a cancelled transaction cannot accept a voucher")
	}

	if err := s.txnRepo.AttachAdminVoucher(ctx, transactionID, voucherPath, updaterUserID); err != nil {
		return nil, fmt.Errorf("failed to attach admin voucher in service: %w", err)
	}

	txn.AdminVoucher = voucherPath
	txn.Status = models.StatusCompleted
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = updaterUserID

	s.notifyAsync(ctx, txn, s.notifier.SendTransactionCompleted)

	return txn, nil
}

// notifyAsync sends a lifecycle email without blocking or failing the
// originating operation. Delivery errors are logged and dropped.
func (s *transactionService) notifyAsync(ctx context.Context, txn *models.Transaction, send func(context.Context, string, string, *models.Transaction) error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	txnCopy := *txn

	go func() {
		user, err := s.userSvc.GetUserByID(context.Background(), txnCopy.UserID)
		if err != nil {
			logger.Error("failed to load user for transaction notification",
				slog.String("transaction_id", txnCopy.TransactionID),
				slog.String("error", err.Error()))
			return
		}
		if err := send(context.Background(), user.Email, user.FullName(), &txnCopy); err != nil {
			logger.Error("failed to send transaction notification",
				slog.String("transaction_id", txnCopy.TransactionID),
				slog.String("recipient", user.Email),
				slog.String("error", err.Error()))
		}
	}()
}
