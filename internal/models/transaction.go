package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a transfer.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusReceived   TransactionStatus = "received"
	StatusProcessing TransactionStatus = "processing"
	StatusObserved   TransactionStatus = "observed"
	StatusCompleted  TransactionStatus = "completed"
	StatusCancelled  TransactionStatus = "cancelled"
)

// legalTransitions is the explicit transition table. Staff drive every
// transition except the initial pending and the completed set on voucher
// upload; completed is therefore absent here and only ever written by the
// voucher attach. cancelled is reachable from any non-terminal state.
var legalTransitions = map[TransactionStatus][]TransactionStatus{
	StatusPending:    {StatusReceived, StatusCancelled},
	StatusReceived:   {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusObserved, StatusCancelled},
	StatusObserved:   {StatusProcessing, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// IsValidStatus reports whether s is one of the six lifecycle literals.
func IsValidStatus(s TransactionStatus) bool {
	_, ok := legalTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed from s.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the move from s to next is legal.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transaction is a single money-transfer record. TransactionID is generated
// once at creation and never regenerated; SellerID is assigned once via
// round-robin when the request does not name a seller.
type Transaction struct {
	ID            string  `json:"id" db:"id"`
	UserID        string  `json:"userID" db:"user_id"`
	SellerID      *string `json:"sellerID" db:"seller_id"`
	TransactionID string  `json:"transactionID" db:"transaction_id"` // e.g. BRT-DS250901-00001

	OriginAccountID      string `json:"originAccountID" db:"origin_account_id"`
	DestinationAccountID string `json:"destinationAccountID" db:"destination_account_id"`

	SourceAmount            decimal.Decimal `json:"sourceAmount" db:"source_amount"`
	SourceCurrencyCode      string          `json:"sourceCurrencyCode" db:"source_currency_code"`
	DestinationAmount       decimal.Decimal `json:"destinationAmount" db:"destination_amount"`
	DestinationCurrencyCode string          `json:"destinationCurrencyCode" db:"destination_currency_code"`

	Commission decimal.Decimal `json:"commission" db:"commission"`
	Taxes      decimal.Decimal `json:"taxes" db:"taxes"`
	TotalSend  decimal.Decimal `json:"totalSend" db:"total_send"`

	// Discounted mirrors of the figures above. When no coupon applies they
	// equal the originals; the undiscounted figures are never overwritten.
	CuponCommission        decimal.Decimal `json:"cuponCommission" db:"cupon_commission"`
	CuponTaxes             decimal.Decimal `json:"cuponTaxes" db:"cupon_taxes"`
	CuponTotalSend         decimal.Decimal `json:"cuponTotalSend" db:"cupon_total_send"`
	CuponSourceAmount      decimal.Decimal `json:"cuponSourceAmount" db:"cupon_source_amount"`
	CuponDestinationAmount decimal.Decimal `json:"cuponDestinationAmount" db:"cupon_destination_amount"`

	ExchangeRate  decimal.Decimal   `json:"exchangeRate" db:"exchange_rate"`
	PaymentMethod string            `json:"paymentMethod" db:"payment_method"`
	Status        TransactionStatus `json:"status" db:"status"`

	PaymentVoucher string  `json:"paymentVoucher" db:"payment_voucher"` // path, empty when absent
	AdminVoucher   string  `json:"adminVoucher" db:"admin_voucher"`
	CouponID       *string `json:"couponID" db:"coupon_id"`
	ReasonCancel   string  `json:"reasonCancel" db:"reason_cancel"`

	AuditFields
}

// String implements fmt.Stringer for log lines.
func (t Transaction) String() string {
	return fmt.Sprintf("Transaction %s: %s %s -> %s %s",
		t.TransactionID,
		t.SourceAmount, t.SourceCurrencyCode,
		t.DestinationAmount, t.DestinationCurrencyCode)
}
