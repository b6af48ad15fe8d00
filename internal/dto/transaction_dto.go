package dto

import (
	"time"

	"github.com/brtdigital/remesa-backend/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionListFilter narrows staff listings. Zero values mean "any".
type TransactionListFilter struct {
	Status models.TransactionStatus `form:"status"`
}

// CreateTransactionRequest defines the data needed to create a transfer.
// The monetary breakdown (commission, taxes, totals) is computed server-side;
// clients only name the amount, the pair and, optionally, a coupon code.
type CreateTransactionRequest struct {
	OriginAccountID         string          `json:"originAccountID" binding:"required"`
	DestinationAccountID    string          `json:"destinationAccountID" binding:"required"`
	SourceAmount            decimal.Decimal `json:"sourceAmount" binding:"required"`
	SourceCurrencyCode      string          `json:"sourceCurrencyCode" binding:"required,len=3,uppercase"`
	DestinationCurrencyCode string          `json:"destinationCurrencyCode" binding:"required,len=3,uppercase"`
	PaymentMethod           string          `json:"paymentMethod" binding:"required"`
	Taxes                   decimal.Decimal `json:"taxes"`
	CouponCode              string          `json:"couponCode"`
	SellerID                *string         `json:"sellerID"`
	PaymentVoucher          string          `json:"paymentVoucher"`
}

// UpdateTransactionStatusRequest drives a lifecycle transition.
// Reason is required when the target status is cancelled.
type UpdateTransactionStatusRequest struct {
	Status models.TransactionStatus `json:"status" binding:"required"`
	Reason string                   `json:"reason"`
}

// TransactionResponse defines the data returned for a transfer.
type TransactionResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userID"`
	SellerID      *string `json:"sellerID"`
	TransactionID string  `json:"transactionID"`

	OriginAccountID      string `json:"originAccountID"`
	DestinationAccountID string `json:"destinationAccountID"`

	SourceAmount            decimal.Decimal `json:"sourceAmount"`
	SourceCurrencyCode      string          `json:"sourceCurrencyCode"`
	DestinationAmount       decimal.Decimal `json:"destinationAmount"`
	DestinationCurrencyCode string          `json:"destinationCurrencyCode"`

	Commission decimal.Decimal `json:"commission"`
	Taxes      decimal.Decimal `json:"taxes"`
	TotalSend  decimal.Decimal `json:"totalSend"`

	CuponCommission        decimal.Decimal `json:"cuponCommission"`
	CuponTaxes             decimal.Decimal `json:"cuponTaxes"`
	CuponTotalSend         decimal.Decimal `json:"cuponTotalSend"`
	CuponSourceAmount      decimal.Decimal `json:"cuponSourceAmount"`
	CuponDestinationAmount decimal.Decimal `json:"cuponDestinationAmount"`

	ExchangeRate  decimal.Decimal          `json:"exchangeRate"`
	PaymentMethod string                   `json:"paymentMethod"`
	Status        models.TransactionStatus `json:"status"`

	PaymentVoucher string    `json:"paymentVoucher,omitempty"`
	AdminVoucher   string    `json:"adminVoucher,omitempty"`
	CouponID       *string   `json:"couponID"`
	ReasonCancel   string    `json:"reasonCancel,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}

// TransactionDetailResponse is the staff-facing view with the related
// entities embedded alongside the raw transfer figures.
type TransactionDetailResponse struct {
	TransactionResponse
	OriginAccount      *BankAccountResponse `json:"originAccount,omitempty"`
	DestinationAccount *BankAccountResponse `json:"destinationAccount,omitempty"`
	SourceCurrency     *CurrencyResponse    `json:"sourceCurrency,omitempty"`
	Seller             *UserResponse        `json:"seller,omitempty"`
}

// ToTransactionResponse converts a models.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                      t.ID,
		UserID:                  t.UserID,
		SellerID:                t.SellerID,
		TransactionID:           t.TransactionID,
		OriginAccountID:         t.OriginAccountID,
		DestinationAccountID:    t.DestinationAccountID,
		SourceAmount:            t.SourceAmount,
		SourceCurrencyCode:      t.SourceCurrencyCode,
		DestinationAmount:       t.DestinationAmount,
		DestinationCurrencyCode: t.DestinationCurrencyCode,
		Commission:              t.Commission,
		Taxes:                   t.Taxes,
		TotalSend:               t.TotalSend,
		CuponCommission:         t.CuponCommission,
		CuponTaxes:              t.CuponTaxes,
		CuponTotalSend:          t.CuponTotalSend,
		CuponSourceAmount:       t.CuponSourceAmount,
		CuponDestinationAmount:  t.CuponDestinationAmount,
		ExchangeRate:            t.ExchangeRate,
		PaymentMethod:           t.PaymentMethod,
		Status:                  t.Status,
		PaymentVoucher:          t.PaymentVoucher,
		AdminVoucher:            t.AdminVoucher,
		CouponID:                t.CouponID,
		ReasonCancel:            t.ReasonCancel,
		CreatedAt:               t.CreatedAt,
		LastUpdatedAt:           t.LastUpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of models.Transaction to DTOs.
func ToListTransactionResponse(transactions []models.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		res[i] = ToTransactionResponse(&transactions[i])
	}
	return res
}
