package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type ManualPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency,omitempty"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
	Reference string          `json:"reference,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// AllocationLine is one row of the per-order breakdown returned to the caller.
type AllocationLine struct {
	OrderID       int64           `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
}

type WaterfallResult struct {
	Payment   MerchantPayment  `json:"payment"`
	Applied   decimal.Decimal  `json:"applied_total"`
	Remaining decimal.Decimal  `json:"remaining"`
	Lines     []AllocationLine `json:"allocations"`
}

type BulkResult struct {
	MerchantID        int64           `json:"merchant_id"`
	Month             Month           `json:"month"`
	PaymentID         int64           `json:"payment_id"`
	OrdersUpdated     int64           `json:"orders_updated"`
	OutstandingBefore decimal.Decimal `json:"outstanding_before"`
}

// PaymentView is a recorded payment with its derived allocated total.
type PaymentView struct {
	MerchantPayment
	Allocated decimal.Decimal `json:"allocated"`
}
