package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	Pending PaymentStatus = "pending"
	Paid    PaymentStatus = "paid"
)

// SourceExternalChannel marks orders imported from a channel that settles
// through its own gateway; the bulk month reconciliation must skip them.
const SourceExternalChannel = "external_channel"

const (
	MethodManual  = "manual"
	MethodGateway = "gateway"
)

type Merchant struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	LastPaymentAt *time.Time `json:"last_payment_at,omitempty"`
}

type Order struct {
	ID            int64           `json:"id"`
	MerchantID    int64           `json:"merchant_id"`
	Total         decimal.Decimal `json:"total"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Source        string          `json:"source,omitempty"`
	Cancelled     bool            `json:"cancelled,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OutstandingOrder is an order joined with the sum of its prior allocations.
type OutstandingOrder struct {
	Order
	Allocated decimal.Decimal `json:"allocated"`
}

// Outstanding returns how much of the order total is still unpaid, never negative.
func (o OutstandingOrder) Outstanding() decimal.Decimal {
	out := o.Total.Sub(o.Allocated)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// MerchantPayment is immutable after creation; only its derived allocated
// amount is read later.
type MerchantPayment struct {
	ID         int64           `json:"id"`
	MerchantID int64           `json:"merchant_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	PaidAt     time.Time       `json:"paid_at"`
	Reference  string          `json:"reference,omitempty"`
	Method     string          `json:"method"`
	Month      Month           `json:"month"`
	Note       string          `json:"note,omitempty"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Allocation struct {
	ID        int64           `json:"id"`
	PaymentID int64           `json:"payment_id"`
	OrderID   int64           `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

type Staff struct {
	ID    int
	Login string
}
