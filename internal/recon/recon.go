// Package recon holds the payment reconciliation engine: the waterfall
// allocation path used for manual entries and the coarser bulk month path
// used by the gateway webhook. Both run inside a single storage transaction
// with the merchant's candidate orders locked for update.
package recon

import (
	"context"
	"time"

	"github.com/avolkov/marketpay/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Tx is the transaction-scoped storage surface of the engine. Every method
// runs on the same database transaction; OutstandingOrdersForUpdate takes
// row locks, so a second reconciliation for the same merchant blocks until
// the first commits.
type Tx interface {
	OutstandingOrdersForUpdate(ctx context.Context, merchantID int64, month *model.Month, excludeExternal bool) ([]model.OutstandingOrder, error)
	InsertPayment(ctx context.Context, p model.MerchantPayment) (model.MerchantPayment, error)
	FindOrCreatePayment(ctx context.Context, p model.MerchantPayment) (model.MerchantPayment, bool, error)
	InsertAllocation(ctx context.Context, paymentID, orderID int64, amount decimal.Decimal) error
	SetOrderPaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error
	MarkMonthOrdersPaid(ctx context.Context, merchantID int64, month model.Month) (int64, error)
	TouchMerchantLastPayment(ctx context.Context, merchantID int64, at time.Time) error
}

type Store interface {
	Merchant(ctx context.Context, id int64) (model.Merchant, error)
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Engine struct {
	store        Store
	logger       *zap.SugaredLogger
	homeCurrency string
}

func NewEngine(store Store, logger *zap.SugaredLogger, homeCurrency string) *Engine {
	return &Engine{store: store, logger: logger, homeCurrency: homeCurrency}
}
