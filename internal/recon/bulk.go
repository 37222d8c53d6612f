package recon

import (
	"context"

	"github.com/avolkov/marketpay/internal/model"
	"github.com/shopspring/decimal"
)

// bulkTolerance is the absolute difference between the gateway-reported
// amount and the computed outstanding total that passes silently. Anything
// strictly greater is logged as a warning but does not block reconciliation.
var bulkTolerance = decimal.NewFromInt(1)

// ProcessGatewayNotification runs the coarse month-level reconciliation used
// by the lump-sum gateway: it records the reported payment idempotently and
// marks every matching order of the month paid, without per-order allocation
// rows. A redelivered notification finds the existing payment and re-runs
// the bulk update, which is a no-op on already-paid orders.
func (e *Engine) ProcessGatewayNotification(ctx context.Context, payload map[string]any) (model.BulkResult, error) {
	n, err := ParseGatewayNotification(payload)
	if err != nil {
		return model.BulkResult{}, err
	}

	if _, err := e.store.Merchant(ctx, n.MerchantID); err != nil {
		return model.BulkResult{}, err
	}

	var result model.BulkResult
	err = e.store.WithinTransaction(ctx, func(ctx context.Context, tx Tx) error {
		orders, err := tx.OutstandingOrdersForUpdate(ctx, n.MerchantID, &n.Month, true)
		if err != nil {
			return err
		}

		outstanding := decimal.Zero
		for _, o := range orders {
			outstanding = outstanding.Add(o.Outstanding())
		}

		amount := outstanding
		if n.HasAmount {
			amount = n.Amount
			if diff := n.Amount.Sub(outstanding).Abs(); diff.GreaterThan(bulkTolerance) {
				e.logger.Warnw("gateway amount mismatch",
					"merchant_id", n.MerchantID,
					"month", n.Month,
					"reported", n.Amount,
					"outstanding", outstanding,
					"diff", diff,
				)
			}
		}

		payment := model.MerchantPayment{
			MerchantID: n.MerchantID,
			Amount:     amount,
			Currency:   e.homeCurrency,
			PaidAt:     n.PaidAt,
			Reference:  n.Reference,
			Method:     n.Method,
			Month:      n.Month,
			CreatedBy:  "webhook",
		}

		created, isNew, err := tx.FindOrCreatePayment(ctx, payment)
		if err != nil {
			return err
		}
		if !isNew {
			e.logger.Infow("duplicate gateway notification",
				"merchant_id", n.MerchantID,
				"month", n.Month,
				"payment_id", created.ID,
			)
		}

		updated, err := tx.MarkMonthOrdersPaid(ctx, n.MerchantID, n.Month)
		if err != nil {
			return err
		}

		if err := tx.TouchMerchantLastPayment(ctx, n.MerchantID, created.PaidAt); err != nil {
			return err
		}

		result = model.BulkResult{
			MerchantID:        n.MerchantID,
			Month:             n.Month,
			PaymentID:         created.ID,
			OrdersUpdated:     updated,
			OutstandingBefore: outstanding,
		}
		return nil
	})
	if err != nil {
		return model.BulkResult{}, err
	}

	return result, nil
}
