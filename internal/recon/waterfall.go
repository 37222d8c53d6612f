package recon

import (
	"context"
	"time"

	"github.com/avolkov/marketpay/internal/errs"
	"github.com/avolkov/marketpay/internal/model"
	"github.com/avolkov/marketpay/internal/utils"
	"github.com/shopspring/decimal"
)

// PlanAllocations distributes amount over the given outstanding snapshot,
// oldest order first. Each allocation is capped at the order's remaining
// outstanding, so the plan never over-allocates an order and never spends
// more than amount. The resulting status per line is derived purely from
// coverage: an order whose allocations reach its total becomes paid, a
// previously paid order still short of its total is demoted to pending.
func PlanAllocations(amount decimal.Decimal, orders []model.OutstandingOrder) (lines []model.AllocationLine, applied, remaining decimal.Decimal) {
	applied = decimal.Zero
	remaining = amount

	for _, o := range orders {
		if !remaining.IsPositive() {
			break
		}

		outstanding := o.Outstanding()
		if !outstanding.IsPositive() {
			continue
		}

		apply := decimal.Min(remaining, outstanding)

		status := model.Pending
		if o.Allocated.Add(apply).GreaterThanOrEqual(o.Total) {
			status = model.Paid
		}

		lines = append(lines, model.AllocationLine{
			OrderID:       o.ID,
			Amount:        apply,
			Outstanding:   outstanding.Sub(apply),
			PaymentStatus: status,
		})

		remaining = remaining.Sub(apply)
		applied = applied.Add(apply)
	}

	return lines, applied, remaining
}

// ManualPayment records a staff-entered payment and applies it across the
// merchant's outstanding orders. Validation happens before any lock is taken;
// all writes share one transaction.
func (e *Engine) ManualPayment(ctx context.Context, merchantID int64, req model.ManualPaymentRequest, createdBy string) (model.WaterfallResult, error) {
	if !req.Amount.IsPositive() {
		return model.WaterfallResult{}, errs.ErrNonPositiveAmount
	}

	merchant, err := e.store.Merchant(ctx, merchantID)
	if err != nil {
		return model.WaterfallResult{}, err
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != nil {
		paidAt = req.PaidAt.UTC()
	}

	payment := model.MerchantPayment{
		MerchantID: merchantID,
		Amount:     req.Amount.Round(2),
		Currency:   utils.NormalizeCurrency(req.Currency, e.homeCurrency),
		PaidAt:     paidAt,
		Reference:  req.Reference,
		Method:     model.MethodManual,
		Month:      model.MonthOf(paidAt),
		Note:       req.Note,
		CreatedBy:  createdBy,
	}

	var result model.WaterfallResult
	err = e.store.WithinTransaction(ctx, func(ctx context.Context, tx Tx) error {
		orders, err := tx.OutstandingOrdersForUpdate(ctx, merchantID, nil, false)
		if err != nil {
			return err
		}

		lines, applied, remaining := PlanAllocations(payment.Amount, orders)

		created, err := tx.InsertPayment(ctx, payment)
		if err != nil {
			return err
		}

		statusBefore := make(map[int64]model.PaymentStatus, len(orders))
		for _, o := range orders {
			statusBefore[o.ID] = o.PaymentStatus
		}

		for _, ln := range lines {
			if err := tx.InsertAllocation(ctx, created.ID, ln.OrderID, ln.Amount); err != nil {
				return err
			}
			if ln.PaymentStatus != statusBefore[ln.OrderID] {
				if err := tx.SetOrderPaymentStatus(ctx, ln.OrderID, ln.PaymentStatus); err != nil {
					return err
				}
			}
		}

		if err := tx.TouchMerchantLastPayment(ctx, merchantID, paidAt); err != nil {
			return err
		}

		result = model.WaterfallResult{
			Payment:   created,
			Applied:   applied,
			Remaining: remaining,
			Lines:     lines,
		}
		return nil
	})
	if err != nil {
		return model.WaterfallResult{}, err
	}

	if result.Remaining.IsPositive() {
		// Leftover is returned to the caller but not persisted as credit.
		e.logger.Infow("payment exceeds outstanding total",
			"merchant_id", merchantID,
			"merchant", merchant.Name,
			"payment_id", result.Payment.ID,
			"remaining", result.Remaining,
		)
	}

	return result, nil
}
