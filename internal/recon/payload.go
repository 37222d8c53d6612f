package recon

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avolkov/marketpay/internal/errs"
	"github.com/avolkov/marketpay/internal/model"
	"github.com/shopspring/decimal"
)

// GatewayNotification is the normalized form of one gateway webhook call.
type GatewayNotification struct {
	MerchantID int64
	Month      model.Month
	Amount     decimal.Decimal
	HasAmount  bool
	Reference  string
	Method     string
	PaidAt     time.Time
}

// The gateway is inconsistent about field casing between its API versions,
// so every lookup tries all spellings it has been seen to use.
var (
	codeKeys      = []string{"code", "Code", "result_code", "resultCode", "return_code"}
	dataKeys      = []string{"return_data", "returnData", "ReturnData", "attach"}
	merchantKeys  = []string{"merchant_id", "merchantId", "MerchantId", "mch_id"}
	monthKeys     = []string{"month", "Month", "payment_month", "billing_month"}
	amountKeys    = []string{"amount", "Amount", "total_amount", "totalAmount", "total_fee"}
	referenceKeys = []string{"reference", "transaction_id", "transactionId", "txn_id", "trade_no"}
	paidAtKeys    = []string{"paid_at", "paidAt", "timestamp"}
)

// ParseGatewayNotification recovers merchant, month and amount from a raw
// webhook payload. The opaque return-data field is tried as plain JSON, then
// as base64-encoded JSON; when neither decodes, top-level fields are used.
func ParseGatewayNotification(payload map[string]any) (GatewayNotification, error) {
	if code, ok := stringField(payload, codeKeys...); ok && !isSuccessCode(code) {
		return GatewayNotification{}, fmt.Errorf("%w: %q", errs.ErrGatewayNotSuccessful, code)
	}

	sources := []map[string]any{payload}
	if raw, ok := stringField(payload, dataKeys...); ok {
		if data, err := decodeReturnData(raw); err == nil {
			sources = append([]map[string]any{data}, sources...)
		}
	}

	n := GatewayNotification{Method: model.MethodGateway}

	merchantID, ok := int64Field(sources, merchantKeys...)
	if !ok {
		return GatewayNotification{}, fmt.Errorf("%w: merchant id missing", errs.ErrBadGatewayPayload)
	}
	n.MerchantID = merchantID

	monthStr, ok := stringFieldAny(sources, monthKeys...)
	if !ok {
		return GatewayNotification{}, fmt.Errorf("%w: month missing", errs.ErrBadGatewayPayload)
	}
	month, err := model.ParseMonth(monthStr)
	if err != nil {
		return GatewayNotification{}, fmt.Errorf("%w: %v", errs.ErrBadGatewayPayload, err)
	}
	n.Month = month

	if amount, ok := decimalField(sources, amountKeys...); ok {
		n.Amount = amount.Round(2)
		n.HasAmount = true
	}

	if ref, ok := stringFieldAny(sources, referenceKeys...); ok {
		n.Reference = ref
	}

	n.PaidAt = time.Now().UTC()
	if raw, ok := stringFieldAny(sources, paidAtKeys...); ok {
		if at, err := time.Parse(time.RFC3339, raw); err == nil {
			n.PaidAt = at.UTC()
		}
	}

	return n, nil
}

func isSuccessCode(code string) bool {
	switch code {
	case "SUCCESS", "success", "OK", "ok", "0", "00":
		return true
	}
	return false
}

func decodeReturnData(raw string) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err == nil {
		return data, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode return data: %w", err)
	}
	if err := json.Unmarshal(decoded, &data); err != nil {
		return nil, fmt.Errorf("unmarshal return data: %w", err)
	}

	return data, nil
}

func stringField(m map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s, true
			}
		case float64:
			return decimal.NewFromFloat(s).String(), true
		case json.Number:
			return s.String(), true
		}
	}
	return "", false
}

func stringFieldAny(sources []map[string]any, keys ...string) (string, bool) {
	for _, m := range sources {
		if s, ok := stringField(m, keys...); ok {
			return s, true
		}
	}
	return "", false
}

func decimalField(sources []map[string]any, keys ...string) (decimal.Decimal, bool) {
	s, ok := stringFieldAny(sources, keys...)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func int64Field(sources []map[string]any, keys ...string) (int64, bool) {
	d, ok := decimalField(sources, keys...)
	if !ok || !d.IsInteger() {
		return 0, false
	}
	return d.IntPart(), true
}
