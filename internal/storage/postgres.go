package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avolkov/marketpay/internal/errs"
	"github.com/avolkov/marketpay/internal/model"
	"github.com/avolkov/marketpay/internal/recon"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresStorage struct {
	db *pgxpool.Pool
}

func (store *PostgresStorage) initSchema(ctx context.Context) error {
	const initSchemaQuery = `
	CREATE TABLE IF NOT EXISTS merchants (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		last_payment_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		merchant_id INT NOT NULL REFERENCES merchants(id),
		total NUMERIC(12,2) NOT NULL,
		payment_status TEXT NOT NULL DEFAULT 'pending',
		source TEXT NOT NULL DEFAULT '',
		cancelled BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_orders_merchant_status ON orders (merchant_id, payment_status);
	CREATE TABLE IF NOT EXISTS merchant_payments (
		id BIGSERIAL PRIMARY KEY,
		merchant_id INT NOT NULL REFERENCES merchants(id),
		amount NUMERIC(12,2) NOT NULL,
		currency CHAR(3) NOT NULL,
		paid_at TIMESTAMP NOT NULL,
		reference TEXT NOT NULL DEFAULT '',
		method TEXT NOT NULL,
		payment_month TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT NOW()
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_natural_key
		ON merchant_payments (merchant_id, reference, payment_month, method)
		WHERE method <> 'manual';
	CREATE TABLE IF NOT EXISTS allocations (
		id BIGSERIAL PRIMARY KEY,
		payment_id BIGINT NOT NULL REFERENCES merchant_payments(id),
		order_id BIGINT NOT NULL REFERENCES orders(id),
		amount NUMERIC(12,2) NOT NULL,
		created_at TIMESTAMP DEFAULT NOW(),
		UNIQUE (payment_id, order_id)
	);
	CREATE TABLE IF NOT EXISTS staff (
		id SERIAL PRIMARY KEY,
		login TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT NOW()
	);`

	_, err := store.db.Exec(ctx, initSchemaQuery)
	return err
}

func NewPostgresStorage(ctx context.Context, databaseURI string) (*PostgresStorage, error) {
	db, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, err
	}

	storage := &PostgresStorage{db: db}

	if err := storage.Ping(ctx); err != nil {
		return nil, err
	}

	if err := storage.initSchema(ctx); err != nil {
		return nil, err
	}

	return storage, nil
}

func (store *PostgresStorage) Ping(ctx context.Context) error {
	return store.db.Ping(ctx)
}

// querier is the common surface of pgxpool.Pool and pgx.Tx, so the
// outstanding-order query can run both locked (inside a transaction) and
// unlocked (for read-only endpoints).
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *PostgresStorage) CreateStaff(ctx context.Context, login string, passwordHash string) error {
	const insertStaffQuery = `INSERT INTO staff (login, password_hash) VALUES ($1, $2)`

	_, err := s.db.Exec(ctx, insertStaffQuery, login, passwordHash)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			// 23505 — уникальное ограничение нарушено
			return errs.ErrLoginAlreadyExists
		}
		return err
	}

	return nil
}

func (s *PostgresStorage) GetStaffByLogin(ctx context.Context, login string) (model.Staff, string, error) {
	const query = `SELECT id, login, password_hash FROM staff WHERE login = $1`

	var staff model.Staff
	var hash string

	err := s.db.QueryRow(ctx, query, login).Scan(&staff.ID, &staff.Login, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Staff{}, "", errs.ErrStaffNotFound
		}
		return model.Staff{}, "", fmt.Errorf("get staff by login: %w", err)
	}

	return staff, hash, nil
}

func (s *PostgresStorage) GetStaffByID(ctx context.Context, id int) (model.Staff, error) {
	const query = `SELECT id, login FROM staff WHERE id = $1`

	var staff model.Staff

	err := s.db.QueryRow(ctx, query, id).Scan(&staff.ID, &staff.Login)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Staff{}, errs.ErrStaffNotFound
		}
		return model.Staff{}, fmt.Errorf("get staff by id: %w", err)
	}

	return staff, nil
}

func (s *PostgresStorage) Merchant(ctx context.Context, id int64) (model.Merchant, error) {
	const query = `SELECT id, name, last_payment_at FROM merchants WHERE id = $1`

	var m model.Merchant

	err := s.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.LastPaymentAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Merchant{}, errs.ErrMerchantNotFound
		}
		return model.Merchant{}, fmt.Errorf("get merchant: %w", err)
	}

	return m, nil
}

// outstandingOrders returns non-paid, non-cancelled orders of the merchant,
// oldest first with id as the tie-break, each with its allocated total.
func outstandingOrders(ctx context.Context, q querier, merchantID int64, month *model.Month, excludeExternal bool, lock bool) ([]model.OutstandingOrder, error) {
	query := `
		SELECT id, merchant_id, total, payment_status, source, cancelled, created_at
		FROM orders
		WHERE merchant_id = $1 AND payment_status <> 'paid' AND NOT cancelled`
	args := []any{merchantID}

	if month != nil {
		from, to := month.Bounds()
		query += fmt.Sprintf(" AND created_at >= $%d AND created_at < $%d", len(args)+1, len(args)+2)
		args = append(args, from, to)
	}
	if excludeExternal {
		query += fmt.Sprintf(" AND source <> $%d", len(args)+1)
		args = append(args, model.SourceExternalChannel)
	}

	query += " ORDER BY created_at ASC, id ASC"
	if lock {
		query += " FOR UPDATE"
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get outstanding orders: %w", err)
	}
	defer rows.Close()

	var orders []model.OutstandingOrder
	ids := make([]int64, 0)
	for rows.Next() {
		var o model.OutstandingOrder
		err := rows.Scan(&o.ID, &o.MerchantID, &o.Total, &o.PaymentStatus, &o.Source, &o.Cancelled, &o.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Allocated = decimal.Zero
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	if len(orders) == 0 {
		return nil, nil
	}

	allocated, err := allocatedTotals(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if sum, ok := allocated[orders[i].ID]; ok {
			orders[i].Allocated = sum
		}
	}

	return orders, nil
}

func allocatedTotals(ctx context.Context, q querier, orderIDs []int64) (map[int64]decimal.Decimal, error) {
	const query = `
		SELECT order_id, COALESCE(SUM(amount), 0)
		FROM allocations
		WHERE order_id = ANY($1)
		GROUP BY order_id`

	rows, err := q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("get allocated totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[int64]decimal.Decimal, len(orderIDs))
	for rows.Next() {
		var id int64
		var sum decimal.Decimal
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan allocated total: %w", err)
		}
		totals[id] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return totals, nil
}

// ListOutstandingOrders is the read-only view for staff display, no locks.
func (s *PostgresStorage) ListOutstandingOrders(ctx context.Context, merchantID int64) ([]model.OutstandingOrder, error) {
	return outstandingOrders(ctx, s.db, merchantID, nil, false, false)
}

func (s *PostgresStorage) ListPayments(ctx context.Context, merchantID int64) ([]model.PaymentView, error) {
	const query = `
		SELECT p.id, p.merchant_id, p.amount, p.currency, p.paid_at, p.reference,
		       p.method, p.payment_month, p.note, p.created_by, p.created_at,
		       COALESCE(SUM(a.amount), 0) AS allocated
		FROM merchant_payments p
		LEFT JOIN allocations a ON a.payment_id = p.id
		WHERE p.merchant_id = $1
		GROUP BY p.id
		ORDER BY p.paid_at DESC, p.id DESC`

	rows, err := s.db.Query(ctx, query, merchantID)
	if err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
	}
	defer rows.Close()

	var list []model.PaymentView
	for rows.Next() {
		var p model.PaymentView
		err := rows.Scan(&p.ID, &p.MerchantID, &p.Amount, &p.Currency, &p.PaidAt, &p.Reference,
			&p.Method, &p.Month, &p.Note, &p.CreatedBy, &p.CreatedAt, &p.Allocated)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return list, nil
}

// WithinTransaction runs fn on a single transaction; all reconciliation
// writes go through it. Rollback on any error, nothing partially applied.
func (s *PostgresStorage) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx recon.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &txStorage{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

type txStorage struct {
	tx pgx.Tx
}

func (t *txStorage) OutstandingOrdersForUpdate(ctx context.Context, merchantID int64, month *model.Month, excludeExternal bool) ([]model.OutstandingOrder, error) {
	return outstandingOrders(ctx, t.tx, merchantID, month, excludeExternal, true)
}

func (t *txStorage) InsertPayment(ctx context.Context, p model.MerchantPayment) (model.MerchantPayment, error) {
	const query = `
		INSERT INTO merchant_payments (merchant_id, amount, currency, paid_at, reference, method, payment_month, note, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := t.tx.QueryRow(ctx, query,
		p.MerchantID, p.Amount, p.Currency, p.PaidAt, p.Reference, p.Method, p.Month, p.Note, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return model.MerchantPayment{}, fmt.Errorf("insert payment: %w", err)
	}

	return p, nil
}

// FindOrCreatePayment inserts the payment unless one with the same natural
// key (merchant, reference, payment_month, method) already exists. The
// existing row is returned untouched: payments are immutable.
func (t *txStorage) FindOrCreatePayment(ctx context.Context, p model.MerchantPayment) (model.MerchantPayment, bool, error) {
	const insertQuery = `
		INSERT INTO merchant_payments (merchant_id, amount, currency, paid_at, reference, method, payment_month, note, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (merchant_id, reference, payment_month, method) WHERE method <> 'manual' DO NOTHING
		RETURNING id, created_at`

	const findQuery = `
		SELECT id, merchant_id, amount, currency, paid_at, reference, method, payment_month, note, created_by, created_at
		FROM merchant_payments
		WHERE merchant_id = $1 AND reference = $2 AND payment_month = $3 AND method = $4`

	err := t.tx.QueryRow(ctx, insertQuery,
		p.MerchantID, p.Amount, p.Currency, p.PaidAt, p.Reference, p.Method, p.Month, p.Note, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt)
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.MerchantPayment{}, false, fmt.Errorf("insert payment: %w", err)
	}

	// Вставка не произошла — платёж уже есть, возвращаем существующий.
	var existing model.MerchantPayment
	err = t.tx.QueryRow(ctx, findQuery, p.MerchantID, p.Reference, p.Month, p.Method).Scan(
		&existing.ID, &existing.MerchantID, &existing.Amount, &existing.Currency, &existing.PaidAt,
		&existing.Reference, &existing.Method, &existing.Month, &existing.Note, &existing.CreatedBy, &existing.CreatedAt)
	if err != nil {
		return model.MerchantPayment{}, false, fmt.Errorf("select existing payment: %w", err)
	}

	return existing, false, nil
}

func (t *txStorage) InsertAllocation(ctx context.Context, paymentID, orderID int64, amount decimal.Decimal) error {
	const query = `INSERT INTO allocations (payment_id, order_id, amount) VALUES ($1, $2, $3)`

	_, err := t.tx.Exec(ctx, query, paymentID, orderID, amount)
	if err != nil {
		return fmt.Errorf("insert allocation: %w", err)
	}

	return nil
}

func (t *txStorage) SetOrderPaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	const query = `UPDATE orders SET payment_status = $1 WHERE id = $2`

	_, err := t.tx.Exec(ctx, query, status, orderID)
	if err != nil {
		return fmt.Errorf("set order payment status: %w", err)
	}

	return nil
}

func (t *txStorage) MarkMonthOrdersPaid(ctx context.Context, merchantID int64, month model.Month) (int64, error) {
	const query = `
		UPDATE orders
		SET payment_status = 'paid'
		WHERE merchant_id = $1 AND payment_status <> 'paid' AND NOT cancelled
		  AND source <> $2
		  AND created_at >= $3 AND created_at < $4`

	from, to := month.Bounds()
	tag, err := t.tx.Exec(ctx, query, merchantID, model.SourceExternalChannel, from, to)
	if err != nil {
		return 0, fmt.Errorf("mark month orders paid: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (t *txStorage) TouchMerchantLastPayment(ctx context.Context, merchantID int64, at time.Time) error {
	const query = `UPDATE merchants SET last_payment_at = $1 WHERE id = $2`

	_, err := t.tx.Exec(ctx, query, at, merchantID)
	if err != nil {
		return fmt.Errorf("update merchant last payment: %w", err)
	}

	return nil
}
