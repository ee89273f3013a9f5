package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	// Create inserts the order row only; items go through InsertItems.
	Create(ctx context.Context, o *Order) error
	InsertItems(ctx context.Context, orderID string, items []Item) error
	Delete(ctx context.Context, id string) error
	DeleteItems(ctx context.Context, orderID string) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByNumber(ctx context.Context, number string) (*Order, error)
	List(ctx context.Context, q ListQuery) ([]Order, int, error)
	UpdatePayment(ctx context.Context, id string, u PaymentUpdate) error
	UpdateFulfillment(ctx context.Context, id string, status Status, adminNotes *string, deliveredAt *time.Time) error
	ListPendingPayments(ctx context.Context, createdBefore time.Time, limit int) ([]Order, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderColumns = `
    id, order_number,
    customer_first_name, customer_last_name, customer_email, customer_phone,
    shipping_address, shipping_city, shipping_postal_code, shipping_country,
    billing_address, billing_city, billing_postal_code, billing_country,
    subtotal::text, shipping_cost::text, discount_amount::text, total_amount::text, currency,
    payment_method, payment_status, sumup_checkout_id, sumup_transaction_id,
    status, customer_notes, admin_notes,
    created_at, updated_at, paid_at, delivered_at`

const itemColumns = `
    id, order_id, product_id, product_name_en, product_name_fr, product_sku, product_image_url,
    quantity, unit_price::text, total_price::text, size, color`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber,
		&o.CustomerFirstName, &o.CustomerLastName, &o.CustomerEmail, &o.CustomerPhone,
		&o.ShippingAddress, &o.ShippingCity, &o.ShippingPostalCode, &o.ShippingCountry,
		&o.BillingAddress, &o.BillingCity, &o.BillingPostalCode, &o.BillingCountry,
		&o.Subtotal, &o.ShippingCost, &o.DiscountAmount, &o.TotalAmount, &o.Currency,
		&o.PaymentMethod, &o.PaymentStatus, &o.CheckoutID, &o.TransactionID,
		&o.Status, &o.CustomerNotes, &o.AdminNotes,
		&o.CreatedAt, &o.UpdatedAt, &o.PaidAt, &o.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanItem(row pgx.Row) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductNameEN, &it.ProductNameFR,
		&it.ProductSKU, &it.ProductImageURL, &it.Quantity, &it.UnitPrice, &it.TotalPrice,
		&it.Size, &it.Color)
	return it, err
}

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
    INSERT INTO orders (
      id, order_number,
      customer_first_name, customer_last_name, customer_email, customer_phone,
      shipping_address, shipping_city, shipping_postal_code, shipping_country,
      billing_address, billing_city, billing_postal_code, billing_country,
      subtotal, shipping_cost, discount_amount, total_amount, currency,
      payment_method, payment_status, status, customer_notes,
      created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,NOW(),NOW())
    RETURNING created_at, updated_at
  `, o.ID, o.OrderNumber,
		o.CustomerFirstName, o.CustomerLastName, o.CustomerEmail, o.CustomerPhone,
		o.ShippingAddress, o.ShippingCity, o.ShippingPostalCode, o.ShippingCountry,
		o.BillingAddress, o.BillingCity, o.BillingPostalCode, o.BillingCountry,
		o.Subtotal, o.ShippingCost, o.DiscountAmount, o.TotalAmount, o.Currency,
		o.PaymentMethod, o.PaymentStatus, o.Status, o.CustomerNotes,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// InsertItems writes all items or none.
func (r *PGRepo) InsertItems(ctx context.Context, orderID string, items []Item) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, product_name_en, product_name_fr,
        product_sku, product_image_url, quantity, unit_price, total_price, size, color)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    `, it.ID, orderID, it.ProductID, it.ProductNameEN, it.ProductNameFR, it.ProductSKU,
			it.ProductImageURL, it.Quantity, it.UnitPrice, it.TotalPrice, it.Size, it.Color); err != nil {
			return fmt.Errorf("insert order item %s: %w", it.ProductID, err)
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteItems(ctx context.Context, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.db.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.itemsFor(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *PGRepo) GetByNumber(ctx context.Context, number string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, number))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order by number: %w", err)
	}
	return o, nil
}

func (r *PGRepo) List(ctx context.Context, q ListQuery) ([]Order, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	status := string(q.Status)
	if status == "all" {
		status = ""
	}
	search := strings.TrimSpace(q.Search)

	const where = `
    WHERE ($1 = '' OR status = $1)
      AND ($2 = '' OR order_number ILIKE '%'||$2||'%'
                   OR customer_email ILIKE '%'||$2||'%'
                   OR customer_first_name ILIKE '%'||$2||'%'
                   OR customer_last_name ILIKE '%'||$2||'%')`

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, status, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders`+where+`
    ORDER BY created_at DESC LIMIT $3 OFFSET $4
  `, status, search, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, total, nil
}

func (r *PGRepo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	out := make(map[string][]Item, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
    SELECT `+itemColumns+`
    FROM order_items
    WHERE order_id = ANY($1::uuid[])
    ORDER BY product_name_en
  `, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdatePayment(ctx context.Context, id string, u PaymentUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders
    SET payment_status       = COALESCE($2, payment_status),
        paid_at              = COALESCE(paid_at, $3),
        sumup_transaction_id = COALESCE($4, sumup_transaction_id),
        sumup_checkout_id    = COALESCE($5, sumup_checkout_id),
        updated_at           = NOW()
    WHERE id = $1
  `, id, u.Status, u.PaidAt, u.TransactionID, u.CheckoutID)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) UpdateFulfillment(ctx context.Context, id string, status Status, adminNotes *string, deliveredAt *time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders
    SET status       = $2,
        admin_notes  = $3,
        delivered_at = COALESCE(delivered_at, $4),
        updated_at   = NOW()
    WHERE id = $1
  `, id, status, adminNotes, deliveredAt)
	if err != nil {
		return fmt.Errorf("update fulfillment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ListPendingPayments(ctx context.Context, createdBefore time.Time, limit int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+`
    FROM orders
    WHERE payment_status = 'pending' AND created_at < $1
    ORDER BY created_at ASC LIMIT $2
  `, createdBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending payments: %w", err)
	}
	defer rows.Close()
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountByStatus(ctx context.Context) (map[Status]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	defer rows.Close()
	out := map[Status]int{}
	for rows.Next() {
		var s Status
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}
