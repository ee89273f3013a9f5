// Package ordertest provides an in-memory order.Repository for tests.
package ordertest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MikeMC777/boutique-ecom/internal/order"
)

// MemRepo is a goroutine-safe in-memory order.Repository. The Err* fields
// inject failures into the matching method.
type MemRepo struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
	items  map[string][]order.Item

	ErrCreate        error
	ErrInsertItems   error
	ErrDelete        error
	ErrUpdatePayment error

	PaymentUpdates int
}

func NewMemRepo() *MemRepo {
	return &MemRepo{orders: map[string]*order.Order{}, items: map[string][]order.Item{}}
}

// Put seeds an order (and its Items) directly.
func (m *MemRepo) Put(o order.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	items := o.Items
	o.Items = nil
	m.orders[o.ID] = &o
	if len(items) > 0 {
		m.items[o.ID] = append([]order.Item(nil), items...)
	}
}

func (m *MemRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders)
}

func (m *MemRepo) ItemCount(orderID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items[orderID])
}

func (m *MemRepo) Create(_ context.Context, o *order.Order) error {
	if m.ErrCreate != nil {
		return m.ErrCreate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	cp := *o
	cp.Items = nil
	m.orders[o.ID] = &cp
	return nil
}

func (m *MemRepo) InsertItems(_ context.Context, orderID string, items []order.Item) error {
	if m.ErrInsertItems != nil {
		return m.ErrInsertItems
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range items {
		it.OrderID = orderID
		m.items[orderID] = append(m.items[orderID], it)
	}
	return nil
}

func (m *MemRepo) Delete(_ context.Context, id string) error {
	if m.ErrDelete != nil {
		return m.ErrDelete
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return order.ErrNotFound
	}
	delete(m.orders, id)
	delete(m.items, id)
	return nil
}

func (m *MemRepo) DeleteItems(_ context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, orderID)
	return nil
}

func (m *MemRepo) withItems(o *order.Order) *order.Order {
	cp := *o
	cp.Items = append([]order.Item(nil), m.items[o.ID]...)
	return &cp
}

func (m *MemRepo) GetByID(_ context.Context, id string) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return m.withItems(o), nil
}

func (m *MemRepo) GetByNumber(_ context.Context, number string) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.OrderNumber == number {
			cp := *o
			return &cp, nil
		}
	}
	return nil, order.ErrNotFound
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (m *MemRepo) List(_ context.Context, q order.ListQuery) ([]order.Order, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	search := strings.TrimSpace(q.Search)

	var matched []*order.Order
	for _, o := range m.orders {
		if q.Status != "" && q.Status != "all" && o.Status != q.Status {
			continue
		}
		if search != "" && !containsFold(o.OrderNumber, search) && !containsFold(o.CustomerEmail, search) &&
			!containsFold(o.CustomerFirstName, search) && !containsFold(o.CustomerLastName, search) {
			continue
		}
		matched = append(matched, o)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	out := make([]order.Order, 0, end-start)
	for _, o := range matched[start:end] {
		out = append(out, *m.withItems(o))
	}
	return out, total, nil
}

func (m *MemRepo) UpdatePayment(_ context.Context, id string, u order.PaymentUpdate) error {
	if m.ErrUpdatePayment != nil {
		return m.ErrUpdatePayment
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	if u.Status != nil {
		o.PaymentStatus = *u.Status
	}
	if u.PaidAt != nil && o.PaidAt == nil {
		t := *u.PaidAt
		o.PaidAt = &t
	}
	if u.TransactionID != nil {
		tx := *u.TransactionID
		o.TransactionID = &tx
	}
	if u.CheckoutID != nil {
		cid := *u.CheckoutID
		o.CheckoutID = &cid
	}
	o.UpdatedAt = time.Now()
	m.PaymentUpdates++
	return nil
}

func (m *MemRepo) UpdateFulfillment(_ context.Context, id string, status order.Status, adminNotes *string, deliveredAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Status = status
	o.AdminNotes = adminNotes
	if o.DeliveredAt == nil && deliveredAt != nil {
		t := *deliveredAt
		o.DeliveredAt = &t
	}
	o.UpdatedAt = time.Now()
	return nil
}

func (m *MemRepo) ListPendingPayments(_ context.Context, createdBefore time.Time, limit int) ([]order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []order.Order
	for _, o := range m.orders {
		if o.PaymentStatus == order.PaymentPending && o.CreatedAt.Before(createdBefore) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemRepo) CountByStatus(_ context.Context) (map[order.Status]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := map[order.Status]int{}
	for _, o := range m.orders {
		out[o.Status]++
	}
	return out, nil
}

var _ order.Repository = (*MemRepo)(nil)
