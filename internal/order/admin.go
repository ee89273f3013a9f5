package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidFilter = errors.New("invalid status filter")
	ErrEmptyUpdate   = errors.New("nothing to update")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Admin is the back-office view of orders.
type Admin struct {
	repo Repository
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewAdmin(repo Repository, log logrus.FieldLogger) *Admin {
	return &Admin{repo: repo, log: log, now: time.Now}
}

func (a *Admin) List(ctx context.Context, q ListQuery) ([]Order, Pagination, error) {
	if q.Status != "" && q.Status != "all" && !q.Status.Valid() {
		return nil, Pagination{}, fmt.Errorf("%w: %q", ErrInvalidFilter, q.Status)
	}
	orders, total, err := a.repo.List(ctx, q)
	if err != nil {
		return nil, Pagination{}, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, NewPagination(q.Page, q.Limit, total), nil
}

func (a *Admin) Get(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return a.repo.GetByID(ctx, id)
}

// Update changes the fulfillment status and/or admin notes. The first move
// to delivered stamps delivered_at; later moves never clear it.
func (a *Admin) Update(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error) {
	if req.Status == nil && req.AdminNotes == nil {
		return nil, ErrEmptyUpdate
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
	}
	o, err := a.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	status := o.Status
	if req.Status != nil {
		status = *req.Status
	}
	notes := o.AdminNotes
	if req.AdminNotes != nil {
		notes = req.AdminNotes
	}
	var deliveredAt *time.Time
	if status == StatusDelivered && o.DeliveredAt == nil {
		now := a.now().UTC()
		deliveredAt = &now
	}

	if err := a.repo.UpdateFulfillment(ctx, o.ID, status, notes, deliveredAt); err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{
		"order_id": o.ID,
		"from":     o.Status,
		"to":       status,
	}).Info("order updated")
	return a.repo.GetByID(ctx, o.ID)
}

// Delete removes the items first, then the order.
func (a *Admin) Delete(ctx context.Context, id string) error {
	o, err := a.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := a.repo.DeleteItems(ctx, o.ID); err != nil {
		return err
	}
	if err := a.repo.Delete(ctx, o.ID); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{"order_id": o.ID, "reference": o.OrderNumber}).Info("order deleted")
	return nil
}

// Recent returns the n newest orders.
func (a *Admin) Recent(ctx context.Context, n int) ([]Order, error) {
	orders, _, err := a.repo.List(ctx, ListQuery{Page: 1, Limit: n})
	return orders, err
}

func (a *Admin) Counts(ctx context.Context) (map[Status]int, error) {
	return a.repo.CountByStatus(ctx)
}
