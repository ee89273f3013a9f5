package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/boutique-ecom/internal/order"
	"github.com/MikeMC777/boutique-ecom/internal/payment"
)

var ErrPaymentsDisabled = errors.New("payment gateway not configured")

const sweepBatch = 50

// SweepResult counts what one pass did.
// swagger:model SweepResult
type SweepResult struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// Sweeper asks the gateway about orders still pending after a grace period,
// covering lost webhooks and checkouts whose id was never stored.
type Sweeper struct {
	orders     order.Repository
	gateway    payment.Gateway
	reconciler *order.Reconciler
	after      time.Duration
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewSweeper(orders order.Repository, gateway payment.Gateway, reconciler *order.Reconciler, after time.Duration, log logrus.FieldLogger) *Sweeper {
	if after <= 0 {
		after = 15 * time.Minute
	}
	return &Sweeper{orders: orders, gateway: gateway, reconciler: reconciler, after: after, log: log, now: time.Now}
}

func (s *Sweeper) Run(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	if s.gateway == nil {
		return res, ErrPaymentsDisabled
	}
	pending, err := s.orders.ListPendingPayments(ctx, s.now().Add(-s.after), sweepBatch)
	if err != nil {
		return res, err
	}
	for i := range pending {
		o := &pending[i]
		res.Checked++
		entry := s.log.WithFields(logrus.Fields{"order_id": o.ID, "reference": o.OrderNumber})

		chk, err := s.lookup(ctx, o)
		if errors.Is(err, payment.ErrCheckoutNotFound) {
			entry.Debug("sweep: no checkout at gateway")
			continue
		}
		if err != nil {
			res.Failed++
			entry.WithError(err).Warn("sweep: gateway lookup failed")
			continue
		}

		out, err := s.reconciler.ApplyToOrder(ctx, o, order.WebhookEvent{
			Status:            chk.Status,
			CheckoutReference: o.OrderNumber,
			TransactionID:     chk.TransactionID,
		}, chk.ID)
		if err != nil {
			res.Failed++
			continue
		}
		if out.Changed {
			res.Updated++
		}
	}
	s.log.WithFields(logrus.Fields{
		"checked": res.Checked,
		"updated": res.Updated,
		"failed":  res.Failed,
	}).Info("pending payment sweep finished")
	return res, nil
}

func (s *Sweeper) lookup(ctx context.Context, o *order.Order) (*payment.Checkout, error) {
	if o.CheckoutID != nil && *o.CheckoutID != "" {
		return s.gateway.GetCheckout(ctx, *o.CheckoutID)
	}
	return s.gateway.FindByReference(ctx, o.OrderNumber)
}

// Loop runs a sweep every interval until ctx is cancelled.
func (s *Sweeper) Loop(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.log.WithError(err).Warn("pending payment sweep failed")
			}
		}
	}
}
