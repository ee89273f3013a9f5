package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrMissingReference = errors.New("missing checkout reference")

// MapPaymentEvent translates a gateway event type or status string into a
// payment status. Each outcome matches on either field, checked paid first,
// then failed, then refunded. ok is false for events that do not move the
// payment.
func MapPaymentEvent(eventType, status string) (PaymentStatus, bool) {
	ev := strings.ToUpper(strings.TrimSpace(eventType))
	st := strings.ToUpper(strings.TrimSpace(status))
	for _, m := range eventMappings {
		if ev == m.event || st == m.status {
			return m.result, true
		}
	}
	return "", false
}

var eventMappings = []struct {
	event, status string
	result        PaymentStatus
}{
	{"CHECKOUT_COMPLETED", "PAID", PaymentPaid},
	{"CHECKOUT_FAILED", "FAILED", PaymentFailed},
	{"CHECKOUT_REFUNDED", "REFUNDED", PaymentRefunded},
}

// Outcome describes what a reconciliation did to an order.
type Outcome struct {
	OrderID  string        `json:"order_id"`
	Previous PaymentStatus `json:"previous"`
	Current  PaymentStatus `json:"current"`
	Changed  bool          `json:"changed"`
}

// Reconciler applies gateway payment events to orders. Re-applying an event
// is harmless: statuses are overwritten and paid_at is only ever filled once.
type Reconciler struct {
	repo Repository
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewReconciler(repo Repository, log logrus.FieldLogger) *Reconciler {
	return &Reconciler{repo: repo, log: log, now: time.Now}
}

// Apply handles a webhook event keyed by order number.
func (r *Reconciler) Apply(ctx context.Context, ev WebhookEvent) (*Outcome, error) {
	ref := strings.TrimSpace(ev.CheckoutReference)
	if ref == "" {
		return nil, ErrMissingReference
	}
	o, err := r.repo.GetByNumber(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.log.WithField("reference", ref).Warn("webhook for unknown order")
		}
		return nil, err
	}
	return r.ApplyToOrder(ctx, o, ev, "")
}

// ApplyToOrder updates an already loaded order. checkoutID, when not empty,
// is recorded alongside the payment fields.
func (r *Reconciler) ApplyToOrder(ctx context.Context, o *Order, ev WebhookEvent, checkoutID string) (*Outcome, error) {
	fields := logrus.Fields{
		"order_id":  o.ID,
		"reference": o.OrderNumber,
		"event":     ev.EventType,
		"status":    ev.Status,
	}
	out := &Outcome{OrderID: o.ID, Previous: o.PaymentStatus, Current: o.PaymentStatus}

	var u PaymentUpdate
	if target, ok := MapPaymentEvent(ev.EventType, ev.Status); ok {
		u.Status = &target
		out.Current = target
		if target == PaymentPaid && o.PaidAt == nil {
			now := r.now().UTC()
			u.PaidAt = &now
		}
	}
	if tx := strings.TrimSpace(ev.TransactionID); tx != "" {
		u.TransactionID = &tx
	}
	if checkoutID != "" && (o.CheckoutID == nil || *o.CheckoutID != checkoutID) {
		u.CheckoutID = &checkoutID
	}
	if u.Empty() {
		r.log.WithFields(fields).Info("payment event ignored")
		return out, nil
	}

	if err := r.repo.UpdatePayment(ctx, o.ID, u); err != nil {
		r.log.WithFields(fields).WithError(err).Error("payment update failed")
		return nil, err
	}
	out.Changed = out.Previous != out.Current
	r.log.WithFields(fields).WithField("payment_status", out.Current).Info("payment reconciled")
	return out, nil
}
