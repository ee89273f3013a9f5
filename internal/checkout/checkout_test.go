package checkout

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/boutique-ecom/internal/cart"
	"github.com/MikeMC777/boutique-ecom/internal/order"
	"github.com/MikeMC777/boutique-ecom/internal/order/ordertest"
	"github.com/MikeMC777/boutique-ecom/internal/payment"
)

func quiet() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeGateway records calls and answers from its fields.
type fakeGateway struct {
	mu        sync.Mutex
	created   []payment.CheckoutRequest
	createErr error
	hostedURL string
	byID      map[string]*payment.Checkout
	byRef     map[string]*payment.Checkout
	lookupErr error
}

func (f *fakeGateway) CreateCheckout(_ context.Context, r payment.CheckoutRequest) (*payment.Checkout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, r)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &payment.Checkout{ID: "chk_" + r.Reference, Reference: r.Reference, Status: payment.StatusPending, HostedCheckoutURL: f.hostedURL}, nil
}

func (f *fakeGateway) GetCheckout(_ context.Context, id string) (*payment.Checkout, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, payment.ErrCheckoutNotFound
}

func (f *fakeGateway) FindByReference(_ context.Context, ref string) (*payment.Checkout, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if c, ok := f.byRef[ref]; ok {
		return c, nil
	}
	return nil, payment.ErrCheckoutNotFound
}

func (f *fakeGateway) CheckoutURL(c *payment.Checkout) string {
	if c.HostedCheckoutURL != "" {
		return c.HostedCheckoutURL
	}
	return "https://pay.example/Q" + c.ID
}

func validRequest() Request {
	return Request{
		Items: []cart.Line{
			{ProductID: "p1", ProductNameEN: "Caftan", UnitPrice: decimal.NewFromInt(100), Quantity: 2, Size: "M"},
			{ProductID: "p2", ProductNameEN: "Scarf", ProductNameFR: "Foulard", UnitPrice: decimal.NewFromInt(50), Quantity: 1},
		},
		Customer: Customer{FirstName: "Amina", LastName: "Benali", Email: "amina@example.com"},
		Shipping: Shipping{Address: "12 rue de la Paix", City: "Paris", Country: "France"},
	}
}

func newOrchestrator(repo order.Repository, gw payment.Gateway) *Orchestrator {
	return NewOrchestrator(repo, gw, Options{Currency: "EUR", SiteURL: "https://shop.example/", ReturnURL: "https://shop.example/api/checkout/webhook"}, quiet())
}

func TestValidate_Order(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		want   string
	}{
		{"empty cart wins over everything", func(r *Request) { r.Items = nil; r.Customer = Customer{}; r.Shipping = Shipping{} }, MsgEmptyCart},
		{"customer before shipping", func(r *Request) { r.Customer.Email = ""; r.Shipping = Shipping{} }, MsgMissingCustomer},
		{"blank last name", func(r *Request) { r.Customer.LastName = "  " }, MsgMissingCustomer},
		{"shipping city", func(r *Request) { r.Shipping.City = "" }, MsgMissingShipping},
		{"zero quantity", func(r *Request) { r.Items[0].Quantity = 0 }, MsgInvalidItem},
		{"negative price", func(r *Request) { r.Items[1].UnitPrice = decimal.NewFromInt(-1) }, MsgInvalidItem},
		{"missing product", func(r *Request) { r.Items[1].ProductID = "" }, MsgInvalidItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			var ve *ValidationError
			require.True(t, errors.As(Validate(req), &ve))
			assert.Equal(t, tt.want, ve.Message)
		})
	}
	assert.NoError(t, Validate(validRequest()))
}

func TestCreate_UnconfiguredGateway(t *testing.T) {
	repo := ordertest.NewMemRepo()
	res, err := newOrchestrator(repo, nil).Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Empty(t, res.CheckoutURL)
	resp := res.Response()
	assert.Equal(t, MsgPaymentNotConfig, resp.Message)
	assert.True(t, resp.Order.TotalAmount.Equal(decimal.NewFromInt(250)))

	stored, err := repo.GetByID(context.Background(), res.Order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Subtotal.Equal(decimal.NewFromInt(250)), spew.Sdump(stored))
	assert.True(t, stored.ShippingCost.IsZero())
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, order.PaymentPending, stored.PaymentStatus)
	assert.Equal(t, order.StatusNew, stored.Status)
	assert.Equal(t, "EUR", stored.Currency)
	assert.Equal(t, order.PaymentMethodSumUp, stored.PaymentMethod)
	assert.True(t, strings.HasPrefix(stored.OrderNumber, "ORD-"))
	require.Len(t, stored.Items, 2)

	byProduct := map[string]order.Item{}
	for _, it := range stored.Items {
		byProduct[it.ProductID] = it
	}
	assert.Equal(t, "Caftan", byProduct["p1"].ProductNameFR, "french name falls back to english")
	assert.True(t, byProduct["p1"].TotalPrice.Equal(decimal.NewFromInt(200)))
	require.NotNil(t, byProduct["p1"].Size)
	assert.Equal(t, "M", *byProduct["p1"].Size)
	assert.Nil(t, byProduct["p2"].Size)
}

func TestCreate_WithGateway(t *testing.T) {
	repo := ordertest.NewMemRepo()
	gw := &fakeGateway{}
	res, err := newOrchestrator(repo, gw).Create(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, gw.created, 1)
	call := gw.created[0]
	assert.Equal(t, res.Order.OrderNumber, call.Reference)
	assert.Equal(t, "250.00", call.Amount.StringFixed(2))
	assert.Equal(t, "https://shop.example/checkout/success?order="+res.Order.ID, call.RedirectURL)
	assert.Equal(t, "https://shop.example/api/checkout/webhook", call.ReturnURL)
	assert.Equal(t, "https://pay.example/Qchk_"+res.Order.OrderNumber, res.CheckoutURL)

	stored, _ := repo.GetByID(context.Background(), res.Order.ID)
	require.NotNil(t, stored.CheckoutID)
	assert.Equal(t, "chk_"+res.Order.OrderNumber, *stored.CheckoutID)
	assert.Empty(t, res.Response().Message)
}

func TestCreate_PrefersHostedURL(t *testing.T) {
	gw := &fakeGateway{hostedURL: "https://checkout.example/hosted/1"}
	res, err := newOrchestrator(ordertest.NewMemRepo(), gw).Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/hosted/1", res.CheckoutURL)
}

func TestCreate_ItemsFailureDeletesOrder(t *testing.T) {
	repo := ordertest.NewMemRepo()
	repo.ErrInsertItems = errors.New("constraint violation")
	gw := &fakeGateway{}

	_, err := newOrchestrator(repo, gw).Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrItemsPersist)
	assert.Zero(t, repo.Len(), "no orphan order")
	assert.Empty(t, gw.created, "gateway never called")
}

func TestCreate_OrderFailure(t *testing.T) {
	repo := ordertest.NewMemRepo()
	repo.ErrCreate = errors.New("db down")
	_, err := newOrchestrator(repo, nil).Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOrderPersist)
}

func TestCreate_GatewayRejectionKeepsPendingOrder(t *testing.T) {
	repo := ordertest.NewMemRepo()
	gw := &fakeGateway{createErr: &payment.Error{StatusCode: 403, Body: "{}"}}

	_, err := newOrchestrator(repo, gw).Create(context.Background(), validRequest())
	var ge *GatewayError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "Le compte marchand n'est pas activé pour les paiements en ligne", ge.Message())
	assert.Equal(t, 1, repo.Len())

	stored, err := repo.GetByID(context.Background(), ge.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPending, stored.PaymentStatus)
	assert.Nil(t, stored.CheckoutID)

	ge.Err = errors.New("dial tcp: timeout")
	assert.Equal(t, "Erreur lors de la création du paiement", ge.Message())
}

func TestCreate_ZeroTotalRejected(t *testing.T) {
	repo := ordertest.NewMemRepo()
	req := validRequest()
	for i := range req.Items {
		req.Items[i].UnitPrice = decimal.Zero
	}
	_, err := newOrchestrator(repo, &fakeGateway{}).Create(context.Background(), req)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, MsgInvalidAmount, ve.Message)
	assert.Zero(t, repo.Len())
}

func TestCreate_ZeroTotalWithoutGateway(t *testing.T) {
	repo := ordertest.NewMemRepo()
	req := validRequest()
	for i := range req.Items {
		req.Items[i].UnitPrice = decimal.Zero
	}
	res, err := newOrchestrator(repo, nil).Create(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, res.CheckoutURL)
	assert.True(t, res.Order.TotalAmount.IsZero())
	assert.Equal(t, 1, repo.Len())
}

func TestCreate_TotalMatchesStoredItems(t *testing.T) {
	repo := ordertest.NewMemRepo()
	req := validRequest()
	req.Items = []cart.Line{
		{ProductID: "p1", ProductNameEN: "Caftan", UnitPrice: decimal.NewFromInt(100), Quantity: 1, Size: "M"},
		{ProductID: "p1", ProductNameEN: "Caftan", UnitPrice: decimal.NewFromInt(50), Quantity: 1, Size: "M"},
	}
	gw := &fakeGateway{}
	res, err := newOrchestrator(repo, gw).Create(context.Background(), req)
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), res.Order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	sum := decimal.Zero
	for _, it := range stored.Items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	assert.True(t, stored.TotalAmount.Equal(sum), spew.Sdump(stored))
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(150)))
	require.Len(t, gw.created, 1)
	assert.Equal(t, "150.00", gw.created[0].Amount.StringFixed(2))
}

func TestNewOrderNumber(t *testing.T) {
	n := NewOrderNumber(time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^ORD-20261019-[0-9A-F]{8}$`, n)
	assert.NotEqual(t, n, NewOrderNumber(time.Now()))
}

func TestQuote(t *testing.T) {
	q := Quote(QuoteRequest{Items: []cart.Line{
		{ProductID: "p1", UnitPrice: decimal.NewFromInt(10), Quantity: 1, Size: "S"},
		{ProductID: "p1", UnitPrice: decimal.NewFromInt(10), Quantity: 2, Size: "S"},
		{ProductID: "p2", UnitPrice: decimal.NewFromInt(5), Quantity: 1},
	}})
	assert.Len(t, q.Items, 2)
	assert.Equal(t, 4, q.TotalItems)
	assert.Equal(t, "35", q.Subtotal.String())

	empty := Quote(QuoteRequest{})
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.TotalItems)
}

func seedPending(repo *ordertest.MemRepo, number string, checkoutID *string, age time.Duration) string {
	id := uuid.NewString()
	repo.Put(order.Order{
		ID: id, OrderNumber: number, PaymentStatus: order.PaymentPending, Status: order.StatusNew,
		CheckoutID: checkoutID, CreatedAt: time.Now().Add(-age),
	})
	return id
}

func TestSweeper_Run(t *testing.T) {
	repo := ordertest.NewMemRepo()
	chk1 := "chk_1"
	paidID := seedPending(repo, "ORD-A", &chk1, time.Hour)
	lostID := seedPending(repo, "ORD-B", nil, time.Hour)
	stillID := seedPending(repo, "ORD-C", nil, time.Hour)
	freshID := seedPending(repo, "ORD-D", nil, time.Minute)

	gw := &fakeGateway{
		byID:  map[string]*payment.Checkout{"chk_1": {ID: "chk_1", Status: payment.StatusPaid, TransactionID: "tx1"}},
		byRef: map[string]*payment.Checkout{"ORD-B": {ID: "chk_2", Status: payment.StatusFailed}, "ORD-D": {ID: "chk_4", Status: payment.StatusPaid}},
	}
	sw := NewSweeper(repo, gw, order.NewReconciler(repo, quiet()), 15*time.Minute, quiet())

	res, err := sw.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Checked: 3, Updated: 2, Failed: 0}, res)

	ctx := context.Background()
	paid, _ := repo.GetByID(ctx, paidID)
	assert.Equal(t, order.PaymentPaid, paid.PaymentStatus)
	assert.NotNil(t, paid.PaidAt)
	assert.Equal(t, "tx1", *paid.TransactionID)

	lost, _ := repo.GetByID(ctx, lostID)
	assert.Equal(t, order.PaymentFailed, lost.PaymentStatus)
	require.NotNil(t, lost.CheckoutID, "recovered checkout id is stored")
	assert.Equal(t, "chk_2", *lost.CheckoutID)

	still, _ := repo.GetByID(ctx, stillID)
	assert.Equal(t, order.PaymentPending, still.PaymentStatus)

	fresh, _ := repo.GetByID(ctx, freshID)
	assert.Equal(t, order.PaymentPending, fresh.PaymentStatus, "inside the grace period")
}

func TestSweeper_Errors(t *testing.T) {
	repo := ordertest.NewMemRepo()
	seedPending(repo, "ORD-E", nil, time.Hour)

	_, err := NewSweeper(repo, nil, order.NewReconciler(repo, quiet()), 0, quiet()).Run(context.Background())
	assert.ErrorIs(t, err, ErrPaymentsDisabled)

	gw := &fakeGateway{lookupErr: errors.New("502")}
	res, err := NewSweeper(repo, gw, order.NewReconciler(repo, quiet()), time.Minute, quiet()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Checked: 1, Failed: 1}, res)
}
