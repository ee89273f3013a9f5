package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/boutique-ecom/internal/checkout"
	"github.com/MikeMC777/boutique-ecom/internal/order"
	"github.com/MikeMC777/boutique-ecom/internal/order/ordertest"
	"github.com/MikeMC777/boutique-ecom/internal/payment"
	"github.com/MikeMC777/boutique-ecom/internal/product"
	"github.com/MikeMC777/boutique-ecom/internal/product/producttest"
)

//
// ===== fixtures =====
//

const (
	caftanID  = "93ee8be9-1b2c-4d5e-8f90-a1b2c3d4e5f6"
	scarfID   = "11111111-2222-4333-8444-555555555555"
	ramadanID = "c0000000-0000-4000-8000-000000000001"
)

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeSumUp records the checkout creations and answers with a fixed id.
type fakeSumUp struct {
	status   int
	created  []map[string]any
	hostedAt string
}

func (f *fakeSumUp) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v0.1/checkouts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.created = append(f.created, body)
		if f.status != 0 {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(`{"message":"rejected"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":                  "chk_123",
			"checkout_reference":  body["checkout_reference"],
			"status":              "PENDING",
			"hosted_checkout_url": f.hostedAt,
		})
	})
	return httptest.NewServer(mux)
}

type fixture struct {
	router   *gin.Engine
	orders   *ordertest.MemRepo
	products *producttest.MemRepo
}

func newFixture(t *testing.T, gateway payment.Gateway) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := quietLog()

	products := producttest.NewMemRepo()
	products.PutCollection(product.Collection{ID: ramadanID, Slug: "ramadan", NameEN: "Ramadan", NameFR: "Ramadan", IsActive: true})
	products.PutProduct(product.Product{
		ID: caftanID, NameEN: "Imperial Caftan", NameFR: "Caftan Impérial", Status: product.StatusPublished,
		Price: decimal.NewFromInt(1200), StockQuantity: 2, LowStockThreshold: 5, IsFeatured: true, DisplayOrder: 1,
		CollectionIDs: []string{ramadanID},
	})
	products.PutProduct(product.Product{
		ID: scarfID, NameEN: "Silk Scarf", NameFR: "Foulard en soie", Status: product.StatusPublished,
		Price: decimal.NewFromInt(90), StockQuantity: 20, LowStockThreshold: 5, IsNew: true, DisplayOrder: 2,
	})

	orders := ordertest.NewMemRepo()
	rec := order.NewReconciler(orders, log)
	orch := checkout.NewOrchestrator(orders, gateway, checkout.Options{
		Currency:  "EUR",
		SiteURL:   "https://boutique.example",
		ReturnURL: "https://boutique.example/api/checkout/webhook",
	}, log)

	r := newRouter(services{
		catalog:    product.NewCatalog(products, products, log),
		checkout:   orch,
		orders:     orders,
		reconciler: rec,
		log:        log,
	})
	return &fixture{router: r, orders: orders, products: products}
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

const checkoutBody = `{
  "items":[{"product_id":"%s","product_name_en":"Imperial Caftan","unit_price":100,"quantity":2,"size":"M"},
           {"product_id":"%s","product_name_en":"Silk Scarf","unit_price":50,"quantity":1}],
  "customer":{"first_name":"Amina","last_name":"Benali","email":"amina@example.com"},
  "shipping":{"address":"12 rue de la Paix","city":"Paris","country":"France"}
}`

//
// ---------- catalog ----------
//

func TestListProducts_FiltersAndLimit(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(http.MethodGet, "/api/products", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Success  bool `json:"success"`
		Products []struct {
			ID       string `json:"id"`
			Slug     string `json:"slug"`
			LowStock bool   `json:"lowStock"`
		} `json:"products"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !got.Success || len(got.Products) != 2 {
		t.Fatalf("unexpected list: %s", spew.Sdump(got))
	}
	if got.Products[0].Slug != "93ee8be9-imperial-caftan" || !got.Products[0].LowStock {
		t.Fatalf("unexpected first product: %+v", got.Products[0])
	}

	w = f.do(http.MethodGet, "/api/products?new=true", "")
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Products) != 1 || got.Products[0].ID != scarfID {
		t.Fatalf("new filter not applied: %s", w.Body.String())
	}

	w = f.do(http.MethodGet, "/api/products?collection=ramadan", "")
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Products) != 1 || got.Products[0].ID != caftanID {
		t.Fatalf("collection filter not applied: %s", w.Body.String())
	}

	w = f.do(http.MethodGet, "/api/products?collection=unknown", "")
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Products) != 2 {
		t.Fatalf("unknown collection must not filter: %s", w.Body.String())
	}

	w = f.do(http.MethodGet, "/api/products?limit=0", "")
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Products) != 1 {
		t.Fatalf("limit must clamp to 1, got %d", len(got.Products))
	}

	if w := f.do(http.MethodGet, "/api/products?limit=abc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", w.Code)
	}
}

func TestGetProduct_ByUUIDAndSlug(t *testing.T) {
	f := newFixture(t, nil)

	for _, ref := range []string{caftanID, "93ee8be9-imperial-caftan", "93ee8be9"} {
		w := f.do(http.MethodGet, "/api/products/"+ref, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status=%d body=%s", ref, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), caftanID) {
			t.Fatalf("%s: wrong product %s", ref, w.Body.String())
		}
	}

	for _, ref := range []string{uuid.NewString(), "zzzz-nothing", "deadbeef-ghost"} {
		w := f.do(http.MethodGet, "/api/products/"+ref, "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", ref, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Product not found") {
			t.Fatalf("%s: unexpected body %s", ref, w.Body.String())
		}
	}
}

func TestCollections(t *testing.T) {
	f := newFixture(t, nil)
	w := f.do(http.MethodGet, "/api/collections", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"slug":"ramadan"`) {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

//
// ---------- cart ----------
//

func TestQuote_MergesLines(t *testing.T) {
	f := newFixture(t, nil)
	body := fmt.Sprintf(`{"items":[
	  {"product_id":%q,"product_name_en":"Scarf","unit_price":"90","quantity":1},
	  {"product_id":%q,"product_name_en":"Scarf","unit_price":"90","quantity":2}]}`, scarfID, scarfID)

	w := f.do(http.MethodPost, "/api/cart/quote", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got checkout.QuoteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got.Items) != 1 || got.TotalItems != 3 || !got.Subtotal.Equal(decimal.NewFromInt(270)) {
		t.Fatalf("unexpected quote: %s", spew.Sdump(got))
	}

	if w := f.do(http.MethodPost, "/api/cart/quote", `{"items":[],"coupon":"X"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown fields must be rejected, got %d", w.Code)
	}
}

//
// ---------- checkout ----------
//

func TestCheckout_NoGateway(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(http.MethodPost, "/api/checkout", fmt.Sprintf(checkoutBody, caftanID, scarfID))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got checkout.Response
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !got.Success || got.CheckoutURL != "" || got.Message != checkout.MsgPaymentNotConfig {
		t.Fatalf("unexpected response: %s", spew.Sdump(got))
	}
	if !got.Order.TotalAmount.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("total=%s, expected 250", got.Order.TotalAmount)
	}
	if f.orders.Len() != 1 || f.orders.ItemCount(got.Order.ID) != 2 {
		t.Fatalf("order not persisted: orders=%d items=%d", f.orders.Len(), f.orders.ItemCount(got.Order.ID))
	}
}

func TestCheckout_WithGateway(t *testing.T) {
	fake := &fakeSumUp{}
	srv := fake.server(t)
	defer srv.Close()
	gw := payment.NewSumUp(srv.URL, "sk_test", "MCODE", "https://pay.sumup.com/b2c/Q", 2*time.Second)
	f := newFixture(t, gw)

	w := f.do(http.MethodPost, "/api/checkout", fmt.Sprintf(checkoutBody, caftanID, scarfID))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got checkout.Response
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.CheckoutURL != "https://pay.sumup.com/b2c/Qchk_123" {
		t.Fatalf("checkout_url=%q", got.CheckoutURL)
	}
	if len(fake.created) != 1 {
		t.Fatalf("gateway calls=%d", len(fake.created))
	}
	call := fake.created[0]
	if call["checkout_reference"] != got.Order.OrderNumber || call["merchant_code"] != "MCODE" || call["amount"] != float64(250) {
		t.Fatalf("unexpected gateway payload: %s", spew.Sdump(call))
	}
	if call["redirect_url"] != "https://boutique.example/checkout/success?order="+got.Order.ID {
		t.Fatalf("redirect_url=%v", call["redirect_url"])
	}

	stored, err := f.orders.GetByID(context.Background(), got.Order.ID)
	if err != nil {
		t.Fatalf("order lookup: %v", err)
	}
	if stored.CheckoutID == nil || *stored.CheckoutID != "chk_123" {
		t.Fatalf("checkout id not stored: %s", spew.Sdump(stored.CheckoutID))
	}
}

func TestCheckout_GatewayRejected(t *testing.T) {
	fake := &fakeSumUp{status: http.StatusForbidden}
	srv := fake.server(t)
	defer srv.Close()
	f := newFixture(t, payment.NewSumUp(srv.URL, "sk_test", "MCODE", "", 2*time.Second))

	w := f.do(http.MethodPost, "/api/checkout", fmt.Sprintf(checkoutBody, caftanID, scarfID))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "n'est pas activé") {
		t.Fatalf("unexpected error: %s", w.Body.String())
	}
	if f.orders.Len() != 1 {
		t.Fatalf("order must stay pending, orders=%d", f.orders.Len())
	}
}

func TestCheckout_Validation(t *testing.T) {
	f := newFixture(t, nil)
	cases := []struct {
		name, body, msg string
	}{
		{"empty cart", `{"items":[],"customer":{},"shipping":{}}`, checkout.MsgEmptyCart},
		{"no customer", fmt.Sprintf(`{"items":[{"product_id":%q,"product_name_en":"x","unit_price":1,"quantity":1}],"customer":{},"shipping":{}}`, scarfID), checkout.MsgMissingCustomer},
		{"unknown field", `{"items":[],"promo":"FREE"}`, "Requête invalide"},
		{"broken json", `{"items":`, "Requête invalide"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.do(http.MethodPost, "/api/checkout", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tc.msg) {
				t.Fatalf("expected %q in %s", tc.msg, w.Body.String())
			}
		})
	}
	if f.orders.Len() != 0 {
		t.Fatalf("nothing must be written, orders=%d", f.orders.Len())
	}
}

func TestCheckout_ItemsFailureCompensates(t *testing.T) {
	f := newFixture(t, nil)
	f.orders.ErrInsertItems = fmt.Errorf("boom")

	w := f.do(http.MethodPost, "/api/checkout", fmt.Sprintf(checkoutBody, caftanID, scarfID))
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), "ajout des articles") {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if f.orders.Len() != 0 {
		t.Fatalf("order must be deleted, orders=%d", f.orders.Len())
	}
}

//
// ---------- order summary + webhook ----------
//

func seedOrder(f *fixture) order.Order {
	o := order.Order{
		ID:            uuid.NewString(),
		OrderNumber:   "ORD-20261019-ABCDEF12",
		TotalAmount:   decimal.NewFromInt(250),
		Currency:      "EUR",
		PaymentStatus: order.PaymentPending,
		Status:        order.StatusNew,
	}
	f.orders.Put(o)
	return o
}

func TestOrderSummary(t *testing.T) {
	f := newFixture(t, nil)
	o := seedOrder(f)

	w := f.do(http.MethodGet, "/api/checkout/order?order="+o.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"payment_status":"pending"`) || strings.Contains(w.Body.String(), "customer_email") {
		t.Fatalf("unexpected summary: %s", w.Body.String())
	}

	if w := f.do(http.MethodGet, "/api/checkout/order", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := f.do(http.MethodGet, "/api/checkout/order?order="+uuid.NewString(), ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := f.do(http.MethodGet, "/api/checkout/order?order=not-a-uuid", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestWebhook(t *testing.T) {
	f := newFixture(t, nil)
	o := seedOrder(f)

	body := fmt.Sprintf(`{"event_type":"CHECKOUT_COMPLETED","checkout_reference":%q,"transaction_id":"tx1","extra":{"a":1}}`, o.OrderNumber)
	w := f.do(http.MethodPost, "/api/checkout/webhook", body)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	got, _ := f.orders.GetByID(context.Background(), o.ID)
	if got.PaymentStatus != order.PaymentPaid || got.PaidAt == nil || got.TransactionID == nil || *got.TransactionID != "tx1" {
		t.Fatalf("order not reconciled: %s", spew.Sdump(got))
	}
	paidAt := *got.PaidAt

	// replay keeps the first paid_at
	w = f.do(http.MethodPost, "/api/checkout/webhook", body)
	if w.Code != http.StatusOK {
		t.Fatalf("replay status=%d", w.Code)
	}
	got, _ = f.orders.GetByID(context.Background(), o.ID)
	if !got.PaidAt.Equal(paidAt) {
		t.Fatalf("paid_at moved on replay: %v -> %v", paidAt, *got.PaidAt)
	}

	if w := f.do(http.MethodPost, "/api/checkout/webhook", `{"status":"PAID"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing reference, got %d", w.Code)
	}
	if w := f.do(http.MethodPost, "/api/checkout/webhook", `{"status":"PAID","checkout_reference":"ORD-NOPE"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", w.Code)
	}

	w = f.do(http.MethodGet, "/api/checkout/webhook", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "SumUp webhook endpoint") {
		t.Fatalf("ping: status=%d body=%s", w.Code, w.Body.String())
	}
}
