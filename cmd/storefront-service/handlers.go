package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/boutique-ecom/internal/checkout"
	"github.com/MikeMC777/boutique-ecom/internal/httpx"
	"github.com/MikeMC777/boutique-ecom/internal/order"
	"github.com/MikeMC777/boutique-ecom/internal/product"
)

const maxProductLimit = 100

// listProductsHandler godoc
// @Summary      List published products
// @Tags         catalog
// @Produce      json
// @Param        collection  query  string  false  "collection slug"
// @Param        featured    query  bool    false  "only featured"
// @Param        new         query  bool    false  "only new arrivals"
// @Param        limit       query  int     false  "max results (1..100)"
// @Success      200  {object}  productsResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Router       /api/products [get]
func listProductsHandler(cat *product.Catalog, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := product.CatalogQuery{
			Collection: c.Query("collection"),
			Featured:   c.Query("featured") == "true",
			New:        c.Query("new") == "true",
		}
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				httpx.Fail(c, http.StatusBadRequest, "Invalid limit", err.Error())
				return
			}
			q.Limit = min(max(n, 1), maxProductLimit)
		}
		ps, err := cat.List(c.Request.Context(), q)
		if err != nil {
			log.WithError(err).Error("list products")
			httpx.Fail(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}
		c.JSON(http.StatusOK, productsResponse{Success: true, Products: ps})
	}
}

// getProductHandler godoc
// @Summary      Get a published product by id or short-id slug
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "uuid or shortid-slug"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/products/{id} [get]
func getProductHandler(cat *product.Catalog, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := cat.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				httpx.Fail(c, http.StatusNotFound, "Product not found")
				return
			}
			log.WithError(err).Error("get product")
			httpx.Fail(c, http.StatusInternalServerError, "Failed to fetch product")
			return
		}
		c.JSON(http.StatusOK, productResponse{Success: true, Product: p})
	}
}

// listCollectionsHandler godoc
// @Summary      List active collections
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  collectionsResponse
// @Router       /api/collections [get]
func listCollectionsHandler(cat *product.Catalog, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cols, err := cat.Collections(c.Request.Context())
		if err != nil {
			log.WithError(err).Error("list collections")
			httpx.Fail(c, http.StatusInternalServerError, "Failed to fetch collections")
			return
		}
		c.JSON(http.StatusOK, collectionsResponse{Success: true, Collections: cols})
	}
}

// quoteHandler godoc
// @Summary      Merge cart lines and compute totals
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  checkout.QuoteRequest  true  "cart lines"
// @Success      200  {object}  checkout.QuoteResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Router       /api/cart/quote [post]
func quoteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkout.QuoteRequest
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		c.JSON(http.StatusOK, checkout.Quote(req))
	}
}

// createCheckoutHandler godoc
// @Summary      Create an order and its hosted payment session
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  checkout.Request  true  "cart, customer and shipping"
// @Success      200  {object}  checkout.Response
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      500  {object}  httpx.ErrorResponse
// @Failure      502  {object}  httpx.ErrorResponse
// @Router       /api/checkout [post]
func createCheckoutHandler(orch *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkout.Request
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Requête invalide", err.Error())
			return
		}

		res, err := orch.Create(c.Request.Context(), req)
		if err != nil {
			var ve *checkout.ValidationError
			var ge *checkout.GatewayError
			switch {
			case errors.As(err, &ve):
				httpx.Fail(c, http.StatusBadRequest, ve.Message, ve.Details)
			case errors.As(err, &ge):
				httpx.Fail(c, http.StatusBadGateway, ge.Message(), ge.Err.Error())
			case errors.Is(err, checkout.ErrItemsPersist):
				httpx.Fail(c, http.StatusInternalServerError, checkout.MsgItemsFailed)
			default:
				httpx.Fail(c, http.StatusInternalServerError, checkout.MsgOrderFailed)
			}
			return
		}
		c.JSON(http.StatusOK, res.Response())
	}
}

// orderSummaryHandler godoc
// @Summary      Minimal order info for the success page
// @Tags         checkout
// @Produce      json
// @Param        order  query  string  true  "order id"
// @Success      200  {object}  orderSummaryResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/checkout/order [get]
func orderSummaryHandler(orders order.Repository, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("order")
		if id == "" {
			httpx.Fail(c, http.StatusBadRequest, "Missing order id")
			return
		}
		if !product.IsUUID(id) {
			httpx.Fail(c, http.StatusNotFound, "Order not found")
			return
		}
		o, err := orders.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, order.ErrNotFound) {
				httpx.Fail(c, http.StatusNotFound, "Order not found")
				return
			}
			log.WithError(err).Error("order summary")
			httpx.Fail(c, http.StatusInternalServerError, "Server error")
			return
		}
		c.JSON(http.StatusOK, orderSummaryResponse{Success: true, Order: o.Summary()})
	}
}

// webhookHandler godoc
// @Summary      Payment gateway notification
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  order.WebhookEvent  true  "gateway event"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Failure      500  {object}  httpx.ErrorResponse
// @Router       /api/checkout/webhook [post]
func webhookHandler(rec *order.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		// gateways add fields freely, so no strict decoding here
		var ev order.WebhookEvent
		if err := c.ShouldBindJSON(&ev); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid webhook payload", err.Error())
			return
		}
		if _, err := rec.Apply(c.Request.Context(), ev); err != nil {
			switch {
			case errors.Is(err, order.ErrMissingReference):
				httpx.Fail(c, http.StatusBadRequest, "Missing checkout reference")
			case errors.Is(err, order.ErrNotFound):
				httpx.Fail(c, http.StatusNotFound, "Order not found")
			default:
				httpx.Fail(c, http.StatusInternalServerError, "Failed to update order")
			}
			return
		}
		c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

// webhookPingHandler godoc
// @Summary      Webhook liveness probe
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  webhookPing
// @Router       /api/checkout/webhook [get]
func webhookPingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, webhookPing{Status: "ok", Message: "SumUp webhook endpoint"})
	}
}

type productsResponse struct {
	Success  bool                    `json:"success"`
	Products []product.PublicProduct `json:"products"`
}

type productResponse struct {
	Success bool                         `json:"success"`
	Product *product.PublicProductDetail `json:"product"`
}

type collectionsResponse struct {
	Success     bool                       `json:"success"`
	Collections []product.PublicCollection `json:"collections"`
}

type orderSummaryResponse struct {
	Success bool               `json:"success"`
	Order   order.OrderSummary `json:"order"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type webhookPing struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
