package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/boutique-ecom/internal/admin"
	"github.com/MikeMC777/boutique-ecom/internal/checkout"
	"github.com/MikeMC777/boutique-ecom/internal/currency"
	"github.com/MikeMC777/boutique-ecom/internal/httpx"
	"github.com/MikeMC777/boutique-ecom/internal/order"
	"github.com/MikeMC777/boutique-ecom/internal/product"
	"github.com/MikeMC777/boutique-ecom/internal/storage"
)

//
// ===== auth =====
//

// loginHandler godoc
// @Summary      Open an admin session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  admin.LoginRequest  true  "credentials"
// @Success      200  {object}  admin.LoginResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      401  {object}  httpx.ErrorResponse
// @Router       /api/admin/login [post]
func loginHandler(svc *admin.Service, secure bool, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req admin.LoginRequest
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Username and password are required", err.Error())
			return
		}
		signed, sess, err := svc.Login(c.Request.Context(), req.Username, req.Password, req.RememberMe)
		if err != nil {
			if errors.Is(err, admin.ErrInvalidCredentials) {
				httpx.Fail(c, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			log.WithError(err).Error("admin login")
			httpx.Fail(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		admin.SetCookie(c, signed, sess.ExpiresAt, secure)
		c.JSON(http.StatusOK, admin.LoginResponse{Success: true, Token: signed, ExpiresAt: sess.ExpiresAt})
	}
}

// logoutHandler godoc
// @Summary      Close the current admin session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /api/admin/logout [post]
func logoutHandler(svc *admin.Service, secure bool, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Logout(c.Request.Context(), admin.TokenFromRequest(c)); err != nil {
			log.WithError(err).Warn("admin logout")
		}
		admin.ClearCookie(c, secure)
		c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

// sessionHandler godoc
// @Summary      Report whether the caller holds a live session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  admin.SessionResponse
// @Router       /api/admin/session [get]
func sessionHandler(svc *admin.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := svc.Authenticate(c.Request.Context(), admin.TokenFromRequest(c))
		if err != nil {
			if !errors.Is(err, admin.ErrUnauthorized) {
				log.WithError(err).Error("admin session lookup")
			}
			c.JSON(http.StatusOK, admin.SessionResponse{Authenticated: false})
			return
		}
		c.JSON(http.StatusOK, admin.SessionResponse{Authenticated: true, Username: sess.Username})
	}
}

// changePasswordHandler godoc
// @Summary      Change the signed-in admin's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  admin.ChangePasswordRequest  true  "current and new password"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      401  {object}  httpx.ErrorResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/settings/password [put]
func changePasswordHandler(svc *admin.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := admin.SessionFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		var req admin.ChangePasswordRequest
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Both current and new password are required", err.Error())
			return
		}
		err := svc.ChangePassword(c.Request.Context(), sess.AdminID, req.CurrentPassword, req.NewPassword)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Password updated successfully"})
		case errors.Is(err, admin.ErrMissingFields):
			httpx.Fail(c, http.StatusBadRequest, "Both current and new password are required")
		case errors.Is(err, admin.ErrNotFound):
			httpx.Fail(c, http.StatusNotFound, "Admin not found")
		case errors.Is(err, admin.ErrWrongPassword):
			httpx.Fail(c, http.StatusBadRequest, "Current password is incorrect")
		default:
			log.WithError(err).Error("change password")
			httpx.Fail(c, http.StatusInternalServerError, "Failed to update password")
		}
	}
}

//
// ===== dashboard =====
//

// dashboardHandler godoc
// @Summary      Back-office landing page counters
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /api/admin/dashboard [get]
func dashboardHandler(catalog *product.Admin, orders product.OrderStats, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := catalog.Dashboard(c.Request.Context(), orders, time.Now())
		if err != nil {
			log.WithError(err).Error("dashboard")
			httpx.Fail(c, http.StatusInternalServerError, "Failed to fetch dashboard data")
			return
		}
		c.JSON(http.StatusOK, dashboardResponse{Success: true, Dashboard: d})
	}
}

//
// ===== orders =====
//

// listOrdersHandler godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        filter  query  string  false  "all | new | pending | delivered | cancelled"
// @Param        search  query  string  false  "order number, email or customer name"
// @Param        page    query  int     false  "page (from 1)"
// @Param        limit   query  int     false  "page size (1..100)"
// @Success      200  {object}  ordersResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Router       /api/admin/orders [get]
func listOrdersHandler(adm *order.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := httpx.Page(c, 20, 100)
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid pagination", err.Error())
			return
		}
		q := order.ListQuery{
			Status: order.Status(c.Query("filter")),
			Search: c.Query("search"),
			Page:   page,
			Limit:  limit,
		}
		orders, pag, err := adm.List(c.Request.Context(), q)
		if err != nil {
			if errors.Is(err, order.ErrInvalidFilter) {
				httpx.Fail(c, http.StatusBadRequest, "Invalid filter", err.Error())
				return
			}
			log.WithError(err).Error("list orders")
			httpx.Fail(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, ordersResponse{Success: true, Orders: orders, Pagination: pag})
	}
}

// getOrderHandler godoc
// @Summary      Get an order with its items
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "order id"
// @Success      200  {object}  orderResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/orders/{id} [get]
func getOrderHandler(adm *order.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := adm.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			orderError(c, err, log, "Failed to fetch order")
			return
		}
		c.JSON(http.StatusOK, orderResponse{Success: true, Order: o})
	}
}

// updateOrderHandler godoc
// @Summary      Update fulfillment status and/or admin notes
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "order id"
// @Param        body  body  order.UpdateOrderRequest  true  "changes"
// @Success      200  {object}  orderResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/orders/{id} [put]
func updateOrderHandler(adm *order.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateOrderRequest
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		o, err := adm.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			orderError(c, err, log, "Failed to update order")
			return
		}
		c.JSON(http.StatusOK, orderResponse{Success: true, Order: o})
	}
}

// deleteOrderHandler godoc
// @Summary      Delete an order and its items
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "order id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /api/admin/orders/{id} [delete]
func deleteOrderHandler(adm *order.Admin, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := adm.Delete(c.Request.Context(), c.Param("id")); err != nil {
			orderError(c, err, log, "Failed to delete order")
			return
		}
		c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

func orderError(c *gin.Context, err error, log logrus.FieldLogger, fallback string) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		httpx.Fail(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, order.ErrEmptyUpdate):
		httpx.Fail(c, http.StatusBadRequest, "Nothing to update")
	case errors.Is(err, order.ErrInvalidStatus):
		httpx.Fail(c, http.StatusBadRequest, "Invalid status", err.Error())
	default:
		log.WithError(err).Error(fallback)
		httpx.Fail(c, http.StatusInternalServerError, fallback)
	}
}

// reconcileHandler godoc
// @Summary      Ask the payment gateway about stale pending orders
// @Tags         orders
// @Produce      json
// @Success      200  {object}  sweepResponse
// @Failure      503  {object}  httpx.ErrorResponse
// @Router       /api/admin/orders/reconcile [post]
func reconcileHandler(sweeper *checkout.Sweeper, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := sweeper.Run(c.Request.Context())
		if err != nil {
			if errors.Is(err, checkout.ErrPaymentsDisabled) {
				httpx.Fail(c, http.StatusServiceUnavailable, "Payment gateway not configured")
				return
			}
			log.WithError(err).Error("reconcile sweep")
			httpx.Fail(c, http.StatusInternalServerError, "Reconciliation failed")
			return
		}
		c.JSON(http.StatusOK, sweepResponse{Success: true, SweepResult: res})
	}
}

//
// ===== currency =====
//

// listCurrencyHandler godoc
// @Summary      List exchange rates
// @Tags         currency
// @Produce      json
// @Success      200  {object}  currenciesResponse
// @Router       /api/admin/currency [get]
func listCurrencyHandler(svc *currency.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rates, err := svc.List(c.Request.Context())
		if err != nil {
			log.WithError(err).Error("list currencies")
			httpx.Fail(c, http.StatusInternalServerError, "Failed to fetch currencies")
			return
		}
		c.JSON(http.StatusOK, currenciesResponse{Success: true, Currencies: rates})
	}
}

// updateCurrencyHandler godoc
// @Summary      Edit exchange rates manually
// @Tags         currency
// @Accept       json
// @Produce      json
// @Param        body  body  currency.UpdateRequest  true  "rates by id"
// @Success      200  {object}  currenciesResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Router       /api/admin/currency [put]
func updateCurrencyHandler(svc *currency.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req currency.UpdateRequest
		if err := httpx.BindStrict(c, &req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		rates, err := svc.Update(c.Request.Context(), req.Currencies)
		if err != nil {
			if errors.Is(err, currency.ErrInvalidRate) {
				httpx.Fail(c, http.StatusBadRequest, "Rate must be greater than zero")
				return
			}
			log.WithError(err).Error("update currencies")
			httpx.Fail(c, http.StatusInternalServerError, "Failed to update currencies")
			return
		}
		c.JSON(http.StatusOK, currenciesResponse{Success: true, Currencies: rates})
	}
}

// syncCurrencyHandler godoc
// @Summary      Pull the latest rates from the FX source
// @Tags         currency
// @Produce      json
// @Success      200  {object}  syncResponse
// @Failure      502  {object}  httpx.ErrorResponse
// @Router       /api/admin/currency/sync [post]
func syncCurrencyHandler(svc *currency.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.Sync(c.Request.Context())
		if err != nil {
			if errors.Is(err, currency.ErrFXUnavailable) {
				httpx.Fail(c, http.StatusBadGateway, "Failed to fetch exchange rates", err.Error())
				return
			}
			log.WithError(err).Error("sync currencies")
			httpx.Fail(c, http.StatusInternalServerError, "Failed to sync rates")
			return
		}
		c.JSON(http.StatusOK, syncResponse{
			Success:    true,
			Message:    "Rates updated successfully",
			Currencies: res.Currencies,
			Source:     res.Source,
			Date:       res.Date,
		})
	}
}

//
// ===== upload =====
//

// uploadHandler godoc
// @Summary      Upload a product image
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "image (JPEG, PNG, WebP, GIF; 5MB max)"
// @Param        folder  formData  string  false  "target folder (default products)"
// @Success      200  {object}  uploadResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Router       /api/admin/upload [post]
func uploadHandler(up *storage.Uploader, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// room for the multipart envelope around a maximum-size file
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadBytes+1<<20)

		fh, err := c.FormFile("file")
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				httpx.Fail(c, http.StatusBadRequest, storage.ErrTooLarge.Error())
				return
			}
			httpx.Fail(c, http.StatusBadRequest, storage.ErrEmptyFile.Error())
			return
		}
		f, err := fh.Open()
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid file", err.Error())
			return
		}
		defer f.Close()

		res, err := up.Upload(c.Request.Context(), c.PostForm("folder"), fh.Filename, f, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrInvalidType), errors.Is(err, storage.ErrTooLarge), errors.Is(err, storage.ErrEmptyFile):
				httpx.Fail(c, http.StatusBadRequest, err.Error())
			default:
				log.WithError(err).Error("upload")
				httpx.Fail(c, http.StatusInternalServerError, "Failed to upload file")
			}
			return
		}
		c.JSON(http.StatusOK, uploadResponse{Success: true, URL: res.URL, Path: res.Path})
	}
}

// deleteUploadHandler godoc
// @Summary      Delete an uploaded object
// @Tags         upload
// @Produce      json
// @Param        path  query  string  true  "object path returned by the upload"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  httpx.ErrorResponse
// @Router       /api/admin/upload [delete]
func deleteUploadHandler(up *storage.Uploader, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Query("path")
		if p == "" {
			httpx.Fail(c, http.StatusBadRequest, "No path provided")
			return
		}
		if err := up.Delete(c.Request.Context(), p); err != nil {
			if errors.Is(err, storage.ErrInvalidKey) {
				httpx.Fail(c, http.StatusBadRequest, "Invalid path")
				return
			}
			log.WithError(err).Error("delete upload")
			httpx.Fail(c, http.StatusInternalServerError, "Failed to delete file")
			return
		}
		c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

//
// ===== response shapes =====
//

type successResponse struct {
	Success bool `json:"success"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type dashboardResponse struct {
	Success bool `json:"success"`
	*product.Dashboard
}

type ordersResponse struct {
	Success    bool             `json:"success"`
	Orders     []order.Order    `json:"orders"`
	Pagination order.Pagination `json:"pagination"`
}

type orderResponse struct {
	Success bool         `json:"success"`
	Order   *order.Order `json:"order"`
}

type sweepResponse struct {
	Success bool `json:"success"`
	checkout.SweepResult
}

type currenciesResponse struct {
	Success    bool            `json:"success"`
	Currencies []currency.Rate `json:"currencies"`
}

type syncResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Currencies []currency.Rate `json:"currencies"`
	Source     string          `json:"source"`
	Date       string          `json:"date"`
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Path    string `json:"path"`
}
