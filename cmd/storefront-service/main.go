// Command storefront-service serves the public catalog, checkout and the
// payment webhook.
//
// @title        Boutique Storefront API
// @version      1.0
// @description  Public catalog, cart totals, checkout and payment notifications.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/MikeMC777/boutique-ecom/docs"
	"github.com/MikeMC777/boutique-ecom/internal/checkout"
	"github.com/MikeMC777/boutique-ecom/internal/config"
	"github.com/MikeMC777/boutique-ecom/internal/db"
	"github.com/MikeMC777/boutique-ecom/internal/health"
	"github.com/MikeMC777/boutique-ecom/internal/httpx"
	"github.com/MikeMC777/boutique-ecom/internal/logging"
	"github.com/MikeMC777/boutique-ecom/internal/order"
	"github.com/MikeMC777/boutique-ecom/internal/payment"
	"github.com/MikeMC777/boutique-ecom/internal/product"
)

// services is everything the router needs.
type services struct {
	catalog    *product.Catalog
	checkout   *checkout.Orchestrator
	orders     order.Repository
	reconciler *order.Reconciler
	log        logrus.FieldLogger
}

func newRouter(s services) *gin.Engine {
	r := httpx.NewEngine(s.log)

	api := r.Group("/api")
	api.GET("/products", listProductsHandler(s.catalog, s.log))
	api.GET("/products/:id", getProductHandler(s.catalog, s.log))
	api.GET("/collections", listCollectionsHandler(s.catalog, s.log))
	api.POST("/cart/quote", quoteHandler())

	api.POST("/checkout", createCheckoutHandler(s.checkout))
	api.GET("/checkout/order", orderSummaryHandler(s.orders, s.log))
	api.POST("/checkout/webhook", webhookHandler(s.reconciler))
	api.GET("/checkout/webhook", webhookPingHandler())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName(docs.StorefrontInfo.InstanceName())))
	return r
}

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	boot := logging.New("info", false)
	cfg, err := config.Load(boot)
	if err != nil {
		boot.WithError(err).Fatal("config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogJSON).WithField("service", "storefront")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.WithError(err).Fatal("database")
	}
	defer pool.Close()
	if cfg.DBBootstrap {
		if err := db.EnsureSchema(ctx, pool); err != nil {
			log.WithError(err).Fatal("schema")
		}
		log.Info("schema ensured")
	}

	products := product.NewPGRepo(pool)
	orders := order.NewPGRepo(pool)
	reconciler := order.NewReconciler(orders, log)

	// a nil interface, never a typed nil, when payments are off
	var gateway payment.Gateway
	if cfg.PaymentsConfigured() {
		gateway = payment.NewSumUp(cfg.SumUpBaseURL, cfg.SumUpAPIKey, cfg.SumUpMerchantCode, cfg.SumUpPayURL, cfg.HTTPTimeout)
	}
	orch := checkout.NewOrchestrator(orders, gateway, checkout.Options{
		Currency:  cfg.CheckoutCurrency,
		SiteURL:   cfg.SiteURL,
		ReturnURL: cfg.ResolvedWebhookURL(),
	}, log)

	if gateway != nil && cfg.ReconcileInterval > 0 {
		sweeper := checkout.NewSweeper(orders, gateway, reconciler, cfg.ReconcileAfter, log)
		go sweeper.Loop(ctx, cfg.ReconcileInterval)
		log.WithField("interval", cfg.ReconcileInterval).Info("pending payment sweep enabled")
	}

	hs := health.New("storefront", pool, log)
	go hs.Watch(ctx, 15*time.Second)
	lis, err := net.Listen("tcp", cfg.StorefrontGRPCAddr)
	if err != nil {
		log.WithError(err).Fatal("grpc listen")
	}
	go func() {
		if err := hs.Serve(lis); err != nil {
			log.WithError(err).Error("grpc health stopped")
		}
	}()

	router := newRouter(services{
		catalog:    product.NewCatalog(products, products, log),
		checkout:   orch,
		orders:     orders,
		reconciler: reconciler,
		log:        log,
	})
	srv := &http.Server{
		Addr:              cfg.StorefrontAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("addr", cfg.StorefrontAddr).Info("storefront-service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown")
	}
	hs.Stop()
}
