// Command admin-service serves the back-office API: sessions, orders,
// catalog management, exchange rates and image uploads.
//
// @title        Boutique Admin API
// @version      1.0
// @description  Back-office API. Every route except login, logout and session needs the admin_session cookie or a Bearer token.
// @BasePath     /
// @securityDefinitions.apikey  AdminSession
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/MikeMC777/boutique-ecom/docs"
	"github.com/MikeMC777/boutique-ecom/internal/admin"
	"github.com/MikeMC777/boutique-ecom/internal/checkout"
	"github.com/MikeMC777/boutique-ecom/internal/config"
	"github.com/MikeMC777/boutique-ecom/internal/currency"
	"github.com/MikeMC777/boutique-ecom/internal/db"
	"github.com/MikeMC777/boutique-ecom/internal/health"
	"github.com/MikeMC777/boutique-ecom/internal/httpx"
	"github.com/MikeMC777/boutique-ecom/internal/logging"
	"github.com/MikeMC777/boutique-ecom/internal/order"
	"github.com/MikeMC777/boutique-ecom/internal/payment"
	"github.com/MikeMC777/boutique-ecom/internal/product"
	"github.com/MikeMC777/boutique-ecom/internal/storage"
)

type services struct {
	auth     *admin.Service
	catalog  *product.Admin
	orders   *order.Admin
	sweeper  *checkout.Sweeper
	currency *currency.Service
	uploads  *storage.Uploader
	// assetsDir is served at /assets when uploads go to the local bucket
	assetsDir    string
	cookieSecure bool
	log          logrus.FieldLogger
}

func newRouter(s services) *gin.Engine {
	r := httpx.NewEngine(s.log)

	if s.assetsDir != "" {
		r.Static("/assets", s.assetsDir)
	}

	api := r.Group("/api/admin")
	api.POST("/login", loginHandler(s.auth, s.cookieSecure, s.log))
	api.POST("/logout", logoutHandler(s.auth, s.cookieSecure, s.log))
	api.GET("/session", sessionHandler(s.auth, s.log))

	p := api.Group("", admin.RequireSession(s.auth))
	p.PUT("/settings/password", changePasswordHandler(s.auth, s.log))
	p.GET("/dashboard", dashboardHandler(s.catalog, s.orders, s.log))

	p.GET("/orders", listOrdersHandler(s.orders, s.log))
	p.POST("/orders/reconcile", reconcileHandler(s.sweeper, s.log))
	p.GET("/orders/:id", getOrderHandler(s.orders, s.log))
	p.PUT("/orders/:id", updateOrderHandler(s.orders, s.log))
	p.DELETE("/orders/:id", deleteOrderHandler(s.orders, s.log))

	p.GET("/products", adminListProductsHandler(s.catalog, s.log))
	p.POST("/products", createProductHandler(s.catalog, s.log))
	p.GET("/products/:id", adminGetProductHandler(s.catalog, s.log))
	p.PUT("/products/:id", updateProductHandler(s.catalog, s.log))
	p.DELETE("/products/:id", deleteProductHandler(s.catalog, s.log))

	p.GET("/collections", adminListCollectionsHandler(s.catalog, s.log))
	p.POST("/collections", createCollectionHandler(s.catalog, s.log))
	p.GET("/collections/:id", adminGetCollectionHandler(s.catalog, s.log))
	p.PUT("/collections/:id", updateCollectionHandler(s.catalog, s.log))
	p.PATCH("/collections/:id", patchCollectionHandler(s.catalog, s.log))
	p.DELETE("/collections/:id", deleteCollectionHandler(s.catalog, s.log))

	p.GET("/tags", listTagsHandler(s.catalog, s.log))
	p.POST("/tags", createTagHandler(s.catalog, s.log))
	p.GET("/tags/:id", getTagHandler(s.catalog, s.log))
	p.PUT("/tags/:id", updateTagHandler(s.catalog, s.log))
	p.DELETE("/tags/:id", deleteTagHandler(s.catalog, s.log))

	p.GET("/currency", listCurrencyHandler(s.currency, s.log))
	p.PUT("/currency", updateCurrencyHandler(s.currency, s.log))
	p.POST("/currency/sync", syncCurrencyHandler(s.currency, s.log))

	p.POST("/upload", uploadHandler(s.uploads, s.log))
	p.DELETE("/upload", deleteUploadHandler(s.uploads, s.log))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName(docs.AdminInfo.InstanceName())))
	return r
}

// newBucket picks the object store for uploads. The returned dir is non-empty
// only for the local backend.
func newBucket(cfg config.Config) (storage.Bucket, string, error) {
	switch strings.ToLower(cfg.StorageBackend) {
	case "", "local":
		base := strings.TrimRight(cfg.PublicBaseURL, "/") + "/assets"
		return storage.NewFSBucket(cfg.AssetsDir, base), cfg.AssetsDir, nil
	case "supabase":
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
			return nil, "", errors.New("SUPABASE_URL and SUPABASE_SERVICE_KEY are required for the supabase backend")
		}
		return storage.NewSupabaseBucket(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.StorageBucket, cfg.HTTPTimeout), "", nil
	default:
		return nil, "", errors.New("unknown STORAGE_BACKEND " + cfg.StorageBackend)
	}
}

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	boot := logging.New("info", false)
	cfg, err := config.Load(boot)
	if err != nil {
		boot.WithError(err).Fatal("config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogJSON).WithField("service", "admin")

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

	bucket, assetsDir, err := newBucket(cfg)
	if err != nil {
		log.WithError(err).Fatal("storage")
	}

	products := product.NewPGRepo(pool)
	orders := order.NewPGRepo(pool)

	var gateway payment.Gateway
	if cfg.PaymentsConfigured() {
		gateway = payment.NewSumUp(cfg.SumUpBaseURL, cfg.SumUpAPIKey, cfg.SumUpMerchantCode, cfg.SumUpPayURL, cfg.HTTPTimeout)
	}

	hs := health.New("admin", pool, log)
	go hs.Watch(ctx, 15*time.Second)
	lis, err := net.Listen("tcp", cfg.AdminGRPCAddr)
	if err != nil {
		log.WithError(err).Fatal("grpc listen")
	}
	go func() {
		if err := hs.Serve(lis); err != nil {
			log.WithError(err).Error("grpc health stopped")
		}
	}()

	router := newRouter(services{
		auth:     admin.NewService(admin.NewPGRepo(pool), admin.NewTokens(cfg.SessionSecret), log),
		catalog:  product.NewAdmin(products, products, products, log),
		orders:   order.NewAdmin(orders, log),
		sweeper:  checkout.NewSweeper(orders, gateway, order.NewReconciler(orders, log), cfg.ReconcileAfter, log),
		currency: currency.NewService(currency.NewPGRepo(pool), currency.NewFXClient(cfg.FXBaseURL, cfg.HTTPTimeout), cfg.BaseCurrency, cfg.TrackedCurrencies, log),
		uploads:  storage.NewUploader(bucket, log),

		assetsDir:    assetsDir,
		cookieSecure: cfg.CookieSecure,
		log:          log,
	})
	srv := &http.Server{
		Addr:              cfg.AdminAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("addr", cfg.AdminAddr).Info("admin-service listening")
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
