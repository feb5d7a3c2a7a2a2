// Package server wires the HTTP surface.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	billingdomain "github.com/digimanager/digimanager/internal/billing/domain"
	clientdomain "github.com/digimanager/digimanager/internal/client/domain"
	"github.com/digimanager/digimanager/internal/config"
	dashboarddomain "github.com/digimanager/digimanager/internal/dashboard/domain"
	invoicedomain "github.com/digimanager/digimanager/internal/invoice/domain"
	"github.com/digimanager/digimanager/internal/observability"
	"github.com/digimanager/digimanager/internal/observability/logger"
	"github.com/digimanager/digimanager/internal/observability/metrics"
	"github.com/digimanager/digimanager/internal/observability/tracing"
	orderdomain "github.com/digimanager/digimanager/internal/order/domain"
	"github.com/digimanager/digimanager/internal/ratelimit"
	reminderdomain "github.com/digimanager/digimanager/internal/reminder/domain"
	settingsdomain "github.com/digimanager/digimanager/internal/settings/domain"
	sitedomain "github.com/digimanager/digimanager/internal/siteproject/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("server",
	fx.Provide(
		NewHandlers,
		NewEngine,
	),
	fx.Invoke(Register),
)

type HandlerParams struct {
	fx.In

	Log           *zap.Logger
	Clients       clientdomain.Service
	Orders        orderdomain.Service
	Invoices      invoicedomain.Service
	Sites         sitedomain.Service
	Billing       billingdomain.Service
	Notifications reminderdomain.Service
	Dashboard     dashboarddomain.Service
	Settings      settingsdomain.Service
}

// Handlers holds the HTTP handlers for every resource.
type Handlers struct {
	log           *zap.Logger
	clients       clientdomain.Service
	orders        orderdomain.Service
	invoices      invoicedomain.Service
	sites         sitedomain.Service
	billing       billingdomain.Service
	notifications reminderdomain.Service
	dashboard     dashboarddomain.Service
	settings      settingsdomain.Service
}

func NewHandlers(p HandlerParams) *Handlers {
	return &Handlers{
		log:           p.Log.Named("server"),
		clients:       p.Clients,
		orders:        p.Orders,
		invoices:      p.Invoices,
		sites:         p.Sites,
		billing:       p.Billing,
		notifications: p.Notifications,
		dashboard:     p.Dashboard,
		settings:      p.Settings,
	}
}

type EngineParams struct {
	fx.In

	Log         *zap.Logger
	ObsConfig   observability.Config
	Handlers    *Handlers
	HTTPMetrics *metrics.HTTPMetrics
	Metrics     *metrics.Metrics
	Limiter     *ratelimit.Limiter `optional:"true"`
}

func NewEngine(p EngineParams) *gin.Engine {
	if !p.ObsConfig.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(tracing.GinMiddleware())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		Debug:           p.ObsConfig.Debug(),
		ErrorClassifier: classifyError,
	}))
	engine.Use(metrics.GinMiddleware(p.HTTPMetrics))
	engine.Use(ratelimit.GinMiddleware(p.Limiter, p.Metrics, p.Log))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	p.Handlers.registerRoutes(engine)
	return engine
}

func (h *Handlers) registerRoutes(engine *gin.Engine) {
	v1 := engine.Group("/v1")

	clients := v1.Group("/clients")
	clients.GET("", h.ListClients)
	clients.POST("", h.CreateClient)
	clients.GET("/:id", h.GetClient)
	clients.PUT("/:id", h.UpdateClient)
	clients.DELETE("/:id", h.DeleteClient)
	clients.GET("/:id/payments", h.ClientPaymentHistory)
	clients.POST("/:id/payments/:month", h.MarkClientMonthPaid)
	clients.DELETE("/:id/payments/:month", h.RevertClientMonthPayment)

	orders := v1.Group("/orders")
	orders.GET("", h.ListOrders)
	orders.POST("", h.CreateOrder)
	orders.GET("/:id", h.GetOrder)
	orders.PUT("/:id", h.UpdateOrder)
	orders.DELETE("/:id", h.DeleteOrder)

	invoices := v1.Group("/invoices")
	invoices.GET("", h.ListInvoices)
	invoices.POST("", h.CreateInvoice)
	invoices.GET("/:id", h.GetInvoice)
	invoices.DELETE("/:id", h.DeleteInvoice)
	invoices.POST("/:id/toggle-paid", h.ToggleInvoicePaid)

	sites := v1.Group("/sites")
	sites.GET("", h.ListSites)
	sites.POST("", h.CreateSite)
	sites.GET("/:id", h.GetSite)
	sites.PUT("/:id", h.UpdateSite)
	sites.DELETE("/:id", h.DeleteSite)
	sites.GET("/:id/payments", h.SitePaymentHistory)
	sites.POST("/:id/payments/:month", h.MarkSiteMonthPaid)
	sites.DELETE("/:id/payments/:month", h.RevertSiteMonthPayment)

	notifications := v1.Group("/notifications")
	notifications.GET("", h.ListNotifications)
	notifications.POST("/:id/read", h.MarkNotificationRead)

	v1.GET("/dashboard/stats", h.DashboardStats)

	settings := v1.Group("/settings")
	settings.GET("", h.GetSettings)
	settings.PUT("", h.UpdateSettings)
}

// Register starts the HTTP server on the fx lifecycle.
func Register(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
