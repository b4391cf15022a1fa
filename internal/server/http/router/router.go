package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/invoicebox/internal/config"
	"github.com/polkiloo/invoicebox/internal/domain/model"
	"github.com/polkiloo/invoicebox/internal/metrics"
	"github.com/polkiloo/invoicebox/internal/pkg/session"
	"github.com/polkiloo/invoicebox/internal/server/http/handlers"
	"github.com/polkiloo/invoicebox/internal/server/http/middleware"
	"github.com/polkiloo/invoicebox/internal/server/http/views"
)

// SessionManager loads, persists and clears the browser session.
type SessionManager interface {
	middleware.SessionLoader
	handlers.Sessions
}

// Setup configures gin router with handlers and middleware.
func Setup(cfg *config.Config, facade handlers.WebFacade, sessions SessionManager, m *metrics.Metrics, logger *slog.Logger) (*gin.Engine, error) {
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, err
	}
	csrfKey, err := session.DeriveCSRFKey(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.HTMLRender = renderer

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.Compression())

	engine.StaticFS("/static", views.Static())
	engine.GET("/healthz", func(c *gin.Context) {
		if err := facade.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	authHandler := handlers.NewAuthHandler(facade, sessions, facade.ForgetView, logger)
	invoiceHandler := handlers.NewInvoiceHandler(facade, sessions, logger)
	dashboardHandler := handlers.NewDashboardHandler(facade, sessions, facade.ForgetView, logger)

	web := engine.Group("")
	web.Use(middleware.CSRF(csrfKey, cfg.CookieSecure))
	web.Use(middleware.LoadSession(sessions, logger))
	web.POST("/logout", authHandler.Logout)

	guest := web.Group("")
	guest.Use(middleware.GuestOnly())
	guest.GET("/login", authHandler.LoginForm)
	guest.POST("/login", authHandler.Login)
	guest.GET("/register", authHandler.RegisterForm)
	guest.POST("/register", authHandler.Register)

	private := web.Group("")
	private.Use(middleware.SessionRequired())
	private.GET("/dashboard", dashboardHandler.Dashboard)
	private.GET("/analytics", dashboardHandler.Analytics)
	private.GET("/invoices", invoiceHandler.List)
	private.POST("/invoices/:id/status", invoiceHandler.UpdateStatus)
	private.GET("/invoices/:id/pay", invoiceHandler.PaymentForm)
	private.POST("/invoices/:id/pay", invoiceHandler.SubmitPayment)
	private.GET("/invoices/:id/pdf", invoiceHandler.PDF)

	provider := private.Group("")
	provider.Use(middleware.RoleRequired(model.RoleProvider))
	provider.GET("/create-invoice", invoiceHandler.CreateForm)
	provider.POST("/create-invoice", invoiceHandler.Create)

	engine.NoRoute(middleware.LoadSession(sessions, logger), func(c *gin.Context) {
		if middleware.CurrentSession(c).Authenticated() {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
		c.Redirect(http.StatusSeeOther, "/login")
	})

	return engine, nil
}
