package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/invoicebox/internal/server/http/middleware"
	"github.com/polkiloo/invoicebox/internal/server/http/views"
)

// DashboardHandler renders the aggregate views.
type DashboardHandler struct {
	facade   AnalyticsFacade
	sessions Sessions
	forget   func(viewID string)
	logger   *slog.Logger
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(facade AnalyticsFacade, sessions Sessions, forget func(string), logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{facade: facade, sessions: sessions, forget: forget, logger: logger}
}

// Dashboard handles GET /dashboard.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	page := views.OverviewPage{Page: basePage(c, "Dashboard", "dashboard")}

	overview, err := h.facade.Overview(c.Request.Context(), page.Session)
	if err != nil {
		if expireSession(c, h.sessions, h.forget, h.logger, err) {
			return
		}
		h.loadFailed(c, views.PageDashboard, page, err)
		return
	}

	charts := views.BuildCharts(overview.Analytics)
	page.Stats = &overview.Stats
	page.Charts = &charts
	c.HTML(http.StatusOK, views.PageDashboard, page)
}

// Analytics handles GET /analytics.
func (h *DashboardHandler) Analytics(c *gin.Context) {
	page := views.OverviewPage{Page: basePage(c, "Analytics", "analytics")}

	analytics, err := h.facade.Analytics(c.Request.Context(), page.Session)
	if err != nil {
		if expireSession(c, h.sessions, h.forget, h.logger, err) {
			return
		}
		h.loadFailed(c, views.PageAnalytics, page, err)
		return
	}

	charts := views.BuildCharts(*analytics)
	page.Charts = &charts
	page.Statuses = views.OrderedStatuses(analytics.StatusBreakdown)
	c.HTML(http.StatusOK, views.PageAnalytics, page)
}

func (h *DashboardHandler) loadFailed(c *gin.Context, name string, page views.OverviewPage, err error) {
	h.logger.Error("load aggregates",
		slog.String("request_id", middleware.RequestIDFrom(c)),
		slog.String("page", name),
		slog.String("error", err.Error()),
	)
	page.LoadError = failureMessage(err, msgLoadFailed)
	c.HTML(http.StatusBadGateway, name, page)
}
