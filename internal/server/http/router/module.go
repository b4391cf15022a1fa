package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/invoicebox/internal/config"
	"github.com/polkiloo/invoicebox/internal/metrics"
	"github.com/polkiloo/invoicebox/internal/pkg/session"
	"github.com/polkiloo/invoicebox/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newEngine)

type routerParams struct {
	fx.In

	Config   *config.Config
	Facade   handlers.WebFacade
	Sessions *session.Manager
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

func newEngine(p routerParams) (*gin.Engine, error) {
	return Setup(p.Config, p.Facade, p.Sessions, p.Metrics, p.Logger)
}
