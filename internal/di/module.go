package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/invoicebox/internal/adapter/invoiceapi"
	"github.com/polkiloo/invoicebox/internal/app"
	"github.com/polkiloo/invoicebox/internal/config"
	"github.com/polkiloo/invoicebox/internal/logger"
	"github.com/polkiloo/invoicebox/internal/metrics"
	"github.com/polkiloo/invoicebox/internal/pkg/session"
	"github.com/polkiloo/invoicebox/internal/server/http/router"
	"github.com/polkiloo/invoicebox/internal/storage/postgres"
	"github.com/polkiloo/invoicebox/internal/usecase"
)

// Module assembles the web front end. opts are appended last so tests can
// replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		postgres.Module,
		session.Module,
		invoiceapi.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
