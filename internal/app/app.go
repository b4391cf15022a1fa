package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/invoicebox/internal/config"
	"github.com/polkiloo/invoicebox/internal/domain/repository"
	"github.com/polkiloo/invoicebox/internal/server/http/handlers"
	"github.com/polkiloo/invoicebox/internal/storage/postgres"
	"github.com/polkiloo/invoicebox/internal/usecase"
	"github.com/polkiloo/invoicebox/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newWebFacade,
		func(f *WebFacade) handlers.WebFacade { return f },
		newHTTPServer,
		newSessionSweeper,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth      *usecase.AuthUseCase
	Invoices  *usecase.InvoiceUseCase
	Analytics *usecase.AnalyticsUseCase
	Sessions  repository.SessionRepository `optional:"true"`
	Storage   *postgres.Storage            `optional:"true"`
}

func newWebFacade(p facadeParams) *WebFacade {
	var store Pinger
	if p.Storage != nil {
		store = p.Storage
	}
	return NewWebFacade(p.Auth, p.Invoices, p.Analytics, p.Sessions, store)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: p.Config.APITimeout,
	}
}

type workerParams struct {
	fx.In

	Facade *WebFacade
	Config *config.Config
	Logger *slog.Logger
}

func newSessionSweeper(p workerParams) *worker.SessionSweeper {
	return worker.NewSessionSweeper(p.Facade, p.Config.SweepInterval, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Sweeper    *worker.SessionSweeper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting invoicebox",
				slog.String("addr", p.Server.Addr),
				slog.String("api", p.Config.APIBaseURL),
				slog.Bool("persistent_sessions", p.Config.PersistentSessions()),
			)
			// The start context expires once startup completes.
			p.Sweeper.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Sweeper.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("invoicebox stopped")
			return nil
		},
	})
}
