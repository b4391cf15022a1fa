package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/invoicebox/internal/adapter/invoiceapi"
	"github.com/polkiloo/invoicebox/internal/app"
	"github.com/polkiloo/invoicebox/internal/config"
	"github.com/polkiloo/invoicebox/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      "127.0.0.1:0",
		APIBaseURL:      "http://localhost:8000",
		SessionSecret:   "secret",
		SessionTTL:      time.Hour,
		APITimeout:      time.Second,
		SweepInterval:   time.Minute,
		ShutdownTimeout: time.Second,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	apiStub := &test.APIClientStub{}

	var (
		facade *app.WebFacade
		server *http.Server
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(invoiceapi.Client(apiStub)),
		),
		fx.Populate(&facade, &server),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	if facade == nil {
		t.Fatal("expected web facade instance")
	}
	if server.Handler == nil {
		t.Fatal("expected router to be mounted on the server")
	}
	if err := facade.Health(context.Background()); err != nil {
		t.Fatalf("cookie-backed graph should be healthy, got %v", err)
	}
}

func TestModuleRejectsEmptySessionSecret(t *testing.T) {
	cfg := &config.Config{
		RunAddress:    "127.0.0.1:0",
		APIBaseURL:    "http://localhost:8000",
		SessionTTL:    time.Hour,
		SweepInterval: time.Minute,
	}

	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(slog.New(slog.NewJSONHandler(io.Discard, nil))),
			fx.Replace(invoiceapi.Client(&test.APIClientStub{})),
		),
		fx.Invoke(func(*http.Server) {}),
	)

	if fxApp.Err() == nil {
		t.Fatal("expected graph construction to fail without a session secret")
	}
}
