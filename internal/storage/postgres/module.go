package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/invoicebox/internal/config"
	"github.com/polkiloo/invoicebox/internal/domain/repository"
)

// Module wires the optional PostgreSQL session storage. Without DATABASE_URI
// both *Storage and the repository resolve to nil and sessions live in cookies.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(newSessionRepository),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	if !p.Config.PersistentSessions() {
		return nil, nil
	}
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func newSessionRepository(s *Storage) repository.SessionRepository {
	if s == nil {
		return nil
	}
	return s.Sessions()
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	if storage == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
