package session

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/fx"

	"github.com/polkiloo/invoicebox/internal/config"
	"github.com/polkiloo/invoicebox/internal/domain/repository"
)

// Module provides the session store and manager via fx.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Provide(NewManager),
)

type storeParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	Repository repository.SessionRepository `optional:"true"`
}

func newStore(p storeParams) (sessions.Store, error) {
	hashKey, blockKey, err := DeriveKeys(p.Config.SessionSecret)
	if err != nil {
		return nil, err
	}

	opts := sessions.Options{
		Path:     "/",
		MaxAge:   int(p.Config.SessionTTL.Seconds()),
		Secure:   p.Config.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if p.Repository != nil {
		p.Logger.Info("using postgres session store")
		return NewDBStore(p.Repository, opts, hashKey, blockKey), nil
	}

	p.Logger.Info("using cookie session store")
	store := sessions.NewCookieStore(hashKey, blockKey)
	store.MaxAge(opts.MaxAge)
	store.Options.Secure = opts.Secure
	store.Options.HttpOnly = opts.HttpOnly
	store.Options.SameSite = opts.SameSite
	return store, nil
}
