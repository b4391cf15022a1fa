package invoiceapi

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/invoicebox/internal/config"
	"github.com/polkiloo/invoicebox/internal/metrics"
)

// Module exposes the invoicing API client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newClient(p clientParams) (Client, error) {
	var observer Observer
	if p.Metrics != nil {
		observer = p.Metrics
	}
	return NewHTTPClient(p.Config.APIBaseURL, p.Config.APITimeout, p.Logger, observer)
}
