package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/invoicebox/internal/adapter/invoiceapi"
	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
	"github.com/polkiloo/invoicebox/internal/domain/model"
)

// AnalyticsUseCase fetches the read-only aggregate payloads.
type AnalyticsUseCase struct {
	api invoiceapi.Client
}

// NewAnalyticsUseCase constructs AnalyticsUseCase.
func NewAnalyticsUseCase(api invoiceapi.Client) *AnalyticsUseCase {
	return &AnalyticsUseCase{api: api}
}

// Overview fetches dashboard counters and analytics concurrently. The first
// failure cancels the other request and is returned.
func (u *AnalyticsUseCase) Overview(ctx context.Context, s model.Session) (*model.Overview, error) {
	if !s.Authenticated() {
		return nil, domainErrors.ErrInvalidSession
	}

	var (
		stats     *model.DashboardStats
		analytics *model.Analytics
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = u.api.Dashboard(gctx, s.Token)
		return err
	})
	g.Go(func() error {
		var err error
		analytics, err = u.api.Analytics(gctx, s.Token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.Overview{Stats: *stats, Analytics: *analytics}, nil
}

// Analytics fetches the aggregate breakdowns alone.
func (u *AnalyticsUseCase) Analytics(ctx context.Context, s model.Session) (*model.Analytics, error) {
	if !s.Authenticated() {
		return nil, domainErrors.ErrInvalidSession
	}
	return u.api.Analytics(ctx, s.Token)
}
