package app

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
	"github.com/polkiloo/invoicebox/internal/domain/model"
	"github.com/polkiloo/invoicebox/internal/domain/policy"
	"github.com/polkiloo/invoicebox/internal/domain/repository"
	"github.com/polkiloo/invoicebox/internal/render/pdf"
	"github.com/polkiloo/invoicebox/internal/usecase"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WebFacade joins the use cases behind the web handlers and the session
// sweeper.
type WebFacade struct {
	auth      *usecase.AuthUseCase
	invoices  *usecase.InvoiceUseCase
	analytics *usecase.AnalyticsUseCase
	sessions  repository.SessionRepository
	store     Pinger
}

// NewWebFacade constructs WebFacade. sessions and store are nil when
// sessions live in cookies.
func NewWebFacade(auth *usecase.AuthUseCase, invoices *usecase.InvoiceUseCase, analytics *usecase.AnalyticsUseCase, sessions repository.SessionRepository, store Pinger) *WebFacade {
	return &WebFacade{auth: auth, invoices: invoices, analytics: analytics, sessions: sessions, store: store}
}

func (f *WebFacade) Login(ctx context.Context, username, password string) (model.Session, error) {
	return f.auth.Login(ctx, username, password)
}

func (f *WebFacade) Register(ctx context.Context, username, email, password, role string) (model.Session, error) {
	return f.auth.Register(ctx, username, email, password, role)
}

func (f *WebFacade) Invoices(ctx context.Context, s model.Session, viewID string) ([]model.Invoice, error) {
	return f.invoices.List(ctx, s, viewID)
}

func (f *WebFacade) HeldInvoices(viewID string) ([]model.Invoice, bool) {
	return f.invoices.Held(viewID)
}

func (f *WebFacade) Invoice(ctx context.Context, s model.Session, viewID string, id int64) (model.Invoice, error) {
	return f.invoices.Find(ctx, s, viewID, id)
}

func (f *WebFacade) UpdateInvoiceStatus(ctx context.Context, s model.Session, viewID string, id int64, action policy.Action) (*model.Invoice, error) {
	return f.invoices.UpdateStatus(ctx, s, viewID, id, action, "")
}

func (f *WebFacade) SubmitPayment(ctx context.Context, s model.Session, viewID string, id int64, reference string) (*model.Invoice, error) {
	return f.invoices.SubmitPayment(ctx, s, viewID, id, reference)
}

func (f *WebFacade) Purchasers(ctx context.Context, s model.Session) ([]model.Purchaser, error) {
	return f.invoices.Purchasers(ctx, s)
}

func (f *WebFacade) CreateInvoice(ctx context.Context, s model.Session, draft model.InvoiceDraft) (*model.Invoice, error) {
	return f.invoices.Create(ctx, s, draft)
}

// InvoicePDF renders the held copy of invoice id.
func (f *WebFacade) InvoicePDF(viewID string, id int64) (string, []byte, error) {
	inv, ok := f.invoices.HeldInvoice(viewID, id)
	if !ok {
		return "", nil, domainErrors.ErrNotFound
	}
	content, err := pdf.Render(inv)
	if err != nil {
		return "", nil, err
	}
	return pdf.Filename(inv), content, nil
}

func (f *WebFacade) ForgetView(viewID string) {
	f.invoices.Forget(viewID)
}

func (f *WebFacade) Overview(ctx context.Context, s model.Session) (*model.Overview, error) {
	return f.analytics.Overview(ctx, s)
}

func (f *WebFacade) Analytics(ctx context.Context, s model.Session) (*model.Analytics, error) {
	return f.analytics.Analytics(ctx, s)
}

// Health pings the session database when one is configured.
func (f *WebFacade) Health(ctx context.Context) error {
	if f.store == nil {
		return nil
	}
	return f.store.Ping(ctx)
}

// PurgeExpiredSessions deletes persisted sessions that expired before now.
func (f *WebFacade) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	if f.sessions == nil {
		return 0, nil
	}
	return f.sessions.DeleteExpired(ctx, now)
}

// SweepViewState drops held invoice books past their lifetime.
func (f *WebFacade) SweepViewState() int {
	return f.invoices.SweepBooks()
}
