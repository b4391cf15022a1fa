package handlers

import (
	"context"
	"net/http"

	"github.com/polkiloo/invoicebox/internal/domain/model"
	"github.com/polkiloo/invoicebox/internal/domain/policy"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Login(ctx context.Context, username, password string) (model.Session, error)
	Register(ctx context.Context, username, email, password, role string) (model.Session, error)
}

// InvoiceFacade exposes the invoice workflow and the per-session held book.
type InvoiceFacade interface {
	Invoices(ctx context.Context, s model.Session, viewID string) ([]model.Invoice, error)
	HeldInvoices(viewID string) ([]model.Invoice, bool)
	Invoice(ctx context.Context, s model.Session, viewID string, id int64) (model.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, s model.Session, viewID string, id int64, action policy.Action) (*model.Invoice, error)
	SubmitPayment(ctx context.Context, s model.Session, viewID string, id int64, reference string) (*model.Invoice, error)
	Purchasers(ctx context.Context, s model.Session) ([]model.Purchaser, error)
	CreateInvoice(ctx context.Context, s model.Session, draft model.InvoiceDraft) (*model.Invoice, error)
	InvoicePDF(viewID string, id int64) (filename string, content []byte, err error)
	ForgetView(viewID string)
}

// AnalyticsFacade provides the aggregate views.
type AnalyticsFacade interface {
	Overview(ctx context.Context, s model.Session) (*model.Overview, error)
	Analytics(ctx context.Context, s model.Session) (*model.Analytics, error)
}

// WebFacade aggregates the full set of operations used across handlers.
type WebFacade interface {
	AuthFacade
	InvoiceFacade
	AnalyticsFacade
	Health(ctx context.Context) error
}

// Sessions persists and tears down the browser session.
type Sessions interface {
	Save(w http.ResponseWriter, r *http.Request, s model.Session) (string, error)
	Clear(w http.ResponseWriter, r *http.Request) error
}
