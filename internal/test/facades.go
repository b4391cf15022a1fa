package test

import (
	"context"
	"net/http"
	"sync"

	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
	"github.com/polkiloo/invoicebox/internal/domain/model"
	"github.com/polkiloo/invoicebox/internal/domain/policy"
)

// WebFacadeStub is a programmable handlers.WebFacade. Without overrides it
// serves List from memory and holds them per view id.
type WebFacadeStub struct {
	LoginFn         func(ctx context.Context, username, password string) (model.Session, error)
	RegisterFn      func(ctx context.Context, username, email, password, role string) (model.Session, error)
	InvoicesFn      func(ctx context.Context, s model.Session, viewID string) ([]model.Invoice, error)
	UpdateStatusFn  func(ctx context.Context, s model.Session, viewID string, id int64, action policy.Action) (*model.Invoice, error)
	SubmitPaymentFn func(ctx context.Context, s model.Session, viewID string, id int64, reference string) (*model.Invoice, error)
	PurchasersFn    func(ctx context.Context, s model.Session) ([]model.Purchaser, error)
	CreateFn        func(ctx context.Context, s model.Session, draft model.InvoiceDraft) (*model.Invoice, error)
	PDFFn           func(viewID string, id int64) (string, []byte, error)
	OverviewFn      func(ctx context.Context, s model.Session) (*model.Overview, error)
	AnalyticsFn     func(ctx context.Context, s model.Session) (*model.Analytics, error)
	HealthErr       error

	List []model.Invoice

	mu        sync.Mutex
	held      map[string][]model.Invoice
	calls     map[string]int
	forgotten []string
}

func (f *WebFacadeStub) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
}

// Calls returns how many times the named method was invoked.
func (f *WebFacadeStub) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Forgotten returns the view ids passed to ForgetView.
func (f *WebFacadeStub) Forgotten() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.forgotten...)
}

// Hold stores invoices as the book held for viewID.
func (f *WebFacadeStub) Hold(viewID string, invoices []model.Invoice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held == nil {
		f.held = make(map[string][]model.Invoice)
	}
	f.held[viewID] = append([]model.Invoice(nil), invoices...)
}

// Login delegates to LoginFn or signs username in as a provider.
func (f *WebFacadeStub) Login(ctx context.Context, username, password string) (model.Session, error) {
	f.record("Login")
	if f.LoginFn != nil {
		return f.LoginFn(ctx, username, password)
	}
	return model.NewSession("token-"+username, &model.User{ID: 1, Username: username, Role: model.RoleProvider})
}

// Register delegates to RegisterFn or signs username in with role.
func (f *WebFacadeStub) Register(ctx context.Context, username, email, password, role string) (model.Session, error) {
	f.record("Register")
	if f.RegisterFn != nil {
		return f.RegisterFn(ctx, username, email, password, role)
	}
	parsed, err := model.ParseRole(role)
	if err != nil {
		return model.Session{}, err
	}
	return model.NewSession("token-"+username, &model.User{ID: 2, Username: username, Role: parsed})
}

// Invoices delegates to InvoicesFn or returns List, holding the result.
func (f *WebFacadeStub) Invoices(ctx context.Context, s model.Session, viewID string) ([]model.Invoice, error) {
	f.record("Invoices")
	invoices := f.List
	if f.InvoicesFn != nil {
		var err error
		if invoices, err = f.InvoicesFn(ctx, s, viewID); err != nil {
			return nil, err
		}
	}
	f.Hold(viewID, invoices)
	return invoices, nil
}

// HeldInvoices returns the book held for viewID.
func (f *WebFacadeStub) HeldInvoices(viewID string) ([]model.Invoice, bool) {
	f.record("HeldInvoices")
	f.mu.Lock()
	defer f.mu.Unlock()
	held, ok := f.held[viewID]
	return append([]model.Invoice(nil), held...), ok
}

// Invoice finds id in the held book, fetching the list when none is held.
func (f *WebFacadeStub) Invoice(ctx context.Context, s model.Session, viewID string, id int64) (model.Invoice, error) {
	f.record("Invoice")
	held, ok := f.HeldInvoices(viewID)
	if !ok {
		var err error
		if held, err = f.Invoices(ctx, s, viewID); err != nil {
			return model.Invoice{}, err
		}
	}
	for _, inv := range held {
		if inv.ID == id {
			return inv, nil
		}
	}
	return model.Invoice{}, domainErrors.ErrNotFound
}

// UpdateInvoiceStatus delegates to UpdateStatusFn or moves the held invoice
// to the action's target status.
func (f *WebFacadeStub) UpdateInvoiceStatus(ctx context.Context, s model.Session, viewID string, id int64, action policy.Action) (*model.Invoice, error) {
	f.record("UpdateInvoiceStatus")
	if f.UpdateStatusFn != nil {
		return f.UpdateStatusFn(ctx, s, viewID, id, action)
	}
	return f.apply(ctx, s, viewID, id, action, "")
}

// SubmitPayment delegates to SubmitPaymentFn or records the reference on
// the held invoice.
func (f *WebFacadeStub) SubmitPayment(ctx context.Context, s model.Session, viewID string, id int64, reference string) (*model.Invoice, error) {
	f.record("SubmitPayment")
	if f.SubmitPaymentFn != nil {
		return f.SubmitPaymentFn(ctx, s, viewID, id, reference)
	}
	return f.apply(ctx, s, viewID, id, policy.ActionSubmitPayment, reference)
}

func (f *WebFacadeStub) apply(ctx context.Context, s model.Session, viewID string, id int64, action policy.Action, reference string) (*model.Invoice, error) {
	inv, err := f.Invoice(ctx, s, viewID, id)
	if err != nil {
		return nil, err
	}
	if !policy.Allows(s.Role(), inv.Status, action) {
		return nil, domainErrors.ErrActionNotAllowed
	}
	inv.Status, _ = policy.TargetStatus(action)
	if reference != "" {
		inv.PaymentReference = &reference
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.held[viewID] {
		if f.held[viewID][i].ID == id {
			f.held[viewID][i] = inv
		}
	}
	return &inv, nil
}

// Purchasers delegates to PurchasersFn or returns one purchaser.
func (f *WebFacadeStub) Purchasers(ctx context.Context, s model.Session) ([]model.Purchaser, error) {
	f.record("Purchasers")
	if f.PurchasersFn != nil {
		return f.PurchasersFn(ctx, s)
	}
	return []model.Purchaser{{ID: 3, Username: "bob", Email: "bob@example.com"}}, nil
}

// CreateInvoice delegates to CreateFn or returns a pending invoice.
func (f *WebFacadeStub) CreateInvoice(ctx context.Context, s model.Session, draft model.InvoiceDraft) (*model.Invoice, error) {
	f.record("CreateInvoice")
	if f.CreateFn != nil {
		return f.CreateFn(ctx, s, draft)
	}
	return &model.Invoice{ID: 100, InvoiceNumber: "INV-0100", Title: draft.Title, Status: model.StatusPending}, nil
}

// InvoicePDF delegates to PDFFn or reports the invoice as not held.
func (f *WebFacadeStub) InvoicePDF(viewID string, id int64) (string, []byte, error) {
	f.record("InvoicePDF")
	if f.PDFFn != nil {
		return f.PDFFn(viewID, id)
	}
	return "", nil, domainErrors.ErrNotFound
}

// ForgetView drops the book held for viewID.
func (f *WebFacadeStub) ForgetView(viewID string) {
	f.record("ForgetView")
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, viewID)
	f.forgotten = append(f.forgotten, viewID)
}

// Overview delegates to OverviewFn or returns empty aggregates.
func (f *WebFacadeStub) Overview(ctx context.Context, s model.Session) (*model.Overview, error) {
	f.record("Overview")
	if f.OverviewFn != nil {
		return f.OverviewFn(ctx, s)
	}
	return &model.Overview{}, nil
}

// Analytics delegates to AnalyticsFn or returns empty aggregates.
func (f *WebFacadeStub) Analytics(ctx context.Context, s model.Session) (*model.Analytics, error) {
	f.record("Analytics")
	if f.AnalyticsFn != nil {
		return f.AnalyticsFn(ctx, s)
	}
	return &model.Analytics{}, nil
}

// Health returns HealthErr.
func (f *WebFacadeStub) Health(context.Context) error {
	return f.HealthErr
}

// SessionsStub records session writes without touching cookies.
type SessionsStub struct {
	SaveErr error

	mu      sync.Mutex
	saved   []model.Session
	cleared int
}

// Save records s and returns a fixed view id.
func (s *SessionsStub) Save(_ http.ResponseWriter, _ *http.Request, sess model.Session) (string, error) {
	if s.SaveErr != nil {
		return "", s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, sess)
	return "view-1", nil
}

// Clear counts the call.
func (s *SessionsStub) Clear(http.ResponseWriter, *http.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
	return nil
}

// Saved returns the sessions passed to Save.
func (s *SessionsStub) Saved() []model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Session(nil), s.saved...)
}

// Cleared returns how many times Clear was called.
func (s *SessionsStub) Cleared() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}
