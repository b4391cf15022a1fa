package test

import (
	"context"
	"sync"

	"github.com/polkiloo/invoicebox/internal/adapter/invoiceapi"
	"github.com/polkiloo/invoicebox/internal/domain/model"
)

// APIClientStub is a programmable invoiceapi.Client that records calls.
type APIClientStub struct {
	LoginFn         func(context.Context, invoiceapi.Credentials) (*invoiceapi.AuthResult, error)
	RegisterFn      func(context.Context, invoiceapi.Registration) (*invoiceapi.AuthResult, error)
	PurchasersFn    func(context.Context, string) ([]model.Purchaser, error)
	InvoicesFn      func(context.Context, string) ([]model.Invoice, error)
	CreateInvoiceFn func(context.Context, string, model.NewInvoice) (*model.Invoice, error)
	UpdateInvoiceFn func(context.Context, string, int64, model.StatusUpdate) (*model.Invoice, error)
	DashboardFn     func(context.Context, string) (*model.DashboardStats, error)
	AnalyticsFn     func(context.Context, string) (*model.Analytics, error)

	mu    sync.Mutex
	calls map[string]int
}

// Calls returns how many times the named method was invoked.
func (s *APIClientStub) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// TotalCalls returns the number of API calls of any kind.
func (s *APIClientStub) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *APIClientStub) record(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[method]++
}

// Login delegates to LoginFn or issues a provider token.
func (s *APIClientStub) Login(ctx context.Context, creds invoiceapi.Credentials) (*invoiceapi.AuthResult, error) {
	s.record("Login")
	if s.LoginFn != nil {
		return s.LoginFn(ctx, creds)
	}
	return &invoiceapi.AuthResult{AccessToken: "token-" + creds.Username, TokenType: "bearer", UserID: 1, Role: model.RoleProvider}, nil
}

// Register delegates to RegisterFn or echoes the requested role.
func (s *APIClientStub) Register(ctx context.Context, reg invoiceapi.Registration) (*invoiceapi.AuthResult, error) {
	s.record("Register")
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return &invoiceapi.AuthResult{AccessToken: "token-" + reg.Username, TokenType: "bearer", UserID: 2, Role: reg.Role}, nil
}

// Purchasers returns configured purchasers or a single default one.
func (s *APIClientStub) Purchasers(ctx context.Context, token string) ([]model.Purchaser, error) {
	s.record("Purchasers")
	if s.PurchasersFn != nil {
		return s.PurchasersFn(ctx, token)
	}
	return []model.Purchaser{{ID: 3, Username: "bob", Email: "bob@example.com"}}, nil
}

// Invoices returns configured invoices or none.
func (s *APIClientStub) Invoices(ctx context.Context, token string) ([]model.Invoice, error) {
	s.record("Invoices")
	if s.InvoicesFn != nil {
		return s.InvoicesFn(ctx, token)
	}
	return nil, nil
}

// CreateInvoice delegates to CreateInvoiceFn or echoes the payload as a pending invoice.
func (s *APIClientStub) CreateInvoice(ctx context.Context, token string, inv model.NewInvoice) (*model.Invoice, error) {
	s.record("CreateInvoice")
	if s.CreateInvoiceFn != nil {
		return s.CreateInvoiceFn(ctx, token, inv)
	}
	return &model.Invoice{
		ID:          100,
		Title:       inv.Title,
		Description: inv.Description,
		Amount:      inv.Amount,
		Currency:    inv.Currency,
		PurchaserID: inv.PurchaserID,
		Status:      model.StatusPending,
	}, nil
}

// UpdateInvoice delegates to UpdateInvoiceFn or applies the update to a bare invoice.
func (s *APIClientStub) UpdateInvoice(ctx context.Context, token string, id int64, update model.StatusUpdate) (*model.Invoice, error) {
	s.record("UpdateInvoice")
	if s.UpdateInvoiceFn != nil {
		return s.UpdateInvoiceFn(ctx, token, id, update)
	}
	inv := &model.Invoice{ID: id, Status: update.Status}
	if update.PaymentReference != "" {
		ref := update.PaymentReference
		inv.PaymentReference = &ref
	}
	return inv, nil
}

// Dashboard returns configured stats or zero counters.
func (s *APIClientStub) Dashboard(ctx context.Context, token string) (*model.DashboardStats, error) {
	s.record("Dashboard")
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx, token)
	}
	return &model.DashboardStats{}, nil
}

// Analytics returns configured analytics or empty breakdowns.
func (s *APIClientStub) Analytics(ctx context.Context, token string) (*model.Analytics, error) {
	s.record("Analytics")
	if s.AnalyticsFn != nil {
		return s.AnalyticsFn(ctx, token)
	}
	return &model.Analytics{
		StatusBreakdown:   map[model.InvoiceStatus]int{},
		CurrencyBreakdown: map[model.Currency]float64{},
	}, nil
}

// ProviderSession builds an authenticated provider session.
func ProviderSession() model.Session {
	s, _ := model.NewSession("provider-token", &model.User{ID: 1, Username: "alice", Role: model.RoleProvider})
	return s
}

// PurchaserSession builds an authenticated purchaser session.
func PurchaserSession() model.Session {
	s, _ := model.NewSession("purchaser-token", &model.User{ID: 3, Username: "bob", Role: model.RolePurchaser})
	return s
}
