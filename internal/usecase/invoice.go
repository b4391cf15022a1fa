package usecase

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/invoicebox/internal/adapter/invoiceapi"
	"github.com/polkiloo/invoicebox/internal/cache"
	"github.com/polkiloo/invoicebox/internal/config"
	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
	"github.com/polkiloo/invoicebox/internal/domain/model"
	"github.com/polkiloo/invoicebox/internal/domain/policy"
)

// BookCache holds the invoice book last shown to each session, keyed by the
// session view id.
type BookCache = cache.TTLCache[string, *model.InvoiceBook]

// NewBookCache constructs an empty BookCache.
func NewBookCache() *BookCache {
	return cache.NewTTLCache[string, *model.InvoiceBook]()
}

// InvoiceUseCase implements the invoice list, creation and status workflow.
type InvoiceUseCase struct {
	api      invoiceapi.Client
	books    *BookCache
	bookTTL  time.Duration
	inflight *InflightGuard
}

// NewInvoiceUseCase constructs InvoiceUseCase. Held books live as long as
// the session they belong to.
func NewInvoiceUseCase(api invoiceapi.Client, books *BookCache, inflight *InflightGuard, cfg *config.Config) *InvoiceUseCase {
	return &InvoiceUseCase{api: api, books: books, bookTTL: cfg.SessionTTL, inflight: inflight}
}

// List fetches the caller's invoices and holds them for viewID.
func (u *InvoiceUseCase) List(ctx context.Context, s model.Session, viewID string) ([]model.Invoice, error) {
	if !s.Authenticated() {
		return nil, domainErrors.ErrInvalidSession
	}
	invoices, err := u.api.Invoices(ctx, s.Token)
	if err != nil {
		return nil, err
	}
	book := model.NewInvoiceBook(invoices)
	if viewID != "" {
		u.books.Set(viewID, book, u.bookTTL)
	}
	return book.List(), nil
}

// Held returns the book held for viewID without contacting the API.
func (u *InvoiceUseCase) Held(viewID string) ([]model.Invoice, bool) {
	if viewID == "" {
		return nil, false
	}
	book, ok := u.books.Get(viewID)
	if !ok {
		return nil, false
	}
	return book.List(), true
}

// Find returns one invoice, from the held book when present.
func (u *InvoiceUseCase) Find(ctx context.Context, s model.Session, viewID string, id int64) (model.Invoice, error) {
	if book, ok := u.books.Get(viewID); ok && viewID != "" {
		if inv, found := book.Get(id); found {
			return inv, nil
		}
	}
	invoices, err := u.List(ctx, s, viewID)
	if err != nil {
		return model.Invoice{}, err
	}
	for _, inv := range invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return model.Invoice{}, domainErrors.ErrNotFound
}

// HeldInvoice returns invoice id from the book held for viewID without
// contacting the API.
func (u *InvoiceUseCase) HeldInvoice(viewID string, id int64) (model.Invoice, bool) {
	if viewID == "" {
		return model.Invoice{}, false
	}
	book, ok := u.books.Get(viewID)
	if !ok {
		return model.Invoice{}, false
	}
	return book.Get(id)
}

// Forget drops the book held for viewID.
func (u *InvoiceUseCase) Forget(viewID string) {
	if viewID != "" {
		u.books.Delete(viewID)
	}
}

// Purchasers lists candidate recipients for a new invoice.
func (u *InvoiceUseCase) Purchasers(ctx context.Context, s model.Session) ([]model.Purchaser, error) {
	if !s.Authenticated() {
		return nil, domainErrors.ErrInvalidSession
	}
	return u.api.Purchasers(ctx, s.Token)
}

// ParseCreateInvoice coerces the creation form into the API payload.
func ParseCreateInvoice(in model.InvoiceDraft) (model.NewInvoice, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	rawAmount := strings.TrimSpace(in.Amount)
	rawPurchaser := strings.TrimSpace(in.PurchaserID)
	if title == "" || description == "" || rawAmount == "" || rawPurchaser == "" {
		return model.NewInvoice{}, domainErrors.ErrRequiredField
	}

	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return model.NewInvoice{}, domainErrors.ErrInvalidAmount
	}

	purchaserID, err := strconv.ParseInt(rawPurchaser, 10, 64)
	if err != nil || purchaserID <= 0 {
		return model.NewInvoice{}, domainErrors.ErrInvalidPurchaser
	}

	currency, err := model.ParseCurrency(in.Currency)
	if err != nil {
		return model.NewInvoice{}, err
	}

	return model.NewInvoice{
		Title:       title,
		Description: description,
		Amount:      amount,
		Currency:    currency,
		PurchaserID: purchaserID,
	}, nil
}

// Create issues a new invoice. Only providers may create invoices.
func (u *InvoiceUseCase) Create(ctx context.Context, s model.Session, in model.InvoiceDraft) (*model.Invoice, error) {
	if !s.Authenticated() {
		return nil, domainErrors.ErrInvalidSession
	}
	if !policy.CanCreateInvoice(s.Role()) {
		return nil, domainErrors.ErrActionNotAllowed
	}
	payload, err := ParseCreateInvoice(in)
	if err != nil {
		return nil, err
	}
	return u.api.CreateInvoice(ctx, s.Token, payload)
}

// UpdateStatus performs action on invoice id when the policy offers it for
// the session role and the invoice's current status. On success the held
// entry for id is replaced by the API response.
func (u *InvoiceUseCase) UpdateStatus(ctx context.Context, s model.Session, viewID string, id int64, action policy.Action, reference string) (*model.Invoice, error) {
	if !s.Authenticated() {
		return nil, domainErrors.ErrInvalidSession
	}

	reference = strings.TrimSpace(reference)
	if policy.RequiresReference(action) && reference == "" {
		return nil, domainErrors.ErrEmptyPaymentReference
	}
	if !policy.RequiresReference(action) {
		reference = ""
	}

	target, ok := policy.TargetStatus(action)
	if !ok {
		return nil, domainErrors.ErrActionNotAllowed
	}

	current, err := u.Find(ctx, s, viewID, id)
	if err != nil {
		return nil, err
	}
	if !policy.Allows(s.Role(), current.Status, action) {
		return nil, domainErrors.ErrActionNotAllowed
	}

	updated, err := u.api.UpdateInvoice(ctx, s.Token, id, model.StatusUpdate{
		Status:           target,
		PaymentReference: reference,
	})
	if err != nil {
		return nil, err
	}

	if book, ok := u.books.Get(viewID); ok && viewID != "" {
		book.Replace(*updated)
	}
	return updated, nil
}

// SubmitPayment attaches a payment reference to a pending invoice. A second
// submission for the same user and invoice is rejected while one is running.
func (u *InvoiceUseCase) SubmitPayment(ctx context.Context, s model.Session, viewID string, id int64, reference string) (*model.Invoice, error) {
	if !s.Authenticated() {
		return nil, domainErrors.ErrInvalidSession
	}
	if strings.TrimSpace(reference) == "" {
		return nil, domainErrors.ErrEmptyPaymentReference
	}

	key := strconv.FormatInt(s.User.ID, 10) + ":" + strconv.FormatInt(id, 10)
	if !u.inflight.TryAcquire(key) {
		return nil, domainErrors.ErrSubmissionInFlight
	}
	defer u.inflight.Release(key)

	return u.UpdateStatus(ctx, s, viewID, id, policy.ActionSubmitPayment, reference)
}

// SweepBooks drops expired held books and returns how many were removed.
func (u *InvoiceUseCase) SweepBooks() int {
	return u.books.Sweep()
}
