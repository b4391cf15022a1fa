package views

import (
	"html/template"

	"github.com/polkiloo/invoicebox/internal/domain/model"
)

// Page carries the values every template needs.
type Page struct {
	Title   string
	Active  string
	Session model.Session
	CSRF    template.HTML
	Flash   string
	Error   string
}

// LoginPage renders the sign-in form.
type LoginPage struct {
	Page
	Username string
}

// RegisterPage renders the sign-up form.
type RegisterPage struct {
	Page
	Username string
	Email    string
	Role     model.Role
	Roles    []model.Role
}

// InvoicesPage renders the invoice table and, when Payment is set, the
// payment dialog over it.
type InvoicesPage struct {
	Page
	Invoices  []model.Invoice
	Payment   *PaymentDialog
	LoadError string
}

// PaymentDialog is the payment reference form bound to one invoice.
type PaymentDialog struct {
	Invoice   model.Invoice
	Reference string
	Error     string
}

// CreateInvoicePage renders the invoice creation form.
type CreateInvoicePage struct {
	Page
	InvoiceTitle string
	Description  string
	Amount       string
	Currency     string
	PurchaserID  string
	Purchasers   []model.Purchaser
	Currencies   []model.Currency
}

// OverviewPage renders the dashboard and the analytics page.
type OverviewPage struct {
	Page
	Stats     *model.DashboardStats
	Charts    *Charts
	Statuses  []StatusCount
	LoadError string
}
