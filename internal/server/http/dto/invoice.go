package dto

import "github.com/polkiloo/invoicebox/internal/domain/model"

// CreateInvoiceForm is the posted invoice creation form. Amount and
// purchaser stay strings so the form can be re-rendered as entered.
type CreateInvoiceForm struct {
	Title       string `schema:"title"`
	Description string `schema:"description"`
	Amount      string `schema:"amount"`
	Currency    string `schema:"currency"`
	PurchaserID string `schema:"purchaser_id"`
}

// Draft converts the form into the values the invoice workflow parses.
func (f CreateInvoiceForm) Draft() model.InvoiceDraft {
	return model.InvoiceDraft{
		Title:       f.Title,
		Description: f.Description,
		Amount:      f.Amount,
		Currency:    f.Currency,
		PurchaserID: f.PurchaserID,
	}
}

// StatusForm carries the action button pressed on an invoice row.
type StatusForm struct {
	Action string `schema:"action"`
}

// PaymentForm is the payment dialog.
type PaymentForm struct {
	PaymentReference string `schema:"payment_reference"`
}
