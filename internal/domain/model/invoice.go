package model

import (
	"encoding/json"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
)

// Currency enumerates currencies accepted by the invoicing API.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyUGX Currency = "UGX"
	CurrencyLYD Currency = "LYD"
)

// DefaultCurrency is preselected on the creation form.
const DefaultCurrency = CurrencyUSD

// Currencies lists supported currencies in display order.
var Currencies = []Currency{CurrencyUSD, CurrencyUGX, CurrencyLYD}

// ParseCurrency validates a currency code. Empty input yields DefaultCurrency.
func ParseCurrency(raw string) (Currency, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return DefaultCurrency, nil
	}
	for _, c := range Currencies {
		if Currency(raw) == c {
			return c, nil
		}
	}
	return "", domainErrors.ErrInvalidCurrency
}

// InvoiceStatus describes the payment lifecycle of an invoice.
type InvoiceStatus string

const (
	StatusPending          InvoiceStatus = "Pending"
	StatusPaymentSubmitted InvoiceStatus = "Payment Submitted"
	StatusPaid             InvoiceStatus = "Paid"
	StatusDefaulted        InvoiceStatus = "Defaulted"
)

// Statuses lists statuses in lifecycle order.
var Statuses = []InvoiceStatus{StatusPending, StatusPaymentSubmitted, StatusPaid, StatusDefaulted}

// Invoice is the client copy of an invoice owned by the API.
type Invoice struct {
	ID               int64         `json:"id"`
	InvoiceNumber    string        `json:"invoice_number"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Amount           float64       `json:"amount"`
	Currency         Currency      `json:"currency"`
	PurchaserID      int64         `json:"purchaser_id"`
	PurchaserName    string        `json:"purchaser_name"`
	ProviderName     string        `json:"provider_name"`
	Status           InvoiceStatus `json:"status"`
	PaymentReference *string       `json:"payment_reference"`
	PaymentDate      *Timestamp    `json:"payment_date"`
	DateCreated      Timestamp     `json:"date_created"`
}

// Reference returns the stored payment reference or an empty string.
func (i Invoice) Reference() string {
	if i.PaymentReference == nil {
		return ""
	}
	return *i.PaymentReference
}

// Counterparty returns the name of the other side of the invoice for role.
func (i Invoice) Counterparty(role Role) string {
	if role == RoleProvider {
		return i.PurchaserName
	}
	return i.ProviderName
}

// NewInvoice is the creation payload sent to POST /invoices.
type NewInvoice struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Currency    Currency `json:"currency"`
	PurchaserID int64    `json:"purchaser_id"`
}

// InvoiceDraft carries the raw values of the invoice creation form before
// they are coerced into a NewInvoice.
type InvoiceDraft struct {
	Title       string
	Description string
	Amount      string
	Currency    string
	PurchaserID string
}

// StatusUpdate is the payload sent to PUT /invoices/{id}.
type StatusUpdate struct {
	Status           InvoiceStatus `json:"status"`
	PaymentReference string        `json:"payment_reference,omitempty"`
}

// Timestamp accepts the API's ISO-8601 dates with or without a zone.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// UnmarshalJSON parses null, empty, or ISO-8601 strings.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalJSON writes the zero time as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
