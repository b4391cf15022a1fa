package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
)

func TestStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   InvoiceStatus
		value string
	}{
		{"pending", StatusPending, "Pending"},
		{"payment submitted", StatusPaymentSubmitted, "Payment Submitted"},
		{"paid", StatusPaid, "Paid"},
		{"defaulted", StatusDefaulted, "Defaulted"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		raw     string
		want    Role
		wantErr error
	}{
		{raw: "provider", want: RoleProvider},
		{raw: " purchaser ", want: RolePurchaser},
		{raw: "admin", wantErr: domainErrors.ErrInvalidRole},
		{raw: "", wantErr: domainErrors.ErrInvalidRole},
	}

	for _, tc := range cases {
		got, err := ParseRole(tc.raw)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("ParseRole(%q): expected error %v, got %v", tc.raw, tc.wantErr, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q): expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		raw     string
		want    Currency
		wantErr error
	}{
		{raw: "", want: CurrencyUSD},
		{raw: "usd", want: CurrencyUSD},
		{raw: "UGX", want: CurrencyUGX},
		{raw: "LYD", want: CurrencyLYD},
		{raw: "EUR", wantErr: domainErrors.ErrInvalidCurrency},
	}

	for _, tc := range cases {
		got, err := ParseCurrency(tc.raw)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("ParseCurrency(%q): expected error %v, got %v", tc.raw, tc.wantErr, err)
		}
		if got != tc.want {
			t.Fatalf("ParseCurrency(%q): expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}

func TestSessionInvariant(t *testing.T) {
	user := &User{ID: 1, Username: "alice", Role: RoleProvider}

	if _, err := NewSession("", user); !errors.Is(err, domainErrors.ErrInvalidSession) {
		t.Fatalf("expected invalid session without token, got %v", err)
	}
	if _, err := NewSession("token", nil); !errors.Is(err, domainErrors.ErrInvalidSession) {
		t.Fatalf("expected invalid session without user, got %v", err)
	}

	s, err := NewSession("token", user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Authenticated() || !s.Valid() {
		t.Fatalf("expected authenticated valid session, got %+v", s)
	}
	if s.Role() != RoleProvider {
		t.Fatalf("expected provider role, got %q", s.Role())
	}

	user.Username = "mallory"
	if s.User.Username != "alice" {
		t.Fatalf("expected session to own a copy of the user")
	}

	var anon Session
	if anon.Authenticated() || !anon.Valid() || anon.Role() != "" {
		t.Fatalf("expected anonymous valid session, got %+v", anon)
	}
	if (Session{Token: "t"}).Valid() || (Session{User: user}).Valid() {
		t.Fatal("expected half sessions to be invalid")
	}
}

func TestInvoiceDecodesAPIPayload(t *testing.T) {
	payload := `{
		"id": 7,
		"invoice_number": "INV-1A2B3C4D",
		"title": "Invoice 1",
		"description": "Consulting",
		"amount": 250.5,
		"currency": "UGX",
		"status": "Payment Submitted",
		"payment_reference": "TX-99",
		"payment_date": "2024-03-02T10:00:00.123456",
		"date_created": "2024-03-01T09:30:00",
		"purchaser_name": "purchaser1",
		"provider_name": "provider1"
	}`

	var inv Invoice
	if err := json.Unmarshal([]byte(payload), &inv); err != nil {
		t.Fatalf("decode invoice: %v", err)
	}

	if inv.ID != 7 || inv.Status != StatusPaymentSubmitted || inv.Currency != CurrencyUGX {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	if inv.Reference() != "TX-99" {
		t.Fatalf("unexpected reference %q", inv.Reference())
	}
	want := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	if !inv.DateCreated.Equal(want) {
		t.Fatalf("expected %v, got %v", want, inv.DateCreated.Time)
	}
	if inv.PaymentDate == nil || inv.PaymentDate.Day() != 2 {
		t.Fatalf("unexpected payment date %+v", inv.PaymentDate)
	}
	if inv.Counterparty(RoleProvider) != "purchaser1" || inv.Counterparty(RolePurchaser) != "provider1" {
		t.Fatalf("unexpected counterparties")
	}
}

func TestInvoiceNullableFields(t *testing.T) {
	var inv Invoice
	if err := json.Unmarshal([]byte(`{"id":1,"payment_reference":null,"payment_date":null,"date_created":null}`), &inv); err != nil {
		t.Fatalf("decode invoice: %v", err)
	}
	if inv.Reference() != "" || inv.PaymentDate != nil || !inv.DateCreated.IsZero() {
		t.Fatalf("expected empty optional fields, got %+v", inv)
	}

	if err := json.Unmarshal([]byte(`{"date_created":"yesterday"}`), &inv); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestStatusUpdateOmitsEmptyReference(t *testing.T) {
	data, err := json.Marshal(StatusUpdate{Status: StatusDefaulted})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"status":"Defaulted"}` {
		t.Fatalf("unexpected payload %s", data)
	}
}

func TestNewInvoiceWireFormat(t *testing.T) {
	data, err := json.Marshal(NewInvoice{Title: "t", Description: "d", Amount: 19.99, Currency: CurrencyUSD, PurchaserID: 3})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{"title": "t", "description": "d", "amount": 19.99, "currency": "USD", "purchaser_id": float64(3)}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("unexpected payload (-want +got):\n%s", diff)
	}
}

func TestInvoiceBookReplaceByID(t *testing.T) {
	book := NewInvoiceBook([]Invoice{
		{ID: 3, Title: "a", Status: StatusPending},
		{ID: 7, Title: "b", Status: StatusPending},
		{ID: 9, Title: "c", Status: StatusPaid},
	})

	if !book.Replace(Invoice{ID: 7, Title: "b", Status: StatusDefaulted}) {
		t.Fatal("expected replace of known id to succeed")
	}
	if book.Replace(Invoice{ID: 42}) {
		t.Fatal("expected replace of unknown id to be ignored")
	}

	want := []Invoice{
		{ID: 3, Title: "a", Status: StatusPending},
		{ID: 7, Title: "b", Status: StatusDefaulted},
		{ID: 9, Title: "c", Status: StatusPaid},
	}
	if diff := cmp.Diff(want, book.List()); diff != "" {
		t.Fatalf("unexpected book (-want +got):\n%s", diff)
	}
	if book.Len() != 3 {
		t.Fatalf("expected 3 invoices, got %d", book.Len())
	}
}

func TestInvoiceBookDuplicatesAndNil(t *testing.T) {
	book := NewInvoiceBook([]Invoice{{ID: 1, Title: "old"}, {ID: 1, Title: "new"}})
	if book.Len() != 1 {
		t.Fatalf("expected duplicate ids to collapse, got %d", book.Len())
	}
	if inv, _ := book.Get(1); inv.Title != "new" {
		t.Fatalf("expected later duplicate to win, got %q", inv.Title)
	}

	var nilBook *InvoiceBook
	if _, ok := nilBook.Get(1); ok || nilBook.Replace(Invoice{ID: 1}) || nilBook.List() != nil || nilBook.Len() != 0 {
		t.Fatal("expected nil book to behave as empty")
	}
}
