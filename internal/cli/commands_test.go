package cli_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/invoicebox/internal/adapter/invoiceapi"
	"github.com/polkiloo/invoicebox/internal/cli"
	"github.com/polkiloo/invoicebox/internal/domain/model"
	testhelpers "github.com/polkiloo/invoicebox/internal/test"
)

type harness struct {
	api     *testhelpers.APIClientStub
	session string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		api:     &testhelpers.APIClientStub{},
		session: filepath.Join(t.TempDir(), "session.yaml"),
	}
}

func (h *harness) run(args ...string) (string, error) {
	root := cli.NewRootCmd(cli.WithClient(h.api))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(""))
	root.SetArgs(append([]string{"--session-file", h.session}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) login(t *testing.T, s model.Session) {
	t.Helper()
	require.NoError(t, cli.NewSessionFile(h.session).Save(s))
}

func sampleInvoices() []model.Invoice {
	return []model.Invoice{
		{ID: 7, InvoiceNumber: "INV-0007", Title: "Hosting", Amount: 19.99, Currency: model.CurrencyUSD, Status: model.StatusPaymentSubmitted, PurchaserName: "bob", ProviderName: "alice"},
		{ID: 8, InvoiceNumber: "INV-0008", Title: "Design", Amount: 5, Currency: model.CurrencyLYD, Status: model.StatusPending, PurchaserName: "bob", ProviderName: "alice"},
	}
}

func TestLoginCmd_StoresSession(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("login", "alice", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice (provider)")

	out, err = h.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "alice (provider, id 1)")
}

func TestLoginCmd_ReadsPasswordFromStdin(t *testing.T) {
	h := newHarness(t)
	var gotPassword string
	h.api.LoginFn = func(_ context.Context, creds invoiceapi.Credentials) (*invoiceapi.AuthResult, error) {
		gotPassword = creds.Password
		return &invoiceapi.AuthResult{AccessToken: "t", UserID: 1, Role: model.RoleProvider}, nil
	}

	root := cli.NewRootCmd(cli.WithClient(h.api))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader("s3cret\n"))
	root.SetArgs([]string{"--session-file", h.session, "login", "alice"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "s3cret", gotPassword)
}

func TestLoginCmd_ShowsAPIDetail(t *testing.T) {
	h := newHarness(t)
	h.api.LoginFn = func(context.Context, invoiceapi.Credentials) (*invoiceapi.AuthResult, error) {
		return nil, &invoiceapi.APIError{Status: 401, Detail: "Incorrect username or password"}
	}

	_, err := h.run("login", "alice", "-p", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect username or password")

	_, err = h.run("whoami")
	assert.ErrorContains(t, err, "not logged in")
}

func TestRegisterCmd_DefaultsToProvider(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("register", "carol", "--email", "carol@example.com", "-p", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "(provider)")

	out, err = h.run("register", "dave", "--email", "dave@example.com", "-p", "pw", "--role", "purchaser")
	require.NoError(t, err)
	assert.Contains(t, out, "(purchaser)")
}

func TestLogoutCmd_IsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.login(t, testhelpers.ProviderSession())

	for i := 0; i < 2; i++ {
		out, err := h.run("logout")
		require.NoError(t, err)
		assert.Contains(t, out, "Logged out")
	}
	_, err := h.run("invoices", "list")
	assert.ErrorContains(t, err, "not logged in")
	assert.Zero(t, h.api.TotalCalls())
}

func TestInvoicesListCmd_ShowsRoleActions(t *testing.T) {
	h := newHarness(t)
	h.api.InvoicesFn = func(context.Context, string) ([]model.Invoice, error) { return sampleInvoices(), nil }

	h.login(t, testhelpers.PurchaserSession())
	out, err := h.run("invoices", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "INV-0007")
	assert.Contains(t, out, "5.00 LYD")
	assert.Contains(t, out, "Provider")
	assert.Contains(t, out, "Submit Payment, Mark Defaulted")
	assert.NotContains(t, out, "Confirm Payment")

	h.login(t, testhelpers.ProviderSession())
	out, err = h.run("invoices", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Confirm Payment, Mark Defaulted")
	assert.Contains(t, out, "Awaiting payment")
}

func TestInvoicesListCmd_Empty(t *testing.T) {
	h := newHarness(t)
	h.login(t, testhelpers.ProviderSession())

	out, err := h.run("invoices", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No invoices yet.")
}

func TestInvoicesListCmd_ExpiredTokenClearsSession(t *testing.T) {
	h := newHarness(t)
	h.api.InvoicesFn = func(context.Context, string) ([]model.Invoice, error) {
		return nil, &invoiceapi.APIError{Status: 401, Detail: "Could not validate credentials"}
	}
	h.login(t, testhelpers.ProviderSession())

	_, err := h.run("invoices", "list")
	assert.ErrorContains(t, err, "session expired")

	s, err := cli.NewSessionFile(h.session).Load()
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
}

func TestInvoicesCreateCmd(t *testing.T) {
	h := newHarness(t)
	h.login(t, testhelpers.ProviderSession())

	out, err := h.run("invoices", "create",
		"--title", "Hosting", "--description", "March", "--amount", "19.99", "--purchaser", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Created")
	assert.Contains(t, out, "19.99 USD")
	assert.Equal(t, 1, h.api.Calls("CreateInvoice"))

	_, err = h.run("invoices", "create", "--title", "Hosting", "--amount", "abc", "--purchaser", "3", "--description", "x")
	assert.Error(t, err)
	assert.Equal(t, 1, h.api.Calls("CreateInvoice"))
}

func TestInvoicesCreateCmd_PurchaserRejected(t *testing.T) {
	h := newHarness(t)
	h.login(t, testhelpers.PurchaserSession())

	_, err := h.run("invoices", "create", "--title", "x", "--description", "y", "--amount", "1", "--purchaser", "3")
	assert.ErrorContains(t, err, "only providers")
	assert.Zero(t, h.api.TotalCalls())
}

func TestInvoicesPayCmd(t *testing.T) {
	h := newHarness(t)
	h.api.InvoicesFn = func(context.Context, string) ([]model.Invoice, error) { return sampleInvoices(), nil }
	h.login(t, testhelpers.PurchaserSession())

	out, err := h.run("invoices", "pay", "8", "  TX-42 ")
	require.NoError(t, err)
	assert.Contains(t, out, "Payment submitted")
	assert.Contains(t, out, "ref TX-42")

	_, err = h.run("invoices", "pay", "8", "   ")
	assert.Error(t, err)

	_, err = h.run("invoices", "pay", "7", "TX-43")
	assert.ErrorContains(t, err, "not allowed")
	assert.Equal(t, 1, h.api.Calls("UpdateInvoice"))
}

func TestInvoicesStatusCmds(t *testing.T) {
	h := newHarness(t)
	h.api.InvoicesFn = func(context.Context, string) ([]model.Invoice, error) { return sampleInvoices(), nil }
	h.login(t, testhelpers.ProviderSession())

	out, err := h.run("invoices", "confirm", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Confirm Payment")
	assert.Contains(t, out, string(model.StatusPaid))

	out, err = h.run("invoices", "default", "7")
	require.NoError(t, err)
	assert.Contains(t, out, string(model.StatusDefaulted))

	_, err = h.run("invoices", "confirm", "8")
	assert.ErrorContains(t, err, "not allowed")

	_, err = h.run("invoices", "confirm", "nope")
	assert.ErrorContains(t, err, "invalid invoice id")
	assert.Equal(t, 2, h.api.Calls("UpdateInvoice"))
}

func TestDashboardCmd(t *testing.T) {
	h := newHarness(t)
	h.api.DashboardFn = func(context.Context, string) (*model.DashboardStats, error) {
		return &model.DashboardStats{TotalInvoices: 4, TotalAmount: 120.5, PaidAmount: 20, PendingCount: 2, PaymentSubmittedCount: 1}, nil
	}
	h.api.AnalyticsFn = func(context.Context, string) (*model.Analytics, error) {
		return &model.Analytics{
			StatusBreakdown:   map[model.InvoiceStatus]int{model.StatusPending: 2},
			CurrencyBreakdown: map[model.Currency]float64{model.CurrencyUGX: 100, model.CurrencyUSD: 20.5},
			MonthlyTrends:     []model.MonthlyTrend{{Month: "2025-01", Count: 4, Amount: 120.5}},
		}, nil
	}
	h.login(t, testhelpers.ProviderSession())

	out, err := h.run("dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "120.50")
	assert.Contains(t, out, "UGX")
	assert.Contains(t, out, "2025-01")
	assert.Less(t, strings.Index(out, "UGX"), strings.Index(out, "USD"))
}
