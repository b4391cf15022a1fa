package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/polkiloo/invoicebox/internal/domain/model"
	"github.com/polkiloo/invoicebox/internal/domain/policy"
)

var (
	accent  = lipgloss.Color("#2563EB")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#16A34A")
	info    = lipgloss.Color("#0EA5E9")
	danger  = lipgloss.Color("#DC2626")
	warning = lipgloss.Color("#D97706")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)

	badgeColors = map[string]lipgloss.Color{
		"green":  success,
		"blue":   info,
		"red":    danger,
		"yellow": warning,
	}
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dim)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func money(amount float64, currency model.Currency) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func statusText(status model.InvoiceStatus) string {
	return lipgloss.NewStyle().Foreground(badgeColors[policy.Badge(status)]).Render(string(status))
}

func counterpartyHeader(role model.Role) string {
	if role == model.RoleProvider {
		return "Purchaser"
	}
	return "Provider"
}

// actionsText lists what the user can do next, or the provider's hint.
func actionsText(role model.Role, status model.InvoiceStatus) string {
	actions := policy.Actions(role, status)
	if len(actions) == 0 {
		return dimStyle.Render(policy.Hint(role, status))
	}
	labels := make([]string, 0, len(actions))
	for _, a := range actions {
		labels = append(labels, a.Label())
	}
	return strings.Join(labels, ", ")
}

func renderInvoices(role model.Role, invoices []model.Invoice) string {
	if len(invoices) == 0 {
		return dimStyle.Render("No invoices yet.") + "\n"
	}
	t := newTable("ID", "Number", "Title", counterpartyHeader(role), "Amount", "Status", "Reference", "Created", "Actions")
	for _, inv := range invoices {
		created := ""
		if !inv.DateCreated.IsZero() {
			created = inv.DateCreated.Format("2006-01-02")
		}
		t.Row(
			strconv.FormatInt(inv.ID, 10),
			inv.InvoiceNumber,
			inv.Title,
			inv.Counterparty(role),
			money(inv.Amount, inv.Currency),
			statusText(inv.Status),
			inv.Reference(),
			created,
			actionsText(role, inv.Status),
		)
	}
	return t.String() + "\n"
}

func renderInvoice(inv model.Invoice) string {
	line := fmt.Sprintf("%s %s  %s  %s", titleStyle.Render(inv.InvoiceNumber), inv.Title, money(inv.Amount, inv.Currency), statusText(inv.Status))
	if ref := inv.Reference(); ref != "" {
		line += dimStyle.Render("  ref " + ref)
	}
	return line + "\n"
}

func renderOverview(o *model.Overview) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Dashboard") + "\n")
	stats := newTable("Total invoices", "Total amount", "Paid amount", "Pending", "Payment submitted")
	stats.Row(
		strconv.Itoa(o.Stats.TotalInvoices),
		fmt.Sprintf("%.2f", o.Stats.TotalAmount),
		fmt.Sprintf("%.2f", o.Stats.PaidAmount),
		strconv.Itoa(o.Stats.PendingCount),
		strconv.Itoa(o.Stats.PaymentSubmittedCount),
	)
	b.WriteString(stats.String() + "\n")

	b.WriteString(titleStyle.Render("By status") + "\n")
	byStatus := newTable("Status", "Count")
	for _, status := range model.Statuses {
		byStatus.Row(statusText(status), strconv.Itoa(o.Analytics.StatusBreakdown[status]))
	}
	b.WriteString(byStatus.String() + "\n")

	if len(o.Analytics.CurrencyBreakdown) > 0 {
		b.WriteString(titleStyle.Render("By currency") + "\n")
		currencies := make([]string, 0, len(o.Analytics.CurrencyBreakdown))
		for c := range o.Analytics.CurrencyBreakdown {
			currencies = append(currencies, string(c))
		}
		sort.Strings(currencies)
		byCurrency := newTable("Currency", "Amount")
		for _, c := range currencies {
			byCurrency.Row(c, fmt.Sprintf("%.2f", o.Analytics.CurrencyBreakdown[model.Currency(c)]))
		}
		b.WriteString(byCurrency.String() + "\n")
	}

	if len(o.Analytics.MonthlyTrends) > 0 {
		b.WriteString(titleStyle.Render("Monthly trends") + "\n")
		trends := newTable("Month", "Invoices", "Amount")
		for _, m := range o.Analytics.MonthlyTrends {
			trends.Row(m.Month, strconv.Itoa(m.Count), fmt.Sprintf("%.2f", m.Amount))
		}
		b.WriteString(trends.String() + "\n")
	}
	return b.String()
}
