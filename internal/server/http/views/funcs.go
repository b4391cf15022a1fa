package views

import (
	"fmt"
	"html/template"

	"github.com/polkiloo/invoicebox/internal/domain/model"
	"github.com/polkiloo/invoicebox/internal/domain/policy"
)

func funcs() template.FuncMap {
	return template.FuncMap{
		"badge":     func(status model.InvoiceStatus) string { return "badge badge-" + policy.Badge(status) },
		"actions":   policy.Actions,
		"hint":      policy.Hint,
		"canCreate": policy.CanCreateInvoice,
		"money":     func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"date":      formatDate,
		"counterpartyLabel": func(role model.Role) string {
			if role == model.RoleProvider {
				return "Purchaser"
			}
			return "Provider"
		},
		"statusText": func(status model.InvoiceStatus) string { return "text-" + policy.Badge(status) },
		"isPayment":  func(a policy.Action) bool { return a == policy.ActionSubmitPayment },
	}
}

func formatDate(ts model.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("2006-01-02")
}
