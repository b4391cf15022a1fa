// Package policy maps a session role and an invoice status to the actions the
// user interface offers. The invoicing API remains the authority on whether a
// transition is legal; this package only decides what to show.
package policy

import (
	"github.com/polkiloo/invoicebox/internal/domain/model"
)

// Action is a user-triggered status transition request.
type Action string

const (
	ActionSubmitPayment  Action = "submit_payment"
	ActionConfirmPayment Action = "confirm_payment"
	ActionMarkDefaulted  Action = "mark_defaulted"
)

// Label returns the button caption for the action.
func (a Action) Label() string {
	switch a {
	case ActionSubmitPayment:
		return "Submit Payment"
	case ActionConfirmPayment:
		return "Confirm Payment"
	case ActionMarkDefaulted:
		return "Mark Defaulted"
	default:
		return string(a)
	}
}

// ParseAction validates an action name posted by a form or passed on the CLI.
func ParseAction(raw string) (Action, bool) {
	switch Action(raw) {
	case ActionSubmitPayment, ActionConfirmPayment, ActionMarkDefaulted:
		return Action(raw), true
	}
	return "", false
}

// Actions returns the actions offered to role for an invoice in status.
func Actions(role model.Role, status model.InvoiceStatus) []Action {
	switch {
	case role == model.RolePurchaser && status == model.StatusPending:
		return []Action{ActionSubmitPayment, ActionMarkDefaulted}
	case role == model.RoleProvider && status == model.StatusPaymentSubmitted:
		return []Action{ActionConfirmPayment, ActionMarkDefaulted}
	default:
		return nil
	}
}

// Allows reports whether action is offered to role for status.
func Allows(role model.Role, status model.InvoiceStatus, action Action) bool {
	for _, a := range Actions(role, status) {
		if a == action {
			return true
		}
	}
	return false
}

// TargetStatus is the status requested from the API when action is taken.
func TargetStatus(action Action) (model.InvoiceStatus, bool) {
	switch action {
	case ActionSubmitPayment:
		return model.StatusPaymentSubmitted, true
	case ActionConfirmPayment:
		return model.StatusPaid, true
	case ActionMarkDefaulted:
		return model.StatusDefaulted, true
	default:
		return "", false
	}
}

// RequiresReference reports whether the action carries a payment reference.
func RequiresReference(action Action) bool {
	return action == ActionSubmitPayment
}

// Hint is the read-only note shown when no action is available.
func Hint(role model.Role, status model.InvoiceStatus) string {
	if role != model.RoleProvider {
		return ""
	}
	switch status {
	case model.StatusPending:
		return "Awaiting payment"
	case model.StatusPaid, model.StatusDefaulted:
		return "Complete"
	default:
		return ""
	}
}

// CanCreateInvoice reports whether role may open the invoice creation form.
func CanCreateInvoice(role model.Role) bool {
	return role == model.RoleProvider
}

// Badge returns the color family of the status badge.
func Badge(status model.InvoiceStatus) string {
	switch status {
	case model.StatusPaid:
		return "green"
	case model.StatusPaymentSubmitted:
		return "blue"
	case model.StatusDefaulted:
		return "red"
	default:
		return "yellow"
	}
}

// Transitions lists the lifecycle edges enforced by the API.
var Transitions = map[model.InvoiceStatus][]model.InvoiceStatus{
	model.StatusPending:          {model.StatusPaymentSubmitted, model.StatusDefaulted},
	model.StatusPaymentSubmitted: {model.StatusPaid, model.StatusDefaulted},
	model.StatusPaid:             nil,
	model.StatusDefaulted:        nil,
}

// IsTerminal reports whether no transition leaves status.
func IsTerminal(status model.InvoiceStatus) bool {
	next, ok := Transitions[status]
	return ok && len(next) == 0
}
