package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/polkiloo/invoicebox/internal/domain/model"
	"github.com/polkiloo/invoicebox/internal/domain/policy"
)

func newInvoicesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"inv"},
		Short:   "List, create and settle invoices",
	}
	cmd.AddCommand(newInvoicesListCmd(e))
	cmd.AddCommand(newInvoicesCreateCmd(e))
	cmd.AddCommand(newInvoicesPayCmd(e))
	cmd.AddCommand(newInvoicesStatusCmd(e, "confirm", "Confirm a submitted payment", policy.ActionConfirmPayment))
	cmd.AddCommand(newInvoicesStatusCmd(e, "default", "Mark an invoice as defaulted", policy.ActionMarkDefaulted))
	return cmd
}

func parseInvoiceID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid invoice id %q", raw)
	}
	return id, nil
}

func newInvoicesListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := e.session()
			if err != nil {
				return err
			}
			invoices, err := e.invoices.List(cmd.Context(), s, "")
			if err != nil {
				return e.check(err)
			}
			printf(cmd.OutOrStdout(), "%s", renderInvoices(s.Role(), invoices))
			return nil
		},
	}
}

func newInvoicesCreateCmd(e *env) *cobra.Command {
	var draft model.InvoiceDraft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Issue an invoice to a purchaser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := e.session()
			if err != nil {
				return err
			}
			if !policy.CanCreateInvoice(s.Role()) {
				return fmt.Errorf("only providers can create invoices")
			}
			inv, err := e.invoices.Create(cmd.Context(), s, draft)
			if err != nil {
				return e.check(err)
			}
			printf(cmd.OutOrStdout(), "Created %s", renderInvoice(*inv))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&draft.Title, "title", "", "Invoice title")
	flags.StringVar(&draft.Description, "description", "", "Invoice description")
	flags.StringVar(&draft.Amount, "amount", "", "Amount, e.g. 19.99")
	flags.StringVar(&draft.Currency, "currency", string(model.DefaultCurrency), "Currency (USD, UGX, LYD)")
	flags.StringVar(&draft.PurchaserID, "purchaser", "", "Purchaser user id")
	return cmd
}

func newInvoicesPayCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "pay <id> <reference>",
		Short: "Submit a payment reference for a pending invoice",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInvoiceID(args[0])
			if err != nil {
				return err
			}
			s, err := e.session()
			if err != nil {
				return err
			}
			inv, err := e.invoices.SubmitPayment(cmd.Context(), s, "", id, args[1])
			if err != nil {
				return e.check(err)
			}
			printf(cmd.OutOrStdout(), "Payment submitted: %s", renderInvoice(*inv))
			return nil
		},
	}
}

func newInvoicesStatusCmd(e *env, use, short string, action policy.Action) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInvoiceID(args[0])
			if err != nil {
				return err
			}
			s, err := e.session()
			if err != nil {
				return err
			}
			inv, err := e.invoices.UpdateStatus(cmd.Context(), s, "", id, action, "")
			if err != nil {
				return e.check(err)
			}
			printf(cmd.OutOrStdout(), "%s: %s", action.Label(), renderInvoice(*inv))
			return nil
		},
	}
}
