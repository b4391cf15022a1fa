package cli

import "github.com/spf13/cobra"

func newDashboardCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show invoice totals and breakdowns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := e.session()
			if err != nil {
				return err
			}
			overview, err := e.analytics.Overview(cmd.Context(), s)
			if err != nil {
				return e.check(err)
			}
			printf(cmd.OutOrStdout(), "%s", renderOverview(overview))
			return nil
		},
	}
}
