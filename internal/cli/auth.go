package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polkiloo/invoicebox/internal/adapter/invoiceapi"
	"github.com/polkiloo/invoicebox/internal/domain/model"
)

// readPassword takes the password from the flag or the first line of stdin.
func readPassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	printf(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("password is required")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func signedIn(cmd *cobra.Command, e *env, s model.Session) error {
	if err := e.sessions.Save(s); err != nil {
		return err
	}
	printf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", s.User.Username, s.User.Role)
	return nil
}

func newLoginCmd(e *env) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}
			s, err := e.auth.Login(cmd.Context(), args[0], pw)
			if err != nil {
				return fmt.Errorf("login failed: %s", invoiceapi.Detail(err, err.Error()))
			}
			return signedIn(cmd, e, s)
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (read from stdin when omitted)")
	return cmd
}

func newRegisterCmd(e *env) *cobra.Command {
	var email, password, role string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}
			s, err := e.auth.Register(cmd.Context(), args[0], email, pw, role)
			if err != nil {
				return fmt.Errorf("registration failed: %s", invoiceapi.Detail(err, err.Error()))
			}
			return signedIn(cmd, e, s)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (read from stdin when omitted)")
	cmd.Flags().StringVar(&role, "role", string(model.RoleProvider), "Account role (provider or purchaser)")
	return cmd
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.sessions.Clear(); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Logged out\n")
			return nil
		},
	}
}

func newWhoamiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := e.session()
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s (%s, id %d)\n", s.User.Username, s.User.Role, s.User.ID)
			return nil
		},
	}
}
