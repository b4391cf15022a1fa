// Package cli implements invoicectl, a terminal client for the invoicing API
// sharing the web front end's use cases and action policy.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/polkiloo/invoicebox/internal/adapter/invoiceapi"
	"github.com/polkiloo/invoicebox/internal/config"
	"github.com/polkiloo/invoicebox/internal/domain/model"
	"github.com/polkiloo/invoicebox/internal/usecase"
)

const (
	defaultAPIBaseURL = "http://localhost:8000"
	defaultTimeout    = 10 * time.Second
)

var errNotLoggedIn = errors.New("not logged in, run `invoicectl login` first")

// ClientFactory builds the API client used by a command run.
type ClientFactory func(baseURL string, timeout time.Duration, logger *slog.Logger) (invoiceapi.Client, error)

// Option customises the root command.
type Option func(*settings)

type settings struct {
	newClient ClientFactory
}

// WithClient makes every command talk to client instead of the HTTP API.
func WithClient(client invoiceapi.Client) Option {
	return func(s *settings) {
		s.newClient = func(string, time.Duration, *slog.Logger) (invoiceapi.Client, error) {
			return client, nil
		}
	}
}

func httpClientFactory(baseURL string, timeout time.Duration, logger *slog.Logger) (invoiceapi.Client, error) {
	return invoiceapi.NewHTTPClient(baseURL, timeout, logger, nil)
}

// env is the per-run state shared by subcommands once flags are parsed.
type env struct {
	sessions  *SessionFile
	auth      *usecase.AuthUseCase
	invoices  *usecase.InvoiceUseCase
	analytics *usecase.AnalyticsUseCase
}

// session returns the stored session or errNotLoggedIn.
func (e *env) session() (model.Session, error) {
	s, err := e.sessions.Load()
	if err != nil {
		return model.Session{}, err
	}
	if !s.Authenticated() {
		return model.Session{}, errNotLoggedIn
	}
	return s, nil
}

// check drops the stored session when the API rejected its token.
func (e *env) check(err error) error {
	if err == nil {
		return nil
	}
	if invoiceapi.IsUnauthorized(err) {
		if clearErr := e.sessions.Clear(); clearErr != nil {
			return errors.Join(err, clearErr)
		}
		return fmt.Errorf("session expired, log in again: %w", err)
	}
	return err
}

// NewRootCmd builds the invoicectl command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	s := settings{newClient: httpClientFactory}
	for _, opt := range opts {
		opt(&s)
	}

	var (
		apiURL      string
		sessionPath string
		timeout     time.Duration
		verbose     bool
	)
	e := &env{}

	cmd := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Work with InvoiceBox invoices from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if sessionPath == "" {
				path, err := DefaultSessionPath()
				if err != nil {
					return err
				}
				sessionPath = path
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			client, err := s.newClient(apiURL, timeout, logger)
			if err != nil {
				return err
			}
			// Held books are never used: the CLI refetches on every run.
			cfg := &config.Config{SessionTTL: time.Minute}

			e.sessions = NewSessionFile(sessionPath)
			e.auth = usecase.NewAuthUseCase(client)
			e.invoices = usecase.NewInvoiceUseCase(client, usecase.NewBookCache(), usecase.NewInflightGuard(), cfg)
			e.analytics = usecase.NewAnalyticsUseCase(client)
			return nil
		},
	}

	apiDefault := defaultAPIBaseURL
	if v, ok := os.LookupEnv("API_BASE_URL"); ok && v != "" {
		apiDefault = v
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&apiURL, "api", apiDefault, "Invoicing API base URL (env API_BASE_URL)")
	flags.StringVar(&sessionPath, "session-file", "", "Session file (default $HOME/.invoicebox/session.yaml)")
	flags.DurationVar(&timeout, "timeout", defaultTimeout, "Timeout for API calls")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log API calls")

	cmd.AddCommand(newLoginCmd(e))
	cmd.AddCommand(newRegisterCmd(e))
	cmd.AddCommand(newLogoutCmd(e))
	cmd.AddCommand(newWhoamiCmd(e))
	cmd.AddCommand(newInvoicesCmd(e))
	cmd.AddCommand(newDashboardCmd(e))
	return cmd
}

// Execute runs invoicectl with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
