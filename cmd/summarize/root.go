package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nulzo/summary-gateway/internal/cli"
	"github.com/nulzo/summary-gateway/internal/client"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	url     string
	appName string
	timeout time.Duration
	noColor bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "summarize",
		Short:         "Talk to a running summary gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				cli.SetEnabled(false)
			}
		},
	}

	defaultURL := os.Getenv("SUMMARY_GATEWAY_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.url, "url", defaultURL, "gateway base URL (env SUMMARY_GATEWAY_URL)")
	flags.StringVar(&opts.appName, "app-name", "summarize-cli", "value sent as X-App-Name")
	flags.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall request timeout")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newSessionCmd(opts),
		newReportCmd(opts),
		newRecommendCmd(opts),
		newProvidersCmd(opts),
		newStatsCmd(opts),
	)

	return cmd
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.url, client.WithAppName(o.appName))
}

func (o *rootOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

// fail prints the error together with the operator fallback text.
func fail(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", cli.CrossMark(), err)
	fmt.Fprintln(cmd.OutOrStdout(), client.FallbackMessage)
	return err
}
