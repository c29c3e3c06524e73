package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nulzo/summary-gateway/internal/cli"
	"github.com/nulzo/summary-gateway/pkg/api"
	"github.com/spf13/cobra"
)

func newSessionCmd(opts *rootOptions) *cobra.Command {
	var data, provider string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Summarise raw session data (from --data or stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if data == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				data = string(raw)
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			resp, err := opts.client().Summarize(ctx, api.SummaryRequest{SessionData: data, Provider: provider})
			if err != nil {
				return fail(cmd, err)
			}
			printSummary(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "session data; read from stdin when empty")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "pin a single provider")
	return cmd
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var file, provider string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise a structured session report (JSON file or stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			var report api.SessionReport
			if err := json.NewDecoder(r).Decode(&report); err != nil {
				return fmt.Errorf("reading session report: %w", err)
			}
			if provider != "" {
				report.Provider = provider
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			resp, err := opts.client().Report(ctx, report)
			if err != nil {
				return fail(cmd, err)
			}
			printSummary(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "report JSON file, - for stdin")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "pin a single provider")
	return cmd
}

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	var equipment []string
	var issue, provider string

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Ask for maintenance recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(equipment) == 0 || issue == "" {
				return errors.New("--equipment and --issue are required")
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			resp, err := opts.client().Recommendations(ctx, api.RecommendationRequest{
				Equipment: equipment,
				Issue:     issue,
				Provider:  provider,
			})
			if err != nil {
				return fail(cmd, err)
			}
			printSummary(cmd, resp)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&equipment, "equipment", "e", nil, "equipment involved (repeatable)")
	cmd.Flags().StringVarP(&issue, "issue", "i", "", "problem description")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "pin a single provider")
	return cmd
}

func newProvidersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "Show the fallback order and configured providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			resp, err := opts.client().Providers(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s order: %s\n\n", cli.Arrow(), strings.Join(resp.Order, " → "))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tMODEL\tPOSITION\tKEY")
			for _, p := range resp.Providers {
				position := "pin only"
				if p.Position >= 0 {
					position = humanize.Ordinal(p.Position + 1)
				}
				key := cli.CrossMark()
				if p.Configured {
					key = cli.CheckMark()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Model, position, key)
			}
			return w.Flush()
		},
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-provider attempt statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			stats, err := opts.client().Stats(ctx, days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(stats) == 0 {
				fmt.Fprintln(out, "no attempts recorded")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DAY\tPROVIDER\tATTEMPTS\tSUCCESS\tAVG LATENCY")
			for _, s := range stats {
				day := s.Date
				if t, err := time.Parse("2006-01-02", s.Date); err == nil {
					day = humanize.Time(t)
				}
				rate := 0.0
				if s.TotalAttempts > 0 {
					rate = float64(s.Successes) / float64(s.TotalAttempts) * 100
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s%%\t%s\n",
					day,
					s.Provider,
					humanize.Comma(int64(s.TotalAttempts)),
					humanize.FtoaWithDigits(rate, 1),
					time.Duration(s.AverageLatency*float64(time.Millisecond)).Round(time.Millisecond),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "how many days back")
	return cmd
}

func printSummary(cmd *cobra.Command, resp *api.SummaryResponse) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", cli.CheckMark(), cli.Stylize(resp.Provider, cli.Cyan))
	fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
}
