package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	netplanlint "github.com/reoring/netplanlint"
	"github.com/reoring/netplanlint/i18n"
	"github.com/reoring/netplanlint/internal/logging"
	"github.com/reoring/netplanlint/schema"
)

// errInvalid signals that at least one file failed; its message is already
// printed per file.
var errInvalid = errors.New("one or more files are invalid")

type rootOptions struct {
	jobs        int
	logLevel    string
	logFormat   string
	lang        string
	metricsFile string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	o := rootOptions{}
	cmd := &cobra.Command{
		Use:   "netplanlint [file...]",
		Short: "Validate netplan network configuration files",
		Long: `Validate netplan YAML files against a structural schema and report
the first violation of each file.

Not every netplan property is supported yet.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), o, args)
		},
	}

	cmd.Flags().IntVarP(&o.jobs, "jobs", "j", runtime.NumCPU(), "number of files validated concurrently")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "log level (DEBUG, INFO, WARN, ERROR); default from NETPLANLINT_LOG_LEVEL")
	cmd.Flags().StringVar(&o.logFormat, "log-format", "", "log format (CONSOLE, JSON); default from NETPLANLINT_LOG_FORMAT")
	cmd.Flags().StringVar(&o.lang, "lang", "en", "message language (en, ja)")
	cmd.Flags().StringVar(&o.metricsFile, "metrics-file", "", "write prometheus metrics to this textfile after the run")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "print position and engine detail for each failure")
	return cmd
}

func run(ctx context.Context, out io.Writer, o rootOptions, files []string) error {
	if len(files) == 0 {
		fmt.Fprintln(out, "Try passing a bunch of netplan yamls as parameters")
		return nil
	}

	log := logging.New(o.logLevel, o.logFormat)
	defer func() { _ = log.Sync() }()

	s, err := schema.Build(schema.WithLogger(log))
	if err != nil {
		return fmt.Errorf("building schema: %w", err)
	}

	reg := prometheus.NewRegistry()
	v := netplanlint.New(s,
		netplanlint.WithLogger(log),
		netplanlint.WithMetrics(netplanlint.NewMetrics(reg)),
		netplanlint.WithTranslator(i18n.Lookup(o.lang)),
	)

	results, err := v.ValidateFiles(ctx, files, o.jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		fmt.Fprintf(out, "Parsing %s\n", r.Path)
		switch {
		case r.ReadErr != nil:
			failed++
			fmt.Fprintf(out, "Failed to open file %s\n", r.Path)
			fmt.Fprintf(out, "Error: %v\n", r.ReadErr)
		case r.Err != nil:
			failed++
			fmt.Fprintf(out, "Validation failed for file %s\n", r.Path)
			fmt.Fprintf(out, "Error: %v\n", r.Err)
			if o.verbose {
				printDetail(out, r.Err)
			}
		default:
			fmt.Fprintf(out, "File %s is valid\n", r.Path)
		}
	}
	log.Info("validation finished", zap.Int("files", len(results)), zap.Int("failed", failed))

	if o.metricsFile != "" {
		if err := prometheus.WriteToTextfile(o.metricsFile, reg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	if failed > 0 {
		return errInvalid
	}
	return nil
}

func printDetail(out io.Writer, err error) {
	is, ok := netplanlint.AsIssue(err)
	if !ok {
		return
	}
	if is.Line > 0 {
		fmt.Fprintf(out, "  at line %d, column %d\n", is.Line, is.Column)
	}
	if is.Detail != "" {
		fmt.Fprintf(out, "  %s\n", is.Detail)
	}
}
