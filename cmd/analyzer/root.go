package main

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"webPerfAnalyzerGO/internal/config"
	"webPerfAnalyzerGO/internal/logging"
	"webPerfAnalyzerGO/internal/probe"
	"webPerfAnalyzerGO/internal/report"
)

// newRootCmd builds the one-shot CLI: analyze a single URL, echo the
// report to stdout, and persist it as a timestamped JSON file.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyzer <url>",
		Short: "Analyze a website's performance, TLS, headers, and resources",
		Long: `analyzer probes a single website and reports latency, TLS, HTTP-header,
and resource-loading metrics, then emits heuristic optimization
suggestions. When a headless browser is available the analysis runs in
rich mode with browser-reported timings; otherwise it degrades to basic
mode using raw HTTP requests and static HTML parsing.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runAnalysis,
	}
	return cmd
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLog()

	// The one hard input check: a URL that cannot be parsed at all is
	// rejected before any probe runs.
	target := args[0]
	if _, err := url.Parse(target); err != nil {
		return fmt.Errorf("invalid URL %q: %w", target, err)
	}

	ctx := cmd.Context()
	mode := probe.DetectCapability(ctx, cfg.Browser, logger)
	analyzer := probe.New(cfg.Analyzer, cfg.Browser, mode, logger)

	result := analyzer.RunCompleteAnalysis(ctx, target)

	// Persist the timestamped file first, then echo to the console,
	// matching the report's two output indents.
	fileSink := report.NewFileWriter(cfg.Report.Dir)
	fmt.Fprintln(cmd.OutOrStdout(), "\nAnalysis Results:")
	console := report.NewJSONWriter(cmd.OutOrStdout(), "", "  ")
	if _, err := report.NewMultiWriter(fileSink, console).Write(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("Report written", "path", fileSink.Path())

	return nil
}
