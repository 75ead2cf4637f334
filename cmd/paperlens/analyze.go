package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/csheth/paperlens/internal/analysis"
	"github.com/csheth/paperlens/internal/archive"
	"github.com/csheth/paperlens/internal/formatter"
	"github.com/csheth/paperlens/internal/intake"
	"github.com/csheth/paperlens/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Upload a paper and print the analysis",
	Long: `Analyze validates the file (PDF, DOCX or TXT, up to 50MB), uploads it to the
backend and prints the result to stdout. Progress and logs go to stderr so
the output can be piped.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var reportCmd = &cobra.Command{
	Use:   "report <result.json>",
	Short: "Download the PDF report for an archived analysis",
	Long: `Report loads a result saved with "analyze --save" or the e key in the UI and
asks the backend to render it as a PDF in the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the paperlens version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "paperlens %s\n", version)
	},
}

func init() {
	analyzeCmd.Flags().String("format", "", "output format: text, json, yaml or markdown")
	analyzeCmd.Flags().Bool("report", false, "also download the PDF report")
	analyzeCmd.Flags().Bool("save", false, "also archive the raw result as JSON in the output directory")

	rootCmd.AddCommand(analyzeCmd, reportCmd, versionCmd)
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := openLog(cfg.Log.File, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	f, err := formatter.New(cfg.Output.Format)
	if err != nil {
		return err
	}
	candidate, err := intake.Inspect(intake.NormalizeDroppedPath(args[0]))
	if err != nil {
		return err
	}
	if err := intake.Validate(candidate); err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	client := newClient(cfg)
	log.Printf("[analysis] uploading %s (%.1f KB) to %s", candidate.Name, candidate.SizeKB(), client.BaseURL())
	result, err := client.Analyze(ctx, candidate.Path, nil)
	if err != nil {
		var apiErr *analysis.APIError
		if errors.As(err, &apiErr) {
			return errors.New(analysis.AnalysisMessage(err))
		}
		return fmt.Errorf("analyze %s: %w", candidate.Name, err)
	}

	out, err := f.Format(result)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		path, err := archive.Save(cfg.Output.Dir, candidate.Name, result)
		if err != nil {
			return err
		}
		log.Printf("[analysis] archived result to %s", path)
	}
	if withReport, _ := cmd.Flags().GetBool("report"); withReport {
		return exportReport(ctx, cmd, newExporter(cfg, client), result, candidate.Name)
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := openLog(cfg.Log.File, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	result, err := archive.Load(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd)
	defer cancel()

	client := newClient(cfg)
	upload := result.Filename
	if upload == "" {
		upload = args[0]
	}
	return exportReport(ctx, cmd, newExporter(cfg, client), result, upload)
}

func exportReport(ctx context.Context, cmd *cobra.Command, exporter report.Exporter, result *analysis.Result, upload string) error {
	saved, err := exporter.Export(ctx, result, upload)
	if err != nil {
		return errors.New(report.FailureMessage(err))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved PDF report to %s (%d pages)\n", saved.Path, saved.Pages)
	return nil
}
