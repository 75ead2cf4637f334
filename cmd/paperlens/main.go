// Package main is the entry point for the paperlens CLI. The root command runs
// the terminal UI; subcommands run the same pipeline headless.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/csheth/paperlens/internal/analysis"
	"github.com/csheth/paperlens/internal/config"
	"github.com/csheth/paperlens/internal/intake"
	"github.com/csheth/paperlens/internal/report"
	"github.com/csheth/paperlens/internal/theme"
	"github.com/csheth/paperlens/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "paperlens",
	Short: "Terminal client for the research paper analysis backend",
	Long: `paperlens uploads a research paper (PDF, DOCX or TXT, up to 50MB) to the
analysis backend and shows the result as a navigable dashboard: topic and
methodology classification, summaries, readability, citations, research
questions, quality scoring, keywords and entities. The PDF report can be
downloaded from the dashboard.

Run without arguments for the interactive UI, or use the analyze subcommand
for scripts.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runTUI,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./paperlens.yaml or ~/.config/paperlens/config.yaml)")
	pf.String("backend", "", "analysis backend base URL (default http://localhost:8000)")
	pf.Duration("timeout", 0, "analysis request timeout (default 5m)")
	pf.String("output-dir", "", "directory for downloaded reports and archived results")
	pf.String("debug-log", "", "append log output to this file")

	rootCmd.Flags().String("theme", "", "color theme: dark or light")
	rootCmd.Flags().String("inbox", "", "watch this directory and pick up files dropped into it")
	rootCmd.Flags().Bool("no-alt-screen", false, "disable the alternate screen buffer")
}

// loadConfig resolves defaults, the config file, PAPERLENS_* env and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader()
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("config")
	return loader.Load(path)
}

func newClient(cfg *config.Config) *analysis.Client {
	return analysis.New(analysis.Config{
		BaseURL:       cfg.Backend.URL,
		Timeout:       cfg.Backend.Timeout,
		ReportTimeout: cfg.Backend.ReportTimeout,
		UserAgent:     cfg.Backend.UserAgent + "/" + version,
	})
}

func newExporter(cfg *config.Config, client *analysis.Client) report.Exporter {
	return report.Exporter{Client: client, Saver: report.Saver{Dir: cfg.Output.Dir}}
}

// openLog points the standard logger at path, or at fallback when path is empty.
func openLog(path string, fallback io.Writer) (func(), error) {
	if path == "" {
		log.SetOutput(fallback)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "paperlens")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := openLog(cfg.Log.File, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	mode, err := theme.ParseMode(cfg.Output.Theme)
	if err != nil {
		return err
	}

	client := newClient(cfg)
	tuiCfg := tui.Config{
		Analyzer: client,
		Reports:  newExporter(cfg, client),
		Health:   client,
		Theme:    theme.NewProvider(mode),
		Progress: tui.ProgressSettings{
			Step:     cfg.Progress.Step,
			Ceiling:  cfg.Progress.Ceiling,
			Interval: cfg.Progress.Interval,
		},
		OutputDir: cfg.Output.Dir,
		Backend:   client.BaseURL(),
	}

	if cfg.Inbox.Dir != "" {
		watcher, err := intake.NewWatcher(cfg.Inbox.Dir, cfg.Inbox.Debounce)
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
		tuiCfg.Inbox = watcher.Events()
		tuiCfg.InboxDir = watcher.Dir()
		tuiCfg.StartDir = watcher.Dir()
	}
	log.Printf("[paperlens] backend=%s output=%s", client.BaseURL(), cfg.Output.Dir)

	noAlt, _ := cmd.Flags().GetBool("no-alt-screen")
	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !noAlt {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(tui.New(tuiCfg), opts...).Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
