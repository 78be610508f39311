// Command prospect is the project-catalog matching engine CLI.
//
// It loads a tabular project dataset once per process and answers three
// questions over it: what resembles a free-text idea, what complements a
// given project, and what the aggregate trends are. The same engine is
// exposed over HTTP (serve) and MCP (mcp).
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hurttlocker/prospect/internal/catalog"
	"github.com/hurttlocker/prospect/internal/config"
	"github.com/hurttlocker/prospect/internal/match"
	"github.com/hurttlocker/prospect/internal/remote"
)

const version = "0.1.0"

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	dataset    string
	datasetURL string
	remoteURL  string
	listenAddr string
	verbose    bool
	jsonOut    bool
}

// app bundles the wired engine components for command handlers.
type app struct {
	cfg     config.ResolvedConfig
	log     *zap.Logger
	store   *catalog.Store
	ranker  *match.Ranker
	matcher remote.Matcher
}

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "prospect",
		Short:         "Match, combine, and analyze a project catalog",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file path (default ~/.prospect/config.yaml)")
	pf.StringVar(&flags.dataset, "dataset", "", "dataset CSV file path")
	pf.StringVar(&flags.datasetURL, "dataset-url", "", "dataset CSV URL (used when no file path is set)")
	pf.StringVar(&flags.remoteURL, "remote", "", "remote match service base URL (empty = local ranking only)")
	pf.StringVar(&flags.listenAddr, "listen", "", "HTTP listen address for serve (default :5001)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&flags.jsonOut, "json", false, "emit JSON instead of text")

	root.AddCommand(
		newMatchCmd(flags),
		newSimilarCmd(flags),
		newCombineCmd(flags),
		newAnalyticsCmd(flags),
		newClassifyCmd(flags),
		newServeCmd(flags),
		newMCPCmd(flags),
		newExportCmd(flags),
	)

	return root
}

// newApp resolves config and wires the engine. Every subcommand goes
// through here so flag/env/file precedence behaves identically.
func newApp(flags *rootFlags) (*app, error) {
	cfg, err := config.Resolve(config.ResolveOptions{
		ConfigPath:     flags.configPath,
		CLIDatasetPath: flags.dataset,
		CLIDatasetURL:  flags.datasetURL,
		CLIRemoteURL:   flags.remoteURL,
		CLIListenAddr:  flags.listenAddr,
	})
	if err != nil {
		return nil, err
	}

	log, err := newLogger(flags.verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	store := catalog.NewStore(catalog.Source{
		FilePath: cfg.DatasetPath.Value,
		URL:      cfg.DatasetURL.Value,
	}, log)
	ranker := match.NewRanker(log)

	var matcher remote.Matcher = remote.NewLocalRanker(store, ranker)
	if cfg.RemoteURL.Value != "" {
		matcher = remote.NewClient(cfg.RemoteURL.Value, matcher, log)
	}

	return &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		ranker:  ranker,
		matcher: matcher,
	}, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
