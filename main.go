// go-pairs is a memory-matching card game for the terminal.
//
// Usage:
//
//	go-pairs                 - Play (same as 'go-pairs play')
//	go-pairs play            - Play from the saved progress
//	go-pairs progress        - Show the saved level and score
//	go-pairs achievements    - List achievements
//	go-pairs scores          - Show the best finished runs
//	go-pairs reset           - Forget saved progress and score history
//	go-pairs levels          - List the level catalog
//	go-pairs config          - Show the effective configuration
//
// Global flags:
//
//	--config <path> - Config file (default: ~/.config/go-pairs/config.yaml)
//	--seed <value>  - Deck shuffle seed (0 = random based on time)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"go-pairs/internal/config"
	"go-pairs/internal/kvstore"
	"go-pairs/internal/levels"
)

var (
	// Global flags
	flagConfig string
	flagSeed   int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "go-pairs",
	Short: "go-pairs - a memory card game for your terminal",
	Long: `go-pairs is a concentration game: flip two cards at a time and find
every pair. Twenty levels grow from a 2x2 warm-up to a 12x11 board.
Progress, achievements and your best runs are saved between sessions.

Available commands:
  play          - Play from the saved progress (default)
  progress      - Show the saved level and score
  achievements  - List achievements
  scores        - Show the best finished runs
  reset         - Forget saved progress and score history
  levels        - List the level catalog
  config        - Show the effective configuration`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Deck shuffle seed (0 = from config, else random)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(configCmd)
}

// env is what every command needs: configuration, the store, the catalog
// and a logger.
type env struct {
	cfg     config.Config
	store   kvstore.Store
	catalog *levels.Catalog
	logger  *log.Logger
	logFile io.Closer
}

func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("could not close store", "error", err)
		}
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// openEnv loads the configuration and opens the store. The log goes to a file
// in the data directory because the board owns the terminal.
func openEnv() (*env, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}

	e := &env{cfg: cfg, logger: log.New(io.Discard)}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", cfg.DataDir, err)
	}
	logPath := filepath.Join(cfg.DataDir, "go-pairs.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file %s: %v\n", logPath, err)
	} else {
		e.logFile = f
		e.logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "go-pairs",
			Level:           cfg.Level(),
		})
	}

	e.catalog = levels.Default()
	if cfg.LevelsFile != "" {
		path, err := kvstore.ExpandHome(cfg.LevelsFile)
		if err != nil {
			e.Close()
			return nil, err
		}
		if e.catalog, err = levels.Load(path); err != nil {
			e.Close()
			return nil, err
		}
	}
	for _, err := range e.catalog.Validate() {
		e.logger.Warn("level catalog", "error", err)
	}

	e.store, err = kvstore.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		e.logger.Warn("could not open store, progress will not be saved", "storage", cfg.Storage, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open %s store: %v\n", cfg.Storage, err)
		e.store = kvstore.NewMemoryStore()
	}

	e.logger.Debug("environment ready", "data_dir", cfg.DataDir, "storage", cfg.Storage, "levels", e.catalog.Size())
	return e, nil
}
