package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go-pairs/internal/achievements"
	"go-pairs/internal/config"
	"go-pairs/internal/deck"
	"go-pairs/internal/game"
	"go-pairs/internal/scoring"
	"go-pairs/internal/tui"
)

var (
	flagScoresLimit       int
	flagResetAchievements bool
	flagConfigDefaults    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play from the saved progress",
	Long: `Start the board at the saved level and score.

Controls:
  Arrows/hjkl  - Move
  Space/Enter  - Flip the card under the cursor
  R            - Retry the level (score is kept)
  N            - Next level (after completing one)
  Ctrl+R       - New game from level 1
  ?            - Toggle help
  Q/Esc        - Quit`,
	RunE: runPlay,
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the saved level and score",
	RunE:  runProgress,
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements",
	RunE:  runAchievements,
}

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best finished runs",
	RunE:  runScores,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget saved progress and score history",
	Long: `Delete the saved level, score and the history of finished runs.
With --achievements, lock every achievement again as well.`,
	RunE: runReset,
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level catalog",
	RunE:  runLevels,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print where the configuration came from and the values in effect after
.env and GOPAIRS_* overrides. With --defaults, print the built-in config file,
a starting point for ~/.config/go-pairs/config.yaml.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in config file")
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	resetCmd.Flags().BoolVar(&flagResetAchievements, "achievements", false, "Also reset achievements")
}

func runPlay(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	// Get terminal size early for the first layout
	width, height := 0, 0
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	notifier := tui.NewNotifier()
	g := game.NewGame(game.Options{
		Catalog:  e.catalog,
		Builder:  deck.NewBuilder(e.cfg.Seed, e.logger),
		Store:    e.store,
		Logger:   e.logger,
		Listener: notifier,
	})
	model := tui.New(g, notifier, e.cfg.RevealDelay(), width, height)

	e.logger.Info("session started", "level", g.State.CurrentLevel, "score", g.State.Score)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running the board: %w", err)
	}
	e.logger.Info("session ended",
		"level", g.State.CurrentLevel,
		"score", g.State.Score,
		"duration", g.Session().Duration(),
		"completed", g.Session().LevelsCompleted,
	)

	fmt.Printf("Level %d, score %d. See you next time!\n", g.State.CurrentLevel, g.State.Score)
	return nil
}

func runProgress(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	saved, err := scoring.NewProgressStore(e.store).Load()
	if err != nil {
		return err
	}
	if saved == nil {
		fmt.Println("No saved progress. Run 'go-pairs play' to start.")
		return nil
	}

	name := "?"
	if def, err := e.catalog.DefinitionFor(saved.CurrentLevel); err == nil {
		name = def.Name
	}
	fmt.Printf("Level: %d/%d (%s)\n", saved.CurrentLevel, e.catalog.Size(), name)
	fmt.Printf("Score: %d\n", saved.Score)
	return nil
}

func runAchievements(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	tracker := achievements.NewTracker(e.store, e.logger, nil)
	all := tracker.All()
	fmt.Printf("Achievements - %d/%d unlocked\n\n", tracker.UnlockedCount(), len(all))

	for _, a := range all {
		mark := "[ ]"
		detail := ""
		if a.Unlocked {
			mark = "[x]"
			detail = a.UnlockedTime().Format("2006-01-02 15:04")
		} else if a.MaxProgress != nil && *a.MaxProgress > 1 {
			detail = fmt.Sprintf("%d/%d", a.ProgressValue(), *a.MaxProgress)
		}
		fmt.Printf("  %s %s %-18s %-45s %s\n", mark, a.Icon, a.Name, a.Description, detail)
	}
	return nil
}

func runScores(cmd *cobra.Command, args []string) error {
	if flagScoresLimit < 0 {
		return fmt.Errorf("--limit must not be negative, got %d", flagScoresLimit)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	history, err := scoring.LoadHistory(e.store)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - go-pairs")
	fmt.Println()

	if history.Attempts() == 0 {
		fmt.Println("No finished runs yet.")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range history.GetNScoreEntries(flagScoresLimit) {
		fmt.Printf("  %-4d  %-10d  %-5d  %s\n", i+1, entry.Score, entry.Level, entry.Timestamp)
	}
	fmt.Printf("\n%d runs recorded.\n", history.Attempts())
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := scoring.NewProgressStore(e.store).Clear(); err != nil {
		return err
	}
	if err := e.store.Delete(scoring.HistoryKey); err != nil {
		return fmt.Errorf("failed to clear score history: %w", err)
	}
	fmt.Println("Saved progress and score history cleared.")

	if flagResetAchievements {
		achievements.NewTracker(e.store, e.logger, nil).Reset()
		fmt.Println("Achievements reset.")
	}
	e.logger.Info("data reset", "achievements", flagResetAchievements)
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagConfigDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return nil
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}

	source := cfg.Path
	if source == "" {
		source = "(built-in defaults)"
	}
	levelsFile := cfg.LevelsFile
	if levelsFile == "" {
		levelsFile = "(built-in catalog)"
	}
	fmt.Printf("Config file:  %s\n\n", source)
	fmt.Printf("  %-16s %s\n", "data_dir", cfg.DataDir)
	fmt.Printf("  %-16s %s\n", "storage", cfg.Storage)
	fmt.Printf("  %-16s %d\n", "reveal_delay_ms", cfg.RevealDelayMS)
	fmt.Printf("  %-16s %s\n", "levels_file", levelsFile)
	fmt.Printf("  %-16s %s\n", "log_level", cfg.LogLevel)
	fmt.Printf("  %-16s %d\n", "seed", cfg.Seed)
	return nil
}

func runLevels(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Printf("  %-5s  %-20s  %-7s  %-5s  %s\n", "Level", "Name", "Grid", "Pairs", "Time bonus")
	fmt.Printf("  %-5s  %-20s  %-7s  %-5s  %s\n", "-----", "----", "----", "-----", "----------")
	for _, def := range e.catalog.All() {
		grid := fmt.Sprintf("%dx%d", def.GridCols, def.GridRows)
		fmt.Printf("  %-5d  %-20s  %-7s  %-5d  %ds\n", def.Level, def.Name, grid, def.Pairs, def.TimeBonusSeconds)
	}
	for _, err := range e.catalog.Validate() {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return nil
}
