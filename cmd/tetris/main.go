// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris modes               - List available modes
//	tetris play [mode]         - Play a mode (picker menu when omitted)
//	tetris recordings          - List or browse recorded sessions
//	tetris replay <id>         - Verify or watch a recorded session
//	tetris config              - Print the effective configuration
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.tetris/recordings.db)
//	--log-file <path>  - Set log file (default: ~/.tetris/tetris.log)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string

	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - Stack falling pieces in your terminal",
	Long: `Tetris is a terminal falling-block game with deterministic,
replayable sessions.

Available commands:
  modes       - Show all available modes
  play        - Play a mode directly, or pick one from a menu
  recordings  - List, browse and delete recorded sessions
  replay      - Re-run a recorded session
  config      - Print the effective configuration

Examples:
  tetris modes
  tetris play classic
  tetris play fixed --piece T --renderer termbox
  tetris recordings --browse
  tetris replay 12 --watch`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/recordings.db", "Path to recordings database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.tetris/tetris.log", "Path to log file (empty disables logging)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(recordingsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging points the logger at the log file. The terminal belongs to
// the game, so nothing is logged to stdout or stderr.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	if flagLogFile == "" {
		return nil
	}

	path, err := storage.ExpandPath(flagLogFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f

	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           level,
	})
	return nil
}

// openStore opens the recordings database. Playing continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open recordings database: %v\n", err)
		logger.Warn("recordings disabled", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}
