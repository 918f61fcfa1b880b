package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/classic"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRenderer   string
	flagPiece      string
	flagNoRecord   bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode. Without a mode, a picker menu
is shown first.

Controls:
  Left/Right, A/D  - Move
  Up/W             - Rotate
  Down/S           - Soft drop
  Space            - Hard drop
  P                - Pause
  R                - Restart (after game over)
  Q/Esc/Ctrl+C     - Quit

Difficulty options:
  easy   - Gravity starts slow and speeds up as lines are cleared
  normal - Starts at 30% of the speed range
  hard   - Starts at 70% and reaches full speed twice as fast
  fixed  - Constant gravity (default)

Examples:
  tetris play classic
  tetris play blind --difficulty hard
  tetris play fixed --piece T
  tetris play classic --renderer termbox
  tetris play classic --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagRenderer, "renderer", "tui", "Renderer: tui (Bubble Tea) or termbox")
	playCmd.Flags().StringVar(&flagPiece, "piece", "I", "Piece kind for the fixed mode: I, O, T, S, Z, J, L")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not store a recording of the session")
}

func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

func runPlay(cmd *cobra.Command, args []string) error {
	if flagRenderer != "tui" && flagRenderer != "termbox" {
		return fmt.Errorf("unknown renderer %q (want tui or termbox)", flagRenderer)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)

	width, height := terminalSize()

	modeID := ""
	if len(args) == 1 {
		modeID = args[0]
	} else {
		modeID, err = tui.RunMenu(width, height)
		if err != nil {
			return err
		}
		if modeID == "" {
			return nil
		}
	}

	if !registry.Exists(modeID) {
		fmt.Fprintln(os.Stderr, "Run 'tetris modes' to see available modes.")
		return fmt.Errorf("unknown mode %q", modeID)
	}

	piece := ""
	if modeID == "fixed" {
		kind, ok := tetris.ParseKind(flagPiece)
		if !ok {
			return fmt.Errorf("%w %q (want one of I, O, T, S, Z, J, L)", tetris.ErrUnknownPiece, flagPiece)
		}
		piece = kind.String()
	}

	game, err := registry.Create(modeID, registry.Options{Piece: piece})
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var store *storage.Store
	if !flagNoRecord {
		store = openStore()
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting session",
		"mode", modeID,
		"renderer", flagRenderer,
		"difficulty", string(preset),
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
	)

	if flagRenderer == "termbox" {
		return playClassic(cmd, game, piece, cfg, store, width, height, seed)
	}

	model, err := tui.Run(game, tui.Options{
		Piece:   piece,
		Config:  cfg,
		Runtime: cfg.Runtime(width, height, seed),
		Store:   store,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	printSummary(model.State().Score, model.State().Lines, model.RecordingID())
	return nil
}

func playClassic(cmd *cobra.Command, game registry.Game, piece string, cfg config.TetrisConfig,
	store *storage.Store, width, height int, seed int64) error {
	if err := classic.CheckTerminal(int(os.Stdout.Fd())); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	res, err := classic.Run(ctx, game, classic.Options{
		Piece:   piece,
		Config:  cfg,
		Runtime: cfg.Runtime(width, height, seed),
		Store:   store,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	printSummary(res.State.Score, res.State.Lines, res.RecordingID)
	return nil
}

func printSummary(score, lines int, recordingID int64) {
	fmt.Printf("Score: %d  Lines: %d\n", score, lines)
	if recordingID != 0 {
		fmt.Printf("Recorded as #%d. Run 'tetris replay %d --watch' to watch it.\n", recordingID, recordingID)
	}
}
