package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a recorded session",
	Long: `Replay a recorded session from its seed and tick log.

Without --watch the session is simulated headlessly and the result is
compared with what was stored. With --watch it is played back on screen.

Examples:
  tetris replay 12
  tetris replay 12 --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the recording back on screen")
}

func runReplay(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid recording id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening recordings database: %w", err)
	}
	defer store.Close()

	rec, err := store.Recording(id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no recording #%d", id)
	}
	if err != nil {
		return err
	}

	if flagWatch {
		width, height := terminalSize()
		player, err := replay.NewPlayer(rec, width, height)
		if err != nil {
			return err
		}
		return tui.RunWatch(player, id, width, height)
	}

	state, err := replay.Verify(rec)
	if err != nil {
		logger.Warn("replay verification failed", "id", id, "error", err)
		return err
	}
	logger.Info("replay verified", "id", id, "score", state.Score)
	fmt.Printf("Recording #%d verified: score %d, %d lines, %d pieces over %d ticks\n",
		id, state.Score, state.Lines, state.Pieces, rec.TickCount())
	return nil
}
