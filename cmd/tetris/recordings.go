package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagBrowse bool
	flagLimit  int
	flagMode   string
	flagDelete int64
	flagStats  bool
)

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "List recorded sessions",
	Long: `Display the most recent recorded sessions, newest first.

Examples:
  tetris recordings
  tetris recordings --mode blind --limit 5
  tetris recordings --stats
  tetris recordings --browse
  tetris recordings --delete 7`,
	Args: cobra.NoArgs,
	RunE: runRecordings,
}

func init() {
	recordingsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive browser")
	recordingsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recordings to list")
	recordingsCmd.Flags().StringVar(&flagMode, "mode", "", "Only list recordings of this mode")
	recordingsCmd.Flags().Int64Var(&flagDelete, "delete", 0, "Delete the recording with this ID")
	recordingsCmd.Flags().BoolVar(&flagStats, "stats", false, "Show per-mode totals")
}

func runRecordings(cmd *cobra.Command, args []string) error {
	if flagMode != "" && !registry.Exists(flagMode) {
		return fmt.Errorf("unknown mode %q", flagMode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening recordings database: %w", err)
	}
	defer store.Close()

	switch {
	case flagDelete != 0:
		if err := store.DeleteRecording(flagDelete); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("no recording #%d", flagDelete)
			}
			return err
		}
		logger.Info("recording deleted", "id", flagDelete)
		fmt.Printf("Deleted recording #%d\n", flagDelete)
		return nil
	case flagStats:
		return printStats(store)
	case flagBrowse:
		return browse(store)
	}

	recs, err := store.RecentRecordings(flagMode, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving recordings: %w", err)
	}

	if len(recs) == 0 {
		fmt.Println("No recordings yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play classic' to record your first session!")
		return nil
	}

	fmt.Printf("  %-5s  %-8s  %-8s  %-6s  %-7s  %s\n", "ID", "Mode", "Score", "Lines", "Ticks", "Date")
	fmt.Printf("  %-5s  %-8s  %-8s  %-6s  %-7s  %s\n", "--", "----", "-----", "-----", "-----", "----")
	for _, r := range recs {
		fmt.Printf("  %-5d  %-8s  %-8d  %-6d  %-7d  %s\n",
			r.ID, r.Mode, r.Score, r.Lines, r.TickCount(), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No recordings yet.")
		return nil
	}

	modes := make([]string, 0, len(stats))
	for mode := range stats {
		modes = append(modes, mode)
	}
	sort.Strings(modes)

	fmt.Printf("  %-8s  %-8s  %-10s  %s\n", "Mode", "Sessions", "Ticks", "Last played")
	for _, mode := range modes {
		s := stats[mode]
		fmt.Printf("  %-8s  %-8d  %-10d  %s\n", s.Mode, s.Sessions, s.TotalTicks, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// browse loops between the browser and the replay viewer until the user
// quits the browser.
func browse(store *storage.Store) error {
	for {
		width, height := terminalSize()
		id, err := tui.RunBrowser(store, width, height)
		if err != nil {
			return err
		}
		if id == 0 {
			return nil
		}

		rec, err := store.Recording(id)
		if err != nil {
			return err
		}
		player, err := replay.NewPlayer(rec, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot replay #%d: %v\n", id, err)
			continue
		}
		if err := tui.RunWatch(player, id, width, height); err != nil {
			return err
		}
	}
}
