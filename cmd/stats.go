package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoflip/internal/deck"
	"github.com/abhisek/lingoflip/internal/store"
)

// recentLimit is how many history rows stats prints.
const recentLimit = 10

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show deck progress and review history",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, closeLog, err := openLogger(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		out := cmd.OutOrStdout()
		decks := deck.NewStore(cfg.DataDir, log.Named("deck"))
		if err := printDeckStats(out, decks); err != nil {
			return err
		}

		dbPath, err := cfg.ResolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		return printHistory(cmd.Context(), out, st.EventRepo(), time.Now())
	},
}

// printDeckStats lists every deck whose master table exists.
func printDeckStats(w io.Writer, decks *deck.Store) error {
	fmt.Fprintf(w, "%-40s  %9s  %5s\n", "Deck", "Remaining", "Total")
	fmt.Fprintln(w, strings.Repeat("─", 58))

	shown := 0
	for _, sel := range append(deck.All(), deck.Selector{Legacy: true, Direction: deck.ToEnglish}) {
		master, err := decks.Master(sel)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			fmt.Fprintf(w, "%-40s  %9s  %5s\n", sel, "error", "-")
			continue
		}

		remaining := "-"
		if n, exists, err := decks.Remaining(sel); err != nil {
			remaining = "error"
		} else if exists {
			remaining = fmt.Sprint(n)
		}
		fmt.Fprintf(w, "%-40s  %9s  %5d\n", sel, remaining, master.Len())
		shown++
	}
	fmt.Fprintf(w, "\n%d decks\n", shown)
	return nil
}

// printHistory prints today's and all-time action counts and the latest events.
func printHistory(ctx context.Context, w io.Writer, events store.EventRepo, now time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := events.Counts(ctx, midnight)
	if err != nil {
		return fmt.Errorf("count today: %w", err)
	}
	total, err := events.Counts(ctx, time.Time{})
	if err != nil {
		return fmt.Errorf("count all: %w", err)
	}

	fmt.Fprintf(w, "\n%-12s  %6s  %8s\n", "Action", "Today", "All time")
	fmt.Fprintln(w, strings.Repeat("─", 30))
	for _, a := range []store.Action{store.ActionStart, store.ActionKnown, store.ActionUnknown, store.ActionExhausted, store.ActionEnd} {
		fmt.Fprintf(w, "%-12s  %6d  %8d\n", a, today[a], total[a])
	}

	recent, err := events.Recent(ctx, recentLimit)
	if err != nil {
		return fmt.Errorf("recent events: %w", err)
	}
	if len(recent) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\nRecent")
	for _, ev := range recent {
		line := fmt.Sprintf("%s  %-9s  %s", ev.CreatedAt.Local().Format("2006-01-02 15:04"), ev.Action, ev.Language)
		if ev.Prompt != "" {
			line += fmt.Sprintf("  %s → %s", ev.Prompt, ev.Answer)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
