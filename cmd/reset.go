package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoflip/internal/deck"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a deck over by deleting its in-progress file",
	Long: "Deletes the in-progress copy of the selected deck so the next review starts\n" +
		"from the full master table. With --all every deck, including the word list, is reset.",
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

		decks := deck.NewStore(cfg.DataDir, log.Named("deck"))
		selectors := []deck.Selector{cfg.Selector()}
		if all, _ := cmd.Flags().GetBool("all"); all {
			selectors = append(deck.All(), deck.Selector{Legacy: true})
		}

		for _, sel := range selectors {
			if err := decks.Reset(sel); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", sel)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Reset every deck")
}
