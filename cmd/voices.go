package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/abhisek/lingoflip/internal/deck"
	"github.com/abhisek/lingoflip/internal/speech"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List text-to-speech voices and the one chosen for each language",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		engine, err := speech.NewCommandEngine(cfg.Speech.Command)
		if err != nil {
			return fmt.Errorf("text-to-speech: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), voiceListTimeout)
		defer cancel()
		voices, err := engine.Voices(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d voices\n\n", engine.Program(), len(voices))
		names := display.English.Tags()
		for _, v := range voices {
			lang := "-"
			if v.Tag != language.Und {
				lang = names.Name(v.Tag)
			}
			fmt.Fprintf(out, "  %-40s  %s\n", v, lang)
		}

		lookup := speech.MatchLookup(voices, cfg.Speech.Voices)
		fmt.Fprintln(out, "\nSelected")
		for _, name := range append([]string{deck.EnglishColumn}, languageNames()...) {
			v, ok := lookup(name)
			if !ok {
				fmt.Fprintf(out, "  %-16s  default voice\n", name)
				continue
			}
			fmt.Fprintf(out, "  %-16s  %s\n", name, v)
		}
		return nil
	},
}

func languageNames() []string {
	out := make([]string, len(deck.Languages))
	for i, l := range deck.Languages {
		out[i] = string(l)
	}
	return out
}
