package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/abhisek/lingoflip/internal/config"
	"github.com/abhisek/lingoflip/internal/deck"
	"github.com/abhisek/lingoflip/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "lingoflip",
	Short: "Flashcards for learning phrases in a foreign language",
	Long:  "LingoFlip — terminal flashcards that show a phrase, read it aloud, and reveal the translation after a short delay.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addConfigFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(voicesCmd)
	rootCmd.AddCommand(versionCmd)
}

// addConfigFlags registers the flags that override configuration.
func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("data-dir", "", "Directory holding the phrase tables (overrides LINGOFLIP_DATA_DIR)")
	flags.String("db", "", "Path to SQLite history database (overrides LINGOFLIP_DB)")
	flags.String("log-file", "", "Path to the log file (overrides LINGOFLIP_LOG_FILE)")
	flags.String("language", "", "Language: French, German, Spanish, Mexican Spanish")
	flags.String("category", "", "Category: general, travel, restaurant, dating, work")
	flags.String("direction", "", "Direction: to_english or from_english")
	flags.Bool("legacy", false, "Review the French single-word list")
	flags.Duration("reveal-delay", 0, "Delay before the answer is revealed (default 5s, 3s for words)")
	flags.Bool("mute", false, "Disable text-to-speech")
}

// loadConfig reads the environment, then applies any flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if p, _ := flags.GetString("data-dir"); p != "" {
		cfg.DataDir = p
	}
	if p, _ := flags.GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := flags.GetString("log-file"); p != "" {
		cfg.LogFile = p
	}
	if v, _ := flags.GetString("language"); v != "" {
		l, err := deck.ParseLanguage(v)
		if err != nil {
			return fmt.Errorf("--language: %w", err)
		}
		cfg.Language = l
		cfg.Legacy = false
	}
	if v, _ := flags.GetString("category"); v != "" {
		c, err := deck.ParseCategory(v)
		if err != nil {
			return fmt.Errorf("--category: %w", err)
		}
		cfg.Category = c
		cfg.Legacy = false
	}
	if v, _ := flags.GetString("direction"); v != "" {
		d, err := deck.ParseDirection(v)
		if err != nil {
			return fmt.Errorf("--direction: %w", err)
		}
		cfg.Direction = d
	}
	if flags.Changed("legacy") {
		cfg.Legacy, _ = flags.GetBool("legacy")
	}
	if flags.Changed("reveal-delay") {
		d, _ := flags.GetDuration("reveal-delay")
		if d <= 0 {
			return fmt.Errorf("--reveal-delay must be positive, got %s", d)
		}
		cfg.RevealDelay = d
	}
	if flags.Changed("mute") {
		cfg.Speech.Mute, _ = flags.GetBool("mute")
	}
	return nil
}

// openLogger builds the file logger. The returned func flushes and closes it.
func openLogger(cfg config.Config) (*zap.Logger, func(), error) {
	path, err := cfg.ResolveLogFile()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve log file: %w", err)
	}
	log, closeFn, err := logging.New(path, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	log.Info("starting", zap.String("version", version), zap.Time("at", time.Now()))
	return log, func() { _ = closeFn() }, nil
}
