package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lingoflip/internal/app"
	"github.com/abhisek/lingoflip/internal/config"
	"github.com/abhisek/lingoflip/internal/deck"
	"github.com/abhisek/lingoflip/internal/screens/home"
	"github.com/abhisek/lingoflip/internal/session"
	"github.com/abhisek/lingoflip/internal/speech"
	"github.com/abhisek/lingoflip/internal/store"
)

// voiceListTimeout bounds the startup voice listing.
const voiceListTimeout = 5 * time.Second

// runApp opens the stores, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	events := st.EventRepo()
	decks := deck.NewStore(cfg.DataDir, log.Named("deck"))

	speaker := newSpeaker(cmd.Context(), cfg, log.Named("speech"))
	defer speaker.Wait()

	sessionLog := log.Named("session")
	factory := func(sel deck.Selector, sched session.Scheduler) *session.Session {
		return session.New(sel, session.Options{
			Store:       decks,
			Scheduler:   sched,
			Speaker:     speaker,
			Events:      events,
			RevealDelay: cfg.RevealDelayFor,
			Log:         sessionLog,
		})
	}

	return app.Run(app.Options{
		Home: home.Options{
			Selector:   cfg.Selector(),
			NewSession: factory,
			Events:     events,
			Decks:      decks,
		},
		Log: log.Named("app"),
	})
}

// newSpeaker builds the speech dispatcher. Without a usable TTS program the
// review runs silently.
func newSpeaker(ctx context.Context, cfg config.Config, log *zap.Logger) *speech.Dispatcher {
	overrides := cfg.Speech.Voices
	if cfg.Speech.Mute {
		log.Info("speech muted")
		return speech.NewDispatcher(speech.NopEngine{}, speech.TagLookup(overrides), log)
	}

	engine, err := speech.NewCommandEngine(cfg.Speech.Command)
	if err != nil {
		log.Warn("text-to-speech unavailable", zap.Error(err))
		return speech.NewDispatcher(speech.NopEngine{}, speech.TagLookup(overrides), log)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, voiceListTimeout)
	defer cancel()

	lookup := speech.TagLookup(overrides)
	if voices, err := engine.Voices(ctx); err != nil {
		log.Warn("list voices failed, using language tags", zap.Error(err))
	} else if len(voices) > 0 {
		lookup = speech.MatchLookup(voices, overrides)
	}
	log.Info("speech ready", zap.String("program", engine.Program()))
	return speech.NewDispatcher(engine, lookup, log)
}
