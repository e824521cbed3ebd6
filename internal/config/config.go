package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/lingoflip/internal/deck"
)

const (
	// DefaultPhraseDelay is how long a phrase prompt stays up before the answer is revealed.
	DefaultPhraseDelay = 5 * time.Second

	// DefaultWordDelay is the reveal delay for the legacy single-word list.
	DefaultWordDelay = 3 * time.Second

	// MaxRevealDelay bounds the reveal delay.
	MaxRevealDelay = time.Minute
)

// Config holds all application configuration.
type Config struct {
	// DataDir holds the master and in-progress CSV tables.
	DataDir string

	// DBPath is the sqlite review-history database.
	DBPath string

	// LogFile receives the structured log. The terminal belongs to the UI.
	LogFile string

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string

	Language  deck.Language
	Category  deck.Category
	Direction deck.Direction

	// Legacy selects the single-language French word list.
	Legacy bool

	// RevealDelay is the wait between prompt and answer. Zero means the
	// default for the selected mode.
	RevealDelay time.Duration

	Speech SpeechConfig
}

// SpeechConfig configures the text-to-speech collaborator.
type SpeechConfig struct {
	// Mute disables speech entirely.
	Mute bool

	// Command overrides the host TTS program (espeak-ng, say, powershell).
	Command string

	// Voices maps a language name to a voice name or tag for the engine,
	// e.g. {"French": "fr-FR"}. Unlisted languages use the default lookup.
	Voices map[string]string
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		DataDir:   "data",
		LogLevel:  "info",
		Language:  deck.LanguageFrench,
		Category:  deck.CategoryGeneral,
		Direction: deck.ToEnglish,
		Speech: SpeechConfig{
			Voices: map[string]string{},
		},
	}
}

// Load builds a Config from a .env file (if present) and LINGOFLIP_* environment
// variables, falling back to defaults for unset values.
func Load() (Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config using getenv for lookups.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv("LINGOFLIP_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := getenv("LINGOFLIP_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("LINGOFLIP_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := getenv("LINGOFLIP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("LINGOFLIP_LANGUAGE"); v != "" {
		l, err := deck.ParseLanguage(v)
		if err != nil {
			return cfg, fmt.Errorf("LINGOFLIP_LANGUAGE: %w", err)
		}
		cfg.Language = l
	}
	if v := getenv("LINGOFLIP_CATEGORY"); v != "" {
		c, err := deck.ParseCategory(v)
		if err != nil {
			return cfg, fmt.Errorf("LINGOFLIP_CATEGORY: %w", err)
		}
		cfg.Category = c
	}
	if v := getenv("LINGOFLIP_DIRECTION"); v != "" {
		d, err := deck.ParseDirection(v)
		if err != nil {
			return cfg, fmt.Errorf("LINGOFLIP_DIRECTION: %w", err)
		}
		cfg.Direction = d
	}
	if v := getenv("LINGOFLIP_LEGACY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("LINGOFLIP_LEGACY: %w", err)
		}
		cfg.Legacy = b
	}
	if v := getenv("LINGOFLIP_REVEAL_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("LINGOFLIP_REVEAL_DELAY: %w", err)
		}
		cfg.RevealDelay = d
	}
	if v := getenv("LINGOFLIP_MUTE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("LINGOFLIP_MUTE: %w", err)
		}
		cfg.Speech.Mute = b
	}
	if v := getenv("LINGOFLIP_TTS_COMMAND"); v != "" {
		cfg.Speech.Command = v
	}
	if v := getenv("LINGOFLIP_VOICES"); v != "" {
		voices, err := ParseVoices(v)
		if err != nil {
			return cfg, fmt.Errorf("LINGOFLIP_VOICES: %w", err)
		}
		cfg.Speech.Voices = voices
	}

	return cfg, nil
}

// ParseVoices parses "French=fr-FR,German=de" into a language → voice map.
func ParseVoices(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, voice, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(voice) == "" {
			return nil, fmt.Errorf("malformed voice mapping %q", pair)
		}
		out[strings.TrimSpace(name)] = strings.TrimSpace(voice)
	}
	return out, nil
}

// Selector returns the deck selector described by the configuration.
func (c Config) Selector() deck.Selector {
	return deck.Selector{
		Language:  c.Language,
		Category:  c.Category,
		Direction: c.Direction,
		Legacy:    c.Legacy,
	}
}

// EffectiveRevealDelay returns RevealDelay, or the mode default when unset.
func (c Config) EffectiveRevealDelay() time.Duration {
	return c.RevealDelayFor(c.Selector())
}

// RevealDelayFor returns the reveal delay to use for sel. A configured
// RevealDelay applies to every deck; otherwise words get DefaultWordDelay and
// phrases DefaultPhraseDelay.
func (c Config) RevealDelayFor(sel deck.Selector) time.Duration {
	if c.RevealDelay > 0 {
		return c.RevealDelay
	}
	if sel.Legacy {
		return DefaultWordDelay
	}
	return DefaultPhraseDelay
}

// Validate checks enumerations and bounds.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if _, err := deck.ParseLanguage(string(c.Language)); err != nil {
		return err
	}
	if _, err := deck.ParseCategory(string(c.Category)); err != nil {
		return err
	}
	if _, err := deck.ParseDirection(string(c.Direction)); err != nil {
		return err
	}
	if c.RevealDelay < 0 || c.RevealDelay > MaxRevealDelay {
		return fmt.Errorf("reveal delay %s out of range (0, %s]", c.RevealDelay, MaxRevealDelay)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// ResolveDBPath returns DBPath, or $XDG_DATA_HOME/lingoflip/lingoflip.db
// (~/.local/share/lingoflip/lingoflip.db), creating the parent directory.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, EnsureDir(c.DBPath)
	}
	return xdgPath("XDG_DATA_HOME", filepath.Join(".local", "share"), "lingoflip.db")
}

// ResolveLogFile returns LogFile, or $XDG_STATE_HOME/lingoflip/lingoflip.log
// (~/.local/state/lingoflip/lingoflip.log), creating the parent directory.
func (c Config) ResolveLogFile() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, EnsureDir(c.LogFile)
	}
	return xdgPath("XDG_STATE_HOME", filepath.Join(".local", "state"), "lingoflip.log")
}

func xdgPath(envVar, homeFallback, file string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, homeFallback)
	}
	p := filepath.Join(base, "lingoflip", file)
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
