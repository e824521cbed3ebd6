package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingoflip/internal/deck"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, deck.LanguageFrench, cfg.Language)
	assert.Equal(t, deck.CategoryGeneral, cfg.Category)
	assert.Equal(t, deck.ToEnglish, cfg.Direction)
	assert.Equal(t, DefaultPhraseDelay, cfg.EffectiveRevealDelay())
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"LINGOFLIP_DATA_DIR":     "/srv/cards",
		"LINGOFLIP_LANGUAGE":     "mexican_spanish",
		"LINGOFLIP_CATEGORY":     "Restaurant",
		"LINGOFLIP_DIRECTION":    "from-english",
		"LINGOFLIP_REVEAL_DELAY": "4s",
		"LINGOFLIP_MUTE":         "true",
		"LINGOFLIP_VOICES":       "French=fr-FR, German = de ",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/srv/cards", cfg.DataDir)
	assert.Equal(t, deck.Selector{
		Language:  deck.LanguageMexicanSpanish,
		Category:  deck.CategoryRestaurant,
		Direction: deck.FromEnglish,
	}, cfg.Selector())
	assert.Equal(t, 4*time.Second, cfg.EffectiveRevealDelay())
	assert.True(t, cfg.Speech.Mute)
	assert.Equal(t, map[string]string{"French": "fr-FR", "German": "de"}, cfg.Speech.Voices)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"LINGOFLIP_LANGUAGE", "Latin"},
		{"LINGOFLIP_CATEGORY", "sports"},
		{"LINGOFLIP_DIRECTION", "up"},
		{"LINGOFLIP_REVEAL_DELAY", "soon"},
		{"LINGOFLIP_MUTE", "maybe"},
		{"LINGOFLIP_LEGACY", "perhaps"},
		{"LINGOFLIP_VOICES", "French"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := FromEnv(envMap(map[string]string{tt.key: tt.value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestEffectiveRevealDelay_Legacy(t *testing.T) {
	cfg := Default()
	cfg.Legacy = true
	assert.Equal(t, DefaultWordDelay, cfg.EffectiveRevealDelay())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.RevealDelay = 2 * time.Minute
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.DataDir = ""
	assert.Error(t, cfg.Validate())
}

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))

	cfg := Default()
	db, err := cfg.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "lingoflip", "lingoflip.db"), db)

	logFile, err := cfg.ResolveLogFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "state", "lingoflip", "lingoflip.log"), logFile)

	cfg.DBPath = filepath.Join(dir, "custom", "h.db")
	db, err = cfg.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, cfg.DBPath, db)
	assert.DirExists(t, filepath.Join(dir, "custom"))
}
