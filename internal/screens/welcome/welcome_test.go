package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingoflip/internal/router"
	"github.com/abhisek/lingoflip/internal/screen"
)

// stubScreen stands in for the home screen.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newSplash() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return &stubScreen{}
	}), &built
}

func tickN(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestSplashFrames(t *testing.T) {
	tests := []struct {
		name     string
		ticks    int
		face     string
		sparkles bool
		tagline  bool
	}{
		{"start", 0, "Bonjour", false, false},
		{"sparkles begin", 5, "Bonjour", true, false},
		{"first flip", 8, "Hello", true, false},
		{"banner up", 15, "Hello", true, true},
		{"flipped back", 16, "Bonjour", true, true},
		{"long after", 100, "Bonjour", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newSplash()
			tickN(w, tt.ticks)
			view := w.View(100, 30)

			assert.Contains(t, view, tt.face)
			assert.Equal(t, tt.sparkles, strings.ContainsAny(view, "★✦"), "sparkles")
			assert.Equal(t, tt.tagline, strings.Contains(view, "one card at a time"), "tagline")
			assert.Equal(t, tt.tagline, strings.Contains(view, "press any key"), "hint")
		})
	}
}

func TestElapsedIsCapped(t *testing.T) {
	w, _ := newSplash()
	tickN(w, 200)
	assert.Equal(t, totalDur, w.elapsed)
	assert.Equal(t, 200, w.tickCount, "ticks keep counting so the card keeps flipping")
}

func TestAnyKeyGoesHome(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeySpace},
		{Code: 'q', Text: "q"},
	} {
		w, built := newSplash()
		tickN(w, 3)

		_, cmd := w.Update(key)
		require.NotNil(t, cmd, "key %q", key.String())
		replace, ok := cmd().(router.ReplaceScreenMsg)
		require.True(t, ok, "key %q should replace the splash", key.String())
		assert.IsType(t, &stubScreen{}, replace.Screen)
		assert.Equal(t, 1, *built)
	}
}

func TestHomeBuiltOnce(t *testing.T) {
	w, built := newSplash()
	w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *built)
}

func TestNoAutoTransition(t *testing.T) {
	w, built := newSplash()
	cmd := tickN(w, 60)
	assert.NotNil(t, cmd, "the splash waits for a key and keeps animating")
	assert.Zero(t, *built)
}

func TestTicksStopAfterTransition(t *testing.T) {
	w, _ := newSplash()
	w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, tickN(w, 1))
}

func TestCompactBanner(t *testing.T) {
	w, _ := newSplash()
	tickN(w, 15)
	assert.NotEqual(t, w.View(bannerMinWidth-1, 30), w.View(bannerMinWidth+20, 30))
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newSplash()
	assert.Empty(t, w.Title(), "the splash hides the header title")
}
