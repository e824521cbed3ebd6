package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingoflip/internal/deck"
	"github.com/abhisek/lingoflip/internal/router"
	"github.com/abhisek/lingoflip/internal/screens/home"
	sessionscreen "github.com/abhisek/lingoflip/internal/screens/session"
	"github.com/abhisek/lingoflip/internal/screens/welcome"
	sess "github.com/abhisek/lingoflip/internal/session"
)

var frenchGeneral = deck.Selector{
	Language:  deck.LanguageFrench,
	Category:  deck.CategoryGeneral,
	Direction: deck.ToEnglish,
}

func sized(m AppModel) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(AppModel)
}

func TestNewAppModel_StartsOnSplash(t *testing.T) {
	m := newAppModel(Options{Home: home.Options{Selector: frenchGeneral}})
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	assert.True(t, ok, "expected the welcome screen first")
	assert.NotNil(t, m.Init(), "splash should start ticking")
}

func TestNewAppModel_SkipSplash(t *testing.T) {
	m := newAppModel(Options{Home: home.Options{Selector: frenchGeneral}, SkipSplash: true})
	_, ok := m.router.Active().(*home.HomeScreen)
	assert.True(t, ok, "expected the home screen first")
}

func TestRender_HeaderAndHints(t *testing.T) {
	m := sized(newAppModel(Options{Home: home.Options{Selector: frenchGeneral}, SkipSplash: true}))
	out := m.render()
	assert.Contains(t, out, "LingoFlip")
	assert.Contains(t, out, "Select")
}

func TestRender_TooSmall(t *testing.T) {
	m := newAppModel(Options{SkipSplash: true})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	out := next.(AppModel).render()
	assert.False(t, strings.Contains(out, "START REVIEW"), "menu should be hidden in a tiny terminal")
}

func TestEsc_PopsPlainScreens(t *testing.T) {
	m := newAppModel(Options{Home: home.Options{Selector: frenchGeneral}, SkipSplash: true})
	m.router.Push(home.New(home.Options{Selector: frenchGeneral}))

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok, "esc should pop a plain screen")
}

func TestEsc_LeftToBackHandlers(t *testing.T) {
	dir := t.TempDir()
	factory := func(sel deck.Selector, sched sess.Scheduler) *sess.Session {
		return sess.New(sel, sess.Options{Store: deck.NewStore(dir, nil), Scheduler: sched})
	}
	m := newAppModel(Options{Home: home.Options{Selector: frenchGeneral, NewSession: factory}, SkipSplash: true})
	review := sessionscreen.New(frenchGeneral, factory, nil)
	m.router.Push(review)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, popped := cmd().(router.PopScreenMsg)
	assert.False(t, popped, "the review screen handles esc itself")
	assert.Equal(t, 2, m.router.Depth())
}

func TestRender_DeckMeterDuringReview(t *testing.T) {
	dir := t.TempDir()
	master := filepath.Join(dir, "french_general_phrases.csv")
	require.NoError(t, os.WriteFile(master, []byte("French,English\nchat,cat\nchien,dog\npain,bread\n"), 0o644))
	factory := func(sel deck.Selector, sched sess.Scheduler) *sess.Session {
		return sess.New(sel, sess.Options{Store: deck.NewStore(dir, nil), Scheduler: sched})
	}

	m := sized(newAppModel(Options{Home: home.Options{Selector: frenchGeneral}, SkipSplash: true}))
	assert.NotContains(t, m.render(), "0/3", "home has no deck meter")

	m.router.Push(sessionscreen.New(frenchGeneral, factory, nil))
	assert.Contains(t, m.render(), "0/3")

	next, _ := m.Update(tea.KeyPressMsg{Code: 'k', Text: "k"})
	assert.Contains(t, next.(AppModel).render(), "1/3")
}

func TestCtrlC_Quits(t *testing.T) {
	m := newAppModel(Options{SkipSplash: true})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
