package speech

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single utterance.
const DefaultTimeout = 30 * time.Second

// Dispatcher speaks text on a background goroutine. Say never blocks and never
// reports failure. One utterance plays at a time and at most one waits; a newer
// utterance replaces the waiting one, so audio never lags far behind the cards.
type Dispatcher struct {
	engine  Engine
	lookup  Lookup
	log     *zap.Logger
	timeout time.Duration

	mu      sync.Mutex
	next    *utterance
	running bool
	wg      sync.WaitGroup
}

type utterance struct {
	text     string
	language string
	voice    Voice
}

// NewDispatcher creates a Dispatcher. A nil lookup always uses the default voice.
func NewDispatcher(engine Engine, lookup Lookup, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if lookup == nil {
		lookup = func(string) (Voice, bool) { return Voice{}, false }
	}
	return &Dispatcher{
		engine:  engine,
		lookup:  lookup,
		log:     log,
		timeout: DefaultTimeout,
	}
}

// Say speaks text in the named language without waiting for playback.
func (d *Dispatcher) Say(text, languageName string) {
	if text == "" {
		return
	}

	voice, ok := d.lookup(languageName)
	if !ok {
		d.log.Debug("no voice configured, using default voice", zap.String("language", languageName))
		voice = Voice{}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.next != nil {
		d.log.Debug("dropping superseded utterance", zap.String("language", d.next.language))
	}
	d.next = &utterance{text: text, language: languageName, voice: voice}
	if d.running {
		return
	}
	d.running = true
	d.wg.Add(1)
	go d.run()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		u := d.next
		d.next = nil
		if u == nil {
			d.running = false
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
		d.speak(u)
	}
}

func (d *Dispatcher) speak(u *utterance) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.engine.Speak(ctx, u.text, u.voice); err != nil {
		d.log.Warn("speech failed",
			zap.String("language", u.language),
			zap.Stringer("voice", u.voice),
			zap.Error(err),
		)
	}
}

// Wait blocks until every dispatched utterance has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
