// Package speech speaks card text through the host's text-to-speech program.
// Playback is best effort: failures are logged and never reach the caller.
package speech

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// Voice is what an Engine needs to pick a voice. Name is engine specific
// ("Amelie", "fr-fr", "Microsoft Hortense Desktop"); Tag is the BCP 47 tag
// of the voice's language. Either may be empty; the zero Voice means the
// engine's default voice.
type Voice struct {
	Name string
	Tag  language.Tag
}

// IsDefault reports whether v selects the engine's default voice.
func (v Voice) IsDefault() bool {
	return v.Name == "" && v.Tag == language.Und
}

func (v Voice) String() string {
	switch {
	case v.IsDefault():
		return "default"
	case v.Name == "":
		return v.Tag.String()
	case v.Tag == language.Und:
		return v.Name
	}
	return v.Name + " (" + v.Tag.String() + ")"
}

// Engine synthesizes and plays speech.
type Engine interface {
	// Speak blocks until playback ends or ctx is done.
	Speak(ctx context.Context, text string, voice Voice) error

	// Voices lists the voices installed on the host.
	Voices(ctx context.Context) ([]Voice, error)
}

// Lookup maps a language name ("French", "English") to a voice.
// ok is false when nothing suitable is configured.
type Lookup func(languageName string) (v Voice, ok bool)

// knownTags are the regional variants used for each supported language.
var knownTags = map[string]language.Tag{
	"english":         language.AmericanEnglish,
	"french":          language.French,
	"german":          language.German,
	"spanish":         language.EuropeanSpanish,
	"mexican spanish": language.MustParse("es-MX"),
}

// TagFor returns the BCP 47 tag for a language name, or parses the name as
// a tag ("fr-CA"). ok is false for unknown names.
func TagFor(languageName string) (language.Tag, bool) {
	norm := strings.ToLower(strings.TrimSpace(languageName))
	if t, ok := knownTags[norm]; ok {
		return t, true
	}
	if t, err := language.Parse(norm); err == nil {
		return t, true
	}
	return language.Und, false
}

// TagLookup resolves a voice from the language tag alone, letting the engine
// pick among its own voices. overrides maps a language name to an engine
// voice name and wins over the tag.
func TagLookup(overrides map[string]string) Lookup {
	return func(name string) (Voice, bool) {
		tag, tagOK := TagFor(name)
		if v, ok := findOverride(overrides, name); ok {
			return Voice{Name: v, Tag: tag}, true
		}
		if !tagOK {
			return Voice{}, false
		}
		return Voice{Tag: tag}, true
	}
}

// MatchLookup picks the closest installed voice for each language using
// language matching, so "Mexican Spanish" can fall back to any Spanish voice.
// Matches below High confidence are rejected. overrides win as in TagLookup.
func MatchLookup(installed []Voice, overrides map[string]string) Lookup {
	var (
		tags   []language.Tag
		voices []Voice
	)
	for _, v := range installed {
		if v.Tag == language.Und {
			continue
		}
		tags = append(tags, v.Tag)
		voices = append(voices, v)
	}
	var matcher language.Matcher
	if len(tags) > 0 {
		matcher = language.NewMatcher(tags)
	}

	return func(name string) (Voice, bool) {
		tag, tagOK := TagFor(name)
		if v, ok := findOverride(overrides, name); ok {
			return Voice{Name: v, Tag: tag}, true
		}
		if !tagOK || matcher == nil {
			return Voice{}, false
		}
		_, idx, conf := matcher.Match(tag)
		if conf < language.High {
			return Voice{}, false
		}
		return voices[idx], true
	}
}

func findOverride(overrides map[string]string, name string) (string, bool) {
	for k, v := range overrides {
		if strings.EqualFold(strings.TrimSpace(k), strings.TrimSpace(name)) && v != "" {
			return v, true
		}
	}
	return "", false
}

// NopEngine discards speech.
type NopEngine struct{}

func (NopEngine) Speak(context.Context, string, Voice) error { return nil }

func (NopEngine) Voices(context.Context) ([]Voice, error) { return nil, nil }
