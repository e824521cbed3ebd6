package speech

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/text/language"
)

// ErrNoEngine means no supported TTS program was found on the host.
var ErrNoEngine = errors.New("no text-to-speech program found")

type commandKind int

const (
	kindEspeak commandKind = iota
	kindSay
	kindPowerShell
)

// runFunc executes a program and returns its standard output.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", filepath.Base(name), err, msg)
		}
		return out, fmt.Errorf("%s: %w", filepath.Base(name), err)
	}
	return out, nil
}

// CommandEngine drives espeak-ng/espeak, macOS say, or Windows PowerShell
// (System.Speech).
type CommandEngine struct {
	program string
	kind    commandKind
	run     runFunc
}

var _ Engine = (*CommandEngine)(nil)

// NewCommandEngine returns an engine for program. An empty program picks the
// first available one for the host OS.
func NewCommandEngine(program string) (*CommandEngine, error) {
	if program == "" {
		p, err := detectProgram(runtime.GOOS, exec.LookPath)
		if err != nil {
			return nil, err
		}
		program = p
	}
	return &CommandEngine{program: program, kind: kindOf(program), run: execRun}, nil
}

// Program returns the TTS program this engine runs.
func (e *CommandEngine) Program() string {
	return e.program
}

func detectProgram(goos string, lookPath func(string) (string, error)) (string, error) {
	var candidates []string
	switch goos {
	case "darwin":
		candidates = []string{"say", "espeak-ng", "espeak"}
	case "windows":
		candidates = []string{"powershell", "pwsh"}
	default:
		candidates = []string{"espeak-ng", "espeak", "say"}
	}
	for _, c := range candidates {
		if p, err := lookPath(c); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (tried %s)", ErrNoEngine, strings.Join(candidates, ", "))
}

func kindOf(program string) commandKind {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(program), filepath.Ext(program)))
	switch base {
	case "say":
		return kindSay
	case "powershell", "pwsh":
		return kindPowerShell
	}
	return kindEspeak
}

// Speak runs the TTS program and waits for it to finish.
func (e *CommandEngine) Speak(ctx context.Context, text string, voice Voice) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	_, err := e.run(ctx, e.program, e.speakArgs(text, voice)...)
	if err != nil {
		return fmt.Errorf("speak with %s voice: %w", voice, err)
	}
	return nil
}

func (e *CommandEngine) speakArgs(text string, voice Voice) []string {
	switch e.kind {
	case kindSay:
		if voice.Name != "" {
			return []string{"-v", voice.Name, text}
		}
		return []string{text}
	case kindPowerShell:
		var b strings.Builder
		b.WriteString("Add-Type -AssemblyName System.Speech; ")
		b.WriteString("$s = New-Object System.Speech.Synthesis.SpeechSynthesizer; ")
		switch {
		case voice.Name != "":
			fmt.Fprintf(&b, "$s.SelectVoice(%s); ", psQuote(voice.Name))
		case voice.Tag != language.Und:
			fmt.Fprintf(&b, "$s.SelectVoiceByHints('NotSet', 'NotSet', 0, [System.Globalization.CultureInfo]::GetCultureInfo(%s)); ", psQuote(voice.Tag.String()))
		}
		fmt.Fprintf(&b, "$s.Speak(%s)", psQuote(text))
		return []string{"-NoProfile", "-NonInteractive", "-Command", b.String()}
	default:
		args := []string{}
		switch {
		case voice.Name != "":
			args = append(args, "-v", voice.Name)
		case voice.Tag != language.Und:
			args = append(args, "-v", strings.ToLower(voice.Tag.String()))
		}
		return append(args, "--", text)
	}
}

// psQuote returns s as a single-quoted PowerShell string literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Voices lists installed voices by parsing the program's voice listing.
func (e *CommandEngine) Voices(ctx context.Context) ([]Voice, error) {
	var args []string
	switch e.kind {
	case kindSay:
		args = []string{"-v", "?"}
	case kindPowerShell:
		args = []string{"-NoProfile", "-NonInteractive", "-Command",
			"Add-Type -AssemblyName System.Speech; " +
				"(New-Object System.Speech.Synthesis.SpeechSynthesizer).GetInstalledVoices() | " +
				"ForEach-Object { $_.VoiceInfo.Name + '|' + $_.VoiceInfo.Culture.Name }"}
	default:
		args = []string{"--voices"}
	}

	out, err := e.run(ctx, e.program, args...)
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}

	switch e.kind {
	case kindSay:
		return parseSayVoices(out), nil
	case kindPowerShell:
		return parsePowerShellVoices(out), nil
	}
	return parseEspeakVoices(out), nil
}

// parseEspeakVoices parses `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  fr-fr           --/M      French_(France)    roa/fr
func parseEspeakVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		voices = append(voices, Voice{Name: fields[1], Tag: parseTag(fields[1])})
	}
	return voices
}

// parseSayVoices parses `say -v ?`:
//
//	Amelie              fr_CA    # Bonjour, je m’appelle Amelie.
func parseSayVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		left, _, _ := strings.Cut(sc.Text(), "#")
		fields := strings.Fields(left)
		if len(fields) < 2 {
			continue
		}
		locale := fields[len(fields)-1]
		name := strings.Join(fields[:len(fields)-1], " ")
		voices = append(voices, Voice{Name: name, Tag: parseTag(locale)})
	}
	return voices
}

// parsePowerShellVoices parses "Name|culture" lines.
func parsePowerShellVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		name, culture, ok := strings.Cut(strings.TrimSpace(sc.Text()), "|")
		if !ok || name == "" {
			continue
		}
		voices = append(voices, Voice{Name: name, Tag: parseTag(culture)})
	}
	return voices
}

func parseTag(s string) language.Tag {
	t, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und
	}
	return t
}
