package tonal

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Chord is a spelled root, an opaque quality suffix ("m7", "sus4", "maj9")
// and an optional bass note written after "/". Transposition rewrites the
// root and bass only; the suffix text is never touched.
type Chord struct {
	Root    NoteSpelling  `json:"root"`
	Quality string        `json:"quality"`
	Bass    *NoteSpelling `json:"bass,omitempty"`
}

// ParseChord reads a chord symbol such as "C", "F#m7", "Bbmaj7/D" or
// "C6/9". The text after the last "/" is a bass note only when it is a
// complete note name. The suffix must be written in chord notation, so
// words like "Chorus" or "Bridge" are rejected rather than read as C and B
// with an odd suffix.
func ParseChord(s string) (Chord, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return Chord{}, fmt.Errorf("empty chord: %w", ErrUnparseableChord)
	}

	root, n, err := ParseNote(text)
	if err != nil {
		return Chord{}, fmt.Errorf("chord %q: %v: %w", s, err, ErrUnparseableChord)
	}

	rest := text[n:]
	if strings.IndexFunc(rest, unicode.IsSpace) >= 0 {
		return Chord{}, fmt.Errorf("chord %q contains whitespace: %w", s, ErrUnparseableChord)
	}

	chord := Chord{Root: root, Quality: rest}
	if i := strings.LastIndexByte(rest, '/'); i >= 0 {
		bassText := rest[i+1:]
		bass, m, err := ParseNote(bassText)
		if err == nil && m == len(bassText) {
			chord.Bass = &bass
			chord.Quality = rest[:i]
		}
	}

	if !isChordSuffix(chord.Quality) {
		return Chord{}, fmt.Errorf("chord %q suffix %q is not chord notation: %w", s, chord.Quality, ErrUnparseableChord)
	}

	return chord, nil
}

// Letter runs allowed in a suffix; "b" covers flat alterations like "7b9"
var suffixWords = []string{
	"major", "minor", "omit", "maj", "Maj", "min", "dim", "aug", "sus",
	"add", "dom", "alt", "no", "mi", "ma", "m", "M", "o", "b",
}

// isChordSuffix accepts digits, alteration symbols and letter runs made
// only of suffixWords. Anything else (".", ":", "horus") is not a chord.
func isChordSuffix(q string) bool {
	for i := 0; i < len(q); {
		r, size := utf8.DecodeRuneInString(q[i:])
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			j := i
			for j < len(q) && isASCIILetter(q[j]) {
				j++
			}
			if !splitsIntoWords(q[i:j]) {
				return false
			}
			i = j
		case unicode.IsDigit(r), strings.ContainsRune("#+-()/,^°øΔ♯♭", r):
			i += size
		default:
			return false
		}
	}
	return true
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func splitsIntoWords(run string) bool {
	if run == "" {
		return true
	}
	for _, w := range suffixWords {
		if strings.HasPrefix(run, w) && splitsIntoWords(run[len(w):]) {
			return true
		}
	}
	return false
}

// MustParseChord is ParseChord for literals known to be valid
func MustParseChord(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err)
	}
	return c
}

// NewChord builds a chord on a pitch class with the given suffix
func NewChord(root PitchClass, quality string, preferSharps bool) Chord {
	return Chord{Root: Spell(root, preferSharps), Quality: quality}
}

func (c Chord) String() string {
	if c.Bass != nil {
		return c.Root.Name + c.Quality + "/" + c.Bass.Name
	}
	return c.Root.Name + c.Quality
}

// Transpose shifts root and bass by any number of semitones and spells
// them with the given preference.
func (c Chord) Transpose(semitones int, preferSharps bool) Chord {
	out := Chord{
		Root:    Spell(c.Root.PitchClass.Transpose(semitones), preferSharps),
		Quality: c.Quality,
	}
	if c.Bass != nil {
		bass := Spell(c.Bass.PitchClass.Transpose(semitones), preferSharps)
		out.Bass = &bass
	}
	return out
}

// Kind classifies the suffix
func (c Chord) Kind() ChordQuality {
	return ClassifySuffix(c.Quality)
}

// Classify is Kind with an ErrUnsupportedQuality error for suffixes the
// analyzers do not model.
func (c Chord) Classify() (ChordQuality, error) {
	q := c.Kind()
	if q == ChordUnknown {
		return q, fmt.Errorf("chord %q suffix %q: %w", c.String(), c.Quality, ErrUnsupportedQuality)
	}
	return q, nil
}

// Triad returns the triad family of the chord
func (c Chord) Triad() TriadQuality {
	return c.Kind().Triad()
}

// Tones returns the pitch classes of the chord's triad (sus and power
// chords keep their own shapes).
func (c Chord) Tones() []PitchClass {
	root := c.Root.PitchClass
	switch c.Kind() {
	case ChordSus2:
		return []PitchClass{root, root.Transpose(2), root.Transpose(7)}
	case ChordSus4, ChordDom7Sus4:
		return []PitchClass{root, root.Transpose(5), root.Transpose(7)}
	case ChordPowerChord:
		return []PitchClass{root, root.Transpose(7)}
	}
	return TriadTones(root, c.Triad())
}

// WithQuality returns a copy with a different suffix
func (c Chord) WithQuality(quality string) Chord {
	c.Quality = quality
	return c
}
