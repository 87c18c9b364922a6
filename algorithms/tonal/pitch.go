package tonal

import (
	"fmt"
	"strings"
)

// PitchClass is a chromatic step above C (0=C, 1=C#/Db, ..., 11=B)
type PitchClass int

var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
)

// natural letter -> pitch class
var letterPitch = map[byte]PitchClass{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Normalize reduces any integer step to 0-11
func (p PitchClass) Normalize() PitchClass {
	n := int(p) % 12
	if n < 0 {
		n += 12
	}
	return PitchClass(n)
}

// Transpose shifts the pitch class by any number of semitones
func (p PitchClass) Transpose(semitones int) PitchClass {
	return PitchClass(int(p.Normalize()) + semitones%12).Normalize()
}

// Interval returns the ascending distance from p up to other, 0-11
func (p PitchClass) Interval(other PitchClass) int {
	return int(PitchClass(int(other) - int(p)).Normalize())
}

func (p PitchClass) String() string {
	return sharpNames[p.Normalize()]
}

// NoteSpelling is a pitch class with the name it is written as
type NoteSpelling struct {
	PitchClass   PitchClass `json:"pitch_class"`
	Name         string     `json:"name"`
	PreferSharps bool       `json:"prefer_sharps"`
}

// Spell returns the canonical name of a pitch class for the given
// enharmonic preference.
func Spell(pc PitchClass, preferSharps bool) NoteSpelling {
	pc = pc.Normalize()
	name := flatNames[pc]
	if preferSharps {
		name = sharpNames[pc]
	}
	return NoteSpelling{PitchClass: pc, Name: name, PreferSharps: preferSharps}
}

// SharpNames returns the 12 sharp spellings starting at C
func SharpNames() []string {
	return sharpNames[:]
}

// FlatNames returns the 12 flat spellings starting at C
func FlatNames() []string {
	return flatNames[:]
}

// IsFlat reports whether the spelled name carries a flat
func (n NoteSpelling) IsFlat() bool {
	return len(n.Name) > 1 && strings.HasSuffix(n.Name, "b")
}

func (n NoteSpelling) String() string {
	return n.Name
}

// ParseNote reads a note name from the start of s: an uppercase letter A-G
// followed by at most one accidental (#, ♯, b, ♭). It returns the spelling
// with ASCII accidentals and the number of bytes consumed.
func ParseNote(s string) (NoteSpelling, int, error) {
	if s == "" {
		return NoteSpelling{}, 0, fmt.Errorf("empty note name: %w", ErrInvalidKeyName)
	}

	pc, ok := letterPitch[s[0]]
	if !ok {
		return NoteSpelling{}, 0, fmt.Errorf("unknown note letter %q: %w", s[0], ErrInvalidKeyName)
	}

	name := s[:1]
	consumed := 1
	preferSharps := true
	rest := s[1:]

	switch {
	case strings.HasPrefix(rest, "#"):
		pc, name, consumed = pc+1, name+"#", consumed+1
	case strings.HasPrefix(rest, "♯"):
		pc, name, consumed = pc+1, name+"#", consumed+len("♯")
	case strings.HasPrefix(rest, "♭"):
		pc, name, consumed = pc-1, name+"b", consumed+len("♭")
		preferSharps = false
	case strings.HasPrefix(rest, "b"):
		pc, name, consumed = pc-1, name+"b", consumed+1
		preferSharps = false
	}

	return NoteSpelling{
		PitchClass:   pc.Normalize(),
		Name:         name,
		PreferSharps: preferSharps,
	}, consumed, nil
}
