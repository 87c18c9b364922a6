package tonal

import (
	"fmt"
	"strings"
)

// KeyMode represents major or minor mode
type KeyMode int

const (
	KeyModeMajor KeyMode = iota
	KeyModeMinor
)

func (m KeyMode) String() string {
	if m == KeyModeMinor {
		return "minor"
	}
	return "major"
}

// Scale step patterns in semitones above the tonic
var (
	majorScaleSteps = [7]int{0, 2, 4, 5, 7, 9, 11}
	minorScaleSteps = [7]int{0, 2, 3, 5, 7, 8, 10} // natural minor
)

// Key is a tonal center: a spelled root and a mode
type Key struct {
	Root NoteSpelling `json:"root"`
	Mode KeyMode      `json:"mode"`
}

// NewKey builds a key on a pitch class, spelled the way its key
// signature is conventionally written.
func NewKey(pc PitchClass, mode KeyMode) Key {
	return Key{Root: Spell(pc, defaultSharpsByPitch(pc, mode)), Mode: mode}
}

// ParseKey reads names such as "A", "Am", "Amin", "A minor", "C major",
// "Cmaj" or "f#m". The mode comes from the suffix; no suffix means major.
func ParseKey(name string) (Key, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return Key{}, fmt.Errorf("empty key name: %w", ErrInvalidKeyName)
	}
	s = strings.ToUpper(s[:1]) + s[1:]

	root, n, err := ParseNote(s)
	if err != nil {
		return Key{}, fmt.Errorf("key %q: %w", name, err)
	}

	mode, ok := parseModeSuffix(s[n:])
	if !ok {
		return Key{}, fmt.Errorf("key %q has unknown mode %q: %w", name, s[n:], ErrInvalidKeyName)
	}

	return Key{Root: root, Mode: mode}, nil
}

func parseModeSuffix(suffix string) (KeyMode, bool) {
	suffix = strings.TrimSpace(suffix)
	if suffix == "M" {
		return KeyModeMajor, true
	}

	switch strings.ToLower(suffix) {
	case "", "maj", "major", "ma", "ionian":
		return KeyModeMajor, true
	case "m", "min", "minor", "-", "aeolian":
		return KeyModeMinor, true
	}
	return KeyModeMajor, false
}

// Name returns the short chart form, e.g. "F#" or "Bbm"
func (k Key) Name() string {
	if k.Mode == KeyModeMinor {
		return k.Root.Name + "m"
	}
	return k.Root.Name
}

// String returns the long form, e.g. "C major"
func (k Key) String() string {
	return k.Root.Name + " " + k.Mode.String()
}

// Tonic returns the key's root pitch class
func (k Key) Tonic() PitchClass {
	return k.Root.PitchClass
}

// Scale returns the seven diatonic pitch classes starting on the tonic
func (k Key) Scale() []PitchClass {
	steps := majorScaleSteps
	if k.Mode == KeyModeMinor {
		steps = minorScaleSteps
	}

	scale := make([]PitchClass, len(steps))
	for i, step := range steps {
		scale[i] = k.Tonic().Transpose(step)
	}
	return scale
}

// ScaleNames spells the scale using the key's sharp/flat convention
func (k Key) ScaleNames() []string {
	sharps := k.PrefersSharps()
	names := make([]string, 0, 7)
	for _, pc := range k.Scale() {
		names = append(names, Spell(pc, sharps).Name)
	}
	return names
}

// Degree returns the 1-based scale degree of pc, or 0 when pc is not
// in the scale.
func (k Key) Degree(pc PitchClass) int {
	for i, scalePC := range k.Scale() {
		if scalePC == pc.Normalize() {
			return i + 1
		}
	}
	return 0
}

// Contains reports whether pc is diatonic to the key
func (k Key) Contains(pc PitchClass) bool {
	return k.Degree(pc) != 0
}

// Relative returns the relative major/minor
func (k Key) Relative() Key {
	if k.Mode == KeyModeMinor {
		return NewKey(k.Tonic().Transpose(3), KeyModeMajor)
	}
	return NewKey(k.Tonic().Transpose(-3), KeyModeMinor)
}

// AllKeys enumerates the 24 keys: C major, C minor, C# major, ...
func AllKeys() []Key {
	keys := make([]Key, 0, 24)
	for pc := PitchClass(0); pc < 12; pc++ {
		keys = append(keys, NewKey(pc, KeyModeMajor), NewKey(pc, KeyModeMinor))
	}
	return keys
}

// SemitonesBetween returns the ascending distance from one key's root to
// another's, in [0, 11]. Mode suffixes are ignored, and chord names are
// accepted too, so "Am7" measures from A. C to G is 7 and G to C is 5.
// An unreadable name yields 0 and ErrInvalidKeyName.
func SemitonesBetween(from, to string) (int, error) {
	fromPC, err := rootPitch(from)
	if err != nil {
		return 0, err
	}
	toPC, err := rootPitch(to)
	if err != nil {
		return 0, err
	}
	return fromPC.Interval(toPC), nil
}

func rootPitch(name string) (PitchClass, error) {
	key, err := ParseKey(name)
	if err == nil {
		return key.Tonic(), nil
	}
	if chord, chordErr := ParseChord(name); chordErr == nil {
		return chord.Root.PitchClass, nil
	}
	return 0, err
}
