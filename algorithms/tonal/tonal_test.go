package tonal

import (
	"errors"
	"testing"
)

func TestSpellIsTotal(t *testing.T) {
	for pc := -24; pc < 36; pc++ {
		for _, sharps := range []bool{true, false} {
			n := Spell(PitchClass(pc), sharps)
			if n.Name == "" {
				t.Fatalf("Spell(%d, %v) returned empty name", pc, sharps)
			}
			if n.PitchClass < 0 || n.PitchClass > 11 {
				t.Fatalf("Spell(%d, %v) pitch class out of range: %d", pc, sharps, n.PitchClass)
			}
			names := FlatNames()
			if sharps {
				names = SharpNames()
			}
			if names[n.PitchClass] != n.Name {
				t.Errorf("Spell(%d, %v) = %q, want %q", pc, sharps, n.Name, names[n.PitchClass])
			}
		}
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		input    string
		pc       PitchClass
		name     string
		consumed int
		wantErr  bool
	}{
		{input: "C", pc: 0, name: "C", consumed: 1},
		{input: "C#m7", pc: 1, name: "C#", consumed: 2},
		{input: "Bb", pc: 10, name: "Bb", consumed: 2},
		{input: "E♭maj7", pc: 3, name: "Eb", consumed: 1 + len("♭")},
		{input: "F♯", pc: 6, name: "F#", consumed: 1 + len("♯")},
		{input: "Cb", pc: 11, name: "Cb", consumed: 2},
		{input: "B#", pc: 0, name: "B#", consumed: 2},
		{input: "H", wantErr: true},
		{input: "c", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, consumed, err := ParseNote(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKeyName) {
					t.Fatalf("expected ErrInvalidKeyName, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.PitchClass != tt.pc || n.Name != tt.name || consumed != tt.consumed {
				t.Errorf("got (%d, %q, %d), want (%d, %q, %d)", n.PitchClass, n.Name, consumed, tt.pc, tt.name, tt.consumed)
			}
		})
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		input string
		name  string
		mode  KeyMode
	}{
		{"C", "C", KeyModeMajor},
		{"Am", "Am", KeyModeMinor},
		{"A minor", "Am", KeyModeMinor},
		{"C major", "C", KeyModeMajor},
		{"f#m", "F#m", KeyModeMinor},
		{"Bbmaj", "Bb", KeyModeMajor},
		{"Ebmin", "Ebm", KeyModeMinor},
	}

	for _, tt := range tests {
		key, err := ParseKey(tt.input)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", tt.input, err)
		}
		if key.Name() != tt.name || key.Mode != tt.mode {
			t.Errorf("ParseKey(%q) = %s (%v), want %s (%v)", tt.input, key.Name(), key.Mode, tt.name, tt.mode)
		}
	}

	for _, bad := range []string{"", "X", "Cdorian7", "H minor"} {
		if _, err := ParseKey(bad); !errors.Is(err, ErrInvalidKeyName) {
			t.Errorf("ParseKey(%q) error = %v, want ErrInvalidKeyName", bad, err)
		}
	}
}

func TestSemitonesBetween(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"C", "G", 7},
		{"G", "C", 5},
		{"C", "C", 0},
		{"Am", "C", 3},
		{"Bb", "B", 1},
		{"B", "C", 1},
		{"C", "B", 11},
		{"Am7", "D/F#", 5},
	}

	for _, tt := range tests {
		got, err := SemitonesBetween(tt.from, tt.to)
		if err != nil {
			t.Fatalf("SemitonesBetween(%q, %q): %v", tt.from, tt.to, err)
		}
		if got != tt.want {
			t.Errorf("SemitonesBetween(%q, %q) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
		if got < 0 || got > 11 {
			t.Errorf("SemitonesBetween(%q, %q) = %d out of [0, 11]", tt.from, tt.to, got)
		}
	}

	got, err := SemitonesBetween("C", "nonsense")
	if got != 0 || !errors.Is(err, ErrInvalidKeyName) {
		t.Errorf("unknown key: got (%d, %v), want (0, ErrInvalidKeyName)", got, err)
	}
}

func TestPrefersSharps(t *testing.T) {
	sharps := []string{"C", "G", "D", "A", "E", "B", "F#", "C#", "Am", "Em", "Bm", "F#m", "C#m", "G#m", "D#m"}
	flats := []string{"F", "Bb", "Eb", "Ab", "Db", "Gb", "Cb", "Dm", "Gm", "Cm", "Fm", "Bbm", "Ebm", "Abm"}

	for _, k := range sharps {
		if !PrefersSharps(k) {
			t.Errorf("PrefersSharps(%q) = false, want true", k)
		}
	}
	for _, k := range flats {
		if PrefersSharps(k) {
			t.Errorf("PrefersSharps(%q) = true, want false", k)
		}
	}
	if !PrefersSharps("not a key") {
		t.Error("unknown keys should fall back to sharps")
	}
}

func TestKeySignature(t *testing.T) {
	key, _ := ParseKey("Eb")
	if sig, ok := key.Signature(); !ok || sig != -3 {
		t.Errorf("Eb signature = %d (%v), want -3", sig, ok)
	}
	key, _ = ParseKey("E")
	if sig, ok := key.Signature(); !ok || sig != 4 {
		t.Errorf("E signature = %d (%v), want 4", sig, ok)
	}

	if got := SimplestSpelling(10, KeyModeMajor).Name(); got != "Bb" {
		t.Errorf("SimplestSpelling(10, major) = %s, want Bb", got)
	}
	if got := SimplestSpelling(1, KeyModeMinor).Name(); got != "C#m" {
		t.Errorf("SimplestSpelling(1, minor) = %s, want C#m", got)
	}
	if got := SimplestSpelling(6, KeyModeMajor).Name(); got != "F#" {
		t.Errorf("SimplestSpelling(6, major) = %s, want F#", got)
	}
}

func TestKeyScale(t *testing.T) {
	key, _ := ParseKey("F")
	want := []string{"F", "G", "A", "Bb", "C", "D", "E"}
	got := key.ScaleNames()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("F major scale = %v, want %v", got, want)
		}
	}

	minor, _ := ParseKey("Am")
	if minor.Degree(7) != 5 || minor.Degree(8) != 0 {
		t.Errorf("A minor degrees: E=%d G#=%d", minor.Degree(7), minor.Degree(8))
	}
	if minor.Relative().Name() != "C" {
		t.Errorf("relative of Am = %s", minor.Relative().Name())
	}
}

func TestParseChord(t *testing.T) {
	tests := []struct {
		input   string
		root    string
		quality string
		bass    string
		kind    ChordQuality
	}{
		{"C", "C", "", "", ChordMajor},
		{"Am7", "A", "m7", "", ChordMin7},
		{"D/F#", "D", "", "F#", ChordMajor},
		{"Bbmaj7/D", "Bb", "maj7", "D", ChordMaj7},
		{"C6/9", "C", "6/9", "", ChordSixth},
		{"G7sus4", "G", "7sus4", "", ChordDom7Sus4},
		{"F#m7b5", "F#", "m7b5", "", ChordHalfDim7},
		{"E7(b9)", "E", "7(b9)", "", ChordDom7},
		{"Cmaj7#11", "C", "maj7#11", "", ChordUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseChord(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Root.Name != tt.root || c.Quality != tt.quality {
				t.Errorf("got root %q quality %q", c.Root.Name, c.Quality)
			}
			bass := ""
			if c.Bass != nil {
				bass = c.Bass.Name
			}
			if bass != tt.bass {
				t.Errorf("bass = %q, want %q", bass, tt.bass)
			}
			if c.Kind() != tt.kind {
				t.Errorf("kind = %v, want %v", c.Kind(), tt.kind)
			}
			if c.String() != tt.input {
				t.Errorf("String() = %q, want %q", c.String(), tt.input)
			}
		})
	}

	for _, bad := range []string{"", "N.C.", "x", "C G", "Chorus", "Bridge", "Coda", "Break", "End", "Amazing", "C7.5"} {
		if _, err := ParseChord(bad); !errors.Is(err, ErrUnparseableChord) {
			t.Errorf("ParseChord(%q) error = %v, want ErrUnparseableChord", bad, err)
		}
	}

	if _, err := MustParseChord("Cmaj7#11").Classify(); !errors.Is(err, ErrUnsupportedQuality) {
		t.Errorf("Classify error = %v, want ErrUnsupportedQuality", err)
	}
}

func TestChordTransposeRoundTrip(t *testing.T) {
	chords := []string{"C", "C#m", "Ebmaj7", "F#7/A#", "Bbsus4", "G/B"}

	for _, name := range chords {
		c := MustParseChord(name)
		sharps := !c.Root.IsFlat()
		for n := -25; n <= 25; n++ {
			there := c.Transpose(n, sharps)
			back := there.Transpose(-n, sharps)
			if back.Root.PitchClass != c.Root.PitchClass {
				t.Fatalf("%s by %d: pitch class %d, want %d", name, n, back.Root.PitchClass, c.Root.PitchClass)
			}
			if back.String() != name {
				t.Fatalf("%s by %d round-tripped to %s", name, n, back.String())
			}
			if there.Quality != c.Quality {
				t.Fatalf("quality changed: %q -> %q", c.Quality, there.Quality)
			}
		}
	}
}

func TestRotateProfile(t *testing.T) {
	base := KeyProfileKrumhansl.Template().MajorProfile
	key, _ := ParseKey("G")
	rotated := KeyProfileKrumhansl.ProfileFor(key)
	if rotated[7] != base[0] || rotated[2] != base[7] {
		t.Errorf("rotation misplaced tonic/dominant weights: %v", rotated)
	}
}
