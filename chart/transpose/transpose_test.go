package transpose

import (
	"errors"
	"reflect"
	"testing"

	"github.com/RyanBlaney/sonido-charts/algorithms/tonal"
	"github.com/RyanBlaney/sonido-charts/config"
)

func TestTranspose(t *testing.T) {
	tests := []struct {
		name         string
		semitones    int
		preferSharps bool
		want         string
	}{
		{"G", 2, true, "A"},
		{"C#", 1, false, "D"},
		{"C", 1, false, "Db"},
		{"C", 1, true, "C#"},
		{"Am7", -2, true, "Gm7"},
		{"Bbmaj7/D", 2, true, "Cmaj7/E"},
		{"C6/9", 2, true, "D6/9"},
		{"E", 12, true, "E"},
		{"E", -13, false, "Eb"},
		{"A minor", 2, true, "B minor"},
		{"am", 2, true, "Bm"},
		{"f#m", 1, false, "Gm"},
		{"c major", 2, true, "D major"},
		{"not a chord", 3, true, "not a chord"},
	}

	for _, tt := range tests {
		if got := Transpose(tt.name, tt.semitones, tt.preferSharps); got != tt.want {
			t.Errorf("Transpose(%q, %d, %v) = %q, want %q", tt.name, tt.semitones, tt.preferSharps, got, tt.want)
		}
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	names := []string{"C", "F#m7", "Bb", "Ebmaj7/G", "Dsus4", "Ab13"}
	for _, name := range names {
		for n := -14; n <= 14; n++ {
			up := Transpose(name, n, true)
			back := Transpose(up, -n, true)
			want := Transpose(name, 0, true)
			if back != want {
				t.Errorf("%q by %d and back = %q, want %q", name, n, back, want)
			}
		}
	}
}

func TestTransposeMovesRootBySemitones(t *testing.T) {
	tests := []struct {
		name         string
		preferSharps bool
	}{
		{"C", true},
		{"F#m7", true},
		{"Bb", false},
		{"Ebmaj7/G", false},
		{"D/F#", true},
		{"G7sus4", true},
		{"A minor", false},
		{"am", true},
		{"Db major", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for n := -30; n <= 30; n++ {
				shifted := Transpose(tt.name, n, tt.preferSharps)
				got, err := tonal.SemitonesBetween(tt.name, shifted)
				if err != nil {
					t.Fatalf("SemitonesBetween(%q, %q): %v", tt.name, shifted, err)
				}
				if want := ((n % 12) + 12) % 12; got != want {
					t.Errorf("by %d: %q -> %q measures %d, want %d", n, tt.name, shifted, got, want)
				}
			}
		})
	}
}

func TestTransposeKey(t *testing.T) {
	tests := []struct {
		name      string
		semitones int
		want      string
	}{
		{"C", 7, "G"},
		{"C", 5, "F"},
		{"C", 10, "Bb"},
		{"Am", 2, "Bm"},
		{"Am", 1, "Bbm"},
		{"C", 6, "F#"},
	}

	for _, tt := range tests {
		key, err := TransposeKey(tt.name, tt.semitones)
		if err != nil {
			t.Fatalf("TransposeKey(%q): %v", tt.name, err)
		}
		if key.Name() != tt.want {
			t.Errorf("TransposeKey(%q, %d) = %s, want %s", tt.name, tt.semitones, key.Name(), tt.want)
		}
	}

	if _, err := TransposeKey("H", 1); !errors.Is(err, tonal.ErrInvalidKeyName) {
		t.Errorf("expected ErrInvalidKeyName, got %v", err)
	}
}

func TestTransposeText(t *testing.T) {
	src := "{title: Grace}\n[C]Amazing [F]grace\nG   C/E\nhow sweet [Xyz]the sound"
	out, diags := TransposeText(src, 2, true)

	want := "{title: Grace}\n[D]Amazing [G]grace\nA   D/F#\nhow sweet [Xyz]the sound"
	if out != want {
		t.Errorf("TransposeText =\n%q\nwant\n%q", out, want)
	}
	if len(diags) != 1 || diags[0].Text != "Xyz" {
		t.Errorf("diagnostics = %v", diags)
	}

	same, _ := TransposeText(src, 0, true)
	if same != src {
		t.Errorf("zero shift changed text: %q", same)
	}

	labelled := "[Chorus]\n[C]Amazing [F]grace\n[Bridge]\n[G]how sweet\n[Coda]"
	out, diags = TransposeText(labelled, 2, true)
	if want := "[Chorus]\n[D]Amazing [G]grace\n[Bridge]\n[A]how sweet\n[Coda]"; out != want {
		t.Errorf("TransposeText =\n%q\nwant\n%q", out, want)
	}
	if len(diags) != 3 {
		t.Errorf("diagnostics = %v", diags)
	}

	pairs := PreviewTransposition(labelled, 2, true)
	if want := []Pair{{"C", "D"}, {"F", "G"}, {"G", "A"}}; !reflect.DeepEqual(pairs, want) {
		t.Errorf("preview = %+v, want %+v", pairs, want)
	}
}

func TestPreviewTransposition(t *testing.T) {
	got := PreviewTransposition("[C]Amazing [F]grace", 2, true)
	want := []Pair{{"C", "D"}, {"F", "G"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("preview = %+v, want %+v", got, want)
	}

	out, _ := TransposeText("[C]Amazing [F]grace", 2, true)
	if out != "[D]Amazing [G]grace" {
		t.Errorf("text = %q", out)
	}

	identity := PreviewTransposition("[Am]a [G]b [Am]c", 0, true)
	if len(identity) != 2 {
		t.Fatalf("identity preview = %+v", identity)
	}
	for _, p := range identity {
		if p.Original != p.Transposed {
			t.Errorf("zero shift pair %+v", p)
		}
	}

	if empty := PreviewTransposition("no chords here", 3, true); len(empty) != 0 {
		t.Errorf("empty preview = %+v", empty)
	}
}

func TestPreviewLimit(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	cfg.PreviewLimit = 2

	pairs, remaining := NewTransposer(cfg).Preview("[C]a [D]b [E]c [F]d", 1, false)
	if len(pairs) != 2 || remaining != 2 {
		t.Errorf("got %d pairs, %d remaining", len(pairs), remaining)
	}
	if pairs[0].Transposed != "Db" {
		t.Errorf("first pair = %+v", pairs[0])
	}
}

func TestTruncatePreview(t *testing.T) {
	pairs := []Pair{{"C", "D"}, {"F", "G"}, {"G", "A"}}

	tests := []struct {
		limit     int
		wantLen   int
		remaining int
	}{
		{0, 3, 0},
		{-1, 3, 0},
		{2, 2, 1},
		{3, 3, 0},
		{10, 3, 0},
	}

	for _, tt := range tests {
		got, rem := TruncatePreview(pairs, tt.limit)
		if len(got) != tt.wantLen || rem != tt.remaining {
			t.Errorf("limit %d: len=%d remaining=%d", tt.limit, len(got), rem)
		}
	}
}

func TestTransposeToKey(t *testing.T) {
	tr := NewTransposer(nil)

	out, _, err := tr.TransposeToKey("[C]a [F]b [G]c", "C", "F")
	if err != nil {
		t.Fatal(err)
	}
	if out != "[F]a [Bb]b [C]c" {
		t.Errorf("C to F = %q", out)
	}

	out, _, err = tr.TransposeToKey("[Am]a [E7]b", "Am", "Em")
	if err != nil {
		t.Fatal(err)
	}
	if out != "[Em]a [B7]b" {
		t.Errorf("Am to Em = %q", out)
	}

	src := "[C]a"
	out, _, err = tr.TransposeToKey(src, "C", "Q")
	if !errors.Is(err, tonal.ErrInvalidKeyName) {
		t.Errorf("expected ErrInvalidKeyName, got %v", err)
	}
	if out != src {
		t.Errorf("failed transposition changed text: %q", out)
	}
}

func TestCalculateCapo(t *testing.T) {
	tests := []struct {
		semitones int
		want      int
	}{
		{7, 7},
		{-3, 0},
		{0, 0},
		{12, 0},
		{14, 2},
		{1, 1},
	}

	for _, tt := range tests {
		if got := CalculateCapo(tt.semitones); got != tt.want {
			t.Errorf("CalculateCapo(%d) = %d, want %d", tt.semitones, got, tt.want)
		}
	}
}

func TestDescribeCapo(t *testing.T) {
	tests := map[int]string{
		0:  "No capo",
		1:  "Capo on 1st fret",
		2:  "Capo on 2nd fret",
		3:  "Capo on 3rd fret",
		11: "Capo on 11th fret",
	}
	for fret, want := range tests {
		if got := DescribeCapo(fret); got != want {
			t.Errorf("DescribeCapo(%d) = %q, want %q", fret, got, want)
		}
	}
}

func chords(names ...string) []tonal.Chord {
	out := make([]tonal.Chord, len(names))
	for i, n := range names {
		out[i] = tonal.MustParseChord(n)
	}
	return out
}

func TestSuggestCapo(t *testing.T) {
	// Open shapes need no capo
	open := SuggestCapo(chords("G", "C", "D", "Em"), 0)
	if open.Capo != 0 || open.Description != "No capo" {
		t.Errorf("open shapes: %+v", open)
	}
	if len(open.Candidates) != 12 {
		t.Errorf("candidates = %d", len(open.Candidates))
	}

	// Bb Eb F sounds best as A D E shapes with capo 1
	flat := SuggestCapo(chords("Bb", "Eb", "F"), 0)
	if flat.Capo != 1 {
		t.Errorf("Bb Eb F capo = %d, want 1 (%+v)", flat.Capo, flat.Shapes)
	}
	if !reflect.DeepEqual(flat.Shapes, []string{"A", "D", "E"}) {
		t.Errorf("shapes = %v", flat.Shapes)
	}

	// G C D Em moved up three semitones keeps the G shapes at capo 3
	up := SuggestCapo(chords("G", "C", "D", "Em"), 3)
	if up.Capo != 3 || up.Description != "Capo on 3rd fret" {
		t.Errorf("G C D +3: %+v", up)
	}

	empty := SuggestCapo(nil, 14)
	if empty.Capo != 2 {
		t.Errorf("empty suggestion capo = %d, want 2", empty.Capo)
	}
}

func TestShapeDifficulty(t *testing.T) {
	if d := ShapeDifficulty(tonal.MustParseChord("G")); d != openShape {
		t.Errorf("G = %v", d)
	}
	if d := ShapeDifficulty(tonal.MustParseChord("C#m")); d != barreShape {
		t.Errorf("C#m = %v", d)
	}
	if d := ShapeDifficulty(tonal.MustParseChord("F#5")); d != powerShape {
		t.Errorf("F#5 = %v", d)
	}
	if d := ShapeDifficulty(tonal.MustParseChord("Cmaj7#11")); d != unknownShape {
		t.Errorf("Cmaj7#11 = %v", d)
	}
}
