package harmony

import (
	"strings"

	"github.com/RyanBlaney/sonido-charts/algorithms/tonal"
)

// HarmonicFunction is the role a chord plays in its key
type HarmonicFunction string

const (
	FunctionTonic       HarmonicFunction = "tonic"
	FunctionSubdominant HarmonicFunction = "subdominant"
	FunctionDominant    HarmonicFunction = "dominant"
	FunctionOther       HarmonicFunction = "other"
)

// RomanNumeral is one chord's place in a key
type RomanNumeral struct {
	Chord      string             `json:"chord"`
	Symbol     string             `json:"symbol"`               // e.g. "vi", "bVII7", "ii°", "?"
	Degree     int                `json:"degree"`               // 1-7, 0 when the chord was not read
	Accidental string             `json:"accidental,omitempty"` // "b" or "#" for chromatic roots
	Quality    tonal.TriadQuality `json:"quality"`
	Function   HarmonicFunction   `json:"function"`
	Diatonic   bool               `json:"diatonic"`
	Seventh    bool               `json:"seventh"`
}

// Base is the numeral without seventh or diminished/augmented marks;
// progression patterns are matched on it.
func (r RomanNumeral) Base() string {
	if r.Degree == 0 {
		return "?"
	}
	return r.Accidental + romanCase(r.Degree, r.Quality)
}

type chromaticStep struct {
	degree     int
	accidental string
}

// Interval above the tonic to degree, for roots both on and off the scale
var (
	majorChromatic = [12]chromaticStep{
		{1, ""}, {2, "b"}, {2, ""}, {3, "b"}, {3, ""}, {4, ""},
		{4, "#"}, {5, ""}, {6, "b"}, {6, ""}, {7, "b"}, {7, ""},
	}
	minorChromatic = [12]chromaticStep{
		{1, ""}, {2, "b"}, {2, ""}, {3, ""}, {3, "#"}, {4, ""},
		{4, "#"}, {5, ""}, {6, ""}, {6, "#"}, {7, ""}, {7, "#"},
	}
)

// Triads built on each scale degree
var (
	majorTriads = [7]tonal.TriadQuality{
		tonal.TriadMajor, tonal.TriadMinor, tonal.TriadMinor, tonal.TriadMajor,
		tonal.TriadMajor, tonal.TriadMinor, tonal.TriadDiminished,
	}
	minorTriads = [7]tonal.TriadQuality{
		tonal.TriadMinor, tonal.TriadDiminished, tonal.TriadMajor, tonal.TriadMinor,
		tonal.TriadMinor, tonal.TriadMajor, tonal.TriadMajor,
	}
)

var romanNumerals = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// DiatonicTriad returns the triad the key builds on a 1-based degree
func DiatonicTriad(key tonal.Key, degree int) tonal.TriadQuality {
	if degree < 1 || degree > 7 {
		return tonal.TriadMajor
	}
	if key.Mode == tonal.KeyModeMinor {
		return minorTriads[degree-1]
	}
	return majorTriads[degree-1]
}

// DiatonicChord builds the chord on a degree, spelled for the key.
// seventh adds the diatonic seventh; degree 5 gets a dominant seventh.
func DiatonicChord(key tonal.Key, degree int, seventh bool) tonal.Chord {
	triad := DiatonicTriad(key, degree)
	root := key.Scale()[(degree-1)%7]

	suffix := tonal.TriadSuffix(triad)
	if seventh {
		suffix = tonal.SeventhSuffix(triad, degree == 5 && triad == tonal.TriadMajor)
	}
	return tonal.NewChord(root, suffix, key.PrefersSharps())
}

// Numeral places a chord in a key. Chromatic roots still get a degree,
// with an accidental, and are marked non-diatonic.
func Numeral(c tonal.Chord, key tonal.Key) RomanNumeral {
	step := majorChromatic[key.Tonic().Interval(c.Root.PitchClass)]
	if key.Mode == tonal.KeyModeMinor {
		step = minorChromatic[key.Tonic().Interval(c.Root.PitchClass)]
	}

	kind := c.Kind()
	triad := triadOf(c)
	onScale := step.accidental == ""
	diatonicTriad := DiatonicTriad(key, step.degree)

	// Sus and power chords have no third; they take the degree's triad
	if isOpenFifth(kind) && onScale && diatonicTriad != tonal.TriadDiminished {
		triad = diatonicTriad
	}

	diatonic := onScale && triad == diatonicTriad
	if !diatonic && onScale && key.Mode == tonal.KeyModeMinor &&
		step.degree == 5 && triad == tonal.TriadMajor {
		diatonic = true // harmonic minor dominant
	}

	rn := RomanNumeral{
		Chord:      c.String(),
		Degree:     step.degree,
		Accidental: step.accidental,
		Quality:    triad,
		Function:   FunctionOther,
		Diatonic:   diatonic,
		Seventh:    kind.HasSeventh(),
	}
	if diatonic {
		rn.Function = functionOf(step.degree)
	}
	rn.Symbol = symbol(rn, kind)

	return rn
}

// UnreadNumeral stands in for an input entry that is not a chord
func UnreadNumeral(text string) RomanNumeral {
	return RomanNumeral{
		Chord:    text,
		Symbol:   "?",
		Function: FunctionOther,
	}
}

func functionOf(degree int) HarmonicFunction {
	switch degree {
	case 1, 3, 6:
		return FunctionTonic
	case 2, 4:
		return FunctionSubdominant
	case 5, 7:
		return FunctionDominant
	}
	return FunctionOther
}

func romanCase(degree int, triad tonal.TriadQuality) string {
	n := romanNumerals[(degree-1)%7]
	if triad == tonal.TriadMinor || triad == tonal.TriadDiminished {
		return strings.ToLower(n)
	}
	return n
}

func symbol(rn RomanNumeral, kind tonal.ChordQuality) string {
	s := rn.Base()

	switch kind {
	case tonal.ChordHalfDim7:
		return s + "ø7"
	case tonal.ChordDim7:
		return s + "°7"
	case tonal.ChordMaj7, tonal.ChordMaj9, tonal.ChordMaj11, tonal.ChordMaj13:
		return s + "maj7"
	}

	switch rn.Quality {
	case tonal.TriadDiminished:
		s += "°"
	case tonal.TriadAugmented:
		s += "+"
	}
	if rn.Seventh {
		s += "7"
	}
	return s
}

func isOpenFifth(kind tonal.ChordQuality) bool {
	switch kind {
	case tonal.ChordSus2, tonal.ChordSus4, tonal.ChordDom7Sus4, tonal.ChordPowerChord:
		return true
	}
	return false
}

// triadOf guesses the triad of suffixes outside the quality table from
// their leading letters, so "m7b9" still reads as minor.
func triadOf(c tonal.Chord) tonal.TriadQuality {
	if c.Kind() != tonal.ChordUnknown {
		return c.Triad()
	}

	q := c.Quality
	switch {
	case strings.HasPrefix(q, "maj"), strings.HasPrefix(q, "M"):
		return tonal.TriadMajor
	case strings.HasPrefix(q, "dim"), strings.HasPrefix(q, "°"):
		return tonal.TriadDiminished
	case strings.HasPrefix(q, "aug"), strings.HasPrefix(q, "+"):
		return tonal.TriadAugmented
	case strings.HasPrefix(q, "m"), strings.HasPrefix(q, "-"):
		return tonal.TriadMinor
	}
	return tonal.TriadMajor
}
