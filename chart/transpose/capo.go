package transpose

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/RyanBlaney/sonido-charts/algorithms/common"
	"github.com/RyanBlaney/sonido-charts/algorithms/tonal"
)

// CalculateCapo suggests a capo fret for a transposition. A capo only
// raises pitch, so upward shifts map to semitones mod 12 and downward (or
// zero) shifts get no capo. This is a playing convention, not an acoustic
// rule.
func CalculateCapo(semitones int) int {
	if semitones <= 0 {
		return 0
	}
	return semitones % 12
}

// DescribeCapo renders a fret for display, e.g. "Capo on 3rd fret"
func DescribeCapo(fret int) string {
	if fret <= 0 {
		return "No capo"
	}
	return fmt.Sprintf("Capo on %s fret", humanize.Ordinal(fret))
}

// Shape difficulty on a rough 1 (open) to 3 (full barre) scale
const (
	openShape    = 1.0
	powerShape   = 1.5
	barreShape   = 3.0
	unknownShape = 3.5

	// Cost per capo fret, so a higher capo must buy clearly easier shapes
	fretPenalty = 0.05
)

var shapeDifficulty = map[string]float64{
	"C": 1, "A": 1, "G": 1, "E": 1, "D": 1,
	"Am": 1, "Em": 1, "Dm": 1,
	"A7": 1, "D7": 1, "E7": 1, "G7": 1, "C7": 1.5, "B7": 1.5,
	"Am7": 1, "Em7": 1, "Dm7": 1,
	"Cmaj7": 1, "Fmaj7": 1.5, "Amaj7": 1.5, "Dmaj7": 1.5, "Gmaj7": 1.5,
	"Asus2": 1, "Asus4": 1, "Dsus2": 1, "Dsus4": 1, "Esus4": 1, "Csus2": 1.5, "Gsus4": 1.5,
	"F": 2, "Bm": 2, "Fm": 2.5, "A#": 2.5, "F#m": 2.5,
}

// ShapeDifficulty scores how hard a chord shape is to finger in first
// position.
func ShapeDifficulty(c tonal.Chord) float64 {
	kind := c.Kind()
	if kind == tonal.ChordPowerChord {
		return powerShape
	}
	if kind == tonal.ChordUnknown {
		return unknownShape
	}

	name := tonal.Spell(c.Root.PitchClass, true).Name + shapeSuffix(kind)
	if d, ok := shapeDifficulty[name]; ok {
		return d
	}
	return barreShape
}

func shapeSuffix(kind tonal.ChordQuality) string {
	switch kind {
	case tonal.ChordMajor:
		return ""
	case tonal.ChordMinor:
		return "m"
	case tonal.ChordDom7:
		return "7"
	case tonal.ChordMin7:
		return "m7"
	case tonal.ChordMaj7:
		return "maj7"
	case tonal.ChordSus2:
		return "sus2"
	case tonal.ChordSus4:
		return "sus4"
	default:
		return "?"
	}
}

// CapoCandidate is the cost of playing a song at one capo fret
type CapoCandidate struct {
	Capo       int      `json:"capo"`
	Shapes     []string `json:"shapes"`
	Difficulty float64  `json:"difficulty"` // mean shape difficulty
	Score      float64  `json:"score"`      // difficulty plus fret penalty
}

// CapoSuggestion is the chosen fret and every fret considered
type CapoSuggestion struct {
	Capo        int             `json:"capo"`
	Shapes      []string        `json:"shapes"`
	Difficulty  float64         `json:"difficulty"`
	Description string          `json:"description"`
	Candidates  []CapoCandidate `json:"candidates"`
}

// SuggestCapo finds the capo fret that lets the transposed song be played
// with the easiest shapes. For each fret the shapes are the sounding
// chords lowered by that fret; the lowest mean difficulty wins and ties go
// to the lower fret.
func SuggestCapo(chords []tonal.Chord, semitones int) CapoSuggestion {
	if len(chords) == 0 {
		capo := CalculateCapo(semitones)
		return CapoSuggestion{Capo: capo, Description: DescribeCapo(capo)}
	}

	candidates := make([]CapoCandidate, 0, 12)
	scores := make([]float64, 0, 12)

	for capo := 0; capo < 12; capo++ {
		shapes := make([]string, len(chords))
		costs := make([]float64, len(chords))
		for i, c := range chords {
			shape := c.Transpose(semitones-capo, true)
			shapes[i] = shape.String()
			costs[i] = ShapeDifficulty(shape)
		}

		difficulty := common.Mean(costs)
		score := difficulty + fretPenalty*float64(capo)

		candidates = append(candidates, CapoCandidate{
			Capo:       capo,
			Shapes:     shapes,
			Difficulty: difficulty,
			Score:      score,
		})
		scores = append(scores, score)
	}

	best := candidates[common.ArgMin(scores)]
	return CapoSuggestion{
		Capo:        best.Capo,
		Shapes:      best.Shapes,
		Difficulty:  best.Difficulty,
		Description: DescribeCapo(best.Capo),
		Candidates:  candidates,
	}
}
