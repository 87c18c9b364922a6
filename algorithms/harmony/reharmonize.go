package harmony

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/RyanBlaney/sonido-charts/algorithms/tonal"
	"github.com/RyanBlaney/sonido-charts/config"
	"github.com/RyanBlaney/sonido-charts/logging"
)

// Style selects how far the reharmonizer strays from the original
type Style string

const (
	StyleSimple      Style = config.StyleSimple
	StyleBalanced    Style = config.StyleBalanced
	StyleJazz        Style = config.StyleJazz
	StyleAdventurous Style = config.StyleAdventurous
)

// ParseStyle maps a name to a style; unknown names are balanced
func ParseStyle(name string) Style {
	switch s := Style(strings.ToLower(strings.TrimSpace(name))); s {
	case StyleSimple, StyleBalanced, StyleJazz, StyleAdventurous:
		return s
	}
	return StyleBalanced
}

// Difficulty rates how hard a variation is to play
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ProgressionVariation is an alternative chord sequence of the same length
type ProgressionVariation struct {
	Name        string     `json:"name"`
	Chords      []string   `json:"chords"`
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description"`
}

// rule rewrites a progression into new chord texts, one per input entry
type rule struct {
	name       string
	difficulty Difficulty
	describe   string // verb phrase, completed with the changed count
	apply      func(slots []slot, numerals []RomanNumeral, key tonal.Key) []string
}

var (
	ruleSevenths = rule{
		name:       "Diatonic Sevenths",
		difficulty: DifficultyMedium,
		describe:   "Adds the diatonic seventh to",
		apply:      diatonicSevenths,
	}
	ruleRelative = rule{
		name:       "Relative Substitution",
		difficulty: DifficultyEasy,
		describe:   "Swaps in the relative major or minor for",
		apply:      relativeSubstitution,
	}
	ruleSecondary = rule{
		name:       "Secondary Dominants",
		difficulty: DifficultyHard,
		describe:   "Leads into the next chord with its own dominant on",
		apply:      secondaryDominants,
	}
	ruleTritone = rule{
		name:       "Tritone Substitution",
		difficulty: DifficultyHard,
		describe:   "Replaces the dominant with the seventh chord a tritone away on",
		apply:      tritoneSubstitution,
	}
	ruleSimplify = rule{
		name:       "Simplified Triads",
		difficulty: DifficultyEasy,
		describe:   "Reduces to plain triads",
		apply:      simplifiedTriads,
	}
	ruleInterchange = rule{
		name:       "Modal Interchange",
		difficulty: DifficultyMedium,
		describe:   "Borrows from the parallel mode for",
		apply:      modalInterchange,
	}
)

var styleRules = map[Style][]rule{
	StyleSimple:      {ruleSimplify, ruleRelative},
	StyleBalanced:    {ruleSevenths, ruleRelative, ruleInterchange, ruleSecondary},
	StyleJazz:        {ruleSevenths, ruleSecondary, ruleTritone, ruleRelative},
	StyleAdventurous: {ruleTritone, ruleInterchange, ruleSecondary, ruleSevenths, ruleRelative, ruleSimplify},
}

// Reharmonize proposes variations with the default configuration
func Reharmonize(chords []string, style Style) []ProgressionVariation {
	return NewAnalyzer(nil).Reharmonize(chords, style)
}

// Reharmonize proposes alternative progressions in the given style. Each
// variation keeps the input length and position of every entry; entries
// that are not chords, or whose quality is unknown, are kept as written.
// The output depends only on the input, so repeated calls agree.
func (a *Analyzer) Reharmonize(chords []string, style Style) []ProgressionVariation {
	slots, _ := a.read(chords)
	key := a.InferKey(parsedChords(slots)).Key
	return a.reharmonize(slots, key, style)
}

func (a *Analyzer) reharmonize(slots []slot, key tonal.Key, style Style) []ProgressionVariation {
	numerals := numeralsFor(slots, key)
	original := make([]string, len(slots))
	for i, s := range slots {
		original[i] = s.text
	}

	variations := []ProgressionVariation{}
	seen := map[string]bool{strings.Join(original, " "): true}

	for _, r := range styleRules[ParseStyle(string(style))] {
		if limit := a.config.MaxVariations; limit > 0 && len(variations) >= limit {
			break
		}

		out := r.apply(slots, numerals, key)
		changed := 0
		for i := range out {
			if out[i] != original[i] {
				changed++
			}
		}
		signature := strings.Join(out, " ")
		if changed == 0 || seen[signature] {
			continue
		}
		seen[signature] = true

		variations = append(variations, ProgressionVariation{
			Name:        r.name,
			Chords:      out,
			Difficulty:  r.difficulty,
			Description: fmt.Sprintf("%s %s", r.describe, english.Plural(changed, "chord", "")),
		})
	}

	a.logger.Debug("Generated variations", logging.Fields{
		"style":      string(style),
		"key":        key.String(),
		"variations": len(variations),
	})

	return variations
}

// rewrite copies the input and lets edit replace modelled chords
func rewrite(slots []slot, edit func(i int, c tonal.Chord) (tonal.Chord, bool)) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.text
		if !s.parsed || !s.supported {
			continue
		}
		if c, ok := edit(i, s.chord); ok {
			out[i] = c.String()
		}
	}
	return out
}

func diatonicSevenths(slots []slot, numerals []RomanNumeral, key tonal.Key) []string {
	return rewrite(slots, func(i int, c tonal.Chord) (tonal.Chord, bool) {
		rn := numerals[i]
		if !rn.Diatonic || rn.Seventh || isOpenFifth(c.Kind()) {
			return c, false
		}
		dominant := rn.Degree == 5 && rn.Quality == tonal.TriadMajor
		return c.WithQuality(tonal.SeventhSuffix(rn.Quality, dominant)), true
	})
}

// relativeSubstitution trades I and IV (i and iv in minor) for their
// relatives. The opening chord stays so the key is still announced.
func relativeSubstitution(slots []slot, numerals []RomanNumeral, key tonal.Key) []string {
	sharps := key.PrefersSharps()
	return rewrite(slots, func(i int, c tonal.Chord) (tonal.Chord, bool) {
		rn := numerals[i]
		if i == 0 || !rn.Diatonic || (rn.Degree != 1 && rn.Degree != 4) {
			return c, false
		}

		var sub tonal.Chord
		switch rn.Quality {
		case tonal.TriadMajor:
			sub = tonal.NewChord(c.Root.PitchClass.Transpose(-3), "m", sharps)
		case tonal.TriadMinor:
			sub = tonal.NewChord(c.Root.PitchClass.Transpose(3), "", sharps)
		default:
			return c, false
		}
		return sub, true
	})
}

// secondaryDominants replaces every second chord with the dominant
// seventh of the chord that follows it.
func secondaryDominants(slots []slot, numerals []RomanNumeral, key tonal.Key) []string {
	sharps := key.PrefersSharps()
	return rewrite(slots, func(i int, c tonal.Chord) (tonal.Chord, bool) {
		if i%2 == 0 || i+1 >= len(slots) {
			return c, false
		}
		next := slots[i+1]
		if !next.parsed || !next.supported || numerals[i+1].Quality == tonal.TriadDiminished {
			return c, false
		}
		return tonal.NewChord(next.chord.Root.PitchClass.Transpose(7), "7", sharps), true
	})
}

// tritoneSubstitution swaps the dominant for bII7
func tritoneSubstitution(slots []slot, numerals []RomanNumeral, key tonal.Key) []string {
	return rewrite(slots, func(i int, c tonal.Chord) (tonal.Chord, bool) {
		rn := numerals[i]
		if rn.Degree != 5 || rn.Accidental != "" || rn.Quality != tonal.TriadMajor {
			return c, false
		}
		return tonal.NewChord(c.Root.PitchClass.Transpose(6), "7", false), true
	})
}

func simplifiedTriads(slots []slot, numerals []RomanNumeral, key tonal.Key) []string {
	return rewrite(slots, func(i int, c tonal.Chord) (tonal.Chord, bool) {
		kind := c.Kind()
		if isOpenFifth(kind) {
			return c, false
		}
		plain := tonal.Chord{Root: c.Root, Quality: tonal.TriadSuffix(c.Triad())}
		return plain, plain.String() != c.String()
	})
}

// modalInterchange borrows iv and bVI from the parallel minor, or IV and
// V from the parallel major in a minor key.
func modalInterchange(slots []slot, numerals []RomanNumeral, key tonal.Key) []string {
	sharps := key.PrefersSharps()
	return rewrite(slots, func(i int, c tonal.Chord) (tonal.Chord, bool) {
		rn := numerals[i]
		if !rn.Diatonic {
			return c, false
		}

		if key.Mode == tonal.KeyModeMajor {
			switch {
			case rn.Degree == 4 && rn.Quality == tonal.TriadMajor:
				return tonal.NewChord(c.Root.PitchClass, "m", sharps), true
			case rn.Degree == 6 && rn.Quality == tonal.TriadMinor:
				return tonal.NewChord(c.Root.PitchClass.Transpose(-1), "", false), true
			}
			return c, false
		}

		if (rn.Degree == 4 || rn.Degree == 5) && rn.Quality == tonal.TriadMinor {
			return tonal.NewChord(c.Root.PitchClass, "", sharps), true
		}
		return c, false
	})
}
