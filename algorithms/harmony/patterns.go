package harmony

// Progression categories
const (
	TypePop       = "Pop"
	TypeJazz      = "Jazz"
	TypeClassical = "Classical"
	TypeModal     = "Modal"
	TypeRock      = "Rock"
	TypeCadence   = "Cadence"
	TypeCustom    = "Custom"
)

// Pattern is a named progression matched on numeral bases
type Pattern struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Numerals  []string `json:"numerals"`
	Rotations bool     `json:"rotations"` // any rotation counts, e.g. vi-IV-I-V
}

// Earlier entries win between matches of equal length
var patterns = []Pattern{
	{Name: "Canon", Type: TypeClassical, Numerals: []string{"I", "V", "vi", "iii", "IV", "I", "IV", "V"}},
	{Name: "Pop Progression", Type: TypePop, Numerals: []string{"I", "V", "vi", "IV"}, Rotations: true},
	{Name: "50s Progression", Type: TypePop, Numerals: []string{"I", "vi", "IV", "V"}},
	{Name: "Turnaround", Type: TypeJazz, Numerals: []string{"I", "vi", "ii", "V"}},
	{Name: "Royal Road", Type: TypePop, Numerals: []string{"IV", "V", "iii", "vi"}},
	{Name: "Andalusian Cadence", Type: TypeClassical, Numerals: []string{"i", "VII", "VI", "V"}},
	{Name: "Minor Pop", Type: TypePop, Numerals: []string{"i", "VI", "III", "VII"}, Rotations: true},
	{Name: "Jazz Cadence", Type: TypeJazz, Numerals: []string{"ii", "V", "I"}},
	{Name: "Three-Chord", Type: TypeRock, Numerals: []string{"I", "IV", "V"}},
	{Name: "Mixolydian Vamp", Type: TypeModal, Numerals: []string{"I", "bVII", "IV"}},
	{Name: "Plagal Cadence", Type: TypeCadence, Numerals: []string{"IV", "I"}},
	{Name: "Authentic Cadence", Type: TypeCadence, Numerals: []string{"V", "I"}},
}

// MatchPattern finds the longest named progression appearing in the
// numerals. Numerals marked as breaks (unread or unsupported chords) split
// the sequence; no pattern spans one. ok is false when nothing matches.
func MatchPattern(numerals []string, breaks []bool) (Pattern, bool) {
	segments := split(numerals, breaks)

	var best Pattern
	found := false
	for _, p := range patterns {
		if found && len(p.Numerals) <= len(best.Numerals) {
			continue
		}
		if matchesAny(segments, p) {
			best = p
			found = true
		}
	}
	return best, found
}

func split(numerals []string, breaks []bool) [][]string {
	var segments [][]string
	var current []string
	for i, n := range numerals {
		if i < len(breaks) && breaks[i] {
			if len(current) > 0 {
				segments = append(segments, current)
			}
			current = nil
			continue
		}
		current = append(current, n)
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}
	return segments
}

func matchesAny(segments [][]string, p Pattern) bool {
	variants := [][]string{p.Numerals}
	if p.Rotations {
		for r := 1; r < len(p.Numerals); r++ {
			variants = append(variants, rotate(p.Numerals, r))
		}
	}

	for _, seg := range segments {
		for _, v := range variants {
			if contains(seg, v) {
				return true
			}
		}
	}
	return false
}

func rotate(s []string, r int) []string {
	out := make([]string, 0, len(s))
	out = append(out, s[r:]...)
	return append(out, s[:r]...)
}

func contains(seq, sub []string) bool {
	if len(sub) == 0 || len(sub) > len(seq) {
		return false
	}
outer:
	for i := 0; i+len(sub) <= len(seq); i++ {
		for j := range sub {
			if seq[i+j] != sub[j] {
				continue outer
			}
		}
		return true
	}
	return false
}
