package harmony

import (
	"github.com/RyanBlaney/sonido-charts/algorithms/common"
	"github.com/RyanBlaney/sonido-charts/algorithms/tonal"
	"github.com/RyanBlaney/sonido-charts/chart"
	"github.com/RyanBlaney/sonido-charts/config"
	"github.com/RyanBlaney/sonido-charts/logging"
)

// KeyCandidate is one key scored against a progression
type KeyCandidate struct {
	Key          tonal.Key `json:"key"`
	KeyName      string    `json:"key_name"`
	Score        int       `json:"score"`         // chords whose root is on the scale
	TriadMatches int       `json:"triad_matches"` // chords whose triad fits the degree
	Strength     float64   `json:"strength"`      // root histogram vs key profile
}

// KeyEstimate is the inferred key and every candidate considered
type KeyEstimate struct {
	Key        tonal.Key      `json:"key"`
	KeyName    string         `json:"key_name"`
	Strength   float64        `json:"strength"`
	Candidates []KeyCandidate `json:"candidates"`
}

// ProgressionAnalysis is the functional analysis of a chord sequence
type ProgressionAnalysis struct {
	Key             tonal.Key              `json:"-"`
	KeyName         string                 `json:"key"` // e.g. "C major"
	Scale           []string               `json:"scale"`
	RomanNumerals   []RomanNumeral         `json:"roman_numerals"`
	ProgressionType string                 `json:"progression_type"`
	CommonName      string                 `json:"common_name,omitempty"`
	Confidence      float64                `json:"confidence"`   // diatonic chords / all chords
	KeyStrength     float64                `json:"key_strength"` // profile correlation of the chosen key
	Variations      []ProgressionVariation `json:"variations"`
	Diagnostics     []chart.Diagnostic     `json:"diagnostics,omitempty"`
}

// Symbols returns the numeral symbols in order
func (p ProgressionAnalysis) Symbols() []string {
	out := make([]string, len(p.RomanNumerals))
	for i, rn := range p.RomanNumerals {
		out[i] = rn.Symbol
	}
	return out
}

// Analyzer infers keys, labels progressions and proposes alternatives.
// It keeps only configuration, so one value can serve concurrent calls.
type Analyzer struct {
	config    *config.EngineConfig
	profile   tonal.KeyProfile
	tokenizer *chart.Tokenizer
	logger    logging.Logger
}

// NewAnalyzer creates an analyzer; a nil config uses the defaults
func NewAnalyzer(cfg *config.EngineConfig) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}

	return &Analyzer{
		config:    cfg,
		profile:   tonal.ParseKeyProfile(cfg.KeyProfile),
		tokenizer: chart.NewTokenizer(cfg),
		logger: logging.WithFields(logging.Fields{
			"component": "progression_analyzer",
		}),
	}
}

// AnalyzeProgression analyzes with the default configuration
func AnalyzeProgression(chords []string) ProgressionAnalysis {
	return NewAnalyzer(nil).AnalyzeProgression(chords)
}

// slot is one input entry; chord is only meaningful when parsed is set
type slot struct {
	text      string
	chord     tonal.Chord
	parsed    bool
	supported bool
}

func (a *Analyzer) read(chords []string) ([]slot, []chart.Diagnostic) {
	res := a.tokenizer.TokenizeList(chords)

	slots := make([]slot, len(chords))
	for i, text := range chords {
		slots[i].text = text
	}
	for _, tok := range res.Tokens {
		s := &slots[tok.Index]
		s.chord = tok.Chord
		s.parsed = true
		s.supported = tok.Chord.Kind() != tonal.ChordUnknown
	}
	return slots, res.Diagnostics
}

func parsedChords(slots []slot) []tonal.Chord {
	out := make([]tonal.Chord, 0, len(slots))
	for _, s := range slots {
		if s.parsed {
			out = append(out, s.chord)
		}
	}
	return out
}

// AnalyzeProgression infers the key of a chord sequence and labels every
// entry with a roman numeral. Entries that are not chords keep their
// place as "?" and are reported in Diagnostics.
func (a *Analyzer) AnalyzeProgression(chords []string) ProgressionAnalysis {
	slots, diags := a.read(chords)
	estimate := a.InferKey(parsedChords(slots))
	key := estimate.Key

	numerals := numeralsFor(slots, key)

	bases := make([]string, len(numerals))
	breaks := make([]bool, len(numerals))
	diatonic := 0
	for i, rn := range numerals {
		bases[i] = rn.Base()
		breaks[i] = !slots[i].parsed || !slots[i].supported
		if rn.Diatonic {
			diatonic++
		}
	}

	analysis := ProgressionAnalysis{
		Key:             key,
		KeyName:         key.String(),
		Scale:           key.ScaleNames(),
		RomanNumerals:   numerals,
		ProgressionType: TypeCustom,
		Confidence:      common.Ratio(diatonic, len(chords)),
		KeyStrength:     estimate.Strength,
		Diagnostics:     diags,
	}

	if p, ok := MatchPattern(bases, breaks); ok {
		analysis.ProgressionType = p.Type
		analysis.CommonName = p.Name
	}

	analysis.Variations = a.reharmonize(slots, key, ParseStyle(a.config.ReharmonizationStyle))

	a.logger.Debug("Analyzed progression", logging.Fields{
		"chords":      len(chords),
		"key":         analysis.KeyName,
		"confidence":  analysis.Confidence,
		"common_name": analysis.CommonName,
		"diagnostics": len(diags),
	})

	return analysis
}

func numeralsFor(slots []slot, key tonal.Key) []RomanNumeral {
	numerals := make([]RomanNumeral, len(slots))
	for i, s := range slots {
		if !s.parsed {
			numerals[i] = UnreadNumeral(s.text)
			continue
		}
		numerals[i] = Numeral(s.chord, key)
	}
	return numerals
}

// InferKey scores all 24 keys against the chords. The key with the most
// chord roots on its scale wins; ties go to the key of the first chord,
// then to the key whose triads fit more chords, then to the stronger
// profile correlation, then to the earlier key in AllKeys order.
func (a *Analyzer) InferKey(chords []tonal.Chord) KeyEstimate {
	keys := tonal.AllKeys()
	if len(chords) == 0 {
		return KeyEstimate{Key: keys[0], KeyName: keys[0].String()}
	}

	histogram := make([]float64, 12)
	for _, c := range chords {
		histogram[c.Root.PitchClass.Normalize()]++
	}

	first := firstChordKey(chords[0])

	candidates := make([]KeyCandidate, 0, len(keys))
	best := -1
	for _, key := range keys {
		cand := KeyCandidate{
			Key:      key,
			KeyName:  key.String(),
			Strength: common.Correlation(histogram, a.profile.ProfileFor(key)),
		}
		for _, c := range chords {
			degree := key.Degree(c.Root.PitchClass)
			if degree == 0 {
				continue
			}
			cand.Score++
			if triadOf(c) == DiatonicTriad(key, degree) {
				cand.TriadMatches++
			}
		}
		candidates = append(candidates, cand)

		if best < 0 || better(cand, candidates[best], first) {
			best = len(candidates) - 1
		}
	}

	chosen := candidates[best]
	return KeyEstimate{
		Key:        chosen.Key,
		KeyName:    chosen.KeyName,
		Strength:   chosen.Strength,
		Candidates: candidates,
	}
}

func better(a, b KeyCandidate, first tonal.Key) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	aFirst, bFirst := sameKey(a.Key, first), sameKey(b.Key, first)
	if aFirst != bFirst {
		return aFirst
	}
	if a.TriadMatches != b.TriadMatches {
		return a.TriadMatches > b.TriadMatches
	}
	return a.Strength > b.Strength
}

func firstChordKey(c tonal.Chord) tonal.Key {
	mode := tonal.KeyModeMajor
	if t := triadOf(c); t == tonal.TriadMinor || t == tonal.TriadDiminished {
		mode = tonal.KeyModeMinor
	}
	return tonal.NewKey(c.Root.PitchClass, mode)
}

func sameKey(a, b tonal.Key) bool {
	return a.Mode == b.Mode && a.Tonic().Normalize() == b.Tonic().Normalize()
}
