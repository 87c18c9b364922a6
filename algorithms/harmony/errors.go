package harmony

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RyanBlaney/sonido-charts/algorithms/tonal"
	"github.com/RyanBlaney/sonido-charts/chart"
	"github.com/RyanBlaney/sonido-charts/logging"
)

// Suggestion reasons
const (
	ReasonCloserDiatonic = "closer diatonic chord"
	ReasonSubstitution   = "common substitution"
)

// Suggestion is an in-key replacement for a chord
type Suggestion struct {
	Chord      string  `json:"chord"`
	Numeral    string  `json:"numeral"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// ChordError is a chord the key does not explain
type ChordError struct {
	Index       int          `json:"index"`
	Chord       string       `json:"chord"`
	Numeral     string       `json:"numeral"`
	Suggestions []Suggestion `json:"suggestions"`
}

// ErrorReport lists the chords that fall outside the key
type ErrorReport struct {
	Key         tonal.Key          `json:"-"`
	KeyName     string             `json:"key"`
	Errors      []ChordError       `json:"errors"`
	Diagnostics []chart.Diagnostic `json:"diagnostics,omitempty"`
}

// DetectErrors checks chords with the default configuration
func DetectErrors(chords []string, key string) ErrorReport {
	return NewAnalyzer(nil).DetectErrors(chords, key)
}

// DetectErrors flags every non-diatonic chord and proposes in-key
// replacements, best first. An empty key name means infer it; an
// unreadable one is reported and the key is inferred instead.
func (a *Analyzer) DetectErrors(chords []string, keyName string) ErrorReport {
	slots, diags := a.read(chords)

	var key tonal.Key
	inferred := true
	if strings.TrimSpace(keyName) != "" {
		k, err := tonal.ParseKey(keyName)
		if err != nil {
			diags = append(diags, chart.Diagnostic{
				Kind:   chart.KindOf(err),
				Offset: -1,
				Text:   keyName,
				Err:    err,
			})
		} else {
			key, inferred = k, false
		}
	}
	if inferred {
		key = a.InferKey(parsedChords(slots)).Key
	}

	report := ErrorReport{
		Key:         key,
		KeyName:     key.String(),
		Errors:      []ChordError{},
		Diagnostics: diags,
	}

	for i, s := range slots {
		if !s.parsed {
			continue
		}
		rn := Numeral(s.chord, key)
		if rn.Diatonic {
			continue
		}
		report.Errors = append(report.Errors, ChordError{
			Index:       i,
			Chord:       s.text,
			Numeral:     rn.Symbol,
			Suggestions: a.suggest(s.chord, rn, key),
		})
	}

	a.logger.Debug("Detected chord errors", logging.Fields{
		"key":      report.KeyName,
		"inferred": inferred,
		"errors":   len(report.Errors),
	})

	return report
}

// Candidate confidences
const (
	confSameRoot      = 0.9
	confNeighbor      = 0.7
	confFarNeighbor   = 0.6
	confSubstitution  = 0.5
	confPerSharedTone = 0.05
)

func (a *Analyzer) suggest(c tonal.Chord, rn RomanNumeral, key tonal.Key) []Suggestion {
	var out []Suggestion
	seen := map[string]bool{c.String(): true}

	add := func(degree int, reason string, conf float64) {
		dc := DiatonicChord(key, degree, rn.Seventh)
		name := dc.String()
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, Suggestion{
			Chord:      name,
			Numeral:    Numeral(dc, key).Symbol,
			Reason:     reason,
			Confidence: conf,
		})
	}

	root := c.Root.PitchClass
	triad := triadOf(c)

	if degree := key.Degree(root); degree != 0 {
		// Root fits, quality does not
		add(degree, ReasonCloserDiatonic, confSameRoot)
	} else {
		for _, step := range []int{-1, 1} {
			degree := key.Degree(root.Transpose(step))
			if degree == 0 {
				continue
			}
			conf := confFarNeighbor
			if DiatonicTriad(key, degree) == triad {
				conf = confNeighbor
			}
			add(degree, ReasonCloserDiatonic, conf)
		}
	}

	tones := c.Tones()
	for degree := 1; degree <= 7; degree++ {
		dc := DiatonicChord(key, degree, false)
		shared := sharedTones(tones, dc.Tones())
		if shared >= 2 {
			add(degree, ReasonSubstitution, confSubstitution+confPerSharedTone*float64(shared-2))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})

	if limit := a.config.MaxSuggestions; limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sharedTones(a, b []tonal.PitchClass) int {
	n := 0
	for _, x := range a {
		for _, y := range b {
			if x.Normalize() == y.Normalize() {
				n++
				break
			}
		}
	}
	return n
}

func (e ChordError) String() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%s (%s) at %d", e.Chord, e.Numeral, e.Index)
	}
	return fmt.Sprintf("%s (%s) at %d: try %s, %s", e.Chord, e.Numeral, e.Index,
		e.Suggestions[0].Chord, e.Suggestions[0].Reason)
}
