package transpose

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/RyanBlaney/sonido-charts/algorithms/tonal"
	"github.com/RyanBlaney/sonido-charts/chart"
	"github.com/RyanBlaney/sonido-charts/config"
	"github.com/RyanBlaney/sonido-charts/logging"
)

// Pair is one row of a transposition preview
type Pair struct {
	Original   string `json:"original"`
	Transposed string `json:"transposed"`
}

// Transposer shifts chords, keys and chord charts by semitones. It keeps
// only its configuration; every call is independent.
type Transposer struct {
	config    *config.EngineConfig
	tokenizer *chart.Tokenizer
	logger    logging.Logger
}

// NewTransposer creates a transposer; a nil config uses the defaults
func NewTransposer(cfg *config.EngineConfig) *Transposer {
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}

	return &Transposer{
		config:    cfg,
		tokenizer: chart.NewTokenizer(cfg),
		logger: logging.WithFields(logging.Fields{
			"component": "transposer",
		}),
	}
}

// Transpose shifts a chord or key name by any number of semitones. The
// root (and bass) is respelled with the given preference and the suffix is
// kept as written. Key names keep their form: "am" gives "Bm" and
// "A minor" gives "B minor". Names that cannot be read come back unchanged.
func Transpose(name string, semitones int, preferSharps bool) string {
	if chord, err := tonal.ParseChord(name); err == nil {
		return TransposeChord(chord, semitones, preferSharps).String()
	}
	if key, err := tonal.ParseKey(name); err == nil {
		root := tonal.Spell(key.Tonic().Transpose(semitones), preferSharps)
		shifted := tonal.Key{Root: root, Mode: key.Mode}
		if strings.ContainsFunc(strings.TrimSpace(name), unicode.IsSpace) {
			return shifted.String()
		}
		return shifted.Name()
	}
	return name
}

// TransposeChord shifts a parsed chord
func TransposeChord(c tonal.Chord, semitones int, preferSharps bool) tonal.Chord {
	return c.Transpose(semitones, preferSharps)
}

// TransposeKey shifts a key and spells the result with whichever
// enharmonic name has fewer accidentals in its signature; sharps win a tie.
func TransposeKey(name string, semitones int) (tonal.Key, error) {
	key, err := tonal.ParseKey(name)
	if err != nil {
		return tonal.Key{}, err
	}
	return tonal.SimplestSpelling(key.Tonic().Transpose(semitones), key.Mode), nil
}

// TransposeText rewrites every chord in a chart. Text outside chord spans
// is copied byte for byte; unreadable tokens are left as written and
// reported.
func (t *Transposer) TransposeText(content string, semitones int, preferSharps bool) (string, []chart.Diagnostic) {
	res := t.tokenizer.Tokenize(content)
	out := res.Rewrite(func(tok chart.Token) string {
		return TransposeChord(tok.Chord, semitones, preferSharps).String()
	})

	t.logger.Debug("Transposed chart", logging.Fields{
		"semitones":     semitones,
		"prefer_sharps": preferSharps,
		"chords":        len(res.Tokens),
		"diagnostics":   len(res.Diagnostics),
	})

	return out, res.Diagnostics
}

// PreviewTransposition lists each distinct chord of content next to its
// transposed form, in order of first appearance. Chords are distinct by
// their literal text, so "C" and "Cmaj" are separate rows.
func (t *Transposer) PreviewTransposition(content string, semitones int, preferSharps bool) []Pair {
	res := t.tokenizer.Tokenize(content)
	unique := res.Unique()

	pairs := make([]Pair, 0, len(unique))
	for _, tok := range unique {
		pairs = append(pairs, Pair{
			Original:   tok.Text,
			Transposed: TransposeChord(tok.Chord, semitones, preferSharps).String(),
		})
	}
	return pairs
}

// Preview is PreviewTransposition cut to the configured display limit;
// remaining counts the rows left out.
func (t *Transposer) Preview(content string, semitones int, preferSharps bool) ([]Pair, int) {
	return TruncatePreview(t.PreviewTransposition(content, semitones, preferSharps), t.config.PreviewLimit)
}

// TransposeToKey moves a chart from one key to another. Spelling follows
// the target key's signature.
func (t *Transposer) TransposeToKey(content, fromKey, toKey string) (string, []chart.Diagnostic, error) {
	semitones, err := tonal.SemitonesBetween(fromKey, toKey)
	if err != nil {
		return content, nil, fmt.Errorf("transpose %s to %s: %w", fromKey, toKey, err)
	}

	out, diags := t.TransposeText(content, semitones, tonal.PrefersSharps(toKey))
	return out, diags, nil
}

// TransposeText rewrites a chart with the default configuration
func TransposeText(content string, semitones int, preferSharps bool) (string, []chart.Diagnostic) {
	return NewTransposer(nil).TransposeText(content, semitones, preferSharps)
}

// PreviewTransposition previews with the default configuration
func PreviewTransposition(content string, semitones int, preferSharps bool) []Pair {
	return NewTransposer(nil).PreviewTransposition(content, semitones, preferSharps)
}

// TruncatePreview keeps the first limit pairs and reports how many were
// dropped. A limit of 0 keeps everything.
func TruncatePreview(pairs []Pair, limit int) ([]Pair, int) {
	if limit <= 0 || len(pairs) <= limit {
		return pairs, 0
	}
	return pairs[:limit], len(pairs) - limit
}
