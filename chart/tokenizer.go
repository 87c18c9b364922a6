package chart

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/RyanBlaney/sonido-charts/algorithms/tonal"
	"github.com/RyanBlaney/sonido-charts/config"
	"github.com/RyanBlaney/sonido-charts/logging"
)

// Token is one chord found in a source text or chord list
type Token struct {
	Chord     tonal.Chord `json:"chord"`
	Text      string      `json:"text"`  // literal chord text as written
	Start     int         `json:"start"` // byte span of Text in the source
	End       int         `json:"end"`
	Index     int         `json:"index"` // token ordinal; element index for list input
	Bracketed bool        `json:"bracketed"`
}

// Result holds the tokens and diagnostics for one source
type Result struct {
	Source      string       `json:"-"`
	Tokens      []Token      `json:"tokens"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Tokenizer reads chord-annotated text. It holds no state between calls.
type Tokenizer struct {
	detectChordLines bool
	logger           logging.Logger
}

// NewTokenizer creates a tokenizer; a nil config uses the defaults
func NewTokenizer(cfg *config.EngineConfig) *Tokenizer {
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}

	return &Tokenizer{
		detectChordLines: cfg.DetectChordLines,
		logger: logging.WithFields(logging.Fields{
			"component": "chord_tokenizer",
		}),
	}
}

// Tokenize reads text with the default tokenizer
func Tokenize(text string) Result {
	return NewTokenizer(nil).Tokenize(text)
}

// TokenizeList reads bare chord names with the default tokenizer
func TokenizeList(chords []string) Result {
	return NewTokenizer(nil).TokenizeList(chords)
}

// Tokenize scans a chord chart. Bracketed chords ("[Am7]") are read
// anywhere in a line; {directive} spans and "#" comment lines are
// skipped. A line without brackets whose every word is a chord is taken
// as a chord line above the lyrics. Bad tokens become diagnostics and
// scanning carries on.
func (t *Tokenizer) Tokenize(text string) Result {
	res := Result{Source: text}

	lineStart := 0
	for lineStart <= len(text) {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += lineStart
		}

		t.scanLine(&res, text, lineStart, lineEnd)

		if lineEnd == len(text) {
			break
		}
		lineStart = lineEnd + 1
	}

	for i := range res.Tokens {
		res.Tokens[i].Index = i
	}

	if len(res.Diagnostics) > 0 {
		t.logger.Debug("Tokenized with diagnostics", logging.Fields{
			"tokens":      len(res.Tokens),
			"diagnostics": len(res.Diagnostics),
		})
	}

	return res
}

func (t *Tokenizer) scanLine(res *Result, text string, start, end int) {
	line := text[start:end]
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		return
	}

	sawBracket := false
	i := start
	for i < end {
		switch text[i] {
		case '{':
			closing := strings.IndexByte(text[i:end], '}')
			if closing < 0 {
				return // unterminated directive swallows the line
			}
			i += closing + 1

		case '[':
			sawBracket = true
			closing := strings.IndexByte(text[i+1:end], ']')
			if closing < 0 {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					Kind:   UnparseableChord,
					Offset: i,
					Text:   text[i:end],
					Err:    tonal.ErrUnparseableChord,
				})
				return
			}
			t.bracketToken(res, text, i+1, i+1+closing)
			i += closing + 2

		default:
			i++
		}
	}

	if !sawBracket && t.detectChordLines && !strings.ContainsAny(line, "{}") {
		t.chordLine(res, text, start, end)
	}
}

// bracketToken reads text[start:end], the inside of one bracket pair
func (t *Tokenizer) bracketToken(res *Result, text string, start, end int) {
	raw := text[start:end]
	lead := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
	literal := strings.TrimSpace(raw)
	offset := start + lead

	chord, err := tonal.ParseChord(fold(literal))
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Kind:   KindOf(err),
			Offset: offset,
			Text:   literal,
			Err:    err,
		})
		t.logger.Debug("Skipped unparseable chord", logging.Fields{
			"offset": offset,
			"text":   literal,
		})
		return
	}

	if _, err := chord.Classify(); err != nil {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Kind:   KindOf(err),
			Offset: offset,
			Text:   literal,
			Err:    err,
		})
	}

	res.Tokens = append(res.Tokens, Token{
		Chord:     chord,
		Text:      literal,
		Start:     offset,
		End:       offset + len(literal),
		Bracketed: true,
	})
}

// chordLine accepts the line only when every word is a chord with a known
// quality or a bar symbol.
func (t *Tokenizer) chordLine(res *Result, text string, start, end int) {
	var tokens []Token

	for _, w := range splitWords(text[start:end]) {
		if isBarSymbol(w.text) {
			continue
		}
		chord, err := tonal.ParseChord(fold(w.text))
		if err != nil || chord.Kind() == tonal.ChordUnknown {
			return
		}
		tokens = append(tokens, Token{
			Chord: chord,
			Text:  w.text,
			Start: start + w.start,
			End:   start + w.start + len(w.text),
		})
	}

	res.Tokens = append(res.Tokens, tokens...)
}

// TokenizeList reads one chord per element. Blank elements and bar
// symbols are skipped; bad elements are reported with their index.
// Token spans are relative to their element, so list results have no
// Source to rewrite.
func (t *Tokenizer) TokenizeList(chords []string) Result {
	var res Result

	for i, raw := range chords {
		literal := strings.TrimSpace(raw)
		if literal == "" || isBarSymbol(literal) {
			continue
		}
		lead := strings.Index(raw, literal)

		chord, err := tonal.ParseChord(fold(literal))
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Kind:   KindOf(err),
				Offset: i,
				Text:   literal,
				Err:    err,
			})
			continue
		}
		if _, err := chord.Classify(); err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Kind:   KindOf(err),
				Offset: i,
				Text:   literal,
				Err:    err,
			})
		}

		res.Tokens = append(res.Tokens, Token{
			Chord: chord,
			Text:  literal,
			Start: lead,
			End:   lead + len(literal),
			Index: i,
		})
	}

	return res
}

// Rewrite rebuilds the source with each token's span replaced by
// replace(token). Every byte outside token spans is copied verbatim.
func (r Result) Rewrite(replace func(Token) string) string {
	var b strings.Builder
	b.Grow(len(r.Source))

	pos := 0
	for _, tok := range r.Tokens {
		if tok.Start < pos || tok.End > len(r.Source) {
			continue
		}
		b.WriteString(r.Source[pos:tok.Start])
		b.WriteString(replace(tok))
		pos = tok.End
	}
	b.WriteString(r.Source[pos:])

	return b.String()
}

// Chords returns the parsed chords in order
func (r Result) Chords() []tonal.Chord {
	chords := make([]tonal.Chord, 0, len(r.Tokens))
	for _, tok := range r.Tokens {
		chords = append(chords, tok.Chord)
	}
	return chords
}

// Unique returns the first token for each distinct literal chord text
func (r Result) Unique() []Token {
	seen := make(map[string]bool, len(r.Tokens))
	unique := make([]Token, 0, len(r.Tokens))
	for _, tok := range r.Tokens {
		if seen[tok.Text] {
			continue
		}
		seen[tok.Text] = true
		unique = append(unique, tok)
	}
	return unique
}

type word struct {
	text  string
	start int
}

// splitWords splits on whitespace, bar lines and repeat colons
func splitWords(line string) []word {
	var words []word
	start := -1
	for i, r := range line {
		sep := unicode.IsSpace(r) || r == '|' || r == ':'
		switch {
		case sep && start >= 0:
			words = append(words, word{text: line[start:i], start: start})
			start = -1
		case !sep && start < 0:
			start = i
		}
	}
	if start >= 0 {
		words = append(words, word{text: line[start:], start: start})
	}
	return words
}

func isBarSymbol(s string) bool {
	switch s {
	case "|", "||", "|:", ":|", "%", "/", "-", "x2", "x3", "x4", "(x2)", "(x3)", "(x4)":
		return true
	}
	return false
}

// fold maps fullwidth forms (IME or OCR input) to their ASCII equivalents
func fold(s string) string {
	return width.Fold.String(s)
}
