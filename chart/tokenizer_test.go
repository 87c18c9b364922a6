package chart

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/RyanBlaney/sonido-charts/algorithms/tonal"
	"github.com/RyanBlaney/sonido-charts/config"
)

func TestTokenizeBracketedChords(t *testing.T) {
	src := "[C]Amazing [F]grace, how [C/G]sweet the [G7]sound"
	res := Tokenize(src)

	want := []string{"C", "F", "C/G", "G7"}
	if len(res.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(res.Tokens), len(want), res.Tokens)
	}
	for i, tok := range res.Tokens {
		if tok.Text != want[i] {
			t.Errorf("token %d = %q, want %q", i, tok.Text, want[i])
		}
		if src[tok.Start:tok.End] != tok.Text {
			t.Errorf("token %d span %d:%d = %q, want %q", i, tok.Start, tok.End, src[tok.Start:tok.End], tok.Text)
		}
		if !tok.Bracketed || tok.Index != i {
			t.Errorf("token %d: bracketed=%v index=%d", i, tok.Bracketed, tok.Index)
		}
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestTokenizeReportsBadTokensAndContinues(t *testing.T) {
	src := "[C]one [X]two [N.C.]three [ ]four [Cmaj7#11]five [G]six"
	res := Tokenize(src)

	var texts []string
	for _, tok := range res.Tokens {
		texts = append(texts, tok.Text)
	}
	if strings.Join(texts, ",") != "C,Cmaj7#11,G" {
		t.Errorf("tokens = %v", texts)
	}

	kinds := map[DiagnosticKind]int{}
	for _, d := range res.Diagnostics {
		kinds[d.Kind]++
		if d.Kind == UnparseableChord && d.Text != "" && src[d.Offset:d.Offset+len(d.Text)] != d.Text {
			t.Errorf("diagnostic offset %d does not point at %q", d.Offset, d.Text)
		}
	}
	if kinds[UnparseableChord] != 3 {
		t.Errorf("unparseable diagnostics = %d, want 3 (%v)", kinds[UnparseableChord], res.Diagnostics)
	}
	if kinds[UnsupportedQuality] != 1 {
		t.Errorf("unsupported diagnostics = %d, want 1", kinds[UnsupportedQuality])
	}
}

func TestTokenizeSectionLabels(t *testing.T) {
	src := "[Chorus]\n[C]Amazing [F]grace\n[Bridge]\n[G]how sweet\n[Coda] [Break] [End]"
	res := Tokenize(src)

	var texts []string
	for _, tok := range res.Tokens {
		texts = append(texts, tok.Text)
	}
	if got := strings.Join(texts, " "); got != "C F G" {
		t.Errorf("tokens = %q", got)
	}

	var labels []string
	for _, d := range res.Diagnostics {
		if d.Kind != UnparseableChord {
			t.Errorf("label %q reported as %s", d.Text, d.Kind)
		}
		if src[d.Offset:d.Offset+len(d.Text)] != d.Text {
			t.Errorf("diagnostic offset %d does not point at %q", d.Offset, d.Text)
		}
		labels = append(labels, d.Text)
	}
	if got := strings.Join(labels, " "); got != "Chorus Bridge Coda Break End" {
		t.Errorf("diagnostics = %q", got)
	}
}

func TestTokenizeChordLinesAndDirectives(t *testing.T) {
	src := strings.Join([]string{
		"{title: Amazing Grace [live]}",
		"# comment [D]",
		"G      C    G",
		"Amazing grace, how sweet",
		"| Em  D/F# | C :|",
	}, "\n")

	res := Tokenize(src)

	var texts []string
	for _, tok := range res.Tokens {
		texts = append(texts, tok.Text)
		if src[tok.Start:tok.End] != tok.Text {
			t.Errorf("span mismatch for %q", tok.Text)
		}
		if tok.Bracketed {
			t.Errorf("chord-line token %q marked bracketed", tok.Text)
		}
	}
	if got := strings.Join(texts, " "); got != "G C G Em D/F# C" {
		t.Errorf("tokens = %q", got)
	}
}

func TestTokenizeChordLineDetectionCanBeDisabled(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	cfg.DetectChordLines = false

	res := NewTokenizer(cfg).Tokenize("G C D\n[Em]words")
	if len(res.Tokens) != 1 || res.Tokens[0].Text != "Em" {
		t.Errorf("tokens = %+v", res.Tokens)
	}
}

func TestTokenizeUnterminatedBracket(t *testing.T) {
	res := Tokenize("[C]fine\n[G broken line\n[D]ok")
	if len(res.Tokens) != 2 {
		t.Fatalf("tokens = %+v", res.Tokens)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Offset != len("[C]fine\n") {
		t.Errorf("diagnostics = %+v", res.Diagnostics)
	}
}

func TestTokenizeFullwidth(t *testing.T) {
	res := Tokenize("[Ａｍ７]歌")
	if len(res.Tokens) != 1 {
		t.Fatalf("tokens = %+v diagnostics = %v", res.Tokens, res.Diagnostics)
	}
	if got := res.Tokens[0].Chord.String(); got != "Am7" {
		t.Errorf("chord = %q, want Am7", got)
	}
	if res.Tokens[0].Text != "Ａｍ７" {
		t.Errorf("literal text = %q", res.Tokens[0].Text)
	}
}

func TestTokenizeList(t *testing.T) {
	res := TokenizeList([]string{"C", " G ", "|", "", "xyz", "Am", "F"})

	var got []string
	for _, tok := range res.Tokens {
		got = append(got, tok.Text)
	}
	if strings.Join(got, ",") != "C,G,Am,F" {
		t.Errorf("tokens = %v", got)
	}
	if res.Tokens[1].Index != 1 || res.Tokens[2].Index != 5 {
		t.Errorf("indices = %d, %d", res.Tokens[1].Index, res.Tokens[2].Index)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Offset != 4 || res.Diagnostics[0].Kind != UnparseableChord {
		t.Errorf("diagnostics = %+v", res.Diagnostics)
	}
}

func TestRewriteIdentityAndReplacement(t *testing.T) {
	src := "{c: Verse}\n[C]Amazing [F]grace\nG  D\nhow sweet"
	res := Tokenize(src)

	if got := res.Rewrite(func(tok Token) string { return tok.Text }); got != src {
		t.Errorf("identity rewrite changed text:\n%q\n%q", got, src)
	}

	got := res.Rewrite(func(tok Token) string { return "<" + tok.Text + ">" })
	want := "{c: Verse}\n[<C>]Amazing [<F>]grace\n<G>  <D>\nhow sweet"
	if got != want {
		t.Errorf("rewrite = %q, want %q", got, want)
	}
}

func TestUnique(t *testing.T) {
	res := Tokenize("[C]a [G]b [C]c [Cmaj]d [G]e")
	var got []string
	for _, tok := range res.Unique() {
		got = append(got, tok.Text)
	}
	if strings.Join(got, ",") != "C,G,Cmaj" {
		t.Errorf("unique = %v", got)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want DiagnosticKind
	}{
		{fmt.Errorf("bad: %w", tonal.ErrUnparseableChord), UnparseableChord},
		{fmt.Errorf("odd: %w", tonal.ErrUnsupportedQuality), UnsupportedQuality},
		{fmt.Errorf("key: %w", tonal.ErrInvalidKeyName), InvalidKeyName},
		{errors.New("other"), UnparseableChord},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
