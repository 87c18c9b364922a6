package chart

import (
	"errors"
	"fmt"

	"github.com/RyanBlaney/sonido-charts/algorithms/tonal"
)

// DiagnosticKind classifies a non-fatal problem found while reading input
type DiagnosticKind int

const (
	UnparseableChord DiagnosticKind = iota
	UnsupportedQuality
	InvalidKeyName
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnparseableChord:
		return "unparseable_chord"
	case UnsupportedQuality:
		return "unsupported_quality"
	case InvalidKeyName:
		return "invalid_key_name"
	default:
		return "unknown"
	}
}

// Diagnostic reports a token that was skipped or only partly understood.
// Offset is a byte offset into the source text, or the element index for
// list input.
type Diagnostic struct {
	Kind   DiagnosticKind `json:"kind"`
	Offset int            `json:"offset"`
	Text   string         `json:"text"`
	Err    error          `json:"-"`
}

func (d Diagnostic) String() string {
	if d.Err != nil {
		return fmt.Sprintf("%s at %d (%q): %v", d.Kind, d.Offset, d.Text, d.Err)
	}
	return fmt.Sprintf("%s at %d (%q)", d.Kind, d.Offset, d.Text)
}

// MarshalText lets diagnostics print in JSON output
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf maps an engine error to its diagnostic kind
func KindOf(err error) DiagnosticKind {
	switch {
	case errors.Is(err, tonal.ErrUnsupportedQuality):
		return UnsupportedQuality
	case errors.Is(err, tonal.ErrUnparseableChord):
		return UnparseableChord
	case errors.Is(err, tonal.ErrInvalidKeyName):
		return InvalidKeyName
	default:
		return UnparseableChord
	}
}
