package tonal

import "errors"

var (
	// ErrInvalidKeyName is returned when a key or note root cannot be read
	ErrInvalidKeyName = errors.New("invalid key name")

	// ErrUnparseableChord is returned when a token is not a chord
	ErrUnparseableChord = errors.New("unparseable chord")

	// ErrUnsupportedQuality marks chord suffixes the analyzers do not model.
	// Such chords still transpose; they are left out of pattern matching.
	ErrUnsupportedQuality = errors.New("unsupported chord quality")
)
