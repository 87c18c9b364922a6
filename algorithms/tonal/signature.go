package tonal

// Key signatures by circle-of-fifths position: positive counts are sharps,
// negative counts are flats.
var majorSignatures = map[string]int{
	"C": 0, "G": 1, "D": 2, "A": 3, "E": 4, "B": 5, "F#": 6, "C#": 7,
	"F": -1, "Bb": -2, "Eb": -3, "Ab": -4, "Db": -5, "Gb": -6, "Cb": -7,
}

var minorSignatures = map[string]int{
	"A": 0, "E": 1, "B": 2, "F#": 3, "C#": 4, "G#": 5, "D#": 6, "A#": 7,
	"D": -1, "G": -2, "C": -3, "F": -4, "Bb": -5, "Eb": -6, "Ab": -7,
}

// Spelling for roots the signature tables do not list (e.g. "A#" major),
// indexed by pitch class.
var (
	majorSharpsByPitch = [12]bool{true, false, true, false, true, false, true, true, false, true, false, true}
	minorSharpsByPitch = [12]bool{false, true, false, false, true, false, true, false, true, true, false, true}
)

func defaultSharpsByPitch(pc PitchClass, mode KeyMode) bool {
	if mode == KeyModeMinor {
		return minorSharpsByPitch[pc.Normalize()]
	}
	return majorSharpsByPitch[pc.Normalize()]
}

// Signature returns the number of sharps (positive) or flats (negative)
// in the key signature. The second value is false when the key's spelling
// is not one of the 30 standard signatures.
func (k Key) Signature() (int, bool) {
	table := majorSignatures
	if k.Mode == KeyModeMinor {
		table = minorSignatures
	}
	sig, ok := table[k.Root.Name]
	return sig, ok
}

// PrefersSharps reports whether chords in this key are written with sharps
func (k Key) PrefersSharps() bool {
	if sig, ok := k.Signature(); ok {
		return sig >= 0
	}
	return defaultSharpsByPitch(k.Tonic(), k.Mode)
}

// PrefersSharps looks up the sharp/flat convention for a key name. Keys
// with sharp signatures (and C / Am) use sharps, flat-signature keys use
// flats. Unreadable names fall back to sharps.
func PrefersSharps(keyName string) bool {
	key, err := ParseKey(keyName)
	if err != nil {
		return true
	}
	return key.PrefersSharps()
}

// SimplestSpelling picks between the sharp and flat spelling of a key root
// the one with fewer accidentals in its signature; sharps win a tie.
func SimplestSpelling(pc PitchClass, mode KeyMode) Key {
	sharp := Key{Root: Spell(pc, true), Mode: mode}
	flat := Key{Root: Spell(pc, false), Mode: mode}
	if sharp.Root.Name == flat.Root.Name {
		return sharp
	}

	sharpSig, sharpOK := sharp.Signature()
	flatSig, flatOK := flat.Signature()
	switch {
	case sharpOK && !flatOK:
		return sharp
	case flatOK && !sharpOK:
		return flat
	case !sharpOK && !flatOK:
		return NewKey(pc, mode)
	}

	if abs(flatSig) < abs(sharpSig) {
		return flat
	}
	return sharp
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
