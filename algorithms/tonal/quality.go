package tonal

import "strings"

// ChordQuality represents the quality/type of a chord
type ChordQuality int

const (
	ChordMajor ChordQuality = iota
	ChordMinor
	ChordDiminished
	ChordAugmented
	ChordSus2
	ChordSus4
	ChordSixth
	ChordMinSixth
	ChordMaj7
	ChordMin7
	ChordDom7
	ChordMinMaj7
	ChordAug7
	ChordDim7
	ChordHalfDim7
	ChordDom7Sus4
	ChordAdd9
	ChordMaj9
	ChordMin9
	ChordDom9
	ChordMaj11
	ChordMin11
	ChordDom11
	ChordMaj13
	ChordMin13
	ChordDom13
	ChordPowerChord // 🤘
	ChordUnknown
)

// TriadQuality is the triad a chord is built on; it decides roman numeral
// casing and whether a chord fits a scale degree.
type TriadQuality int

const (
	TriadMajor TriadQuality = iota
	TriadMinor
	TriadDiminished
	TriadAugmented
)

func (t TriadQuality) String() string {
	switch t {
	case TriadMinor:
		return "minor"
	case TriadDiminished:
		return "diminished"
	case TriadAugmented:
		return "augmented"
	default:
		return "major"
	}
}

type qualityInfo struct {
	triad   TriadQuality
	seventh bool
}

var qualityInfos = map[ChordQuality]qualityInfo{
	ChordMajor:      {TriadMajor, false},
	ChordMinor:      {TriadMinor, false},
	ChordDiminished: {TriadDiminished, false},
	ChordAugmented:  {TriadAugmented, false},
	ChordSus2:       {TriadMajor, false},
	ChordSus4:       {TriadMajor, false},
	ChordSixth:      {TriadMajor, false},
	ChordMinSixth:   {TriadMinor, false},
	ChordMaj7:       {TriadMajor, true},
	ChordMin7:       {TriadMinor, true},
	ChordDom7:       {TriadMajor, true},
	ChordMinMaj7:    {TriadMinor, true},
	ChordAug7:       {TriadAugmented, true},
	ChordDim7:       {TriadDiminished, true},
	ChordHalfDim7:   {TriadDiminished, true},
	ChordDom7Sus4:   {TriadMajor, true},
	ChordAdd9:       {TriadMajor, false},
	ChordMaj9:       {TriadMajor, true},
	ChordMin9:       {TriadMinor, true},
	ChordDom9:       {TriadMajor, true},
	ChordMaj11:      {TriadMajor, true},
	ChordMin11:      {TriadMinor, true},
	ChordDom11:      {TriadMajor, true},
	ChordMaj13:      {TriadMajor, true},
	ChordMin13:      {TriadMinor, true},
	ChordDom13:      {TriadMajor, true},
	ChordPowerChord: {TriadMajor, false},
}

// Suffix spellings seen in chord charts
var suffixQualities = map[string]ChordQuality{
	"": ChordMajor, "M": ChordMajor, "maj": ChordMajor, "major": ChordMajor,
	"m": ChordMinor, "min": ChordMinor, "mi": ChordMinor, "-": ChordMinor, "minor": ChordMinor,
	"dim": ChordDiminished, "°": ChordDiminished, "o": ChordDiminished,
	"aug": ChordAugmented, "+": ChordAugmented, "#5": ChordAugmented,
	"sus2": ChordSus2, "2": ChordSus2,
	"sus4": ChordSus4, "sus": ChordSus4, "4": ChordSus4,
	"6": ChordSixth, "maj6": ChordSixth, "6/9": ChordSixth, "69": ChordSixth,
	"m6": ChordMinSixth, "min6": ChordMinSixth, "-6": ChordMinSixth,
	"maj7": ChordMaj7, "M7": ChordMaj7, "Δ": ChordMaj7, "Δ7": ChordMaj7, "ma7": ChordMaj7,
	"m7": ChordMin7, "min7": ChordMin7, "mi7": ChordMin7, "-7": ChordMin7,
	"7": ChordDom7, "dom7": ChordDom7,
	"mMaj7": ChordMinMaj7, "mM7": ChordMinMaj7, "m(maj7)": ChordMinMaj7, "minmaj7": ChordMinMaj7,
	"aug7": ChordAug7, "+7": ChordAug7, "7#5": ChordAug7, "7+5": ChordAug7,
	"dim7": ChordDim7, "°7": ChordDim7, "o7": ChordDim7,
	"m7b5": ChordHalfDim7, "ø": ChordHalfDim7, "ø7": ChordHalfDim7, "min7b5": ChordHalfDim7, "-7b5": ChordHalfDim7,
	"7sus4": ChordDom7Sus4, "7sus": ChordDom7Sus4,
	"add9": ChordAdd9, "add2": ChordAdd9, "2add": ChordAdd9,
	"maj9": ChordMaj9, "M9": ChordMaj9,
	"m9": ChordMin9, "min9": ChordMin9, "-9": ChordMin9,
	"9": ChordDom9,
	"maj11": ChordMaj11, "M11": ChordMaj11,
	"m11": ChordMin11, "min11": ChordMin11,
	"11": ChordDom11,
	"maj13": ChordMaj13, "M13": ChordMaj13,
	"m13": ChordMin13, "min13": ChordMin13,
	"13": ChordDom13,
	"5": ChordPowerChord,
}

// ClassifySuffix maps a chord suffix to a quality; ChordUnknown when the
// suffix is not a recognised spelling.
func ClassifySuffix(suffix string) ChordQuality {
	if q, ok := suffixQualities[suffix]; ok {
		return q
	}
	// Parenthesised alterations such as "7(b9)" keep the base quality
	if i := strings.IndexByte(suffix, '('); i > 0 {
		if q, ok := suffixQualities[suffix[:i]]; ok && q != ChordMajor {
			return q
		}
	}
	return ChordUnknown
}

// Triad returns the triad family of a quality
func (q ChordQuality) Triad() TriadQuality {
	return qualityInfos[q].triad
}

// HasSeventh reports whether the quality carries a seventh
func (q ChordQuality) HasSeventh() bool {
	return qualityInfos[q].seventh
}

func (q ChordQuality) String() string {
	return GetChordQualityName(q)
}

// GetChordQualityName returns the human-readable name for a chord quality
func GetChordQualityName(quality ChordQuality) string {
	names := map[ChordQuality]string{
		ChordMajor:      "major",
		ChordMinor:      "minor",
		ChordDiminished: "diminished",
		ChordAugmented:  "augmented",
		ChordSus2:       "sus2",
		ChordSus4:       "sus4",
		ChordSixth:      "sixth",
		ChordMinSixth:   "minor-sixth",
		ChordMaj7:       "major7",
		ChordMin7:       "minor7",
		ChordDom7:       "dominant7",
		ChordMinMaj7:    "minor-major7",
		ChordAug7:       "augmented7",
		ChordDim7:       "diminished7",
		ChordHalfDim7:   "half-diminished7",
		ChordDom7Sus4:   "dominant7-sus4",
		ChordAdd9:       "add9",
		ChordMaj9:       "major9",
		ChordMin9:       "minor9",
		ChordDom9:       "dominant9",
		ChordMaj11:      "major11",
		ChordMin11:      "minor11",
		ChordDom11:      "dominant11",
		ChordMaj13:      "major13",
		ChordMin13:      "minor13",
		ChordDom13:      "dominant13",
		ChordPowerChord: "power",
		ChordUnknown:    "unknown",
	}

	if name, exists := names[quality]; exists {
		return name
	}
	return "unknown"
}

// TriadSuffix returns the plain chart suffix for a triad family
func TriadSuffix(t TriadQuality) string {
	switch t {
	case TriadMinor:
		return "m"
	case TriadDiminished:
		return "dim"
	case TriadAugmented:
		return "aug"
	default:
		return ""
	}
}

// SeventhSuffix returns the chart suffix of the diatonic seventh chord
// built on a triad; dominant selects "7" over "maj7" for major triads.
func SeventhSuffix(t TriadQuality, dominant bool) string {
	switch t {
	case TriadMinor:
		return "m7"
	case TriadDiminished:
		return "m7b5"
	case TriadAugmented:
		return "aug7"
	default:
		if dominant {
			return "7"
		}
		return "maj7"
	}
}

// triad intervals above the root
var triadIntervals = map[TriadQuality][3]int{
	TriadMajor:      {0, 4, 7},
	TriadMinor:      {0, 3, 7},
	TriadDiminished: {0, 3, 6},
	TriadAugmented:  {0, 4, 8},
}

// TriadTones returns the three pitch classes of a triad on root
func TriadTones(root PitchClass, t TriadQuality) []PitchClass {
	intervals := triadIntervals[t]
	tones := make([]PitchClass, 0, len(intervals))
	for _, iv := range intervals {
		tones = append(tones, root.Transpose(iv))
	}
	return tones
}
