package tonal

// KeyProfile represents different key detection profiles
type KeyProfile int

const (
	KeyProfileKrumhansl KeyProfile = iota
	KeyProfileTemperley
	KeyProfileDiatonic
)

// KeyProfileTemplate contains template for key profile
type KeyProfileTemplate struct {
	MajorProfile []float64 `json:"major_profile"`
	MinorProfile []float64 `json:"minor_profile"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
}

var keyProfiles = map[KeyProfile]KeyProfileTemplate{
	// Krumhansl-Schmuckler profiles (empirically derived)
	KeyProfileKrumhansl: {
		MajorProfile: []float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88},
		MinorProfile: []float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17},
		Name:         "Krumhansl-Schmuckler",
		Description:  "Empirical profiles based on listener ratings",
	},
	// Temperley profiles (corpus-based)
	KeyProfileTemperley: {
		MajorProfile: []float64{5.0, 2.0, 3.5, 2.0, 4.5, 4.0, 2.0, 4.5, 2.0, 3.5, 1.5, 4.0},
		MinorProfile: []float64{5.0, 2.0, 3.5, 4.5, 2.0, 4.0, 2.0, 4.5, 3.5, 2.0, 1.5, 4.0},
		Name:         "Temperley",
		Description:  "Statistical profiles from musical corpora",
	},
	KeyProfileDiatonic: {
		MajorProfile: []float64{5.0, 0.0, 3.0, 0.0, 4.0, 3.5, 0.0, 4.5, 0.0, 3.0, 0.0, 2.0},
		MinorProfile: []float64{5.0, 0.0, 3.0, 3.5, 0.0, 3.5, 0.0, 4.5, 3.0, 0.0, 2.0, 0.0},
		Name:         "Diatonic",
		Description:  "Simple diatonic scale weights",
	},
}

// ParseKeyProfile maps a config name to a profile; unknown names select
// Krumhansl.
func ParseKeyProfile(name string) KeyProfile {
	switch name {
	case "temperley":
		return KeyProfileTemperley
	case "diatonic":
		return KeyProfileDiatonic
	default:
		return KeyProfileKrumhansl
	}
}

// Template returns the profile's weights
func (p KeyProfile) Template() KeyProfileTemplate {
	if t, ok := keyProfiles[p]; ok {
		return t
	}
	return keyProfiles[KeyProfileKrumhansl]
}

// ProfileFor returns the 12 weights of the profile rotated so index 0 is C
// for the given key.
func (p KeyProfile) ProfileFor(key Key) []float64 {
	t := p.Template()
	base := t.MajorProfile
	if key.Mode == KeyModeMinor {
		base = t.MinorProfile
	}
	return RotateProfile(base, int(key.Tonic()))
}

// RotateProfile moves a tonic-relative 12-bin profile up by semitones
func RotateProfile(profile []float64, semitones int) []float64 {
	if len(profile) != 12 {
		return profile
	}

	rotated := make([]float64, 12)
	for i := 0; i < 12; i++ {
		rotated[PitchClass(i).Transpose(semitones)] = profile[i]
	}
	return rotated
}
