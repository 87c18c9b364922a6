package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Style names accepted by the reharmonizer
const (
	StyleSimple      = "simple"
	StyleBalanced    = "balanced"
	StyleJazz        = "jazz"
	StyleAdventurous = "adventurous"
)

// EngineConfig configures transposition and progression analysis
type EngineConfig struct {
	// Spelling used when a caller gives no preference
	PreferSharps bool `json:"prefer_sharps"`

	// Tokenizer
	DetectChordLines bool `json:"detect_chord_lines"` // chord-over-lyrics lines without brackets

	// Transposition preview
	PreviewLimit int `json:"preview_limit"` // pairs shown before the remainder count

	// Progression analysis
	KeyProfile           string `json:"key_profile"` // "krumhansl", "temperley", "diatonic"
	MaxSuggestions       int    `json:"max_suggestions"`
	MaxVariations        int    `json:"max_variations"`
	ReharmonizationStyle string `json:"reharmonization_style"` // "simple", "balanced", "jazz", "adventurous"

	LogLevel string `json:"log_level"`
}

// DefaultEngineConfig returns sensible defaults
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		PreferSharps:         true,
		DetectChordLines:     true,
		PreviewLimit:         10,
		KeyProfile:           "krumhansl",
		MaxSuggestions:       3,
		MaxVariations:        4,
		ReharmonizationStyle: StyleBalanced,
		LogLevel:             "info",
	}
}

// StyleOptimizedConfig returns defaults tuned for a reharmonization style
func StyleOptimizedConfig(style string) *EngineConfig {
	cfg := DefaultEngineConfig()
	cfg.ReharmonizationStyle = style

	switch style {
	case StyleSimple:
		cfg.MaxVariations = 2
		cfg.MaxSuggestions = 2
	case StyleJazz:
		cfg.MaxVariations = 5
		cfg.KeyProfile = "temperley"
	case StyleAdventurous:
		cfg.MaxVariations = 6
		cfg.MaxSuggestions = 5
	default:
		// balanced keeps the defaults
		cfg.ReharmonizationStyle = StyleBalanced
	}

	return cfg
}

// LoadEngineConfig reads a JSON file over the defaults. Keys missing from
// the file keep their default values.
func LoadEngineConfig(path string) (*EngineConfig, error) {
	cfg := DefaultEngineConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges
func (c *EngineConfig) Validate() error {
	if c.PreviewLimit < 0 {
		return fmt.Errorf("preview_limit must not be negative: %d", c.PreviewLimit)
	}
	if c.MaxSuggestions < 0 {
		return fmt.Errorf("max_suggestions must not be negative: %d", c.MaxSuggestions)
	}
	if c.MaxVariations < 0 {
		return fmt.Errorf("max_variations must not be negative: %d", c.MaxVariations)
	}

	switch c.ReharmonizationStyle {
	case StyleSimple, StyleBalanced, StyleJazz, StyleAdventurous:
	default:
		return fmt.Errorf("unknown reharmonization_style: %q", c.ReharmonizationStyle)
	}

	switch c.KeyProfile {
	case "krumhansl", "temperley", "diatonic":
	default:
		return fmt.Errorf("unknown key_profile: %q", c.KeyProfile)
	}

	return nil
}
