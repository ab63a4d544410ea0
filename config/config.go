package config

import (
	"fmt"
	"sort"

	"github.com/kinoshitayoshihiro/haru/model"
)

// FamilyDefaults carries one instrument family's keyword tables and its
// tier-4 parameter defaults. Every fallback field is a literal fixed in
// defaults.go, never a reference that may be absent at run time.
type FamilyDefaults struct {
	// emotion keyword -> style keyword; must contain a "default" entry.
	EmotionToStyle map[string]string
	// Piano only: the left hand has its own table. Nil elsewhere.
	EmotionToStyleLH map[string]string

	// style keyword -> rhythm library key.
	StyleToRhythmKey map[string]string

	// intensity keyword -> velocity range; 2-tuple [lo, hi], or for piano
	// a 4-tuple [lh_lo, lh_hi, rh_lo, rh_hi]. Must contain "default".
	IntensityToVelocity map[string][]int

	// Literal last resorts, resolved at definition time.
	FallbackStyle       string
	FallbackStyleLH     string
	FallbackRhythmKey   string
	FallbackRhythmKeyLH string
	FallbackVelocity    []int

	// Tier-4 of the parameter cascade.
	Params map[string]any
}

// Config is the immutable per-run configuration. It is constructed once
// by the CLI (defaults + settings file + chordmap globals + flags) and
// passed by reference everywhere; nothing mutates it after the run
// starts.
type Config struct {
	GlobalTempo         float64
	GlobalTimeSignature string
	GlobalKeyTonic      string
	GlobalKeyMode       string

	PartsToGenerate map[string]bool

	OutputDir              string
	OutputFilename         string // explicit override; empty means use template
	OutputFilenameTemplate string // with a {song_title} placeholder

	// Lenient substitutes documented literal defaults for missing
	// parameters and rest placeholders for malformed blocks instead of
	// failing the run.
	Lenient bool

	Seed int64

	// Tier-1 of the cascade, per family, from --set flags.
	CLIPartParams map[string]map[string]any

	Defaults map[string]*FamilyDefaults
}

// Family returns the defaults table for the named family, or nil.
func (c *Config) Family(name string) *FamilyDefaults {
	return c.Defaults[name]
}

// EnabledFamilies returns the families to generate, in the fixed model
// order.
func (c *Config) EnabledFamilies() []string {
	var out []string
	for _, fam := range model.Families {
		if c.PartsToGenerate[fam] {
			out = append(out, fam)
		}
	}
	return out
}

// ApplyChordMapGlobals overlays the chordmap document's global settings
// onto the config. CLI flags are applied afterwards by the caller, so
// the cascade CLI > chordmap > defaults holds.
func (c *Config) ApplyChordMapGlobals(cm *model.ChordMap) {
	if cm.GlobalTempo > 0 {
		c.GlobalTempo = cm.GlobalTempo
	}
	if cm.GlobalTimeSignature != "" {
		c.GlobalTimeSignature = cm.GlobalTimeSignature
	}
	if cm.GlobalKeyTonic != "" {
		c.GlobalKeyTonic = cm.GlobalKeyTonic
	}
	if cm.GlobalKeyMode != "" {
		c.GlobalKeyMode = cm.GlobalKeyMode
	}
}

// Validate checks every literal-defaults table at load time and reports
// all defects at once, so no lookup can dereference an undefined entry
// later in the run.
func (c *Config) Validate() error {
	var problems []string
	for _, fam := range model.Families {
		d := c.Defaults[fam]
		if d == nil {
			problems = append(problems, fmt.Sprintf("%s: no defaults table", fam))
			continue
		}
		if _, ok := d.EmotionToStyle["default"]; !ok {
			problems = append(problems, fmt.Sprintf("%s: emotion table has no \"default\" entry", fam))
		}
		if d.EmotionToStyleLH != nil {
			if _, ok := d.EmotionToStyleLH["default"]; !ok {
				problems = append(problems, fmt.Sprintf("%s: LH emotion table has no \"default\" entry", fam))
			}
		}
		if _, ok := d.IntensityToVelocity["default"]; !ok {
			problems = append(problems, fmt.Sprintf("%s: intensity table has no \"default\" entry", fam))
		}
		for intensity, tuple := range d.IntensityToVelocity {
			if len(tuple) != 2 && len(tuple) != 4 {
				problems = append(problems, fmt.Sprintf("%s: velocity range %q must have 2 or 4 entries, has %d", fam, intensity, len(tuple)))
			}
		}
		if d.FallbackStyle == "" {
			problems = append(problems, fmt.Sprintf("%s: empty fallback style", fam))
		}
		if d.FallbackRhythmKey == "" {
			problems = append(problems, fmt.Sprintf("%s: empty fallback rhythm key", fam))
		}
		if len(d.FallbackVelocity) != 2 && len(d.FallbackVelocity) != 4 {
			problems = append(problems, fmt.Sprintf("%s: fallback velocity must have 2 or 4 entries", fam))
		}
	}
	if _, err := model.ParseTimeSignature(c.GlobalTimeSignature); err != nil {
		problems = append(problems, err.Error())
	}
	if c.GlobalTempo <= 0 {
		problems = append(problems, fmt.Sprintf("global tempo must be positive, got %v", c.GlobalTempo))
	}
	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("configuration defects: %v", problems)
}
