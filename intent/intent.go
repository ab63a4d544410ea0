// Package intent maps a block's musical intent to concrete style
// keywords, rhythm library keys and velocity ranges. Lookups walk a
// fixed chain: exact keyword, table "default" entry, then a literal
// fallback baked into the defaults table. The chain never dereferences
// a key that might not exist.
package intent

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/kinoshitayoshihiro/haru/config"
	"github.com/kinoshitayoshihiro/haru/model"
)

// Resolution is the outcome of one (family, emotion, intensity) lookup.
type Resolution struct {
	Style       string
	StyleLH     string
	RhythmKey   string
	RhythmKeyLH string
	Velocity    []int
}

// VelocityRH returns the right-hand half of a 4-tuple velocity range,
// or the whole 2-tuple range.
func (r Resolution) VelocityRH() (lo, hi int) {
	if len(r.Velocity) == 4 {
		return r.Velocity[2], r.Velocity[3]
	}
	return r.Velocity[0], r.Velocity[1]
}

// VelocityLH returns the left-hand half of a 4-tuple velocity range,
// or the whole 2-tuple range.
func (r Resolution) VelocityLH() (lo, hi int) {
	return r.Velocity[0], r.Velocity[1]
}

// ResolveStyle resolves the style keywords and velocity range for one
// family given the block's intent. Composite emotion labels such as
// "hopeful_yet_uncertain" are single lookup keys; when absent they fall
// to the table's "default" entry like any other miss.
func ResolveStyle(family string, d *config.FamilyDefaults, mi model.MusicalIntent) Resolution {
	emotion := strings.ToLower(strings.TrimSpace(mi.Emotion))
	intensity := strings.ToLower(strings.TrimSpace(mi.Intensity))

	res := Resolution{
		Style:    lookupKeyword(family, "style", d.EmotionToStyle, emotion, d.FallbackStyle),
		Velocity: lookupVelocity(family, d.IntensityToVelocity, intensity, d.FallbackVelocity),
	}
	res.RhythmKey = lookupKeyword(family, "rhythm", d.StyleToRhythmKey, res.Style, d.FallbackRhythmKey)

	if d.EmotionToStyleLH != nil {
		res.StyleLH = lookupKeyword(family, "style_lh", d.EmotionToStyleLH, emotion, d.FallbackStyleLH)
		res.RhythmKeyLH = lookupKeyword(family, "rhythm_lh", d.StyleToRhythmKey, res.StyleLH, d.FallbackRhythmKeyLH)
	}
	return res
}

func lookupKeyword(family, what string, table map[string]string, key, fallback string) string {
	if v, ok := table[key]; ok {
		return v
	}
	if v, ok := table["default"]; ok {
		log.WithFields(log.Fields{"part": family, "key": key, "used": v}).
			Debugf("no %s entry, using table default", what)
		return v
	}
	log.WithFields(log.Fields{"part": family, "key": key, "used": fallback}).
		Warnf("no %s entry and no table default, using built-in fallback", what)
	return fallback
}

func lookupVelocity(family string, table map[string][]int, intensity string, fallback []int) []int {
	if v, ok := table[intensity]; ok {
		return v
	}
	if v, ok := table["default"]; ok {
		log.WithFields(log.Fields{"part": family, "intensity": intensity}).
			Debug("no velocity entry, using table default")
		return v
	}
	log.WithFields(log.Fields{"part": family, "intensity": intensity}).
		Warn("no velocity entry and no table default, using built-in fallback")
	return fallback
}
